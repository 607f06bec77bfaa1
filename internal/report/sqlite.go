package report

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS runtimes (
		version TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS namespaces (
		name TEXT PRIMARY KEY,
		foundational INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS globals (
		namespace TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		value TEXT NOT NULL,
		constness TEXT NOT NULL,
		mutable INTEGER NOT NULL,
		PRIMARY KEY (namespace, name)
	)`,
	`CREATE TABLE IF NOT EXISTS callables (
		name TEXT PRIMARY KEY,
		methods INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS variants (
		id TEXT PRIMARY KEY,
		callable TEXT NOT NULL,
		signature TEXT NOT NULL,
		method TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS edges (
		callable TEXT NOT NULL,
		source TEXT NOT NULL,
		dependent TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_edges_callable ON edges (callable)`,
}

// ExportSQLite writes the report into a SQLite database at path, replacing
// prior contents. One transaction: the file is either the full report or
// untouched.
func ExportSQLite(path string, r *Report) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	for _, stmt := range sqliteSchema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"runtimes", "namespaces", "globals", "callables", "variants", "edges"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("INSERT INTO runtimes (version) VALUES (?)", r.RuntimeVersion); err != nil {
		return err
	}
	for _, ns := range r.Namespaces {
		if _, err := tx.Exec(
			"INSERT INTO namespaces (name, foundational) VALUES (?, ?)",
			ns.Name, boolInt(ns.Foundational),
		); err != nil {
			return err
		}
		for _, g := range ns.Globals {
			if _, err := tx.Exec(
				"INSERT INTO globals (namespace, name, type, value, constness, mutable) VALUES (?, ?, ?, ?, ?, ?)",
				ns.Name, g.Name, g.Type, g.Value, g.Constness, boolInt(g.Mutable),
			); err != nil {
				return err
			}
		}
	}
	for _, c := range r.Callables {
		if _, err := tx.Exec(
			"INSERT INTO callables (name, methods) VALUES (?, ?)",
			c.Name, c.Methods,
		); err != nil {
			return err
		}
		for _, v := range c.Variants {
			if _, err := tx.Exec(
				"INSERT INTO variants (id, callable, signature, method) VALUES (?, ?, ?, ?)",
				v.ID, c.Name, v.Signature, v.Method,
			); err != nil {
				return err
			}
			for _, d := range v.Dependents {
				if _, err := tx.Exec(
					"INSERT INTO edges (callable, source, dependent) VALUES (?, ?, ?)",
					c.Name, v.Signature, d,
				); err != nil {
					return err
				}
			}
		}
		for _, e := range c.TableEdges {
			for _, d := range e.Dependents {
				if _, err := tx.Exec(
					"INSERT INTO edges (callable, source, dependent) VALUES (?, ?, ?)",
					c.Name, "table/"+e.Trigger, d,
				); err != nil {
					return err
				}
			}
		}
	}
	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
