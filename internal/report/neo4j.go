package report

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphLoader loads a report into a Neo4j database using batch UNWIND
// queries, so the invalidation graph can be queried with Cypher.
type GraphLoader struct {
	driver neo4j.DriverWithContext
	ctx    context.Context
}

// NewGraphLoader connects to Neo4j and returns a ready-to-use loader.
func NewGraphLoader(ctx context.Context, uri, user, password string) (*GraphLoader, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}
	return &GraphLoader{driver: driver, ctx: ctx}, nil
}

// Close releases the underlying driver resources.
func (l *GraphLoader) Close() {
	l.driver.Close(l.ctx)
}

func (l *GraphLoader) run(cypher string, params map[string]any) error {
	_, err := neo4j.ExecuteQuery(l.ctx, l.driver, cypher, params, neo4j.EagerResultTransformer)
	return err
}

// Clean removes previously loaded report nodes and relationships.
func (l *GraphLoader) Clean() error {
	queries := []string{
		"MATCH ()-[r:INVALIDATES]->() DELETE r",
		"MATCH ()-[r:VARIANT_OF]->() DELETE r",
		"MATCH ()-[r:IN_NAMESPACE]->() DELETE r",
		"MATCH (n:Variant) DETACH DELETE n",
		"MATCH (n:Source) DETACH DELETE n",
		"MATCH (n:Dependent) DETACH DELETE n",
		"MATCH (n:Global) DETACH DELETE n",
		"MATCH (n:Callable) DETACH DELETE n",
		"MATCH (n:Namespace) DETACH DELETE n",
	}
	for _, q := range queries {
		if err := l.run(q, nil); err != nil {
			return err
		}
	}
	return nil
}

// CreateIndexes ensures the lookup indexes exist.
func (l *GraphLoader) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX ns_name IF NOT EXISTS FOR (n:Namespace) ON (n.name)",
		"CREATE INDEX callable_name IF NOT EXISTS FOR (n:Callable) ON (n.name)",
		"CREATE INDEX variant_id IF NOT EXISTS FOR (n:Variant) ON (n.id)",
	}
	for _, q := range indexes {
		if err := l.run(q, nil); err != nil {
			return err
		}
	}
	return nil
}

// Load upserts the whole report.
func (l *GraphLoader) Load(r *Report) error {
	if err := l.loadNamespaces(r); err != nil {
		return err
	}
	if err := l.loadGlobals(r); err != nil {
		return err
	}
	return l.loadCallables(r)
}

func (l *GraphLoader) loadNamespaces(r *Report) error {
	batch := make([]map[string]any, 0, len(r.Namespaces))
	for _, ns := range r.Namespaces {
		batch = append(batch, map[string]any{
			"name":         ns.Name,
			"foundational": ns.Foundational,
		})
	}
	return l.run(
		`UNWIND $batch AS row
		 MERGE (n:Namespace {name: row.name})
		 SET n.foundational = row.foundational`,
		map[string]any{"batch": batch},
	)
}

func (l *GraphLoader) loadGlobals(r *Report) error {
	var batch []map[string]any
	for _, ns := range r.Namespaces {
		for _, g := range ns.Globals {
			batch = append(batch, map[string]any{
				"key":       ns.Name + "." + g.Name,
				"ns":        ns.Name,
				"name":      g.Name,
				"type":      g.Type,
				"value":     g.Value,
				"constness": g.Constness,
				"mutable":   g.Mutable,
			})
		}
	}
	return l.run(
		`UNWIND $batch AS row
		 MERGE (g:Global {key: row.key})
		 SET g.name = row.name, g.type = row.type, g.value = row.value,
		     g.constness = row.constness, g.mutable = row.mutable
		 WITH g, row
		 MATCH (n:Namespace {name: row.ns})
		 MERGE (g)-[:IN_NAMESPACE]->(n)`,
		map[string]any{"batch": batch},
	)
}

func (l *GraphLoader) loadCallables(r *Report) error {
	callables := make([]map[string]any, 0, len(r.Callables))
	var variants []map[string]any
	var edges []map[string]any
	for _, c := range r.Callables {
		callables = append(callables, map[string]any{
			"name":    c.Name,
			"methods": c.Methods,
		})
		for _, v := range c.Variants {
			variants = append(variants, map[string]any{
				"id":        v.ID,
				"callable":  c.Name,
				"signature": v.Signature,
				"method":    v.Method,
			})
			for _, d := range v.Dependents {
				edges = append(edges, map[string]any{
					"callable": c.Name,
					"source":   v.Signature,
					"dep":      d,
				})
			}
		}
		for _, e := range c.TableEdges {
			for _, d := range e.Dependents {
				edges = append(edges, map[string]any{
					"callable": c.Name,
					"source":   "table/" + e.Trigger,
					"dep":      d,
				})
			}
		}
	}

	if err := l.run(
		`UNWIND $batch AS row
		 MERGE (c:Callable {name: row.name})
		 SET c.methods = row.methods`,
		map[string]any{"batch": callables},
	); err != nil {
		return err
	}
	if err := l.run(
		`UNWIND $batch AS row
		 MERGE (v:Variant {id: row.id})
		 SET v.signature = row.signature, v.method = row.method
		 WITH v, row
		 MATCH (c:Callable {name: row.callable})
		 MERGE (v)-[:VARIANT_OF]->(c)`,
		map[string]any{"batch": variants},
	); err != nil {
		return err
	}
	return l.run(
		`UNWIND $batch AS row
		 MATCH (c:Callable {name: row.callable})
		 MERGE (d:Dependent {label: row.dep})
		 MERGE (s:Source {label: row.source, callable: row.callable})
		 MERGE (s)-[:INVALIDATES]->(d)`,
		map[string]any{"batch": edges},
	)
}
