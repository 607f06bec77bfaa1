// Package snapshot loads recorded runtime state from YAML into an rt.Image.
//
// A snapshot is the offline surrogate for attaching to a live process: a
// host runtime dumps its namespaces, bindings, callables, and compiled
// variants, and the inspectors walk the rebuilt image exactly as they would
// walk the live structures.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/funscope/internal/config"
	"github.com/funvibe/funscope/internal/rt"
)

// Snapshot is the top-level document.
type Snapshot struct {
	// Runtime identifies the host build the snapshot came from. The version
	// selects the binding prober and the variant storage layout.
	Runtime RuntimeInfo `yaml:"runtime"`

	// Types lists user-defined types; built-in types need no declaration.
	Types []TypeDecl `yaml:"types,omitempty"`

	// Namespaces in declaration order. Bindings may reference namespaces,
	// types, and callables declared anywhere in the document.
	Namespaces []NamespaceDecl `yaml:"namespaces"`

	// Callables with their method definitions and compiled variants.
	Callables []CallableDecl `yaml:"callables,omitempty"`
}

type RuntimeInfo struct {
	Version string `yaml:"version"`
}

// TypeDecl declares one nominal type under an existing supertype.
type TypeDecl struct {
	Name string `yaml:"name"`

	// Super is the supertype name. Defaults to Any.
	Super string `yaml:"super,omitempty"`
}

type NamespaceDecl struct {
	Name string `yaml:"name"`

	// Foundational marks a runtime-provided base namespace, excluded from
	// traversal by default.
	Foundational bool `yaml:"foundational,omitempty"`

	Bindings []BindingDecl `yaml:"bindings,omitempty"`
}

// BindingDecl declares one name in a namespace. Exactly one of Value,
// Namespace, Type, Callable, or From must be set.
type BindingDecl struct {
	Name string `yaml:"name"`

	// Const marks the binding as fixed at bind time.
	Const bool `yaml:"const,omitempty"`

	// Opaque hides the binding's metadata from the probe.
	Opaque bool `yaml:"opaque,omitempty"`

	// Value binds a plain literal.
	Value *ValueDecl `yaml:"value,omitempty"`

	// Namespace binds another declared namespace by name.
	Namespace string `yaml:"namespace,omitempty"`

	// Type binds a type by name (built-in or declared).
	Type string `yaml:"type,omitempty"`

	// Callable binds a declared callable by name.
	Callable string `yaml:"callable,omitempty"`

	// From re-exports Name from the given origin namespace. As renames the
	// alias; it defaults to Name.
	From string `yaml:"from,omitempty"`
	As   string `yaml:"as,omitempty"`
}

// ValueDecl is a plain literal. Kind selects the representation.
type ValueDecl struct {
	Kind string `yaml:"kind"` // int | float | bool | string | list | tuple | map

	Int    int64   `yaml:"int,omitempty"`
	Float  float64 `yaml:"float,omitempty"`
	Bool   bool    `yaml:"bool,omitempty"`
	String string  `yaml:"string,omitempty"`

	// Elements populate list and tuple literals.
	Elements []ValueDecl `yaml:"elements,omitempty"`

	// Pairs populate map literals.
	Pairs map[string]ValueDecl `yaml:"pairs,omitempty"`
}

type CallableDecl struct {
	Name string `yaml:"name"`

	// Module is the defining namespace's name.
	Module string `yaml:"module,omitempty"`

	Methods []MethodDecl `yaml:"methods,omitempty"`

	// TableEdges are the dispatch-table backedges, one pair each. The
	// builder flattens them into the table's interleaved storage.
	TableEdges []TableEdgeDecl `yaml:"tableEdges,omitempty"`

	// TableOpaque hides the dispatch-table storage from the collector.
	TableOpaque bool `yaml:"tableOpaque,omitempty"`
}

type MethodDecl struct {
	// Args are the declared parameter type names.
	Args []string `yaml:"args"`

	// Opaque hides the method's variant storage.
	Opaque bool `yaml:"opaque,omitempty"`

	Variants []VariantDecl `yaml:"variants,omitempty"`
}

type VariantDecl struct {
	// Ref is a snapshot-local handle other declarations use to point at
	// this variant.
	Ref string `yaml:"ref,omitempty"`

	// Args are the concrete argument type names the variant specializes on.
	Args []string `yaml:"args"`

	// Slot is the storage index the runtime assigned; gaps between slots
	// stay unpopulated. Defaults to the next free index.
	Slot *int `yaml:"slot,omitempty"`

	// Sealed hides the variant's backedge list.
	Sealed bool `yaml:"sealed,omitempty"`

	Backedges []DependentDecl `yaml:"backedges,omitempty"`
}

// DependentDecl names a backedge target: a variant by ref, or a callable's
// whole dispatch table.
type DependentDecl struct {
	Variant string `yaml:"variant,omitempty"`
	Table   string `yaml:"table,omitempty"`
}

type TableEdgeDecl struct {
	// Trigger is the type whose structural involvement trips the edge.
	Trigger string `yaml:"trigger"`

	Variant string `yaml:"variant,omitempty"`
	Table   string `yaml:"table,omitempty"`
}

// Load reads and builds a snapshot file.
func Load(path string) (*rt.Image, error) {
	if !recognizedExt(path) {
		return nil, fmt.Errorf("unrecognized snapshot extension: %s", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	snap, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Build(snap)
}

// Parse decodes a snapshot document without building it.
func Parse(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snap.Runtime.Version == "" {
		return nil, fmt.Errorf("snapshot is missing runtime.version")
	}
	return &snap, nil
}

func recognizedExt(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range config.SnapshotFileExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
