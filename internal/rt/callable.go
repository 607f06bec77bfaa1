package rt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrUnavailable signals that the runtime refused to expose an internal
// structure (version mismatch, sealed record, opaque storage). Callers must
// contain it: the affected query unit yields an empty result, the walk goes on.
var ErrUnavailable = errors.New("internal structure unavailable")

// Dependent is anything registered as a backedge target: a compiled variant,
// or a whole dispatch table (structural changes to the callable trip it).
type Dependent interface {
	DependentLabel() string
}

// Callable is an invokable entity owning one method definition per declared
// signature plus a single dispatch table.
type Callable struct {
	Name   string
	Module *Namespace

	methods []*MethodDef
	table   *DispatchTable
}

func NewCallable(name string, module *Namespace) *Callable {
	c := &Callable{Name: name, Module: module}
	c.table = &DispatchTable{Owner: c}
	return c
}

func (c *Callable) Kind() Kind         { return CallableKind }
func (c *Callable) RuntimeType() *Type { return FunctionType }
func (c *Callable) Mutable() bool      { return false }

func (c *Callable) Inspect() string {
	return fmt.Sprintf("fn %s (%d methods)", c.QualifiedName(), len(c.methods))
}

func (c *Callable) QualifiedName() string {
	if c.Module != nil {
		return c.Module.Name + "." + c.Name
	}
	return c.Name
}

func (c *Callable) Methods() []*MethodDef {
	out := make([]*MethodDef, len(c.methods))
	copy(out, c.methods)
	return out
}

func (c *Callable) Dispatch() *DispatchTable { return c.table }

// AddMethod declares a method with the given positional signature, backed by
// the supplied variant store.
func (c *Callable) AddMethod(sig []*Type, store VariantStore) *MethodDef {
	m := &MethodDef{Owner: c, Sig: sig, store: store}
	c.methods = append(c.methods, m)
	return m
}

// MethodDef is one declared signature of a callable. Its compiled variants
// live in runtime-version-dependent storage behind a VariantSource.
type MethodDef struct {
	Owner *Callable
	Sig   []*Type

	// Opaque marks storage the runtime refuses to expose.
	Opaque bool

	store VariantStore
}

// Variants exposes the method's specialization storage.
func (m *MethodDef) Variants() (VariantSource, error) {
	if m.Opaque || m.store == nil {
		return nil, ErrUnavailable
	}
	return m.store, nil
}

// Store returns the mutable storage for recording new variants.
func (m *MethodDef) Store() VariantStore { return m.store }

// SigString renders the declared signature, e.g. "(Int, Float)".
func (m *MethodDef) SigString() string {
	names := make([]string, 0, len(m.Sig))
	for _, t := range m.Sig {
		names = append(names, t.Name)
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// CompiledVariant is one compiler-generated specialization of a method for
// concrete argument types.
type CompiledVariant struct {
	ID       uuid.UUID
	Method   *MethodDef
	ArgTypes []*Type

	// Sealed marks a variant whose backedge list is unavailable.
	Sealed bool

	deps []Dependent
}

func NewCompiledVariant(m *MethodDef, argTypes []*Type) *CompiledVariant {
	return &CompiledVariant{ID: uuid.New(), Method: m, ArgTypes: argTypes}
}

// AddBackedge records a dependent that must be re-examined when this variant
// is invalidated.
func (v *CompiledVariant) AddBackedge(d Dependent) {
	v.deps = append(v.deps, d)
}

// Backedges returns the variant's registered dependents.
func (v *CompiledVariant) Backedges() ([]Dependent, error) {
	if v.Sealed {
		return nil, ErrUnavailable
	}
	out := make([]Dependent, len(v.deps))
	copy(out, v.deps)
	return out, nil
}

func (v *CompiledVariant) Signature() string {
	names := make([]string, 0, len(v.ArgTypes))
	for _, t := range v.ArgTypes {
		names = append(names, t.Name)
	}
	owner := "?"
	if v.Method != nil && v.Method.Owner != nil {
		owner = v.Method.Owner.QualifiedName()
	}
	return owner + "(" + strings.Join(names, ", ") + ")"
}

func (v *CompiledVariant) DependentLabel() string { return v.Signature() }

// DispatchTable records overload-resolution state per callable. Its backedge
// storage is a flat interleaved sequence of (triggering type, dependent)
// pairs; an odd length means the walker met a representation it does not
// account for.
type DispatchTable struct {
	Owner *Callable

	// Opaque marks a table the runtime refuses to expose.
	Opaque bool

	raw []any
}

// AddEdge appends one (trigger, dependent) pair to the flat storage.
func (t *DispatchTable) AddEdge(trigger *Type, dep Dependent) {
	t.raw = append(t.raw, trigger, dep)
}

// SetRaw replaces the flat storage wholesale. Used to mirror runtime states
// the structured mutators cannot produce.
func (t *DispatchTable) SetRaw(raw []any) { t.raw = raw }

// RawBackedges returns the flat interleaved storage as-is.
func (t *DispatchTable) RawBackedges() ([]any, error) {
	if t.Opaque {
		return nil, ErrUnavailable
	}
	out := make([]any, len(t.raw))
	copy(out, t.raw)
	return out, nil
}

func (t *DispatchTable) DependentLabel() string {
	if t.Owner != nil {
		return "table " + t.Owner.QualifiedName()
	}
	return "table ?"
}
