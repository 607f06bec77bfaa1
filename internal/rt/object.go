package rt

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the closed classification of what a binding resolves to. Every
// value answers it exactly once; classification logic switches on Kind
// instead of re-probing the concrete type.
type Kind int

const (
	PlainKind Kind = iota
	TypeKind
	CallableKind
	NamespaceKind
)

func (k Kind) String() string {
	switch k {
	case PlainKind:
		return "plain"
	case TypeKind:
		return "type"
	case CallableKind:
		return "callable"
	case NamespaceKind:
		return "namespace"
	}
	return "unknown"
}

// Value is the read-only view of anything a namespace binding can resolve to.
type Value interface {
	Kind() Kind
	RuntimeType() *Type
	Inspect() string
	Mutable() bool // structural mutability of the value, independent of binding constness
}

// TypeOf returns the runtime type of a value.
func TypeOf(v Value) *Type {
	return v.RuntimeType()
}

type Int struct {
	Value int64
}

func (i *Int) Kind() Kind         { return PlainKind }
func (i *Int) RuntimeType() *Type { return IntType }
func (i *Int) Inspect() string    { return fmt.Sprintf("%d", i.Value) }
func (i *Int) Mutable() bool      { return false }

type Float struct {
	Value float64
}

func (f *Float) Kind() Kind         { return PlainKind }
func (f *Float) RuntimeType() *Type { return FloatType }
func (f *Float) Inspect() string    { return fmt.Sprintf("%g", f.Value) }
func (f *Float) Mutable() bool      { return false }

type Bool struct {
	Value bool
}

func (b *Bool) Kind() Kind         { return PlainKind }
func (b *Bool) RuntimeType() *Type { return BoolType }
func (b *Bool) Inspect() string    { return fmt.Sprintf("%t", b.Value) }
func (b *Bool) Mutable() bool      { return false }

type String struct {
	Value string
}

func (s *String) Kind() Kind         { return PlainKind }
func (s *String) RuntimeType() *Type { return StringType }
func (s *String) Inspect() string    { return fmt.Sprintf("%q", s.Value) }
func (s *String) Mutable() bool      { return false }

// List is the runtime's growable container. It is the one plain value with
// structural mutability, which is what the mutability filter keys on.
type List struct {
	Elements []Value
}

func (l *List) Kind() Kind         { return PlainKind }
func (l *List) RuntimeType() *Type { return ListType }
func (l *List) Mutable() bool      { return true }

func (l *List) Inspect() string {
	parts := make([]string, 0, len(l.Elements))
	for _, el := range l.Elements {
		parts = append(parts, el.Inspect())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type Tuple struct {
	Elements []Value
}

func (t *Tuple) Kind() Kind         { return PlainKind }
func (t *Tuple) RuntimeType() *Type { return TupleType }
func (t *Tuple) Mutable() bool      { return false }

func (t *Tuple) Inspect() string {
	parts := make([]string, 0, len(t.Elements))
	for _, el := range t.Elements {
		parts = append(parts, el.Inspect())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Map is the immutable hash map.
type Map struct {
	Pairs map[string]Value
}

func (m *Map) Kind() Kind         { return PlainKind }
func (m *Map) RuntimeType() *Type { return MapType }
func (m *Map) Mutable() bool      { return false }

func (m *Map) Inspect() string {
	keys := make([]string, 0, len(m.Pairs))
	for k := range m.Pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q: %s", k, m.Pairs[k].Inspect()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
