package inspect

import (
	"sort"

	"github.com/funvibe/funscope/internal/config"
	"github.com/funvibe/funscope/internal/rt"
)

// Constness filters on the binding's reassignability as reported by the
// probe. Unknown constness excludes the name under either directed filter.
type Constness int

const (
	AnyConstness Constness = iota
	ConstOnly
	NonConstOnly
)

// Mutability filters on the bound value's structural mutability. Orthogonal
// to constness: a const binding to a mutable container is still mutable here.
type Mutability int

const (
	AnyMutability Mutability = iota
	MutableOnly
	ImmutableOnly
)

// Filter narrows global classification.
type Filter struct {
	Constness  Constness
	Mutability Mutability

	// IncludeImported surfaces re-exported bindings too. They stay
	// attributed to their originating namespace in aggregated results.
	IncludeImported bool
}

// IsGlobal reports whether name denotes a global in ns under the filter: a
// non-internal name bound to a plain value (not a type, callable, or
// namespace). Fails closed — any lookup the runtime cannot answer makes the
// name not qualify rather than propagating an error.
func IsGlobal(p rt.BindingProber, ns *rt.Namespace, name string, f Filter) bool {
	if name == "" || rune(name[0]) == config.InternalNameSentinel {
		return false
	}
	b, ok := ns.Binding(name)
	if !ok || b.Value == nil {
		return false
	}
	if b.Imported && !f.IncludeImported {
		return false
	}
	if b.Value.Kind() != rt.PlainKind {
		return false
	}
	if f.Constness != AnyConstness {
		info, ok := p.LookupBinding(ns, name)
		if !ok || !info.Exists {
			return false
		}
		if f.Constness == ConstOnly && !info.IsConst {
			return false
		}
		if f.Constness == NonConstOnly && info.IsConst {
			return false
		}
	}
	switch f.Mutability {
	case MutableOnly:
		if !b.Value.Mutable() {
			return false
		}
	case ImmutableOnly:
		if b.Value.Mutable() {
			return false
		}
	}
	return true
}

// GlobalNames returns the sorted names of ns's globals under the filter.
func GlobalNames(p rt.BindingProber, ns *rt.Namespace, f Filter) []string {
	var out []string
	for _, name := range ns.Names() {
		if IsGlobal(p, ns, name, f) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// GlobalValues resolves each qualifying name once in ns.
func GlobalValues(p rt.BindingProber, ns *rt.Namespace, f Filter) map[string]rt.Value {
	out := make(map[string]rt.Value)
	for _, name := range GlobalNames(p, ns, f) {
		if b, ok := ns.Binding(name); ok {
			out[name] = b.Value
		}
	}
	return out
}

// FunctionNames returns the sorted names of callables bound locally in ns.
func FunctionNames(ns *rt.Namespace) []string {
	var out []string
	for _, name := range ns.Names() {
		if name == "" || rune(name[0]) == config.InternalNameSentinel {
			continue
		}
		b, ok := ns.Binding(name)
		if !ok || b.Value == nil || b.Imported {
			continue
		}
		if b.Value.Kind() == rt.CallableKind {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// AllObjects is the coarse probe: every resolvable, currently-bound value in
// ns, including callables, types, and submodules. Compiler-internal names
// are storage artifacts and are skipped.
func AllObjects(ns *rt.Namespace) []rt.Value {
	var out []rt.Value
	for _, name := range ns.Names() {
		if name == "" || rune(name[0]) == config.InternalNameSentinel {
			continue
		}
		b, ok := ns.Binding(name)
		if !ok || b.Value == nil {
			continue
		}
		out = append(out, b.Value)
	}
	return out
}
