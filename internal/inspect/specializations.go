// Package inspect answers structural questions about a live runtime image:
// which compiled variants exist for a callable, what invalidates them, and
// what global state a namespace tree exposes. All walks are read-only and
// uncached; every call re-walks current state.
package inspect

import "github.com/funvibe/funscope/internal/rt"

// Specializations enumerates every compiled variant across all method
// definitions of a callable, mapped back to its defining method. A method
// whose storage the runtime refuses to expose contributes zero variants.
func Specializations(c *rt.Callable) map[*rt.CompiledVariant]*rt.MethodDef {
	out := make(map[*rt.CompiledVariant]*rt.MethodDef)
	for _, m := range c.Methods() {
		for _, v := range Variants(m) {
			out[v] = m
		}
	}
	return out
}

// SpecializationsFor restricts the walk to method definitions whose declared
// signature matches sig exactly (same length, same types, positionally).
func SpecializationsFor(c *rt.Callable, sig []*rt.Type) map[*rt.CompiledVariant]*rt.MethodDef {
	out := make(map[*rt.CompiledVariant]*rt.MethodDef)
	for _, m := range c.Methods() {
		if !sigEqual(m.Sig, sig) {
			continue
		}
		for _, v := range Variants(m) {
			out[v] = m
		}
	}
	return out
}

// Variants collects the populated slots of a method's specialization
// storage. Unavailable storage yields an empty slice, never an error: the
// failure is contained to this one method.
func Variants(m *rt.MethodDef) []*rt.CompiledVariant {
	src, err := m.Variants()
	if err != nil {
		return nil
	}
	var out []*rt.CompiledVariant
	src.Each(func(v *rt.CompiledVariant) bool {
		out = append(out, v)
		return true
	})
	return out
}

func sigEqual(a, b []*rt.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
