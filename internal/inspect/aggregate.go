package inspect

import "github.com/funvibe/funscope/internal/rt"

// QualifiedName keys one global by its owning namespace.
type QualifiedName struct {
	Namespace *rt.Namespace
	Name      string
}

func (q QualifiedName) String() string {
	return q.Namespace.Name + "." + q.Name
}

// RecursiveGlobalNames inventories globals across ns and all of its
// non-foundational descendants. The map is sparse: a namespace whose list
// comes back empty under the filter gets no entry at all.
func RecursiveGlobalNames(p rt.BindingProber, ns *rt.Namespace, f Filter) map[*rt.Namespace][]string {
	out := make(map[*rt.Namespace][]string)
	if names := GlobalNames(p, ns, f); len(names) > 0 {
		out[ns] = names
	}
	for desc := range AllDescendants(ns, false) {
		if names := GlobalNames(p, desc, f); len(names) > 0 {
			out[desc] = names
		}
	}
	return out
}

// RecursiveGlobals flattens the recursive inventory into fully qualified
// name/value pairs, resolving each name exactly once in its owning
// namespace. Imported bindings (when the filter includes them) are keyed by
// their originating namespace and original name, not the alias path they
// were found through.
func RecursiveGlobals(p rt.BindingProber, ns *rt.Namespace, f Filter) map[QualifiedName]rt.Value {
	out := make(map[QualifiedName]rt.Value)
	for owner, names := range RecursiveGlobalNames(p, ns, f) {
		for _, name := range names {
			b, ok := owner.Binding(name)
			if !ok || b.Value == nil {
				continue
			}
			attributed, key := owner, name
			if b.Imported && b.Origin != nil {
				attributed = b.Origin
				key = b.OriginName
			}
			out[QualifiedName{Namespace: attributed, Name: key}] = b.Value
		}
	}
	return out
}
