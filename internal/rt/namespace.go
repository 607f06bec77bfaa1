package rt

import "sort"

// Namespace is a named container of bindings. Namespaces form a directed
// graph (re-exports can make a child reachable from several parents, or
// close a cycle); identity, not name, is the dedup key everywhere.
type Namespace struct {
	Name string

	// Foundational marks runtime-provided base namespaces. They bind
	// themselves and each other and are excluded from traversal by default.
	Foundational bool

	bindings map[string]*Binding
}

func NewNamespace(name string) *Namespace {
	return &Namespace{Name: name, bindings: make(map[string]*Binding)}
}

func (n *Namespace) Kind() Kind         { return NamespaceKind }
func (n *Namespace) RuntimeType() *Type { return NamespaceType }
func (n *Namespace) Inspect() string    { return "namespace " + n.Name }
func (n *Namespace) Mutable() bool      { return false }

// Define installs a reassignable local binding.
func (n *Namespace) Define(name string, v Value) *Binding {
	b := &Binding{Name: name, Value: v}
	n.bindings[name] = b
	return b
}

// DefineConst installs a local binding fixed at bind time. Constness is a
// property of the binding; the value may still be structurally mutable.
func (n *Namespace) DefineConst(name string, v Value) *Binding {
	b := &Binding{Name: name, Value: v, Const: true}
	n.bindings[name] = b
	return b
}

// ImportFrom re-exports origin's binding under the given alias. The alias
// stays attributed to the binding's originating namespace, resolved through
// chains of re-exports.
func (n *Namespace) ImportFrom(origin *Namespace, name, alias string) (*Binding, bool) {
	src, ok := origin.Binding(name)
	if !ok {
		return nil, false
	}
	from, original := origin, name
	if src.Imported && src.Origin != nil {
		from = src.Origin
		original = src.OriginName
	}
	b := &Binding{
		Name:       alias,
		Value:      src.Value,
		Const:      src.Const,
		Imported:   true,
		Origin:     from,
		OriginName: original,
	}
	n.bindings[alias] = b
	return b, true
}

func (n *Namespace) Binding(name string) (*Binding, bool) {
	b, ok := n.bindings[name]
	return b, ok
}

// Names returns all bound names, sorted.
func (n *Namespace) Names() []string {
	out := make([]string, 0, len(n.bindings))
	for name := range n.bindings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Binding is one (namespace, name) → value association.
type Binding struct {
	Name  string
	Value Value

	// Const means the binding cannot be reassigned. Independent of the
	// value's own mutability.
	Const bool

	// Imported marks a re-export; Origin and OriginName identify the
	// namespace and name the binding was originally defined under, resolved
	// through chains of re-exports.
	Imported   bool
	Origin     *Namespace
	OriginName string

	// Opaque marks a binding whose metadata the probe cannot read.
	Opaque bool
}
