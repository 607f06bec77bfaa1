package inspect

import (
	"github.com/eapache/queue"

	"github.com/funvibe/funscope/internal/rt"
)

// DirectChildren returns the namespaces bound directly inside ns. A binding
// qualifies iff it resolves to a namespace, is not ns itself, and its name is
// not ns's own name (a namespace importing itself under an alias would
// otherwise show up as a spurious child). Foundational namespaces are
// excluded unless asked for.
func DirectChildren(ns *rt.Namespace, includeFoundational bool) map[*rt.Namespace]bool {
	out := make(map[*rt.Namespace]bool)
	for _, name := range ns.Names() {
		b, ok := ns.Binding(name)
		if !ok || b.Value == nil {
			continue
		}
		child, ok := b.Value.(*rt.Namespace)
		if !ok {
			continue
		}
		if child == ns || name == ns.Name {
			continue
		}
		if child.Foundational && !includeFoundational {
			continue
		}
		out[child] = true
	}
	return out
}

// AllDescendants returns every namespace transitively reachable from ns,
// excluding ns itself. The walk is a worklist BFS over a visited set seeded
// with the root before the first dequeue: an identity already visited is
// never re-entered or re-emitted, which is what terminates cycles and
// diamond-shaped import graphs.
func AllDescendants(ns *rt.Namespace, includeFoundational bool) map[*rt.Namespace]bool {
	visited := map[*rt.Namespace]bool{ns: true}
	out := make(map[*rt.Namespace]bool)

	work := queue.New()
	work.Add(ns)
	for work.Length() > 0 {
		cur := work.Remove().(*rt.Namespace)
		for child := range DirectChildren(cur, includeFoundational) {
			if visited[child] {
				continue
			}
			visited[child] = true
			out[child] = true
			work.Add(child)
		}
	}
	return out
}
