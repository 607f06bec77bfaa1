package inspect

import (
	"testing"

	"github.com/funvibe/funscope/internal/rt"
)

func TestDirectChildren(t *testing.T) {
	outer := rt.NewNamespace("Outer")
	inner := rt.NewNamespace("Inner")
	outer.Define("Inner", inner)
	outer.Define("g", &rt.Int{Value: 2})

	kids := DirectChildren(outer, false)
	if len(kids) != 1 || !kids[inner] {
		t.Fatalf("expected exactly {Inner}, got %v", kids)
	}
}

func TestDirectChildrenSkipsSelfReference(t *testing.T) {
	ns := rt.NewNamespace("M")
	// Every namespace binds its own name; that is not a child.
	ns.Define("M", ns)
	// An alias to itself under another name is not a child either.
	ns.Define("alias", ns)

	if kids := DirectChildren(ns, false); len(kids) != 0 {
		t.Fatalf("self-references must not count as children, got %v", kids)
	}
}

func TestDirectChildrenSkipsOwnNameAlias(t *testing.T) {
	ns := rt.NewNamespace("M")
	other := rt.NewNamespace("Other")
	// A binding carrying the namespace's own name is a re-import artifact.
	ns.Define("M", other)

	if kids := DirectChildren(ns, false); len(kids) != 0 {
		t.Fatalf("own-name binding must not count as a child, got %v", kids)
	}
}

func TestDirectChildrenFoundationalExclusion(t *testing.T) {
	ns := rt.NewNamespace("M")
	prelude := rt.NewNamespace("prelude")
	prelude.Foundational = true
	ns.Define("prelude", prelude)

	if kids := DirectChildren(ns, false); len(kids) != 0 {
		t.Fatalf("foundational namespaces are excluded by default, got %v", kids)
	}
	kids := DirectChildren(ns, true)
	if len(kids) != 1 || !kids[prelude] {
		t.Fatalf("includeFoundational should surface prelude, got %v", kids)
	}
}

func TestAllDescendantsTerminatesOnCycle(t *testing.T) {
	a := rt.NewNamespace("A")
	b := rt.NewNamespace("B")
	c := rt.NewNamespace("C")
	a.Define("B", b)
	b.Define("C", c)
	c.Define("A", a) // descendant imports an ancestor

	got := AllDescendants(a, false)
	if len(got) != 2 {
		t.Fatalf("expected {B, C}, got %d entries", len(got))
	}
	if got[a] {
		t.Errorf("root must never be re-emitted through the cycle")
	}
	if !got[b] || !got[c] {
		t.Errorf("missing descendants: %v", got)
	}
}

func TestAllDescendantsDeduplicatesDiamond(t *testing.T) {
	root := rt.NewNamespace("Root")
	left := rt.NewNamespace("Left")
	right := rt.NewNamespace("Right")
	shared := rt.NewNamespace("Shared")
	root.Define("Left", left)
	root.Define("Right", right)
	// Shared is reachable via two distinct import paths.
	left.Define("Shared", shared)
	right.Define("SharedToo", shared)

	got := AllDescendants(root, false)
	if len(got) != 3 {
		t.Fatalf("expected {Left, Right, Shared}, got %d entries", len(got))
	}
}

func TestAllDescendantsIdempotent(t *testing.T) {
	a := rt.NewNamespace("A")
	b := rt.NewNamespace("B")
	a.Define("B", b)
	b.Define("A", a)

	first := AllDescendants(a, false)
	second := AllDescendants(a, false)
	if len(first) != len(second) {
		t.Fatalf("repeated calls diverged: %d vs %d", len(first), len(second))
	}
	for ns := range first {
		if !second[ns] {
			t.Errorf("second walk missed %s", ns.Name)
		}
	}
}

func TestAllDescendantsSelfImportingFoundational(t *testing.T) {
	// The runtime's own base namespaces bind themselves and each other;
	// naive recursion diverges on them.
	prelude := rt.NewNamespace("prelude")
	prelude.Foundational = true
	host := rt.NewNamespace("host")
	host.Foundational = true
	prelude.Define("hostref", host)
	host.Define("preluderef", prelude)
	prelude.Define("self", prelude)

	got := AllDescendants(prelude, true)
	if len(got) != 1 || !got[host] {
		t.Fatalf("expected {host}, got %d entries", len(got))
	}
}
