package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/funscope/internal/rt"
)

// Ancestors returns t's supertype chain, t first and the root last. The walk
// stops at the self-supertype fixpoint, which appears exactly once.
func Ancestors(t *rt.Type) []*rt.Type {
	out := []*rt.Type{t}
	for cur := t; !cur.IsRoot(); {
		cur = cur.Super()
		out = append(out, cur)
	}
	return out
}

// AncestorsInclusive is the ancestor chain for a non-type value: its runtime
// type prepended to that type's ancestors.
func AncestorsInclusive(v rt.Value) []*rt.Type {
	return Ancestors(rt.TypeOf(v))
}

// PrintTree writes t's subtype tree depth-first, pre-order, indenting two
// spaces per level. Purely presentational.
func PrintTree(w io.Writer, lister rt.SubtypeLister, t *rt.Type) {
	printTree(w, lister, t, 0)
}

func printTree(w io.Writer, lister rt.SubtypeLister, t *rt.Type, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), t.Name)
	for _, sub := range lister.ImmediateSubtypes(t) {
		printTree(w, lister, sub, depth+1)
	}
}
