package report

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiCyan  = "\x1b[36m"
)

// StdoutIsTTY reports whether stdout is a terminal; renderers only emit
// color when it is.
func StdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// TextRenderer writes a report for humans.
type TextRenderer struct {
	Color bool
}

func (tr TextRenderer) paint(code, s string) string {
	if !tr.Color {
		return s
	}
	return code + s + ansiReset
}

func (tr TextRenderer) Render(w io.Writer, r *Report) {
	fmt.Fprintf(w, "runtime %s\n", r.RuntimeVersion)
	for _, ns := range r.Namespaces {
		tr.renderNamespace(w, ns)
	}
	for _, c := range r.Callables {
		tr.RenderCallable(w, c)
	}
}

func (tr TextRenderer) renderNamespace(w io.Writer, ns NamespaceReport) {
	suffix := ""
	if ns.Foundational {
		suffix = " (foundational)"
	}
	fmt.Fprintf(w, "%s%s\n", tr.paint(ansiBold, "namespace "+ns.Name), suffix)
	for _, fn := range ns.Functions {
		fmt.Fprintf(w, "  fn %s\n", fn)
	}
	for _, g := range ns.Globals {
		mut := "immutable"
		if g.Mutable {
			mut = "mutable"
		}
		fmt.Fprintf(w, "  %s :: %s = %s  %s\n",
			tr.paint(ansiCyan, g.Name), g.Type, g.Value,
			tr.paint(ansiDim, "["+g.Constness+", "+mut+"]"))
	}
}

func (tr TextRenderer) RenderCallable(w io.Writer, c CallableReport) {
	fmt.Fprintf(w, "%s (%d methods, %d variants)\n",
		tr.paint(ansiBold, "fn "+c.Name), c.Methods, len(c.Variants))
	for _, v := range c.Variants {
		fmt.Fprintf(w, "  %s  %s\n", tr.paint(ansiCyan, v.Signature), tr.paint(ansiDim, v.ID))
		for _, d := range v.Dependents {
			fmt.Fprintf(w, "    <- %s\n", d)
		}
	}
	for _, e := range c.TableEdges {
		fmt.Fprintf(w, "  table/%s\n", e.Trigger)
		for _, d := range e.Dependents {
			fmt.Fprintf(w, "    <- %s\n", d)
		}
	}
}
