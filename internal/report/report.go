// Package report assembles inspection results into exportable documents.
// The inspectors return live pointers into the runtime image; this package
// flattens them into plain values a renderer or database can take.
package report

import (
	"sort"

	"github.com/funvibe/funscope/internal/inspect"
	"github.com/funvibe/funscope/internal/rt"
)

type Report struct {
	RuntimeVersion string            `yaml:"runtime"`
	Namespaces     []NamespaceReport `yaml:"namespaces,omitempty"`
	Callables      []CallableReport  `yaml:"callables,omitempty"`
}

type NamespaceReport struct {
	Name         string         `yaml:"name"`
	Foundational bool           `yaml:"foundational,omitempty"`
	Functions    []string       `yaml:"functions,omitempty"`
	Globals      []GlobalReport `yaml:"globals,omitempty"`
}

type GlobalReport struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Value string `yaml:"value"`

	// Constness is "const", "reassignable", or "unknown" (probe refused).
	Constness string `yaml:"constness"`

	Mutable bool `yaml:"mutable"`
}

type CallableReport struct {
	Name       string            `yaml:"name"`
	Methods    int               `yaml:"methods"`
	Variants   []VariantReport   `yaml:"variants,omitempty"`
	TableEdges []TableEdgeReport `yaml:"tableEdges,omitempty"`
}

type VariantReport struct {
	ID         string   `yaml:"id"`
	Signature  string   `yaml:"signature"`
	Method     string   `yaml:"method"`
	Dependents []string `yaml:"dependents,omitempty"`
}

type TableEdgeReport struct {
	Trigger    string   `yaml:"trigger"`
	Dependents []string `yaml:"dependents,omitempty"`
}

// Build walks the whole image and assembles one report under the filter.
// Malformed runtime state surfaces as an error, naming the callable.
func Build(img *rt.Image, f inspect.Filter) (*Report, error) {
	r := &Report{RuntimeVersion: img.Version}
	p := img.Prober()

	for _, ns := range img.Namespaces() {
		r.Namespaces = append(r.Namespaces, buildNamespace(p, ns, f))
	}
	for _, c := range img.Callables() {
		cr, err := BuildCallable(c)
		if err != nil {
			return nil, err
		}
		r.Callables = append(r.Callables, *cr)
	}
	sort.Slice(r.Callables, func(i, j int) bool {
		return r.Callables[i].Name < r.Callables[j].Name
	})
	return r, nil
}

func buildNamespace(p rt.BindingProber, ns *rt.Namespace, f inspect.Filter) NamespaceReport {
	nr := NamespaceReport{
		Name:         ns.Name,
		Foundational: ns.Foundational,
		Functions:    inspect.FunctionNames(ns),
	}
	for _, name := range inspect.GlobalNames(p, ns, f) {
		b, ok := ns.Binding(name)
		if !ok || b.Value == nil {
			continue
		}
		constness := "unknown"
		if info, ok := p.LookupBinding(ns, name); ok && info.Exists {
			if info.IsConst {
				constness = "const"
			} else {
				constness = "reassignable"
			}
		}
		nr.Globals = append(nr.Globals, GlobalReport{
			Name:      name,
			Type:      b.Value.RuntimeType().Name,
			Value:     b.Value.Inspect(),
			Constness: constness,
			Mutable:   b.Value.Mutable(),
		})
	}
	return nr
}

// BuildCallable assembles the specialization and invalidation listing for
// one callable.
func BuildCallable(c *rt.Callable) (*CallableReport, error) {
	cr := &CallableReport{
		Name:    c.QualifiedName(),
		Methods: len(c.Methods()),
	}

	edges, err := inspect.Backedges(c)
	if err != nil {
		return nil, err
	}
	for key, deps := range edges {
		labels := make([]string, 0, len(deps))
		for _, d := range deps {
			labels = append(labels, d.DependentLabel())
		}
		sort.Strings(labels)
		if key.Variant != nil {
			cr.Variants = append(cr.Variants, VariantReport{
				ID:         key.Variant.ID.String(),
				Signature:  key.Variant.Signature(),
				Method:     key.Variant.Method.SigString(),
				Dependents: labels,
			})
		} else {
			cr.TableEdges = append(cr.TableEdges, TableEdgeReport{
				Trigger:    key.Trigger.Name,
				Dependents: labels,
			})
		}
	}
	sort.Slice(cr.Variants, func(i, j int) bool {
		if cr.Variants[i].Signature != cr.Variants[j].Signature {
			return cr.Variants[i].Signature < cr.Variants[j].Signature
		}
		return cr.Variants[i].ID < cr.Variants[j].ID
	})
	sort.Slice(cr.TableEdges, func(i, j int) bool {
		return cr.TableEdges[i].Trigger < cr.TableEdges[j].Trigger
	})
	return cr, nil
}
