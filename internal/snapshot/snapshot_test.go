package snapshot

import (
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/funscope/internal/inspect"
	"github.com/funvibe/funscope/internal/rt"
)

// Fixtures live in one txtar archive so related documents stay together.
const fixtures = `
-- basic.yaml --
runtime:
  version: "1.4.0"
types:
  - name: Vec
namespaces:
  - name: MV
    bindings:
      - name: Inner
        namespace: Inner
      - name: gv
        value: { kind: int, int: 2 }
      - name: cv
        const: true
        value: { kind: int, int: 2 }
      - name: vec
        value: { kind: list }
  - name: Inner
    bindings:
      - name: i_x
        value: { kind: int, int: 3 }
      - name: i_c
        const: true
        value: { kind: int, int: 2 }
      - name: i_vec
        const: true
        value:
          kind: list
          elements:
            - { kind: int, int: 2 }
-- callables.yaml --
runtime:
  version: "1.4.0"
namespaces:
  - name: MF
    bindings:
      - name: foo
        callable: foo
      - name: bar
        callable: bar
callables:
  - name: foo
    module: MF
    methods:
      - args: [Int]
        variants:
          - ref: foo_int
            args: [Int]
    tableEdges:
      - trigger: Int
        variant: foo_int
  - name: bar
    module: MF
    methods:
      - args: [Int]
        variants:
          - ref: bar_int
            args: [Int]
            backedges:
              - variant: foo_int
-- legacy.yaml --
runtime:
  version: "1.2.0"
callables:
  - name: old
    methods:
      - args: [Any]
        variants:
          - args: [Int]
          - args: [Float]
namespaces: []
-- legacyedges.yaml --
runtime:
  version: "1.2.0"
callables:
  - name: old
    methods:
      - args: [Any]
        variants:
          - ref: old_int
            args: [Int]
          - args: [Float]
            backedges:
              - variant: old_int
namespaces: []
-- slots.yaml --
runtime:
  version: "1.4.0"
callables:
  - name: gappy
    methods:
      - args: [Any]
        variants:
          - args: [Float]
            slot: 5
            backedges:
              - variant: gappy_int
          - ref: gappy_int
            args: [Int]
            slot: 0
namespaces: []
-- reexport.yaml --
runtime:
  version: "1.4.0"
namespaces:
  - name: Root
    bindings:
      - name: Alias
        namespace: Alias
  - name: Alias
    bindings:
      - name: shared
        from: Outer
  - name: Outer
    bindings:
      - name: shared
        const: true
        value: { kind: int, int: 42 }
-- badimport.yaml --
runtime:
  version: "1.4.0"
namespaces:
  - name: A
    bindings:
      - name: ghost
        from: B
  - name: B
`

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	arch := txtar.Parse([]byte(fixtures))
	for _, f := range arch.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("fixture %s not found", name)
	return nil
}

func buildFixture(t *testing.T, name string) *rt.Image {
	t.Helper()
	snap, err := Parse(fixture(t, name))
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	img, err := Build(snap)
	if err != nil {
		t.Fatalf("build %s: %v", name, err)
	}
	return img
}

func TestBuildBasicNamespaces(t *testing.T) {
	img := buildFixture(t, "basic.yaml")

	mv, ok := img.Namespace("MV")
	if !ok {
		t.Fatalf("MV missing")
	}
	inner, ok := img.Namespace("Inner")
	if !ok {
		t.Fatalf("Inner missing")
	}

	names := inspect.RecursiveGlobalNames(img.Prober(), mv, inspect.Filter{})
	if len(names[mv]) != 3 || len(names[inner]) != 3 {
		t.Errorf("recursive names = %v", names)
	}

	f := inspect.Filter{Constness: inspect.ConstOnly, Mutability: inspect.MutableOnly}
	sparse := inspect.RecursiveGlobalNames(img.Prober(), mv, f)
	if _, ok := sparse[mv]; ok {
		t.Errorf("MV should be omitted under const+mutable")
	}
	if got := sparse[inner]; len(got) != 1 || got[0] != "i_vec" {
		t.Errorf("Inner const+mutable = %v, want [i_vec]", got)
	}

	if _, ok := img.Type("Vec"); !ok {
		t.Errorf("declared type Vec missing")
	}
}

func TestBuildCallablesAndBackedges(t *testing.T) {
	img := buildFixture(t, "callables.yaml")

	var foo, bar *rt.Callable
	for _, c := range img.Callables() {
		switch c.Name {
		case "foo":
			foo = c
		case "bar":
			bar = c
		}
	}
	if foo == nil || bar == nil {
		t.Fatalf("callables missing")
	}

	fooSpecs := inspect.Specializations(foo)
	if len(fooSpecs) != 1 {
		t.Fatalf("foo specializations = %d, want 1", len(fooSpecs))
	}

	edges, err := inspect.Backedges(bar)
	if err != nil {
		t.Fatalf("backedges(bar): %v", err)
	}
	found := false
	for k, deps := range edges {
		if k.Variant != nil && len(deps) == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("bar's variant should depend on foo's variant: %v", edges)
	}

	edges, err = inspect.Backedges(foo)
	if err != nil {
		t.Fatalf("backedges(foo): %v", err)
	}
	if deps := edges[inspect.InvalidationKey{Trigger: rt.IntType}]; len(deps) != 1 {
		t.Errorf("foo table edge under Int = %v", deps)
	}

	mf, _ := img.Namespace("MF")
	if got := inspect.FunctionNames(mf); len(got) != 2 {
		t.Errorf("FunctionNames(MF) = %v", got)
	}
}

func TestBuildLegacyListLayout(t *testing.T) {
	img := buildFixture(t, "legacy.yaml")
	if img.VariantLayout() != rt.LayoutList {
		t.Fatalf("1.2 runtime should use list storage")
	}
	c := img.Callables()[0]
	specs := inspect.Specializations(c)
	if len(specs) != 2 {
		t.Errorf("legacy storage walked %d variants, want 2", len(specs))
	}
}

// edgeCounts maps each variant's first argument type name to its dependent
// count, so assertions hold regardless of storage iteration order.
func edgeCounts(t *testing.T, c *rt.Callable) map[string]int {
	t.Helper()
	edges, err := inspect.Backedges(c)
	if err != nil {
		t.Fatalf("backedges(%s): %v", c.Name, err)
	}
	out := make(map[string]int)
	for k, deps := range edges {
		if k.Variant != nil {
			out[k.Variant.ArgTypes[0].Name] = len(deps)
		}
	}
	return out
}

func TestBuildListLayoutBackedgeOnSecondVariant(t *testing.T) {
	img := buildFixture(t, "legacyedges.yaml")
	if img.VariantLayout() != rt.LayoutList {
		t.Fatalf("1.2 runtime should use list storage")
	}

	// The list store walks newest-first, so declaration order and iteration
	// order disagree; the edge must still land on the declared variant.
	counts := edgeCounts(t, img.Callables()[0])
	if counts["Float"] != 1 {
		t.Errorf("Float variant dependents = %d, want 1", counts["Float"])
	}
	if counts["Int"] != 0 {
		t.Errorf("Int variant dependents = %d, want 0", counts["Int"])
	}
}

func TestBuildOutOfOrderSlotsBackedge(t *testing.T) {
	img := buildFixture(t, "slots.yaml")

	counts := edgeCounts(t, img.Callables()[0])
	if counts["Float"] != 1 {
		t.Errorf("Float variant dependents = %d, want 1", counts["Float"])
	}
	if counts["Int"] != 0 {
		t.Errorf("Int variant dependents = %d, want 0", counts["Int"])
	}
}

func TestBuildReexportAttribution(t *testing.T) {
	img := buildFixture(t, "reexport.yaml")
	root, _ := img.Namespace("Root")
	outer, _ := img.Namespace("Outer")

	got := inspect.RecursiveGlobals(img.Prober(), root, inspect.Filter{IncludeImported: true})
	if _, ok := got[inspect.QualifiedName{Namespace: outer, Name: "shared"}]; !ok {
		t.Errorf("re-export should be attributed to Outer, got %v", got)
	}
}

func TestBuildUnresolvableImportFails(t *testing.T) {
	snap, err := Parse(fixture(t, "badimport.yaml"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Build(snap); err == nil {
		t.Fatalf("import of an unbound name must fail the build")
	}
}

func TestParseRejectsMissingVersion(t *testing.T) {
	if _, err := Parse([]byte("namespaces: []\n")); err == nil {
		t.Fatalf("missing runtime.version must be rejected")
	}
}
