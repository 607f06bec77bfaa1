package inspect

import (
	"reflect"
	"testing"

	"github.com/funvibe/funscope/internal/rt"
)

func prober() rt.BindingProber { return rt.NewBindingProber("1.4.0") }

func TestIsGlobalExcludesSentinelNames(t *testing.T) {
	ns := rt.NewNamespace("M")
	ns.Define("#compiled_cache", &rt.Int{Value: 1})
	ns.Define("g", &rt.Int{Value: 2})

	if IsGlobal(prober(), ns, "#compiled_cache", Filter{}) {
		t.Errorf("internal names must never classify as globals")
	}
	if !IsGlobal(prober(), ns, "g", Filter{}) {
		t.Errorf("plain non-internal binding should classify as a global")
	}
	for _, name := range GlobalNames(prober(), ns, Filter{}) {
		if name[0] == '#' {
			t.Errorf("sentinel name %q leaked into enumeration", name)
		}
	}
}

func TestIsGlobalExcludesNonPlainKinds(t *testing.T) {
	ns := rt.NewNamespace("M")
	ns.Define("f", rt.NewCallable("f", ns))
	ns.Define("T", rt.NewType("T", rt.AnyType))
	ns.Define("Sub", rt.NewNamespace("Sub"))
	ns.Define("g", &rt.Int{Value: 2})

	got := GlobalNames(prober(), ns, Filter{})
	want := []string{"g"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GlobalNames = %v, want %v", got, want)
	}
}

func TestIsGlobalFailsClosedOnMissingName(t *testing.T) {
	ns := rt.NewNamespace("M")
	if IsGlobal(prober(), ns, "nope", Filter{}) {
		t.Errorf("unbound name must not classify")
	}
}

func TestConstnessFilterUnknownExcluded(t *testing.T) {
	ns := rt.NewNamespace("M")
	b := ns.DefineConst("c", &rt.Int{Value: 1})
	b.Opaque = true // probe cannot read this binding's metadata

	if IsGlobal(prober(), ns, "c", Filter{Constness: ConstOnly}) {
		t.Errorf("unknown constness must exclude under const filter, not pass")
	}
	if IsGlobal(prober(), ns, "c", Filter{Constness: NonConstOnly}) {
		t.Errorf("unknown constness must exclude under nonconst filter too")
	}
	// Without a directed constness filter the probe is not consulted.
	if !IsGlobal(prober(), ns, "c", Filter{}) {
		t.Errorf("opaque metadata should not block unfiltered classification")
	}
}

func TestUnknownRuntimeVersionFailsClosed(t *testing.T) {
	ns := rt.NewNamespace("M")
	ns.DefineConst("c", &rt.Int{Value: 1})

	p := rt.NewBindingProber("9.0.0")
	if IsGlobal(p, ns, "c", Filter{Constness: ConstOnly}) {
		t.Errorf("an unanswerable probe must exclude the name")
	}
	if !IsGlobal(p, ns, "c", Filter{}) {
		t.Errorf("undirected filters do not need the probe")
	}
}

func TestConstnessAndMutabilityOrthogonal(t *testing.T) {
	ns := rt.NewNamespace("M")
	// Const binding to a mutable container.
	ns.DefineConst("cvec", &rt.List{})
	// Non-const binding to an immutable value.
	ns.Define("g", &rt.Int{Value: 2})

	got := GlobalNames(prober(), ns, Filter{Constness: ConstOnly, Mutability: MutableOnly})
	want := []string{"cvec"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("const+mutable = %v, want %v", got, want)
	}

	got = GlobalNames(prober(), ns, Filter{Constness: NonConstOnly, Mutability: ImmutableOnly})
	want = []string{"g"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("nonconst+immutable = %v, want %v", got, want)
	}

	if got := GlobalNames(prober(), ns, Filter{Constness: ConstOnly, Mutability: ImmutableOnly}); got != nil {
		t.Fatalf("const+immutable should be empty here, got %v", got)
	}
}

func TestImportedBindingsExcludedByDefault(t *testing.T) {
	origin := rt.NewNamespace("Origin")
	origin.DefineConst("shared", &rt.Int{Value: 7})
	ns := rt.NewNamespace("M")
	if _, ok := ns.ImportFrom(origin, "shared", "shared"); !ok {
		t.Fatalf("import failed")
	}

	if IsGlobal(prober(), ns, "shared", Filter{}) {
		t.Errorf("imported binding must not classify without IncludeImported")
	}
	if !IsGlobal(prober(), ns, "shared", Filter{IncludeImported: true}) {
		t.Errorf("IncludeImported should surface the re-export")
	}
}

func TestFunctionNamesScenario(t *testing.T) {
	// Namespace MF: callables foo and bar, nested Inner, non-const g = 2.
	mf := rt.NewNamespace("MF")
	foo := rt.NewCallable("foo", mf)
	bar := rt.NewCallable("bar", mf)
	inner := rt.NewNamespace("Inner")
	mf.Define("foo", foo)
	mf.Define("bar", bar)
	mf.Define("Inner", inner)
	mf.Define("g", &rt.Int{Value: 2})

	got := FunctionNames(mf)
	want := []string{"bar", "foo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FunctionNames = %v, want %v", got, want)
	}

	objects := AllObjects(mf)
	if len(objects) != 4 {
		t.Fatalf("AllObjects should see all four bindings, got %d", len(objects))
	}
	seen := map[rt.Value]bool{}
	for _, v := range objects {
		seen[v] = true
	}
	for _, v := range []rt.Value{foo, bar} {
		if !seen[v] {
			t.Errorf("AllObjects missing %s", v.Inspect())
		}
	}
	if !seen[rt.Value(inner)] {
		t.Errorf("AllObjects missing nested namespace")
	}
}

func TestGlobalValuesResolvesEachNameOnce(t *testing.T) {
	ns := rt.NewNamespace("M")
	g := &rt.Int{Value: 2}
	ns.Define("g", g)

	vals := GlobalValues(prober(), ns, Filter{})
	if len(vals) != 1 || vals["g"] != rt.Value(g) {
		t.Fatalf("GlobalValues = %v", vals)
	}
}
