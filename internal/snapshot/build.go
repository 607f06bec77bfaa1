package snapshot

import (
	"fmt"

	"github.com/funvibe/funscope/internal/rt"
)

// Build rebuilds an rt.Image from a parsed snapshot. Construction is
// two-phase: declare every namespace, type, and callable first, then resolve
// references, so cycles and re-exports load in any declaration order.
func Build(snap *Snapshot) (*rt.Image, error) {
	img := rt.NewImage(snap.Runtime.Version)
	layout := img.VariantLayout()

	for _, td := range snap.Types {
		super := td.Super
		if super == "" {
			super = "Any"
		}
		if _, ok := img.DefineType(td.Name, super); !ok {
			return nil, fmt.Errorf("type %s: unknown supertype %s", td.Name, super)
		}
	}

	for _, nd := range snap.Namespaces {
		ns := rt.NewNamespace(nd.Name)
		ns.Foundational = nd.Foundational
		img.AddNamespace(ns)
	}

	callables := make(map[string]*rt.Callable)
	variants := make(map[string]*rt.CompiledVariant)
	// Handles by declaration position. Resolving through the store instead
	// would follow its iteration order, which the list layout reverses and
	// out-of-order slots permute.
	declared := make(map[variantPos]*rt.CompiledVariant)
	for _, cd := range snap.Callables {
		var module *rt.Namespace
		if cd.Module != "" {
			ns, ok := img.Namespace(cd.Module)
			if !ok {
				return nil, fmt.Errorf("callable %s: unknown module %s", cd.Name, cd.Module)
			}
			module = ns
		}
		c := rt.NewCallable(cd.Name, module)
		c.Dispatch().Opaque = cd.TableOpaque
		img.AddCallable(c)
		if _, dup := callables[cd.Name]; dup {
			return nil, fmt.Errorf("duplicate callable name %s", cd.Name)
		}
		callables[cd.Name] = c

		for mi, md := range cd.Methods {
			sig, err := typeList(img, md.Args)
			if err != nil {
				return nil, fmt.Errorf("callable %s method %d: %w", cd.Name, mi, err)
			}
			m := c.AddMethod(sig, rt.NewVariantStore(layout))
			m.Opaque = md.Opaque

			next := 0
			for vi, vd := range md.Variants {
				args, err := typeList(img, vd.Args)
				if err != nil {
					return nil, fmt.Errorf("callable %s method %d variant %d: %w", cd.Name, mi, vi, err)
				}
				v := rt.NewCompiledVariant(m, args)
				v.Sealed = vd.Sealed
				slot := next
				if vd.Slot != nil {
					slot = *vd.Slot
				}
				next = slot + 1
				m.Store().Put(slot, v)
				declared[variantPos{cd.Name, mi, vi}] = v
				if vd.Ref != "" {
					if _, dup := variants[vd.Ref]; dup {
						return nil, fmt.Errorf("duplicate variant ref %s", vd.Ref)
					}
					variants[vd.Ref] = v
				}
			}
		}
	}

	// Second phase: backedges, dispatch-table edges, and bindings.
	for _, cd := range snap.Callables {
		c := callables[cd.Name]
		for mi, md := range cd.Methods {
			for vi, vd := range md.Variants {
				if len(vd.Backedges) == 0 {
					continue
				}
				v := declared[variantPos{cd.Name, mi, vi}]
				for _, dd := range vd.Backedges {
					dep, err := resolveDependent(callables, variants, dd.Variant, dd.Table)
					if err != nil {
						return nil, fmt.Errorf("callable %s: %w", cd.Name, err)
					}
					v.AddBackedge(dep)
				}
			}
		}
		for _, ed := range cd.TableEdges {
			trigger, ok := img.Type(ed.Trigger)
			if !ok {
				return nil, fmt.Errorf("callable %s: unknown trigger type %s", cd.Name, ed.Trigger)
			}
			dep, err := resolveDependent(callables, variants, ed.Variant, ed.Table)
			if err != nil {
				return nil, fmt.Errorf("callable %s: %w", cd.Name, err)
			}
			c.Dispatch().AddEdge(trigger, dep)
		}
	}

	var imports []pendingImport
	for _, nd := range snap.Namespaces {
		ns, _ := img.Namespace(nd.Name)
		for _, bd := range nd.Bindings {
			if bd.From != "" {
				imports = append(imports, pendingImport{ns: ns, decl: bd})
				continue
			}
			v, err := resolveBindingValue(img, callables, bd)
			if err != nil {
				return nil, fmt.Errorf("namespace %s binding %s: %w", nd.Name, bd.Name, err)
			}
			var b *rt.Binding
			if bd.Const {
				b = ns.DefineConst(bd.Name, v)
			} else {
				b = ns.Define(bd.Name, v)
			}
			b.Opaque = bd.Opaque
		}
	}

	// Imports may chain through other imports; retry until a pass makes no
	// progress, then anything left is unresolvable.
	for len(imports) > 0 {
		var stuck []pendingImport
		for _, pi := range imports {
			origin, ok := img.Namespace(pi.decl.From)
			if !ok {
				return nil, fmt.Errorf("namespace %s: import from unknown namespace %s", pi.ns.Name, pi.decl.From)
			}
			alias := pi.decl.As
			if alias == "" {
				alias = pi.decl.Name
			}
			if b, ok := pi.ns.ImportFrom(origin, pi.decl.Name, alias); ok {
				b.Opaque = pi.decl.Opaque
			} else {
				stuck = append(stuck, pi)
			}
		}
		if len(stuck) == len(imports) {
			pi := stuck[0]
			return nil, fmt.Errorf("namespace %s: cannot resolve import %s from %s", pi.ns.Name, pi.decl.Name, pi.decl.From)
		}
		imports = stuck
	}

	return img, nil
}

type pendingImport struct {
	ns   *rt.Namespace
	decl BindingDecl
}

// variantPos locates a variant declaration inside the document.
type variantPos struct {
	callable string
	method   int
	variant  int
}

func typeList(img *rt.Image, names []string) ([]*rt.Type, error) {
	out := make([]*rt.Type, 0, len(names))
	for _, name := range names {
		t, ok := img.Type(name)
		if !ok {
			return nil, fmt.Errorf("unknown type %s", name)
		}
		out = append(out, t)
	}
	return out, nil
}

func resolveDependent(callables map[string]*rt.Callable, variants map[string]*rt.CompiledVariant, variantRef, tableRef string) (rt.Dependent, error) {
	switch {
	case variantRef != "" && tableRef != "":
		return nil, fmt.Errorf("dependent names both variant %s and table %s", variantRef, tableRef)
	case variantRef != "":
		v, ok := variants[variantRef]
		if !ok {
			return nil, fmt.Errorf("unknown variant ref %s", variantRef)
		}
		return v, nil
	case tableRef != "":
		c, ok := callables[tableRef]
		if !ok {
			return nil, fmt.Errorf("unknown callable %s for table dependent", tableRef)
		}
		return c.Dispatch(), nil
	}
	return nil, fmt.Errorf("dependent names neither a variant nor a table")
}

func resolveBindingValue(img *rt.Image, callables map[string]*rt.Callable, bd BindingDecl) (rt.Value, error) {
	set := 0
	if bd.Value != nil {
		set++
	}
	if bd.Namespace != "" {
		set++
	}
	if bd.Type != "" {
		set++
	}
	if bd.Callable != "" {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of value, namespace, type, callable, or from must be set")
	}
	switch {
	case bd.Namespace != "":
		ns, ok := img.Namespace(bd.Namespace)
		if !ok {
			return nil, fmt.Errorf("unknown namespace %s", bd.Namespace)
		}
		return ns, nil
	case bd.Type != "":
		t, ok := img.Type(bd.Type)
		if !ok {
			return nil, fmt.Errorf("unknown type %s", bd.Type)
		}
		return t, nil
	case bd.Callable != "":
		c, ok := callables[bd.Callable]
		if !ok {
			return nil, fmt.Errorf("unknown callable %s", bd.Callable)
		}
		return c, nil
	}
	return buildValue(*bd.Value)
}

func buildValue(vd ValueDecl) (rt.Value, error) {
	switch vd.Kind {
	case "int":
		return &rt.Int{Value: vd.Int}, nil
	case "float":
		return &rt.Float{Value: vd.Float}, nil
	case "bool":
		return &rt.Bool{Value: vd.Bool}, nil
	case "string":
		return &rt.String{Value: vd.String}, nil
	case "list":
		els, err := buildValues(vd.Elements)
		if err != nil {
			return nil, err
		}
		return &rt.List{Elements: els}, nil
	case "tuple":
		els, err := buildValues(vd.Elements)
		if err != nil {
			return nil, err
		}
		return &rt.Tuple{Elements: els}, nil
	case "map":
		pairs := make(map[string]rt.Value, len(vd.Pairs))
		for k, pv := range vd.Pairs {
			v, err := buildValue(pv)
			if err != nil {
				return nil, err
			}
			pairs[k] = v
		}
		return &rt.Map{Pairs: pairs}, nil
	}
	return nil, fmt.Errorf("unknown value kind %q", vd.Kind)
}

func buildValues(decls []ValueDecl) ([]rt.Value, error) {
	out := make([]rt.Value, 0, len(decls))
	for _, vd := range decls {
		v, err := buildValue(vd)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
