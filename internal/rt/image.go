package rt

// Image is one observed runtime state: the namespaces, user types, and
// callables visible at walk time, plus the version the probes key on.
// Everything in it is discovered, never owned — two images of the same
// process taken at different times may legitimately differ.
type Image struct {
	Version string

	namespaces []*Namespace
	byName     map[string]*Namespace
	types      map[string]*Type
	callables  []*Callable
}

func NewImage(version string) *Image {
	img := &Image{
		Version: version,
		byName:  make(map[string]*Namespace),
		types:   make(map[string]*Type),
	}
	for _, t := range []*Type{
		AnyType, NumberType, IntType, FloatType, BoolType,
		CharType, StringType, ListType, TupleType, MapType,
	} {
		img.types[t.Name] = t
	}
	return img
}

func (img *Image) AddNamespace(ns *Namespace) {
	img.namespaces = append(img.namespaces, ns)
	img.byName[ns.Name] = ns
}

// Namespaces returns namespaces in declaration order.
func (img *Image) Namespaces() []*Namespace {
	out := make([]*Namespace, len(img.namespaces))
	copy(out, img.namespaces)
	return out
}

func (img *Image) Namespace(name string) (*Namespace, bool) {
	ns, ok := img.byName[name]
	return ns, ok
}

// DefineType registers a user type under the given supertype name.
func (img *Image) DefineType(name, super string) (*Type, bool) {
	parent, ok := img.types[super]
	if !ok {
		return nil, false
	}
	t := NewType(name, parent)
	img.types[name] = t
	return t, true
}

func (img *Image) Type(name string) (*Type, bool) {
	t, ok := img.types[name]
	return t, ok
}

func (img *Image) AddCallable(c *Callable) {
	img.callables = append(img.callables, c)
}

func (img *Image) Callables() []*Callable {
	out := make([]*Callable, len(img.callables))
	copy(out, img.callables)
	return out
}

// Prober returns the binding prober matching this image's runtime version.
func (img *Image) Prober() BindingProber {
	return NewBindingProber(img.Version)
}

// VariantLayout returns the specialization storage layout for this image.
func (img *Image) VariantLayout() Layout {
	return DetectLayout(img.Version)
}
