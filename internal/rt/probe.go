package rt

import (
	"strconv"
	"strings"
)

// BindingInfo is the externally-observed view of a binding's metadata.
type BindingInfo struct {
	Exists  bool
	IsConst bool
}

// BindingProber reads opaque binding metadata. The second return is false
// when the runtime refuses to answer — unknown constness, never "not const".
// Internal layout is version-sensitive, so probers are version-keyed and the
// conditional logic never leaks past this interface.
type BindingProber interface {
	LookupBinding(ns *Namespace, name string) (BindingInfo, bool)
}

// NewBindingProber picks the prober for a runtime version. Versions whose
// binding layout we do not know get a prober that never answers, which keeps
// classification fail-closed instead of wrong.
func NewBindingProber(version string) BindingProber {
	parts := strings.SplitN(version, ".", 2)
	major, err := strconv.Atoi(parts[0])
	if err != nil || major != 1 {
		return unknownLayoutProber{}
	}
	return fieldProber{}
}

// fieldProber reads the 1.x binding record directly.
type fieldProber struct{}

func (fieldProber) LookupBinding(ns *Namespace, name string) (BindingInfo, bool) {
	b, ok := ns.Binding(name)
	if !ok {
		return BindingInfo{}, true
	}
	if b.Opaque {
		return BindingInfo{}, false
	}
	return BindingInfo{Exists: true, IsConst: b.Const}, true
}

// unknownLayoutProber refuses every lookup.
type unknownLayoutProber struct{}

func (unknownLayoutProber) LookupBinding(*Namespace, string) (BindingInfo, bool) {
	return BindingInfo{}, false
}
