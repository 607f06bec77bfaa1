package rt

import "github.com/funvibe/funscope/internal/config"

// Type is a node in the runtime's nominal type lattice. The top type is its
// own supertype; that fixpoint is what terminates ancestor walks.
type Type struct {
	Name string

	super *Type
	subs  []*Type
}

// NewType creates a type under the given supertype and registers it as a
// direct subtype there. A nil super creates a root (self-supertype).
func NewType(name string, super *Type) *Type {
	t := &Type{Name: name}
	if super == nil {
		t.super = t
		return t
	}
	t.super = super
	super.subs = append(super.subs, t)
	return t
}

func (t *Type) Super() *Type { return t.super }

// IsRoot reports whether t is its own supertype.
func (t *Type) IsRoot() bool { return t.super == t }

func (t *Type) Kind() Kind         { return TypeKind }
func (t *Type) RuntimeType() *Type { return TypeType }
func (t *Type) Inspect() string    { return t.Name }
func (t *Type) Mutable() bool      { return false }

// SubtypeLister supplies the "list immediate subtypes" capability. The
// registry-backed implementation below reads the lattice itself; hosts with
// external type tables provide their own.
type SubtypeLister interface {
	ImmediateSubtypes(t *Type) []*Type
}

// RegisteredSubtypes lists the subtypes recorded at construction time.
type RegisteredSubtypes struct{}

func (RegisteredSubtypes) ImmediateSubtypes(t *Type) []*Type {
	out := make([]*Type, len(t.subs))
	copy(out, t.subs)
	return out
}

// Built-in type lattice. User-defined types hang off these via NewType.
var (
	AnyType    = NewType(config.AnyTypeName, nil)
	NumberType = NewType(config.NumberTypeName, AnyType)
	IntType    = NewType(config.IntTypeName, NumberType)
	FloatType  = NewType(config.FloatTypeName, NumberType)
	BoolType   = NewType(config.BoolTypeName, AnyType)
	CharType   = NewType(config.CharTypeName, AnyType)
	StringType = NewType(config.StringTypeName, AnyType)
	ListType   = NewType(config.ListTypeName, AnyType)
	TupleType  = NewType(config.TupleTypeName, AnyType)
	MapType    = NewType(config.MapTypeName, AnyType)

	TypeType      = NewType("Type", AnyType)
	FunctionType  = NewType("Function", AnyType)
	NamespaceType = NewType("Namespace", AnyType)
)
