package config

// InternalNameSentinel marks compiler-internal binding names. Bindings whose
// name starts with this character never appear in global enumerations.
const InternalNameSentinel = '#'

// SnapshotFileExtensions are all recognized snapshot file extensions
var SnapshotFileExtensions = []string{".yaml", ".yml"}

// FoundationalNamespaces are the runtime-provided base namespaces. They are
// self-referential (each binds itself and its parent) and are excluded from
// traversal by default.
var FoundationalNamespaces = []string{"prelude", "host"}

// Built-in type names
const (
	AnyTypeName    = "Any"
	NumberTypeName = "Number"
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	BoolTypeName   = "Bool"
	CharTypeName   = "Char"
	StringTypeName = "String"
	ListTypeName   = "List"
	TupleTypeName  = "Tuple"
	MapTypeName    = "Map"
)

// Variant storage layout changed in runtime 1.3: older builds keep compiled
// variants in a linked list with a sentinel terminator, 1.3 and later use a
// dense array with possible gaps.
const (
	DenseStorageMajor = 1
	DenseStorageMinor = 3
)
