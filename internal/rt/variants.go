package rt

import (
	"strconv"
	"strings"

	"github.com/funvibe/funscope/internal/config"
)

// VariantSource is a restartable walk over a method's specialization storage.
// Each call to Each starts from the beginning and observes current contents;
// unpopulated slots are never yielded. The walk stops early when the callback
// returns false.
type VariantSource interface {
	Each(func(*CompiledVariant) bool)
}

// VariantStore is a VariantSource that also accepts new variants. Put takes
// the slot index the runtime assigned; layouts that have no slots ignore it.
type VariantStore interface {
	VariantSource
	Put(slot int, v *CompiledVariant)
}

// Layout identifies the shape of the runtime's specialization storage.
type Layout int

const (
	LayoutList  Layout = iota // linked list with sentinel terminator (pre-1.3)
	LayoutDense               // dense array with possible gaps (1.3+)
)

// DetectLayout probes a runtime version string and picks the storage layout.
// Unparsable versions are treated as current. All version-conditional logic
// stays here; the walkers never branch on version.
func DetectLayout(version string) Layout {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return LayoutDense
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return LayoutDense
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return LayoutDense
	}
	if major > config.DenseStorageMajor {
		return LayoutDense
	}
	if major == config.DenseStorageMajor && minor >= config.DenseStorageMinor {
		return LayoutDense
	}
	return LayoutList
}

// NewVariantStore constructs storage for the given layout.
func NewVariantStore(l Layout) VariantStore {
	if l == LayoutList {
		s := &ListVariantStore{}
		s.head = &variantNode{} // sentinel
		return s
	}
	return &DenseVariantStore{}
}

// DenseVariantStore is the array layout. Slots the runtime never populated
// stay nil and are skipped on the walk.
type DenseVariantStore struct {
	slots []*CompiledVariant
}

func (s *DenseVariantStore) Put(slot int, v *CompiledVariant) {
	for len(s.slots) <= slot {
		s.slots = append(s.slots, nil)
	}
	s.slots[slot] = v
}

func (s *DenseVariantStore) Each(yield func(*CompiledVariant) bool) {
	for _, v := range s.slots {
		if v == nil {
			continue
		}
		if !yield(v) {
			return
		}
	}
}

// ListVariantStore is the linked-list layout. The list ends at a sentinel
// node holding no variant.
type ListVariantStore struct {
	head *variantNode
}

type variantNode struct {
	v    *CompiledVariant
	next *variantNode
}

func (s *ListVariantStore) Put(_ int, v *CompiledVariant) {
	s.head = &variantNode{v: v, next: s.head}
}

func (s *ListVariantStore) Each(yield func(*CompiledVariant) bool) {
	for n := s.head; n != nil && n.v != nil; n = n.next {
		if !yield(n.v) {
			return
		}
	}
}
