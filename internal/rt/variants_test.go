package rt

import "testing"

func TestDetectLayout(t *testing.T) {
	tests := []struct {
		version string
		want    Layout
	}{
		{"1.2.9", LayoutList},
		{"1.3.0", LayoutDense},
		{"1.4.0", LayoutDense},
		{"2.0", LayoutDense},
		{"0.9", LayoutList},
		{"garbage", LayoutDense},
		{"", LayoutDense},
	}
	for _, tt := range tests {
		if got := DetectLayout(tt.version); got != tt.want {
			t.Errorf("DetectLayout(%q) = %v, want %v", tt.version, got, tt.want)
		}
	}
}

func TestDenseStoreLeavesGaps(t *testing.T) {
	s := NewVariantStore(LayoutDense)
	v := &CompiledVariant{}
	s.Put(3, v)

	var seen []*CompiledVariant
	s.Each(func(v *CompiledVariant) bool {
		seen = append(seen, v)
		return true
	})
	if len(seen) != 1 || seen[0] != v {
		t.Fatalf("dense walk over gaps saw %d variants", len(seen))
	}
}

func TestListStoreSentinelTerminates(t *testing.T) {
	s := NewVariantStore(LayoutList)
	a := &CompiledVariant{}
	b := &CompiledVariant{}
	s.Put(0, a)
	s.Put(0, b)

	count := 0
	s.Each(func(*CompiledVariant) bool {
		count++
		return true
	})
	if count != 2 {
		t.Fatalf("list walk saw %d variants, want 2", count)
	}
}

func TestEachStopsEarly(t *testing.T) {
	s := NewVariantStore(LayoutDense)
	s.Put(0, &CompiledVariant{})
	s.Put(1, &CompiledVariant{})

	count := 0
	s.Each(func(*CompiledVariant) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("early stop walked %d variants, want 1", count)
	}
}
