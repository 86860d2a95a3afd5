package leafset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/openconfig/gnmi/errdiff"
)

func TestBuildSortsAndIndexes(t *testing.T) {
	m, err := Build([]ID{30, 10, 20})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := m.IDs(), []ID{10, 20, 30}; !cmp.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	for i, id := range []ID{10, 20, 30} {
		idx, ok := m.Index(id)
		if !ok || idx != i {
			t.Errorf("Index(%d) = (%d, %v), want (%d, true)", id, idx, ok, i)
		}
	}
	if _, ok := m.Index(99); ok {
		t.Errorf("Index(99) unexpectedly found")
	}
}

func TestBuildDuplicateError(t *testing.T) {
	_, err := Build([]ID{1, 2, 2, 3})
	if diff := errdiff.Check(err, "duplicate"); diff != "" {
		t.Error(diff)
	}
}

func TestAll(t *testing.T) {
	m, err := Build([]ID{5, 6, 7})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := m.All(), []int{0, 1, 2}; !cmp.Equal(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}
