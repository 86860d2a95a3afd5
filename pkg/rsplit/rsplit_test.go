package rsplit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromIncludeAll(t *testing.T) {
	s := FromIncludeAll([]int{3, 1}, []int{1, 2, 3, 4})
	if diff := cmp.Diff([]int{1, 3}, s.In); diff != "" {
		t.Errorf("In mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 4}, s.Out); diff != "" {
		t.Errorf("Out mismatch (-want +got):\n%s", diff)
	}
	if s.Trivial() {
		t.Errorf("Trivial() = true, want false")
	}
}

func TestFromIncludeAllTrivialRoot(t *testing.T) {
	s := FromIncludeAll([]int{1, 2, 3}, []int{1, 2, 3})
	if !s.Trivial() {
		t.Errorf("Trivial() = false, want true")
	}
}

func TestExcludesAny(t *testing.T) {
	s := FromIncludeExclude([]int{1, 2}, []int{5, 6})
	if s.ExcludesAny([]int{1, 2, 3}) {
		t.Errorf("ExcludesAny = true, want false (disjoint)")
	}
	if !s.ExcludesAny([]int{3, 5}) {
		t.Errorf("ExcludesAny = false, want true (shares 5)")
	}
}

func TestIncludesFirst(t *testing.T) {
	s := FromIncludeExclude([]int{7, 2, 9}, nil)
	if got, want := s.IncludesFirst(), 2; got != want {
		t.Errorf("IncludesFirst() = %d, want %d", got, want)
	}
}
