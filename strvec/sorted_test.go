package strvec

import "testing"

func TestSortedStrVecAppendOnly(t *testing.T) {
	v := NewSortedStrVec()
	for _, s := range []string{"aa", "bb", "bb", "cc"} {
		if err := v.PushBack([]byte(s)); err != nil {
			t.Fatal(err)
		}
	}
	if v.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", v.Len())
	}
	if err := v.PushBack([]byte("aa")); err == nil {
		t.Fatal("expected out-of-order rejection")
	}
}

func TestSortedStrVecBounds(t *testing.T) {
	v := NewSortedStrVec()
	for _, s := range []string{"aa", "bb", "bb", "dd"} {
		_ = v.PushBack([]byte(s))
	}
	if i := v.LowerBound([]byte("bb")); i != 1 {
		t.Fatalf("LowerBound(bb) = %d, want 1", i)
	}
	if i := v.UpperBound([]byte("bb")); i != 3 {
		t.Fatalf("UpperBound(bb) = %d, want 3", i)
	}
	if i := v.Find([]byte("cc")); i != v.Len() {
		t.Fatalf("Find(cc) should be absent, got %d", i)
	}
}

func TestSortedStrVecPackOffsets(t *testing.T) {
	v := NewSortedStrVec()
	_ = v.PushBack([]byte("x"))
	_ = v.PushBack([]byte("yy"))
	offs := v.Offsets()
	if offs.Get(0) != 0 || offs.Get(1) != 1 || offs.Get(2) != 3 {
		t.Fatalf("unexpected packed offsets: %d %d %d", offs.Get(0), offs.Get(1), offs.Get(2))
	}
}
