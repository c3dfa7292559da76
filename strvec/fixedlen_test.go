package strvec

import "testing"

func TestFixedLenPushBackRejectsWrongLength(t *testing.T) {
	v, err := NewFixedLenStrVec(4)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.PushBack([]byte("abc")); err == nil {
		t.Fatal("expected error for short record")
	}
	if err := v.PushBack([]byte("abcd")); err != nil {
		t.Fatal(err)
	}
	if v.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", v.Len())
	}
}

func TestFixedLenSortAndBounds(t *testing.T) {
	v, _ := NewFixedLenStrVec(2)
	for _, s := range []string{"dd", "bb", "cc", "aa"} {
		if err := v.PushBack([]byte(s)); err != nil {
			t.Fatal(err)
		}
	}
	v.Sort()
	want := []string{"aa", "bb", "cc", "dd"}
	for i, w := range want {
		if string(v.NthData(i)) != w {
			t.Fatalf("NthData(%d) = %q, want %q", i, v.NthData(i), w)
		}
	}
	if i := v.LowerBound([]byte("bb")); i != 1 {
		t.Fatalf("LowerBound(bb) = %d, want 1", i)
	}
	if i, err := v.UpperBoundFixed([]byte("bb")); err != nil || i != 2 {
		t.Fatalf("UpperBoundFixed(bb) = (%d, %v), want (2, nil)", i, err)
	}
	if _, err := v.UpperBoundFixed([]byte("b")); err == nil {
		t.Fatal("expected error for short key")
	}
}

func TestFixedLenLowerBoundZeroPads(t *testing.T) {
	v, _ := NewFixedLenStrVec(3)
	for _, s := range []string{"aaa", "bbb", "ccc"} {
		_ = v.PushBack([]byte(s))
	}
	if i := v.LowerBound([]byte("b")); i != 1 {
		t.Fatalf("LowerBound(b) zero-padded = %d, want 1", i)
	}
}
