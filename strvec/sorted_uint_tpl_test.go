package strvec

import "testing"

func TestSortedStrVecUintTplRoundTrip(t *testing.T) {
	v := NewSortedStrVecUintTpl[uint32](0)
	for _, s := range []string{"aa", "bb", "cc"} {
		if err := v.PushBack([]byte(s)); err != nil {
			t.Fatal(err)
		}
	}
	if v.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", v.Len())
	}
	if string(v.NthData(1)) != "bb" {
		t.Fatalf("NthData(1) = %q, want bb", v.NthData(1))
	}
	if i := v.LowerBound([]byte("bb")); i != 1 {
		t.Fatalf("LowerBound(bb) = %d, want 1", i)
	}
}

func TestSortedStrVecUintTplRejectsOutOfOrder(t *testing.T) {
	v := NewSortedStrVecUintTpl[uint64](0)
	_ = v.PushBack([]byte("zz"))
	if err := v.PushBack([]byte("aa")); err == nil {
		t.Fatal("expected out-of-order rejection")
	}
}

func TestSortedStrVecUintTplDelimiter(t *testing.T) {
	v := NewSortedStrVecUintTpl[uint32](1)
	_ = v.PushBack([]byte("ab"))
	_ = v.PushBack([]byte("cd"))
	if string(v.NthData(0)) != "ab" || string(v.NthData(1)) != "cd" {
		t.Fatalf("delimiter handling broke record boundaries: %q %q", v.NthData(0), v.NthData(1))
	}
	if len(v.Pool()) != 6 {
		t.Fatalf("pool length = %d, want 6 (2 records * (2+1 delim))", len(v.Pool()))
	}
}
