package bitvec

import (
	"math/rand"
	"testing"
)

func TestGetSetRoundTrip(t *testing.T) {
	for _, width := range []int{1, 3, 7, 8, 9, 17, 31, 32, 47, 63, 64} {
		width := width
		t.Run("", func(t *testing.T) {
			const n = 500
			v, err := ResizeWithUintbits(n, width)
			if err != nil {
				t.Fatalf("ResizeWithUintbits: %v", err)
			}
			mask := maskFor(width)
			want := make([]uint64, n)
			rng := rand.New(rand.NewSource(int64(width) + 1))
			for i := 0; i < n; i++ {
				val := rng.Uint64() & mask
				want[i] = val
				v.SetWire(i, val)
			}
			for i := 0; i < n; i++ {
				if got := v.Get(i); got != want[i] {
					t.Fatalf("width=%d i=%d: got %d want %d", width, i, got, want[i])
				}
			}
		})
	}
}

func TestPushBackGrows(t *testing.T) {
	v, err := New(5)
	if err != nil {
		t.Fatal(err)
	}
	const n = 1000
	for i := 0; i < n; i++ {
		if err := v.PushBack(uint64(i % 32)); err != nil {
			t.Fatalf("PushBack(%d): %v", i, err)
		}
	}
	if v.Len() != n {
		t.Fatalf("Len() = %d, want %d", v.Len(), n)
	}
	for i := 0; i < n; i++ {
		want := uint64(i % 32)
		if got := v.Get(i); got != want {
			t.Fatalf("i=%d: got %d want %d", i, got, want)
		}
	}
}

func TestInvalidWidth(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for width 0")
	}
	if _, err := New(65); err == nil {
		t.Fatal("expected error for width 65")
	}
}

func TestComputeUintbits(t *testing.T) {
	cases := map[uint64]int{
		0:     1,
		1:     1,
		2:     2,
		3:     2,
		4:     3,
		255:   8,
		256:   9,
		1<<63 - 1: 63,
	}
	for val, want := range cases {
		if got := ComputeUintbits(val); got != want {
			t.Fatalf("ComputeUintbits(%d) = %d, want %d", val, got, want)
		}
	}
}
