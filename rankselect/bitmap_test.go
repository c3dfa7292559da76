package rankselect

import (
	"math/rand"
	"testing"
)

func refBits(n int, seed int64) []bool {
	rng := rand.New(rand.NewSource(seed))
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = rng.Intn(3) == 0
	}
	return bits
}

func buildFrom(bits []bool) *Bitmap {
	b := New(len(bits))
	for i, v := range bits {
		b.Set(i, v)
	}
	b.BuildCache(true, true)
	return b
}

func TestRank1MatchesBruteForce(t *testing.T) {
	bits := refBits(5000, 1)
	b := buildFrom(bits)

	ref := make([]int, len(bits)+1)
	for i, v := range bits {
		ref[i+1] = ref[i]
		if v {
			ref[i+1]++
		}
	}

	for i := 0; i <= len(bits); i += 7 {
		if got := b.Rank1(i); got != ref[i] {
			t.Fatalf("Rank1(%d) = %d, want %d", i, got, ref[i])
		}
	}
}

func TestSelect1RankRoundTrip(t *testing.T) {
	bits := refBits(8000, 2)
	b := buildFrom(bits)

	for k := 0; k < b.totalOne; k += 13 {
		pos, err := b.Select1(k)
		if err != nil {
			t.Fatalf("Select1(%d): %v", k, err)
		}
		if !bits[pos] {
			t.Fatalf("Select1(%d) = %d is not a one-bit", k, pos)
		}
		if got := b.Rank1(pos); got != k {
			t.Fatalf("Rank1(Select1(%d))=Rank1(%d) = %d, want %d", k, pos, got, k)
		}
	}
}

func TestSelect0RankRoundTrip(t *testing.T) {
	bits := refBits(8000, 3)
	b := buildFrom(bits)
	totalZero := len(bits) - b.totalOne

	for k := 0; k < totalZero; k += 17 {
		pos, err := b.Select0(k)
		if err != nil {
			t.Fatalf("Select0(%d): %v", k, err)
		}
		if bits[pos] {
			t.Fatalf("Select0(%d) = %d is not a zero-bit", k, pos)
		}
		if got := b.Rank0(pos); got != k {
			t.Fatalf("Rank0(Select0(%d))=Rank0(%d) = %d, want %d", k, pos, got, k)
		}
	}
}

func TestSelectOutOfRange(t *testing.T) {
	b := buildFrom(refBits(100, 4))
	if _, err := b.Select1(b.totalOne); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if _, err := b.Select1(-1); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestDataLoadRoundTrip(t *testing.T) {
	bits := refBits(2000, 5)
	b := buildFrom(bits)
	data := b.Data()

	loaded := Load(data, len(bits))
	for i := range bits {
		if loaded.Is1(i) != bits[i] {
			t.Fatalf("bit %d mismatch after load", i)
		}
	}
	if loaded.MaxRank1() != b.MaxRank1() {
		t.Fatalf("MaxRank1 mismatch: got %d want %d", loaded.MaxRank1(), b.MaxRank1())
	}
}
