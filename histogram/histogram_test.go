package histogram

import "testing"

func TestIncAndFinish(t *testing.T) {
	h := New(16)
	vals := []uint64{1, 1, 2, 100, 100, 100, 3}
	for _, v := range vals {
		h.Inc(v)
	}
	h.Finish()

	if h.CntSum != uint64(len(vals)) {
		t.Fatalf("CntSum = %d, want %d", h.CntSum, len(vals))
	}
	if h.MaxCntKey != 100 || h.CntOfMaxCntKey != 3 {
		t.Fatalf("max-count key wrong: key=%d cnt=%d", h.MaxCntKey, h.CntOfMaxCntKey)
	}
	if h.MaxKeyLen != 100 {
		t.Fatalf("MaxKeyLen = %d, want 100", h.MaxKeyLen)
	}
}

func TestForEachCoversSmallAndLarge(t *testing.T) {
	h := New(4)
	h.Inc(1)
	h.Inc(1000)
	seen := map[uint64]uint64{}
	h.ForEach(func(k, c uint64) { seen[k] = c })
	if seen[1] != 1 || seen[1000] != 1 {
		t.Fatalf("ForEach missed entries: %v", seen)
	}
}
