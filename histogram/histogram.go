// Package histogram provides a two-tier value->frequency counter used by
// the crit-bit trie builder to pick base/extra bit widths that minimize
// total encoded size (spec.md §4.C), grounded on
// original_source/src/terark/histogram.hpp's split between a dense small
// array and an overflow map.
package histogram

// Uint64Histogram counts occurrences of uint64 keys, keeping small keys
// (< maxSmall) in a dense slice and everything else in a map, mirroring
// the source's Histogram<uint64_t>.
type Uint64Histogram struct {
	smallCnt []uint64
	largeCnt map[uint64]uint64
	maxSmall uint64

	// Populated by Finish.
	CntSum     uint64
	TotalKeyLen uint64
	MinKeyLen  uint64
	MaxKeyLen  uint64
	MinCntKey  uint64
	MaxCntKey  uint64
	CntOfMinCntKey uint64
	CntOfMaxCntKey uint64

	finished bool
}

// New creates a histogram whose dense range covers [0, maxSmall).
func New(maxSmall uint64) *Uint64Histogram {
	return &Uint64Histogram{
		smallCnt: make([]uint64, maxSmall),
		largeCnt: make(map[uint64]uint64),
		maxSmall: maxSmall,
	}
}

// Inc increments the count for key by one, matching the source's
// `hist_delta[delta]++` call sites.
func (h *Uint64Histogram) Inc(key uint64) {
	if key < h.maxSmall {
		h.smallCnt[key]++
	} else {
		h.largeCnt[key]++
	}
	h.finished = false
}

// ForEach visits every (key, count) pair with a nonzero count, dense keys
// first in ascending order, then the overflow map in arbitrary order —
// same iteration contract as the source's for_each.
func (h *Uint64Histogram) ForEach(f func(key, count uint64)) {
	for key, cnt := range h.smallCnt {
		if cnt != 0 {
			f(uint64(key), cnt)
		}
	}
	for key, cnt := range h.largeCnt {
		f(key, cnt)
	}
}

// Finish computes the summary statistics used by the crit-bit trie
// builder's base_bit_num search.
func (h *Uint64Histogram) Finish() {
	h.CntSum = 0
	h.TotalKeyLen = 0
	h.MinKeyLen = 0
	h.MaxKeyLen = 0
	h.MinCntKey = 0
	h.MaxCntKey = 0
	h.CntOfMinCntKey = 0
	h.CntOfMaxCntKey = 0

	first := true
	h.ForEach(func(key, cnt uint64) {
		h.CntSum += cnt
		h.TotalKeyLen += key * cnt
		if first {
			h.MinKeyLen, h.MaxKeyLen = key, key
			h.MinCntKey, h.MaxCntKey = key, key
			h.CntOfMinCntKey, h.CntOfMaxCntKey = cnt, cnt
			first = false
			return
		}
		if key < h.MinKeyLen {
			h.MinKeyLen = key
		}
		if key > h.MaxKeyLen {
			h.MaxKeyLen = key
		}
		if cnt < h.CntOfMinCntKey {
			h.CntOfMinCntKey = cnt
			h.MinCntKey = key
		}
		if cnt > h.CntOfMaxCntKey {
			h.CntOfMaxCntKey = cnt
			h.MaxCntKey = key
		}
	})
	h.finished = true
}
