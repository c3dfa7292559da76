// Package rankselect implements the cached rank/select bitmap described in
// spec.md §4.B: O(1) rank1/rank0 via a running popcount plus per-word
// intra-line counters, and select1/select0 via a coarse sampling table
// falling back to a word-level scan.
//
// Raw bit storage is delegated to github.com/bits-and-blooms/bitset, the
// same family of primitive the teacher pulls in (transitively, via
// bits-and-blooms/bloom/v3) for its SST bloom filter — here it is the
// bottom layer the rank/select cache is built on top of, rather than a
// black-box probabilistic filter.
package rankselect

import (
	"fmt"
	"math/bits"

	"github.com/bits-and-blooms/bitset"

	"github.com/Priyanshu23/SuccinctGo/errs"
)

// lineWords is the number of 64-bit words per cached "line": 256 bits.
const lineWords = 4

// selectSampleRate sets how often a select-acceleration sample is recorded:
// spec.md says "for every 256 one-bits (resp. zero-bits)".
const selectSampleRate = 256

type line struct {
	base  uint32    // running rank1 at the start of this line
	rlev  [4]uint16 // cumulative popcount of words 0..k-1 within the line
}

// Bitmap is a fixed-size bit array with O(1) rank1/rank0 and accelerated
// select1/select0, matching spec.md's rank_select_il.
type Bitmap struct {
	bits     *bitset.BitSet
	n        int
	lines    []line
	sel1     []uint32 // line index containing the k*256-th one-bit
	sel0     []uint32
	totalOne int
}

// New creates a zeroed bitmap of n bits.
func New(n int) *Bitmap {
	return &Bitmap{bits: bitset.New(uint(n)), n: n}
}

// Size returns the number of bits.
func (b *Bitmap) Size() int { return b.n }

// Resize grows or shrinks the bitmap to n bits (matching the builder's
// resize-then-fill usage pattern); existing bits below n are preserved.
func (b *Bitmap) Resize(n int) {
	nb := bitset.New(uint(n))
	for i, e := b.bits.NextSet(0); e && i < uint(n); i, e = b.bits.NextSet(i + 1) {
		nb.Set(i)
	}
	b.bits = nb
	b.n = n
	b.lines = nil
}

// Set writes bit i to 1 or 0.
func (b *Bitmap) Set(i int, one bool) {
	if one {
		b.bits.Set(uint(i))
	} else {
		b.bits.Clear(uint(i))
	}
}

// Set1 / Set0 mirror the source's bitmap_.set1(i)/set0(i) call sites.
func (b *Bitmap) Set1(i int) { b.bits.Set(uint(i)) }
func (b *Bitmap) Set0(i int) { b.bits.Clear(uint(i)) }

// Is1 / Is0 test a single bit without requiring the rank cache.
func (b *Bitmap) Is1(i int) bool { return b.bits.Test(uint(i)) }
func (b *Bitmap) Is0(i int) bool { return !b.bits.Test(uint(i)) }

// words returns the raw []uint64 backing the bitset, padded so that full
// 256-bit lines can always be read.
func (b *Bitmap) words() []uint64 {
	return b.bits.Bytes()
}

// BuildCache computes the interleaved rank cache and (optionally) the
// select-acceleration samples. The two bool args mirror the source's
// build_cache(speedup_select0, speedup_select1): each select sample table
// is built only when its flag is set, and Select0/Select1 search every
// line when their table is absent.
func (b *Bitmap) BuildCache(wantSelect0, wantSelect1 bool) {
	words := b.words()
	numLines := (b.n + 255) / 256
	if numLines == 0 {
		numLines = 1
	}
	b.lines = make([]line, numLines)

	var running uint32
	var sel1 []uint32
	var sel0 []uint32
	nextSel1 := selectSampleRate
	nextSel0 := selectSampleRate
	oneCount, zeroCount := 0, 0

	for li := 0; li < numLines; li++ {
		b.lines[li].base = running
		var within uint16
		for w := 0; w < lineWords; w++ {
			b.lines[li].rlev[w] = within
			wordIdx := li*lineWords + w
			var word uint64
			if wordIdx < len(words) {
				word = words[wordIdx]
			}
			pc := bits.OnesCount64(word)
			within += uint16(pc)
		}
		lineOnes := int(within)
		lineBits := 256
		if li == numLines-1 {
			lineBits = b.n - li*256
			if lineBits < 0 {
				lineBits = 0
			}
		}
		lineZeros := lineBits - lineOnes
		if lineZeros < 0 {
			lineZeros = 0
		}
		if wantSelect1 {
			for oneCount+lineOnes >= nextSel1 {
				sel1 = append(sel1, uint32(li))
				nextSel1 += selectSampleRate
			}
		}
		if wantSelect0 {
			for zeroCount+lineZeros >= nextSel0 {
				sel0 = append(sel0, uint32(li))
				nextSel0 += selectSampleRate
			}
		}
		oneCount += lineOnes
		zeroCount += lineZeros
		running += uint32(lineOnes)
	}
	b.totalOne = oneCount
	b.sel1 = sel1
	b.sel0 = sel0
}

// MaxRank1 returns rank1(size()), the total number of one-bits.
func (b *Bitmap) MaxRank1() int {
	if b.lines == nil {
		b.BuildCache(false, false)
	}
	return b.totalOne
}

// Rank1 returns the number of one-bits in [0, i).
func (b *Bitmap) Rank1(i int) int {
	if b.lines == nil {
		b.BuildCache(false, false)
	}
	if i >= b.n {
		return b.totalOne
	}
	li := i >> 8
	if li >= len(b.lines) {
		li = len(b.lines) - 1
	}
	ln := b.lines[li]
	rank := int(ln.base)
	posInLine := i - li*256
	wordIdx := posInLine >> 6
	if wordIdx > 0 {
		rank += int(ln.rlev[wordIdx])
	}
	bitInWord := uint(posInLine & 63)
	words := b.words()
	gi := li*lineWords + wordIdx
	var word uint64
	if gi < len(words) {
		word = words[gi]
	}
	if bitInWord > 0 {
		rank += bits.OnesCount64(word & ((uint64(1) << bitInWord) - 1))
	}
	return rank
}

// Rank0 returns the number of zero-bits in [0, i).
func (b *Bitmap) Rank0(i int) int { return i - b.Rank1(i) }

// Select1 returns the position of the (k+1)-th one-bit.
func (b *Bitmap) Select1(k int) (int, error) {
	if b.lines == nil {
		b.BuildCache(true, true)
	}
	if k < 0 || k >= b.totalOne {
		return 0, fmt.Errorf("%w: select1(%d) with %d ones", errs.ErrOutOfRange, k, b.totalOne)
	}
	lo, hi := b.sampledSearchBounds(k, b.sel1)
	li := lo
	for ; li < hi; li++ {
		if int(b.lines[li].base) > k {
			break
		}
	}
	li--
	if li < 0 {
		li = 0
	}
	return b.selectWithinLine(li, k, true), nil
}

// Select0 returns the position of the (k+1)-th zero-bit.
func (b *Bitmap) Select0(k int) (int, error) {
	if b.lines == nil {
		b.BuildCache(true, true)
	}
	totalZero := b.n - b.totalOne
	if k < 0 || k >= totalZero {
		return 0, fmt.Errorf("%w: select0(%d) with %d zeros", errs.ErrOutOfRange, k, totalZero)
	}
	lo, hi := b.sampledSearchBounds(k, b.sel0)
	li := lo
	for ; li < hi; li++ {
		zeroBase := li*256 - int(b.lines[li].base)
		if zeroBase > k {
			break
		}
	}
	li--
	if li < 0 {
		li = 0
	}
	return b.selectWithinLine(li, k, false), nil
}

// sampledSearchBounds narrows the binary search range using the
// select-acceleration sample table before falling back to a full scan.
func (b *Bitmap) sampledSearchBounds(k int, samples []uint32) (lo, hi int) {
	hi = len(b.lines)
	if samples == nil {
		return 0, hi
	}
	idx := k / selectSampleRate
	if idx < len(samples) {
		hi = int(samples[idx]) + 1
	}
	lo = 0
	if idx > 0 && idx-1 < len(samples) {
		lo = int(samples[idx-1])
	}
	if hi > len(b.lines) {
		hi = len(b.lines)
	}
	return lo, hi
}

// selectWithinLine finds the exact bit position of the k-th (0-indexed)
// set/clear bit known to live within line li, scanning its words.
func (b *Bitmap) selectWithinLine(li int, k int, one bool) int {
	ln := b.lines[li]
	base := int(ln.base)
	words := b.words()
	target := k - base
	if !one {
		target = k - (li*256 - base)
	}
	for w := 0; w < lineWords; w++ {
		wordIdx := li*lineWords + w
		var word uint64
		if wordIdx < len(words) {
			word = words[wordIdx]
		}
		if !one {
			word = ^word
		}
		pc := bits.OnesCount64(word)
		if target < pc {
			return li*256 + w*64 + selectInWord(word, target)
		}
		target -= pc
	}
	return li*256 + 255
}

// selectInWord returns the bit position (0..63) of the target-th
// (0-indexed) set bit within word.
func selectInWord(word uint64, target int) int {
	for bit := 0; bit < 64; bit++ {
		if word&(uint64(1)<<uint(bit)) != 0 {
			if target == 0 {
				return bit
			}
			target--
		}
	}
	return 63
}

// Data serializes the raw bit words (the rank/select cache is a derived
// structure and is rebuilt by BuildCache after Load, matching how
// spec.md treats CritBitTrie's layer_id/layer_rank caches).
func (b *Bitmap) Data() []byte {
	words := b.words()
	out := make([]byte, len(words)*8)
	for i, w := range words {
		for k := 0; k < 8; k++ {
			out[i*8+k] = byte(w >> (8 * uint(k)))
		}
	}
	return out
}

// MemSize returns len(Data()).
func (b *Bitmap) MemSize() int {
	return ((b.n + 63) / 64) * 8
}

// Load reconstructs a Bitmap of n bits from raw word bytes previously
// produced by Data, rebuilding the rank cache.
func Load(data []byte, n int) *Bitmap {
	nb := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		byteIdx := i / 8
		if byteIdx >= len(data) {
			break
		}
		if data[byteIdx]&(1<<uint(i%8)) != 0 {
			nb.Set(uint(i))
		}
	}
	bm := &Bitmap{bits: nb, n: n}
	bm.BuildCache(true, true)
	return bm
}

// RiskReleaseOwnership drops the reference to backing storage, used right
// before an owning mmap region is unmapped.
func (b *Bitmap) RiskReleaseOwnership() {
	b.bits = bitset.New(0)
	b.lines = nil
	b.sel1 = nil
	b.sel0 = nil
	b.n = 0
}
