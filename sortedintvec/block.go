package sortedintvec

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// widthType constants per spec.md §4.E's 16-entry table. This
// reimplementation frames each block with byte-aligned metadata (type
// tag, flags, a zigzag-varint low-water) and reserves genuine sub-byte
// bit-packing for the compressive small/overflow/residual arrays —
// spec.md §9 permits this ("a scalar reimplementation passing the same
// round-trip tests is conforming"); the literal 2-bit-tag+tiered-extra
// low-water header is not reproduced bit-for-bit (documented in
// DESIGN.md).
const (
	wtConstant   = 0
	wtDenseNoOvf = 11
	wtDense15    = 15
)

// genericSmallWidth maps a generic small-width type (1..10, 12, 13, 14)
// to its real bit width.
func genericSmallWidth(wt int) int {
	switch {
	case wt >= 1 && wt <= 10:
		return wt
	case wt == 12:
		return 12
	case wt == 13:
		return 16
	case wt == 14:
		return 20
	}
	return 0
}

func realWidthToType(w int) int {
	switch {
	case w >= 1 && w <= 10:
		return w
	case w <= 12:
		return 12
	case w <= 16:
		return 13
	case w <= 20:
		return 14
	}
	return -1
}

func zigzagEncode(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }
func zigzagDecode(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }

func putVarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}

func getVarint(buf []byte, pos int) (uint64, int) {
	v, n := binary.Uvarint(buf[pos:])
	return v, pos + n
}

// encodedBlock is a block payload plus its chosen width type, for
// SortedUintVec.Builder bookkeeping (mem size, overall-sorted flags).
type encodedBlock struct {
	widthType int
	payload   []byte
	sample    uint64 // vals[0], stored in the block index, not the payload
}

// encodeBlock picks the cheapest conforming encoding for vals (length =
// blockUnits, right-padded with the last value by the caller) and
// produces its on-disk payload. sortedHint indicates whether vals is
// known non-decreasing; when false, the block always uses the Lagrange
// path regardless of size.
func encodeBlock(vals []uint64, sortedHint bool) encodedBlock {
	n := len(vals)
	sample := vals[0]
	if n <= 1 {
		buf := []byte{wtConstant, 0}
		buf = putVarint(buf, zigzagEncode(0))
		return encodedBlock{widthType: wtConstant, payload: buf, sample: sample}
	}

	monotone := true
	diffs := make([]int64, n-1)
	for i := 0; i < n-1; i++ {
		d := int64(vals[i+1]) - int64(vals[i])
		diffs[i] = d
		if d < 0 {
			monotone = false
		}
	}

	if !sortedHint || !monotone {
		return encodeLagrangeBlock(vals, sample)
	}

	lowWater := diffs[0]
	for _, d := range diffs {
		if d < lowWater {
			lowWater = d
		}
	}
	d := make([]uint64, n-1)
	maxD := uint64(0)
	for i, dv := range diffs {
		rel := uint64(dv - lowWater)
		d[i] = rel
		if rel > maxD {
			maxD = rel
		}
	}

	if maxD == 0 {
		buf := []byte{wtConstant, 0}
		buf = putVarint(buf, zigzagEncode(lowWater))
		return encodedBlock{widthType: wtConstant, payload: buf, sample: sample}
	}
	if maxD <= 1 {
		buf := []byte{wtDenseNoOvf, 0}
		buf = putVarint(buf, zigzagEncode(lowWater))
		bw := bitWriter{buf: buf, bitPos: len(buf) * 8}
		for _, v := range d {
			bw.WriteBits(v, 1)
		}
		return encodedBlock{widthType: wtDenseNoOvf, payload: bw.Bytes(), sample: sample}
	}
	if maxD <= 3 {
		buf := []byte{wtDense15, 0}
		buf = putVarint(buf, zigzagEncode(lowWater))
		bw := bitWriter{buf: buf, bitPos: len(buf) * 8}
		for _, v := range d {
			bw.WriteBits(v, 2)
		}
		return encodedBlock{widthType: wtDense15, payload: bw.Bytes(), sample: sample}
	}

	bestWidth, bestCost := -1, int(^uint(0)>>1)
	for _, w := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 12, 16, 20} {
		sentinel := uint64(1)<<uint(w) - 1
		overflowCount, largeWidth := 0, w+1
		for _, v := range d {
			if v >= sentinel {
				overflowCount++
				if lw := bits.Len64(v); lw > largeWidth {
					largeWidth = lw
				}
			}
		}
		if largeWidth > 64 {
			continue
		}
		cost := w*(n-1) + overflowCount*largeWidth
		if cost < bestCost {
			bestCost = cost
			bestWidth = w
		}
	}
	smallWidth := bestWidth
	sentinel := uint64(1)<<uint(smallWidth) - 1
	largeWidth := smallWidth + 1
	var overflow []uint64
	for _, v := range d {
		if v >= sentinel {
			overflow = append(overflow, v)
			if lw := bits.Len64(v); lw > largeWidth {
				largeWidth = lw
			}
		}
	}

	widthType := realWidthToType(smallWidth)
	buf := []byte{byte(widthType), 0}
	buf = putVarint(buf, zigzagEncode(lowWater))
	extraBits := largeWidth - smallWidth
	buf = append(buf, byte(extraBits))
	bw := bitWriter{buf: buf, bitPos: len(buf) * 8}
	for _, v := range d {
		if v >= sentinel {
			bw.WriteBits(sentinel, smallWidth)
		} else {
			bw.WriteBits(v, smallWidth)
		}
	}
	for _, v := range overflow {
		bw.WriteBits(v, largeWidth)
	}
	return encodedBlock{widthType: widthType, payload: bw.Bytes(), sample: sample}
}

// decodeBlock reconstructs n values given the width type, payload, and
// the block's sample (external, from the block index).
func decodeBlock(widthType int, payload []byte, sample uint64, n int) []uint64 {
	out := make([]uint64, n)
	out[0] = sample
	if n <= 1 {
		return out
	}

	variant := payload[1]
	if widthType == wtDense15 && variant == 1 {
		return decodeLagrangeBlock(payload, sample, n)
	}

	lw, pos := getVarint(payload, 2)
	lowWater := zigzagDecode(lw)

	switch widthType {
	case wtConstant:
		for i := 0; i < n-1; i++ {
			out[i+1] = uint64(int64(out[i]) + lowWater)
		}
		return out
	case wtDenseNoOvf:
		r := bitReader{buf: payload, bitPos: pos * 8}
		for i := 0; i < n-1; i++ {
			d := r.ReadBits(1)
			out[i+1] = uint64(int64(out[i]) + lowWater + int64(d))
		}
		return out
	case wtDense15:
		r := bitReader{buf: payload, bitPos: pos * 8}
		for i := 0; i < n-1; i++ {
			d := r.ReadBits(2)
			out[i+1] = uint64(int64(out[i]) + lowWater + int64(d))
		}
		return out
	}

	smallWidth := genericSmallWidth(widthType)
	extraBits := int(payload[pos])
	pos++
	largeWidth := smallWidth + extraBits
	sentinel := uint64(1)<<uint(smallWidth) - 1

	r := bitReader{buf: payload, bitPos: pos * 8}
	d := make([]uint64, n-1)
	var overflowIdx []int
	for i := 0; i < n-1; i++ {
		v := r.ReadBits(smallWidth)
		d[i] = v
		if v == sentinel {
			overflowIdx = append(overflowIdx, i)
		}
	}
	for _, idx := range overflowIdx {
		d[idx] = r.ReadBits(largeWidth)
	}
	for i := 0; i < n-1; i++ {
		out[i+1] = uint64(int64(out[i]) + lowWater + int64(d[i]))
	}
	return out
}

// lagrange3 evaluates the 3-point Lagrange interpolant through
// (0,fa), (mid,fm), (last,fb) at x.
func lagrange3(x, mid, last int, fa, fm, fb float64) float64 {
	fx := float64(x)
	fmid := float64(mid)
	flast := float64(last)
	term1 := fa * (fx - fmid) * (fx - flast) / ((0 - fmid) * (0 - flast))
	term2 := fm * (fx - 0) * (fx - flast) / ((fmid - 0) * (fmid - flast))
	term3 := fb * (fx - 0) * (fx - fmid) / ((flast - 0) * (flast - fmid))
	return term1 + term2 + term3
}

func encodeLagrangeBlock(vals []uint64, sample uint64) encodedBlock {
	n := len(vals)
	mid := n / 2
	last := n - 1
	fa, fm, fb := float64(vals[0]), float64(vals[mid]), float64(vals[last])

	residual := make([]int64, n)
	maxAbs := uint64(0)
	for i := 0; i < n; i++ {
		est := lagrange3(i, mid, last, fa, fm, fb)
		r := int64(vals[i]) - int64(math.Round(est))
		residual[i] = r
		z := zigzagEncode(r)
		if z > maxAbs {
			maxAbs = z
		}
	}
	residualWidth := bits.Len64(maxAbs)
	if residualWidth == 0 {
		residualWidth = 1
	}

	buf := []byte{wtDense15, 1}
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], vals[0])
	buf = append(buf, tmp[:]...)
	binary.LittleEndian.PutUint64(tmp[:], vals[mid])
	buf = append(buf, tmp[:]...)
	binary.LittleEndian.PutUint64(tmp[:], vals[last])
	buf = append(buf, tmp[:]...)
	buf = append(buf, byte(residualWidth))

	bw := bitWriter{buf: buf, bitPos: len(buf) * 8}
	for _, r := range residual {
		bw.WriteBits(zigzagEncode(r), residualWidth)
	}
	return encodedBlock{widthType: wtDense15, payload: bw.Bytes(), sample: sample}
}

func decodeLagrangeBlock(payload []byte, sample uint64, n int) []uint64 {
	mid := n / 2
	last := n - 1
	fa := float64(binary.LittleEndian.Uint64(payload[2:10]))
	fm := float64(binary.LittleEndian.Uint64(payload[10:18]))
	fb := float64(binary.LittleEndian.Uint64(payload[18:26]))
	residualWidth := int(payload[26])

	r := bitReader{buf: payload, bitPos: 27 * 8}
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		est := lagrange3(i, mid, last, fa, fm, fb)
		z := r.ReadBits(residualWidth)
		residual := zigzagDecode(z)
		out[i] = uint64(int64(math.Round(est)) + residual)
	}
	out[0] = sample
	return out
}
