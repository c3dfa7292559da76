package sortedintvec

import (
	"fmt"
	"sort"

	"github.com/Priyanshu23/SuccinctGo/errs"
)

// SortedUintVec is a loaded, immutable block-compressed u64 sequence.
type SortedUintVec struct {
	header     ObjectHeader
	blockUnits int
	blocks     []encodedBlock
	samples    []uint64 // len(blocks)+1; samples[i] is block i's first value, samples[len(blocks)] is the final value
}

// Len returns the total number of logical units.
func (s *SortedUintVec) Len() int { return int(s.header.Units) }

// NumBlocks returns the block count.
func (s *SortedUintVec) NumBlocks() int { return len(s.blocks) }

// Get returns the i-th value.
func (s *SortedUintVec) Get(i int) uint64 {
	blockIdx := i / s.blockUnits
	within := i % s.blockUnits
	return s.decodeBlockFull(blockIdx)[within]
}

// Get2 fills out[0]=V[i], out[1]=V[i+1], using the next block's sample
// when i+1 crosses a block boundary.
func (s *SortedUintVec) Get2(i int, out *[2]uint64) {
	blockIdx := i / s.blockUnits
	within := i % s.blockUnits
	vals := s.decodeBlockFull(blockIdx)
	out[0] = vals[within]
	if within+1 < len(vals) {
		out[1] = vals[within+1]
	} else {
		out[1] = s.samples[blockIdx+1]
	}
}

// GetBlock materializes all values of the given block into out, which
// must have length >= blockUnits.
func (s *SortedUintVec) GetBlock(blockIdx int, out []uint64) {
	copy(out, s.decodeBlockFull(blockIdx))
}

func (s *SortedUintVec) decodeBlockFull(blockIdx int) []uint64 {
	b := s.blocks[blockIdx]
	n := s.blockUnits
	if blockIdx == len(s.blocks)-1 {
		remaining := s.Len() - blockIdx*s.blockUnits
		if remaining < n {
			n = remaining
		}
		if n <= 0 {
			n = s.blockUnits
		}
	}
	return decodeBlock(b.widthType, b.payload, s.samples[blockIdx], s.blockUnits)[:n]
}

// LowerBound returns the smallest index i in [lo,hi) with Get(i) >= key,
// or hi if none. Falls back to a block-by-block linear scan when samples
// are not known globally sorted.
func (s *SortedUintVec) LowerBound(lo, hi int, key uint64) int {
	if !s.header.IsSamplesFullSorted {
		return s.linearLowerBound(lo, hi, key)
	}
	loBlock, hiBlock := lo/s.blockUnits, (hi-1)/s.blockUnits
	blockIdx := sort.Search(hiBlock-loBlock+1, func(k int) bool {
		return s.samples[loBlock+k+1] >= key
	}) + loBlock
	if blockIdx > hiBlock {
		blockIdx = hiBlock
	}
	vals := s.decodeBlockFull(blockIdx)
	base := blockIdx * s.blockUnits
	within := sort.Search(len(vals), func(j int) bool { return vals[j] >= key })
	idx := base + within
	if idx < lo {
		idx = lo
	}
	if idx > hi {
		idx = hi
	}
	return idx
}

// UpperBound returns the smallest index i in [lo,hi) with Get(i) > key.
func (s *SortedUintVec) UpperBound(lo, hi int, key uint64) int {
	if !s.header.IsSamplesFullSorted {
		return s.linearUpperBound(lo, hi, key)
	}
	idx := s.LowerBound(lo, hi, key+1)
	return idx
}

// EqualRange returns [LowerBound(key), UpperBound(key)).
func (s *SortedUintVec) EqualRange(lo, hi int, key uint64) (int, int) {
	return s.LowerBound(lo, hi, key), s.UpperBound(lo, hi, key)
}

func (s *SortedUintVec) linearLowerBound(lo, hi int, key uint64) int {
	for i := lo; i < hi; i++ {
		if s.Get(i) >= key {
			return i
		}
	}
	return hi
}

func (s *SortedUintVec) linearUpperBound(lo, hi int, key uint64) int {
	for i := lo; i < hi; i++ {
		if s.Get(i) > key {
			return i
		}
	}
	return hi
}

// Save builds the full on-disk layout (ObjectHeader + block payloads +
// block index) and returns it.
func (s *SortedUintVec) Save() []byte {
	var out []byte
	out = append(out, make([]byte, objectHeaderSize)...)
	offsets := make([]uint64, len(s.blocks)+1)
	for i, b := range s.blocks {
		for len(out)%8 != 0 {
			out = append(out, 0)
		}
		offsets[i] = uint64(len(out) - objectHeaderSize)
		out = append(out, b.payload...)
	}
	for len(out)%8 != 0 {
		out = append(out, 0)
	}
	offsets[len(s.blocks)] = uint64(len(out) - objectHeaderSize)
	indexOffset := uint64(len(out))

	maxOffset := offsets[len(offsets)-1]
	maxSample := uint64(0)
	for _, v := range s.samples {
		if v > maxSample {
			maxSample = v
		}
	}
	offsetWidth := bitWidthFor(maxOffset)
	sampleWidth := bitWidthFor(maxSample)

	bw := bitWriter{}
	for i := range offsets {
		bw.WriteBits(offsets[i], offsetWidth)
		bw.WriteBits(s.samples[i], sampleWidth)
	}
	out = append(out, bw.Bytes()...)

	h := ObjectHeader{
		Units:               uint64(s.Len()),
		Log2BlockUnits:      log2Of(s.blockUnits),
		OffsetWidth:         uint8(offsetWidth),
		SampleWidth:         uint8(sampleWidth),
		IndexOffset:         indexOffset,
		IsOverallFullSorted: s.header.IsOverallFullSorted,
		IsSamplesFullSorted: s.header.IsSamplesFullSorted,
	}
	enc := h.encode()
	copy(out[:objectHeaderSize], enc[:])
	return out
}

func bitWidthFor(maxVal uint64) int {
	w := 0
	for v := maxVal; v > 0; v >>= 1 {
		w++
	}
	if w == 0 {
		w = 1
	}
	return w
}

func log2Of(v int) uint8 {
	switch v {
	case 64:
		return 6
	case 128:
		return 7
	}
	w := uint8(0)
	for (1 << w) < v {
		w++
	}
	return w
}

// Load parses a previously Save()d buffer. Width types are re-derived
// from each block's own first byte, so no separate block-header table is
// required beyond the block index.
func Load(data []byte) (*SortedUintVec, error) {
	h, err := decodeObjectHeader(data)
	if err != nil {
		return nil, err
	}
	blockUnits := 1 << h.Log2BlockUnits
	numBlocks := int((h.Units + uint64(blockUnits) - 1) / uint64(blockUnits))
	if h.Units == 0 {
		numBlocks = 0
	}

	idxStart := int(h.IndexOffset)
	r := bitReader{buf: data, bitPos: idxStart * 8}
	offsets := make([]uint64, numBlocks+1)
	samples := make([]uint64, numBlocks+1)
	for i := 0; i <= numBlocks; i++ {
		offsets[i] = r.ReadBits(int(h.OffsetWidth))
		samples[i] = r.ReadBits(int(h.SampleWidth))
	}

	blocks := make([]encodedBlock, numBlocks)
	for i := 0; i < numBlocks; i++ {
		start := objectHeaderSize + int(offsets[i])
		end := objectHeaderSize + int(offsets[i+1])
		if end > len(data) || start > end {
			return nil, fmt.Errorf("%w: block %d offsets out of range", errs.ErrCorruptHeader, i)
		}
		payload := data[start:end]
		widthType := 0
		if len(payload) > 0 {
			widthType = int(payload[0])
		}
		blocks[i] = encodedBlock{widthType: widthType, payload: payload}
	}

	return &SortedUintVec{header: *h, blockUnits: blockUnits, blocks: blocks, samples: samples}, nil
}
