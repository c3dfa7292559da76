package sortedintvec

import (
	"fmt"

	"github.com/Priyanshu23/SuccinctGo/errs"
)

// Builder accumulates values one at a time and flushes full blocks as
// they fill, per spec.md §4.E's single-pass push_back/finish contract.
type Builder struct {
	blockUnits  int
	inputSorted bool

	pending []uint64
	blocks  []encodedBlock
	samples []uint64

	hasLast         bool
	lastVal         uint64
	overallSorted   bool
	samplesSorted   bool
	lastBlockSample uint64
	count           int
}

// NewBuilder starts an empty builder. blockUnits must be 64 or 128.
// When inputSorted is true, push_back enforces non-decreasing order and
// fails InvalidArgument on a violation.
func NewBuilder(blockUnits int, inputSorted bool) (*Builder, error) {
	if blockUnits != 64 && blockUnits != 128 {
		return nil, fmt.Errorf("%w: blockUnits must be 64 or 128", errs.ErrInvalidArgument)
	}
	return &Builder{
		blockUnits:    blockUnits,
		inputSorted:   inputSorted,
		overallSorted: true,
		samplesSorted: true,
	}, nil
}

// PushBack appends v.
func (b *Builder) PushBack(v uint64) error {
	if b.inputSorted && b.hasLast && v < b.lastVal {
		return fmt.Errorf("%w: push_back violates sortedness", errs.ErrInvalidArgument)
	}
	if b.hasLast && v < b.lastVal {
		b.overallSorted = false
	}
	b.hasLast = true
	b.lastVal = v
	b.pending = append(b.pending, v)
	b.count++
	if len(b.pending) == b.blockUnits {
		b.flush()
	}
	return nil
}

func (b *Builder) flush() {
	if len(b.pending) == 0 {
		return
	}
	padded := b.pending
	if len(padded) < b.blockUnits {
		padded = make([]uint64, b.blockUnits)
		copy(padded, b.pending)
		last := b.pending[len(b.pending)-1]
		for i := len(b.pending); i < b.blockUnits; i++ {
			padded[i] = last
		}
	}
	sortedHint := b.inputSorted || isNonDecreasing(padded)
	blk := encodeBlock(padded, sortedHint)
	if len(b.samples) > 0 && blk.sample < b.lastBlockSample {
		b.samplesSorted = false
	}
	b.lastBlockSample = blk.sample
	b.samples = append(b.samples, blk.sample)
	b.blocks = append(b.blocks, blk)
	b.pending = nil
}

func isNonDecreasing(vals []uint64) bool {
	for i := 1; i < len(vals); i++ {
		if vals[i] < vals[i-1] {
			return false
		}
	}
	return true
}

// Finish pads and flushes the final partial block, then returns the
// assembled SortedUintVec.
func (b *Builder) Finish() (*SortedUintVec, error) {
	b.flush()
	finalSample := b.lastVal
	samples := append(append([]uint64{}, b.samples...), finalSample)

	return &SortedUintVec{
		header: ObjectHeader{
			Units:               uint64(b.count),
			Log2BlockUnits:      log2Of(b.blockUnits),
			IsOverallFullSorted: b.overallSorted,
			IsSamplesFullSorted: b.samplesSorted,
		},
		blockUnits: b.blockUnits,
		blocks:     b.blocks,
		samples:    samples,
	}, nil
}
