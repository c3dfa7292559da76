package strvec

import (
	"fmt"
	"sort"

	"github.com/Priyanshu23/SuccinctGo/bitvec"
	"github.com/Priyanshu23/SuccinctGo/errs"
)

// SortedStrVec is append-only and keeps its entries in sorted order as a
// build-time invariant: callers must PushBack in non-decreasing order.
// Offsets are packed into a bitvec.Vec sized to the final pool length,
// matching spec.md §4.D's "packed offsets" description; Sort is
// deliberately not implemented (append-only by construction).
type SortedStrVec struct {
	pool    []byte
	lens    []int
	offsets *bitvec.Vec
	kind    MemoryKind
}

// NewSortedStrVec returns an empty vector.
func NewSortedStrVec() *SortedStrVec {
	return &SortedStrVec{kind: MemoryMalloc}
}

func (s *SortedStrVec) Len() int { return len(s.lens) }

func (s *SortedStrVec) NthData(i int) []byte {
	start := s.offsetAt(i)
	return s.pool[start : start+s.lens[i]]
}

// offsetAt reads the i-th start offset out of the packed bitvec.Vec,
// packing it lazily on first lookup — this is the "packed-offset binary
// search" spec.md §4.D describes, not a linear scan over s.lens.
func (s *SortedStrVec) offsetAt(i int) int {
	s.PackOffsets()
	return int(s.offsets.Get(i))
}

// lastEntry returns the most recently pushed entry's bytes without going
// through the packed offset table, so PushBack's ordering check doesn't
// force a re-pack on every single insert.
func (s *SortedStrVec) lastEntry() []byte {
	n := len(s.lens)
	last := s.lens[n-1]
	return s.pool[len(s.pool)-last:]
}

func (s *SortedStrVec) MaxStrlen() int {
	max := 0
	for _, l := range s.lens {
		if l > max {
			max = l
		}
	}
	return max
}

// PushBack appends key, which must be >= the previously pushed key.
func (s *SortedStrVec) PushBack(key []byte) error {
	if n := len(s.lens); n > 0 && compareBytes(s.lastEntry(), key) > 0 {
		return fmt.Errorf("%w: SortedStrVec requires non-decreasing insertion order", errs.ErrInvalidArgument)
	}
	if err := checkLengthBudget(len(s.lens)+1, len(s.pool)+len(key)); err != nil {
		return err
	}
	s.pool = append(s.pool, key...)
	s.lens = append(s.lens, len(key))
	s.offsets = nil
	return nil
}

// PackOffsets materializes the bit-packed offset index from the
// accumulated lengths; called lazily by lookups and explicitly by callers
// that want to force packing before serialization.
func (s *SortedStrVec) PackOffsets() {
	if s.offsets != nil {
		return
	}
	n := len(s.lens)
	width := bitvec.ComputeUintbits(uint64(len(s.pool)))
	nv, _ := bitvec.ResizeWithUintbits(n+1, width)
	off := uint64(0)
	for i := 0; i < n; i++ {
		nv.SetWire(i, off)
		off += uint64(s.lens[i])
	}
	nv.SetWire(n, off)
	s.offsets = nv
}

// Offsets returns the packed offset vector, building it on first use.
func (s *SortedStrVec) Offsets() *bitvec.Vec {
	s.PackOffsets()
	return s.offsets
}

func (s *SortedStrVec) LowerBound(key []byte) int {
	n := len(s.lens)
	return sort.Search(n, func(i int) bool {
		return compareBytes(s.NthData(i), key) >= 0
	})
}

func (s *SortedStrVec) UpperBound(key []byte) int {
	n := len(s.lens)
	return sort.Search(n, func(i int) bool {
		return compareBytes(s.NthData(i), key) > 0
	})
}

func (s *SortedStrVec) Find(key []byte) int {
	i := s.LowerBound(key)
	if i < len(s.lens) && compareBytes(s.NthData(i), key) == 0 {
		return i
	}
	return len(s.lens)
}
