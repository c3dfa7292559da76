package strvec

import (
	"fmt"
	"sort"

	"github.com/Priyanshu23/SuccinctGo/errs"
)

// UintOffset is the width constraint for SortedStrVecUintTpl's offset
// storage: either a 32-bit or 64-bit plain-array offset table (spec.md
// §4.D: "generic offset width"), as opposed to SortedStrVec's bit-packed
// table sized to the exact pool length.
type UintOffset interface {
	~uint32 | ~uint64
}

// SortedStrVecUintTpl is SortedStrVec with offsets stored as a plain
// []T array (T = uint32 or uint64) instead of a bit-packed vector, and
// an optional fixed delimiter length appended after each record (used
// when callers want a length-prefixed or terminator-suffixed encoding).
type SortedStrVecUintTpl[T UintOffset] struct {
	pool     []byte
	offsets  []T
	delimLen int
	kind     MemoryKind
}

// NewSortedStrVecUintTpl returns an empty vector. delimLen is the number
// of extra delimiter bytes logically appended after every record's
// content before the next record's offset (0 disables delimiters).
func NewSortedStrVecUintTpl[T UintOffset](delimLen int) *SortedStrVecUintTpl[T] {
	return &SortedStrVecUintTpl[T]{kind: MemoryMalloc, delimLen: delimLen, offsets: []T{0}}
}

func (s *SortedStrVecUintTpl[T]) Len() int { return len(s.offsets) - 1 }

func (s *SortedStrVecUintTpl[T]) NthData(i int) []byte {
	start := int(s.offsets[i])
	end := int(s.offsets[i+1]) - s.delimLen
	return s.pool[start:end]
}

func (s *SortedStrVecUintTpl[T]) MaxStrlen() int {
	max := 0
	for i := 0; i < s.Len(); i++ {
		if l := len(s.NthData(i)); l > max {
			max = l
		}
	}
	return max
}

// PushBack appends key (plus delimLen zero bytes), which must be >= the
// previously pushed key.
func (s *SortedStrVecUintTpl[T]) PushBack(key []byte) error {
	if n := s.Len(); n > 0 && compareBytes(s.NthData(n-1), key) > 0 {
		return fmt.Errorf("%w: SortedStrVecUintTpl requires non-decreasing insertion order", errs.ErrInvalidArgument)
	}
	recordLen := len(key) + s.delimLen
	newEnd := uint64(s.offsets[len(s.offsets)-1]) + uint64(recordLen)
	if err := checkLengthBudget(s.Len()+1, int(newEnd)); err != nil {
		return err
	}
	maxT := uint64(^T(0))
	if newEnd > maxT {
		return fmt.Errorf("%w: pool offset overflows offset width", errs.ErrLengthError)
	}
	s.pool = append(s.pool, key...)
	for k := 0; k < s.delimLen; k++ {
		s.pool = append(s.pool, 0)
	}
	s.offsets = append(s.offsets, T(newEnd))
	return nil
}

func (s *SortedStrVecUintTpl[T]) LowerBound(key []byte) int {
	n := s.Len()
	return sort.Search(n, func(i int) bool {
		return compareBytes(s.NthData(i), key) >= 0
	})
}

func (s *SortedStrVecUintTpl[T]) UpperBound(key []byte) int {
	n := s.Len()
	return sort.Search(n, func(i int) bool {
		return compareBytes(s.NthData(i), key) > 0
	})
}

func (s *SortedStrVecUintTpl[T]) Find(key []byte) int {
	i := s.LowerBound(key)
	if i < s.Len() && compareBytes(s.NthData(i), key) == 0 {
		return i
	}
	return s.Len()
}

// RawOffsets returns the offset table for serialization.
func (s *SortedStrVecUintTpl[T]) RawOffsets() []T { return s.offsets }

// Pool returns the backing byte pool for serialization.
func (s *SortedStrVecUintTpl[T]) Pool() []byte { return s.pool }
