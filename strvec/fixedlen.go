package strvec

import (
	"fmt"
	"sort"

	"github.com/Priyanshu23/SuccinctGo/errs"
)

// FixedLenStrVec packs fixed-length records with an implicit index: the
// i-th record lives at pool[i*fixlen : (i+1)*fixlen]. spec.md §4.D calls
// out branch-free compares for fixlen in {1,2,4,8} via a byte-swapped
// uint64 load; this reimplementation always uses bytes.Compare (the
// specialization is a performance tuning, not a correctness requirement
// per spec.md §9).
type FixedLenStrVec struct {
	pool   []byte
	fixlen int
	kind   MemoryKind
}

// NewFixedLenStrVec returns an empty vector whose records are always
// fixlen bytes.
func NewFixedLenStrVec(fixlen int) (*FixedLenStrVec, error) {
	if fixlen <= 0 {
		return nil, fmt.Errorf("%w: fixlen must be positive", errs.ErrInvalidArgument)
	}
	return &FixedLenStrVec{fixlen: fixlen, kind: MemoryMalloc}, nil
}

func (f *FixedLenStrVec) Len() int { return len(f.pool) / f.fixlen }

func (f *FixedLenStrVec) FixLen() int { return f.fixlen }

func (f *FixedLenStrVec) NthData(i int) []byte {
	return f.pool[i*f.fixlen : (i+1)*f.fixlen]
}

func (f *FixedLenStrVec) MaxStrlen() int { return f.fixlen }

// PushBack appends a record of exactly fixlen bytes.
func (f *FixedLenStrVec) PushBack(rec []byte) error {
	if len(rec) != f.fixlen {
		return fmt.Errorf("%w: record length %d != fixlen %d", errs.ErrInvalidArgument, len(rec), f.fixlen)
	}
	if err := checkLengthBudget(f.Len()+1, len(f.pool)+f.fixlen); err != nil {
		return err
	}
	f.pool = append(f.pool, rec...)
	return nil
}

// Sort orders records lexicographically (a sized qsort_r in the source).
func (f *FixedLenStrVec) Sort() {
	n := f.Len()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return compareBytes(f.NthData(idx[i]), f.NthData(idx[j])) < 0
	})
	newPool := make([]byte, len(f.pool))
	for newPos, oldPos := range idx {
		copy(newPool[newPos*f.fixlen:(newPos+1)*f.fixlen], f.NthData(oldPos))
	}
	f.pool = newPool
}

func (f *FixedLenStrVec) recordAt(i int) []byte { return f.NthData(i) }

// LowerBound returns the first index whose record >= key. key is
// zero-padded to fixlen if shorter (spec.md: "lower_bound_prefix uses
// zero-padded key").
func (f *FixedLenStrVec) LowerBound(key []byte) int {
	padded := f.pad(key)
	n := f.Len()
	return sort.Search(n, func(i int) bool {
		return compareBytes(f.recordAt(i), padded) >= 0
	})
}

// UpperBoundFixed requires len(key) >= fixlen (spec.md precondition) and
// returns the first index whose record > key[:fixlen].
func (f *FixedLenStrVec) UpperBoundFixed(key []byte) (int, error) {
	if len(key) < f.fixlen {
		return 0, fmt.Errorf("%w: key shorter than fixlen", errs.ErrInvalidArgument)
	}
	trimmed := key[:f.fixlen]
	n := f.Len()
	return sort.Search(n, func(i int) bool {
		return compareBytes(f.recordAt(i), trimmed) > 0
	}), nil
}

func (f *FixedLenStrVec) pad(key []byte) []byte {
	if len(key) >= f.fixlen {
		return key[:f.fixlen]
	}
	padded := make([]byte, f.fixlen)
	copy(padded, key)
	return padded
}

// Find returns the index of a record equal to key (zero-padded), or
// Len() if absent.
func (f *FixedLenStrVec) Find(key []byte) int {
	padded := f.pad(key)
	i := f.LowerBound(padded)
	if i < f.Len() && compareBytes(f.recordAt(i), padded) == 0 {
		return i
	}
	return f.Len()
}
