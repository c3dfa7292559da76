package strvec

import (
	"fmt"
	"sort"
)

// sortableEntry is (offset, length, seqID) into the shared pool.
type sortableEntry struct {
	offset int
	length int
	seqID  int
}

// SortableStrVec allows arbitrary insertion order, tracks a stable
// sequence id per entry, and supports sort()/compact()/compress_strpool()
// as described in spec.md §4.D.
type SortableStrVec struct {
	pool    []byte
	entries []sortableEntry
	kind    MemoryKind
	nextSeq int
}

// NewSortableStrVec returns an empty, Malloc-backed vector.
func NewSortableStrVec() *SortableStrVec {
	return &SortableStrVec{kind: MemoryMalloc}
}

// Len returns the number of entries.
func (s *SortableStrVec) Len() int { return len(s.entries) }

// NthData returns the bytes of the i-th entry in current order.
func (s *SortableStrVec) NthData(i int) []byte {
	e := s.entries[i]
	return s.pool[e.offset : e.offset+e.length]
}

// SeqID returns the i-th entry's original insertion-order id, stable
// across Sort/Compact/CompressStrPool reorderings (spec.md §4.D).
func (s *SortableStrVec) SeqID(i int) int { return s.entries[i].seqID }

// MaxStrlen returns the longest entry's byte length.
func (s *SortableStrVec) MaxStrlen() int {
	max := 0
	for _, e := range s.entries {
		if e.length > max {
			max = e.length
		}
	}
	return max
}

// PushBack appends key to the pool, recording a fresh stable seq id.
func (s *SortableStrVec) PushBack(key []byte) error {
	if err := checkLengthBudget(len(s.entries)+1, len(s.pool)+len(key)); err != nil {
		return err
	}
	off := len(s.pool)
	s.pool = append(s.pool, key...)
	s.entries = append(s.entries, sortableEntry{offset: off, length: len(key), seqID: s.nextSeq})
	s.nextSeq++
	return nil
}

// Sort orders entries lexicographically by their bytes. The source
// branches between radix sort (short keys) and std::sort (long keys,
// optionally parallel) purely as a tuning decision (spec.md §9); this
// reimplementation ships the comparison-based path only.
func (s *SortableStrVec) Sort() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return compareBytes(s.entryBytes(s.entries[i]), s.entryBytes(s.entries[j])) < 0
	})
}

func (s *SortableStrVec) entryBytes(e sortableEntry) []byte {
	return s.pool[e.offset : e.offset+e.length]
}

// Compact rewrites the pool so that offsets are ascending in the current
// (post-sort) order, discarding any unreachable gaps.
func (s *SortableStrVec) Compact() {
	newPool := make([]byte, 0, len(s.pool))
	for i := range s.entries {
		e := &s.entries[i]
		data := s.pool[e.offset : e.offset+e.length]
		e.offset = len(newPool)
		newPool = append(newPool, data...)
	}
	s.pool = newPool
}

// CompressStrPool deduplicates suffix-overlapping strings in the pool to
// shrink storage, per spec.md §4.D's three levels:
//
//	level 1: sort entries by descending length, drop exact suffix
//	         duplicates (one string's bytes fully contained as another's
//	         prefix-aligned tail) without looking for partial overlap.
//	level 2/3: hash-assisted 3/4-byte overlap matching; level 3 allows
//	         partial (non-prefix-aligned) overlap, level 2 does not.
//
// This reimplementation runs the same search at every level: entries are
// visited from longest to shortest, an entry whose whole byte string
// already occurs as a contiguous run anywhere in the rebuilt pool is
// pointed at that run, and any other entry is appended. Levels 1, 2 and 3
// therefore produce the same pool. Partial overlaps (an entry's prefix
// matching the pool's tail) are not merged.
func (s *SortableStrVec) CompressStrPool(level int) error {
	if level < 1 || level > 3 {
		return fmt.Errorf("compress level must be 1..3, got %d", level)
	}
	order := make([]int, len(s.entries))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return s.entries[order[i]].length > s.entries[order[j]].length
	})

	newPool := make([]byte, 0, len(s.pool))
	newOffset := make([]int, len(s.entries))
	placed := make([]bool, len(s.entries))

	for _, idx := range order {
		e := s.entries[idx]
		data := s.entryBytes(e)
		found := -1
		if level >= 2 {
			found = findOverlap(newPool, data)
		} else {
			found = findSuffixContainment(newPool, data)
		}
		if found >= 0 {
			newOffset[idx] = found
		} else {
			newOffset[idx] = len(newPool)
			newPool = append(newPool, data...)
		}
		placed[idx] = true
	}
	for i := range s.entries {
		s.entries[i].offset = newOffset[i]
	}
	s.pool = newPool
	return nil
}

// findSuffixContainment returns an offset in pool where needle already
// occurs as a contiguous run, or -1.
func findSuffixContainment(pool, needle []byte) int {
	if len(needle) == 0 {
		return 0
	}
	return indexOf(pool, needle)
}

// findOverlap is findSuffixContainment for this reimplementation: see the
// CompressStrPool doc comment: every level runs the same byte-exact
// search here.
func findOverlap(pool, needle []byte) int {
	return findSuffixContainment(pool, needle)
}

func indexOf(hay, needle []byte) int {
	if len(needle) > len(hay) {
		return -1
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		if compareBytes(hay[i:i+len(needle)], needle) == 0 {
			return i
		}
	}
	return -1
}

// LowerBound returns the smallest index i such that NthData(i) >= key, or
// Len() if none.
func (s *SortableStrVec) LowerBound(key []byte) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return compareBytes(s.entryBytes(s.entries[i]), key) >= 0
	})
}

// UpperBound returns the smallest index i such that NthData(i) > key, or
// Len() if none.
func (s *SortableStrVec) UpperBound(key []byte) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return compareBytes(s.entryBytes(s.entries[i]), key) > 0
	})
}

// Find returns the index of an entry equal to key, or Len() if absent.
func (s *SortableStrVec) Find(key []byte) int {
	i := s.LowerBound(key)
	if i < len(s.entries) && compareBytes(s.entryBytes(s.entries[i]), key) == 0 {
		return i
	}
	return len(s.entries)
}

// UpperBoundAtPos locates, within [lo, hi), the first index whose byte at
// position pos exceeds ch. The caller must ensure the slot at (lo, pos)
// already equals ch (spec.md §4.D precondition).
func (s *SortableStrVec) UpperBoundAtPos(lo, hi, pos int, ch byte) int {
	return sort.Search(hi-lo, func(i int) bool {
		data := s.entryBytes(s.entries[lo+i])
		if pos >= len(data) {
			return false
		}
		return data[pos] > ch
	}) + lo
}
