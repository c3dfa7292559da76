package strvec

import "sort"

// thinEntry is (offset, length) only — no stable sequence id.
type thinEntry struct {
	offset int
	length int
}

// SortThinStrVec is SortableStrVec without the per-entry seq_id, for
// callers that never need to recover original insertion order after sort.
type SortThinStrVec struct {
	pool    []byte
	entries []thinEntry
	kind    MemoryKind
}

// NewSortThinStrVec returns an empty, Malloc-backed vector.
func NewSortThinStrVec() *SortThinStrVec {
	return &SortThinStrVec{kind: MemoryMalloc}
}

func (s *SortThinStrVec) Len() int { return len(s.entries) }

func (s *SortThinStrVec) NthData(i int) []byte {
	e := s.entries[i]
	return s.pool[e.offset : e.offset+e.length]
}

func (s *SortThinStrVec) MaxStrlen() int {
	max := 0
	for _, e := range s.entries {
		if e.length > max {
			max = e.length
		}
	}
	return max
}

func (s *SortThinStrVec) PushBack(key []byte) error {
	if err := checkLengthBudget(len(s.entries)+1, len(s.pool)+len(key)); err != nil {
		return err
	}
	off := len(s.pool)
	s.pool = append(s.pool, key...)
	s.entries = append(s.entries, thinEntry{offset: off, length: len(key)})
	return nil
}

func (s *SortThinStrVec) entryBytes(e thinEntry) []byte {
	return s.pool[e.offset : e.offset+e.length]
}

func (s *SortThinStrVec) Sort() {
	sort.Slice(s.entries, func(i, j int) bool {
		return compareBytes(s.entryBytes(s.entries[i]), s.entryBytes(s.entries[j])) < 0
	})
}

func (s *SortThinStrVec) LowerBound(key []byte) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return compareBytes(s.entryBytes(s.entries[i]), key) >= 0
	})
}

func (s *SortThinStrVec) UpperBound(key []byte) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return compareBytes(s.entryBytes(s.entries[i]), key) > 0
	})
}

func (s *SortThinStrVec) Find(key []byte) int {
	i := s.LowerBound(key)
	if i < len(s.entries) && compareBytes(s.entryBytes(s.entries[i]), key) == 0 {
		return i
	}
	return len(s.entries)
}
