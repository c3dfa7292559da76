// Package strvec implements the sort/lookup surfaces the crit-bit trie
// builders consume (spec.md §4.D): SortableStrVec, FixedLenStrVec,
// SortedStrVec, and SortedStrVecUintTpl. All four present the same
// logical surface — length, indexed access, sort (where allowed), and
// lower/upper-bound lookups — over a shared pool of bytes.
package strvec

import (
	"bytes"
	"fmt"

	"github.com/Priyanshu23/SuccinctGo/errs"
)

// MemoryKind tags how a string-vector's backing pool was obtained. No
// method in this package reads the tag or releases a pool according to it.
type MemoryKind int

const (
	// MemoryMalloc means the pool is a normal Go-GC-owned []byte.
	MemoryMalloc MemoryKind = iota
	// MemoryMmap means the pool is a view into a memory-mapped region;
	// releasing it must not attempt to resize/append to the slice.
	MemoryMmap
	// MemoryUser means the caller supplied and still owns the pool.
	MemoryUser
)

const maxEntries = 1 << 32
const maxPoolBytes = 1 << 32

func checkLengthBudget(entries, poolBytes int) error {
	if entries >= maxEntries {
		return fmt.Errorf("%w: more than 2^32 strings", errs.ErrLengthError)
	}
	if poolBytes >= maxPoolBytes {
		return fmt.Errorf("%w: pool larger than 2^32 bytes", errs.ErrLengthError)
	}
	return nil
}

// compareBytes is the lexicographic unsigned-byte ordering spec.md pins
// for all keys.
func compareBytes(a, b []byte) int {
	return bytes.Compare(a, b)
}
