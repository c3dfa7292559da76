// Package cbtfile provides the two file-level operations spec.md §1
// calls out as the whole point of this library — "open it by memory-
// mapping the file" and "replace it atomically once finalized" — kept
// separate from the on-disk formats themselves (sortedintvec, critbit,
// critbitpacked) so those packages stay pure encode/decode over []byte.
//
// Grounded on github.com/edsrzf/mmap-go for the read side and
// calvinalkan-agent-task's lock.go (atomic.WriteFile over a durable
// temp-then-rename) for the write side.
package cbtfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/natefinch/atomic"

	"github.com/Priyanshu23/SuccinctGo/errs"
)

// File is a read-only memory-mapped view of a saved index file.
type File struct {
	f  *os.File
	mm mmap.MMap
}

// Open memory-maps path read-only. The returned File's Bytes() slice is
// valid until Close.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: mmap %s: %v", errs.ErrInvalidState, path, err)
	}
	return &File{f: f, mm: mm}, nil
}

// Bytes returns the memory-mapped contents.
func (ff *File) Bytes() []byte { return ff.mm }

// Close unmaps the file and closes the underlying descriptor.
func (ff *File) Close() error {
	unmapErr := ff.mm.Unmap()
	closeErr := ff.f.Close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}

// SaveFile writes data to path via a temp-file-then-rename, so a reader
// that Opens path mid-write never observes a partial file. This is the
// module's only durability guarantee — per spec.md §1's non-goals there
// is no crash-safe multi-file transaction, just atomic single-file
// replace.
func SaveFile(path string, data []byte) error {
	return atomic.WriteFile(path, bytes.NewReader(data))
}
