// Package sortedintvec implements SortedUintVec: a block-compressed
// representation of a monotone (or near-monotone) sequence of u64
// values, per spec.md §4.E. Blocks of 64 or 128 values are encoded as
// either a constant arithmetic progression, a packed-small-plus-overflow
// delta array, a dense 1- or 2-bit delta array, or a Lagrange-
// interpolated residual for non-monotone blocks.
package sortedintvec

import (
	"encoding/binary"
	"fmt"

	"github.com/Priyanshu23/SuccinctGo/errs"
)

// objectHeaderSize is the fixed 16-byte ObjectHeader spec.md §6 pins.
const objectHeaderSize = 16

// ObjectHeader mirrors the on-disk 16-byte SortedUintVec header.
type ObjectHeader struct {
	Units               uint64 // 48 bits
	Log2BlockUnits      uint8  // 4 bits: 6 or 7
	OffsetWidth         uint8  // real width 1..64, stored as value-1 in 6 bits
	SampleWidth         uint8  // real width 1..64, stored as value-1 in 6 bits
	IndexOffset         uint64 // 48 bits
	IsOverallFullSorted bool
	IsSamplesFullSorted bool
}

func (h *ObjectHeader) encode() [objectHeaderSize]byte {
	var out [objectHeaderSize]byte
	word0 := h.Units&((1<<48)-1) |
		uint64(h.Log2BlockUnits&0xF)<<48 |
		uint64((h.OffsetWidth-1)&0x3F)<<52 |
		uint64((h.SampleWidth-1)&0x3F)<<58
	var flags uint64
	if h.IsOverallFullSorted {
		flags |= 1 << 0
	}
	if h.IsSamplesFullSorted {
		flags |= 1 << 1
	}
	word1 := h.IndexOffset&((1<<48)-1) | flags<<48
	binary.LittleEndian.PutUint64(out[0:8], word0)
	binary.LittleEndian.PutUint64(out[8:16], word1)
	return out
}

func decodeObjectHeader(data []byte) (*ObjectHeader, error) {
	if len(data) < objectHeaderSize {
		return nil, fmt.Errorf("%w: object header truncated", errs.ErrCorruptHeader)
	}
	word0 := binary.LittleEndian.Uint64(data[0:8])
	word1 := binary.LittleEndian.Uint64(data[8:16])
	h := &ObjectHeader{
		Units:          word0 & ((1 << 48) - 1),
		Log2BlockUnits: uint8((word0 >> 48) & 0xF),
		OffsetWidth:    uint8((word0>>52)&0x3F) + 1,
		SampleWidth:    uint8((word0>>58)&0x3F) + 1,
		IndexOffset:    word1 & ((1 << 48) - 1),
	}
	h.IsOverallFullSorted = (word1>>48)&1 != 0
	h.IsSamplesFullSorted = (word1>>48)&2 != 0
	return h, nil
}
