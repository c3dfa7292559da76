// Package critbitpacked assembles many per-block CritBitTrie instances
// (package critbit) into a single on-disk CBT index, per spec.md §4.G/H:
// a fixed entry_per_trie_ key count routes any key's sorted rank to a
// sub-trie, and a SortedUintVec of cumulative per-trie key counts gives
// each sub-trie's base rank; the sub-tries' serialized bytes follow one
// another in the blob and are read back in order. Grounded on
// original_source/src/terark/fsa/crit_bit_trie.{hpp,cpp} (the
// CritBitTriePacked / CritBitTriePackedBuilder pair) and
// original_source/src/terark/util/crc.hpp for the header checksum.
package critbitpacked

import (
	"encoding/binary"
	"fmt"

	"github.com/Priyanshu23/SuccinctGo/errs"
)

const cbtMagic = 0xC3

// prefixHeader mirrors IndexCBTPrefixHeader from crit_bit_trie.hpp: a
// single 64-bit word split magic:8, header_size:24, header_crc16:16,
// version:4, reserve_bits:11, extra_header:1 (LSB-first).
type prefixHeader struct {
	Magic        uint8
	HeaderSize   uint32 // 24 bits
	HeaderCRC16  uint16
	Version      uint8 // 4 bits
	ReserveBits  uint16 // 11 bits
	ExtraHeader  bool
}

const prefixHeaderSize = 8

func (h prefixHeader) encode() [prefixHeaderSize]byte {
	var word uint64
	word |= uint64(h.Magic) & 0xFF
	word |= (uint64(h.HeaderSize) & 0xFFFFFF) << 8
	word |= (uint64(h.HeaderCRC16) & 0xFFFF) << 32
	word |= (uint64(h.Version) & 0xF) << 48
	word |= (uint64(h.ReserveBits) & 0x7FF) << 52
	if h.ExtraHeader {
		word |= uint64(1) << 63
	}
	var out [prefixHeaderSize]byte
	binary.LittleEndian.PutUint64(out[:], word)
	return out
}

func decodePrefixHeader(data []byte) (*prefixHeader, error) {
	if len(data) < prefixHeaderSize {
		return nil, fmt.Errorf("%w: prefix header truncated", errs.ErrCorruptHeader)
	}
	word := binary.LittleEndian.Uint64(data[:prefixHeaderSize])
	h := &prefixHeader{
		Magic:       uint8(word & 0xFF),
		HeaderSize:  uint32((word >> 8) & 0xFFFFFF),
		HeaderCRC16: uint16((word >> 32) & 0xFFFF),
		Version:     uint8((word >> 48) & 0xF),
		ReserveBits: uint16((word >> 52) & 0x7FF),
		ExtraHeader: (word>>63)&1 == 1,
	}
	if h.Magic != cbtMagic {
		return nil, fmt.Errorf("%w: bad CBT magic byte %#x", errs.ErrCorruptHeader, h.Magic)
	}
	return h, nil
}

// crc16Table is the CCITT (polynomial 0x1021) lookup table. Go's
// standard library ships hash/crc32 and hash/crc64 but no 16-bit
// variant, and none of the example repos vendor one either (the teacher
// itself falls back to hash/crc32 for its own WAL and SST block
// checksums — see wal.go, sst/writer.go) — a 16-bit CRC is this
// package's own on-disk contract via prefixHeader.HeaderCRC16, so it is
// computed by hand rather than reaching for crc32 and truncating, which
// would not be a real CRC16.
var crc16Table = func() [256]uint16 {
	const poly = 0x1021
	var t [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for b := 0; b < 8; b++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}()

// crc16CCITT computes the CRC-16/CCITT-FALSE checksum of data, starting
// from the conventional 0xFFFF seed.
func crc16CCITT(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = (crc << 8) ^ crc16Table[byte(crc>>8)^b]
	}
	return crc
}
