package critbitpacked

import (
	"encoding/binary"
	"fmt"

	"github.com/Priyanshu23/SuccinctGo/bitvec"
	"github.com/Priyanshu23/SuccinctGo/critbit"
	"github.com/Priyanshu23/SuccinctGo/errs"
	"github.com/Priyanshu23/SuccinctGo/rankselect"
)

func putU64(out []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(out, buf[:]...)
}

func getU64(data []byte, pos int) (uint64, int, error) {
	if pos+8 > len(data) {
		return 0, pos, fmt.Errorf("%w: truncated u64 at %d", errs.ErrCorruptHeader, pos)
	}
	return binary.LittleEndian.Uint64(data[pos : pos+8]), pos + 8, nil
}

func appendVec(out []byte, v *bitvec.Vec) []byte {
	out = putU64(out, uint64(v.Len()))
	out = append(out, byte(v.Width()))
	out = putU64(out, uint64(v.MemSize()))
	out = append(out, v.Data()[:v.MemSize()]...)
	return out
}

func readVec(data []byte, pos int) (*bitvec.Vec, int, error) {
	n, pos, err := getU64(data, pos)
	if err != nil {
		return nil, pos, err
	}
	if pos >= len(data) {
		return nil, pos, fmt.Errorf("%w: truncated vec width", errs.ErrCorruptHeader)
	}
	width := int(data[pos])
	pos++
	size, pos, err := getU64(data, pos)
	if err != nil {
		return nil, pos, err
	}
	end := pos + int(size)
	if end > len(data) {
		return nil, pos, fmt.Errorf("%w: truncated vec payload", errs.ErrCorruptHeader)
	}
	v, err := bitvec.New(max1(width))
	if err != nil {
		return nil, pos, err
	}
	v.RiskSetData(data[pos:end], int(n), width)
	return v, end, nil
}

func max1(w int) int {
	if w < 1 {
		return 1
	}
	return w
}

func appendBitmap(out []byte, b *rankselect.Bitmap) []byte {
	out = putU64(out, uint64(b.Size()))
	data := b.Data()
	out = putU64(out, uint64(len(data)))
	out = append(out, data...)
	return out
}

func readBitmap(data []byte, pos int) (*rankselect.Bitmap, int, error) {
	n, pos, err := getU64(data, pos)
	if err != nil {
		return nil, pos, err
	}
	size, pos, err := getU64(data, pos)
	if err != nil {
		return nil, pos, err
	}
	end := pos + int(size)
	if end > len(data) {
		return nil, pos, fmt.Errorf("%w: truncated bitmap payload", errs.ErrCorruptHeader)
	}
	bm := rankselect.Load(data[pos:end], int(n))
	return bm, end, nil
}

// appendTrie serializes one sub-trie's scalar fields and sub-arrays.
func appendTrie(out []byte, t *critbit.Trie, hasHash bool) []byte {
	out = putU64(out, t.BaseBitNum)
	out = putU64(out, t.ExtraBitNum)
	out = putU64(out, t.Layer)
	out = appendBitmap(out, t.EncodedTrie)
	out = appendVec(out, t.Base)
	out = appendBitmap(out, t.Bitmap)
	out = appendVec(out, t.Extra)
	if hasHash {
		out = appendVec(out, t.HashVec)
	}
	return out
}

func readTrie(data []byte, pos int, hasHash bool) (*critbit.Trie, int, error) {
	baseBitNum, pos, err := getU64(data, pos)
	if err != nil {
		return nil, pos, err
	}
	extraBitNum, pos, err := getU64(data, pos)
	if err != nil {
		return nil, pos, err
	}
	layer, pos, err := getU64(data, pos)
	if err != nil {
		return nil, pos, err
	}
	encodedTrie, pos, err := readBitmap(data, pos)
	if err != nil {
		return nil, pos, err
	}
	base, pos, err := readVec(data, pos)
	if err != nil {
		return nil, pos, err
	}
	bitmap, pos, err := readBitmap(data, pos)
	if err != nil {
		return nil, pos, err
	}
	extra, pos, err := readVec(data, pos)
	if err != nil {
		return nil, pos, err
	}
	var hashVec *bitvec.Vec
	if hasHash {
		hashVec, pos, err = readVec(data, pos)
		if err != nil {
			return nil, pos, err
		}
	}
	t := &critbit.Trie{
		BaseBitNum:  baseBitNum,
		ExtraBitNum: extraBitNum,
		Layer:       layer,
		EncodedTrie: encodedTrie,
		Base:        base,
		Bitmap:      bitmap,
		Extra:       extra,
		HashVec:     hashVec,
	}
	t.CalculateLayerPos()
	return t, pos, nil
}
