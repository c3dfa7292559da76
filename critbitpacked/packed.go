package critbitpacked

import (
	"fmt"

	"github.com/Priyanshu23/SuccinctGo/critbit"
	"github.com/Priyanshu23/SuccinctGo/errs"
	"github.com/Priyanshu23/SuccinctGo/sortedintvec"
)

const prefixVersion = 1

// Packed is a loaded, read-only collection of sub-tries plus the
// routing metadata needed to find which sub-trie a given rank falls in,
// per spec.md §4.G's CritBitTriePacked.
type Packed struct {
	entryPerTrie uint64
	trieNums     uint64
	maxLayer     uint64
	hashBitNum   uint8

	offsets  *sortedintvec.SortedUintVec // cumulative key count per trie, len trieNums+1
	trieList []*critbit.Trie
}

// TrieNums returns the number of sub-tries.
func (p *Packed) TrieNums() int { return int(p.trieNums) }

// MaxLayer returns the deepest BFS layer across all sub-tries.
func (p *Packed) MaxLayer() uint64 { return p.maxLayer }

// HashBitNum returns the configured hash-filter width (0 when disabled).
func (p *Packed) HashBitNum() uint8 { return p.hashBitNum }

// BaseRankID returns the global rank of sub-trie trieIndex's first key.
func (p *Packed) BaseRankID(trieIndex int) uint64 {
	return p.offsets.Get(trieIndex)
}

// Trie returns the trieIndex-th sub-trie.
func (p *Packed) Trie(trieIndex int) *critbit.Trie { return p.trieList[trieIndex] }

// GetSmallestID returns the global rank of the smallest key stored in
// sub-trie trieIndex.
func (p *Packed) GetSmallestID(trieIndex int) uint64 {
	return p.BaseRankID(trieIndex)
}

// GetLargestID returns the global rank of the largest key stored in
// sub-trie trieIndex.
func (p *Packed) GetLargestID(trieIndex int) uint64 {
	return p.offsets.Get(trieIndex+1) - 1
}

// Clear drops all sub-tries and the routing index.
func (p *Packed) Clear() {
	p.offsets = nil
	p.trieList = nil
	p.trieNums = 0
}

// RiskRelease hands ownership of every sub-trie's backing arrays back to
// the caller, used right before an owning mmap region is unmapped.
func (p *Packed) RiskRelease() {
	for _, t := range p.trieList {
		t.RiskReleaseOwnership()
	}
}

// Save serializes the packed index: a checksummed prefix header, the
// scalar fields and routing offsets, then each sub-trie's self-
// describing-length bytes in order.
func (p *Packed) Save() []byte {
	var payload []byte
	payload = putU64(payload, p.entryPerTrie)
	payload = putU64(payload, p.trieNums)
	payload = append(payload, p.hashBitNum)
	payload = putU64(payload, p.maxLayer)
	offsetsData := p.offsets.Save()
	payload = putU64(payload, uint64(len(offsetsData)))
	payload = append(payload, offsetsData...)

	header := prefixHeader{
		Magic:       cbtMagic,
		HeaderSize:  uint32(len(payload)),
		HeaderCRC16: crc16CCITT(payload),
		Version:     prefixVersion,
		ExtraHeader: p.hashBitNum > 0,
	}
	encHeader := header.encode()

	out := make([]byte, 0, len(encHeader)+len(payload)+1024)
	out = append(out, encHeader[:]...)
	out = append(out, payload...)
	for _, t := range p.trieList {
		out = appendTrie(out, t, p.hashBitNum > 0)
	}
	return out
}

// Load parses a buffer previously produced by Save.
func Load(data []byte) (*Packed, error) {
	h, err := decodePrefixHeader(data)
	if err != nil {
		return nil, err
	}
	pos := prefixHeaderSize
	payloadEnd := pos + int(h.HeaderSize)
	if payloadEnd > len(data) {
		return nil, fmt.Errorf("%w: header_size exceeds buffer", errs.ErrCorruptHeader)
	}
	if crc16CCITT(data[pos:payloadEnd]) != h.HeaderCRC16 {
		return nil, fmt.Errorf("%w: header CRC16 mismatch", errs.ErrCorruptHeader)
	}

	entryPerTrie, pos, err := getU64(data, pos)
	if err != nil {
		return nil, err
	}
	trieNums, pos, err := getU64(data, pos)
	if err != nil {
		return nil, err
	}
	if pos >= len(data) {
		return nil, fmt.Errorf("%w: truncated hash_bit_num", errs.ErrCorruptHeader)
	}
	hashBitNum := data[pos]
	pos++
	maxLayer, pos, err := getU64(data, pos)
	if err != nil {
		return nil, err
	}
	offsetsLen, pos, err := getU64(data, pos)
	if err != nil {
		return nil, err
	}
	if pos+int(offsetsLen) > len(data) {
		return nil, fmt.Errorf("%w: truncated offsets vector", errs.ErrCorruptHeader)
	}
	offsets, err := sortedintvec.Load(data[pos : pos+int(offsetsLen)])
	if err != nil {
		return nil, err
	}
	pos += int(offsetsLen)

	tries := make([]*critbit.Trie, trieNums)
	for i := range tries {
		var t *critbit.Trie
		t, pos, err = readTrie(data, pos, hashBitNum > 0)
		if err != nil {
			return nil, err
		}
		tries[i] = t
	}

	return &Packed{
		entryPerTrie: entryPerTrie,
		trieNums:     trieNums,
		maxLayer:     maxLayer,
		hashBitNum:   hashBitNum,
		offsets:      offsets,
		trieList:     tries,
	}, nil
}
