package critbitpacked

import (
	"fmt"

	"github.com/Priyanshu23/SuccinctGo/critbit"
	"github.com/Priyanshu23/SuccinctGo/errs"
	"github.com/Priyanshu23/SuccinctGo/sortedintvec"
)

// Builder assembles a fixed number of sub-tries, each covering
// entryPerTrie consecutive ranks, per spec.md §4.G's
// CritBitTriePackedBuilder.
type Builder struct {
	entryPerTrie uint64
	trieNums     uint64
	totalKeySize uint64
	maxLayer     uint64
	hashBitNum   uint8
	isReverse    bool

	builderList []*critbit.Builder
	offsetsVec  *sortedintvec.Builder
}

// NewBuilder sizes the sub-trie list so that each holds at most
// entryPerTrie keys, given numKeys keys are expected in total.
func NewBuilder(numKeys, entryPerTrie uint64, isReverse bool, hashBitNum uint8) (*Builder, error) {
	if entryPerTrie == 0 {
		return nil, fmt.Errorf("%w: entryPerTrie must be > 0", errs.ErrInvalidArgument)
	}
	trieNums := (numKeys + entryPerTrie - 1) / entryPerTrie
	if trieNums == 0 {
		trieNums = 1
	}
	list := make([]*critbit.Builder, trieNums)
	for i := range list {
		list[i] = critbit.NewBuilder(isReverse, hashBitNum)
	}
	offsetsVec, err := sortedintvec.NewBuilder(64, true)
	if err != nil {
		return nil, err
	}
	return &Builder{
		entryPerTrie: entryPerTrie,
		trieNums:     trieNums,
		hashBitNum:   hashBitNum,
		isReverse:    isReverse,
		builderList:  list,
		offsetsVec:   offsetsVec,
	}, nil
}

// Insert adds key at global rank pos, routing it to sub-trie
// pos/entryPerTrie.
func (b *Builder) Insert(key []byte, pos uint64) error {
	trieIdx := pos / b.entryPerTrie
	if trieIdx >= b.trieNums {
		return fmt.Errorf("%w: pos %d exceeds %d tries of %d entries", errs.ErrOutOfRange, pos, b.trieNums, b.entryPerTrie)
	}
	if err := b.builderList[trieIdx].Insert(key); err != nil {
		return err
	}
	b.totalKeySize += uint64(len(key))
	return nil
}

// TrieNums returns the number of sub-tries.
func (b *Builder) TrieNums() uint64 { return b.trieNums }

// EntryPerTrie returns the configured per-trie entry count.
func (b *Builder) EntryPerTrie() uint64 { return b.entryPerTrie }

// TotalKeySize returns the summed byte length of every inserted key.
func (b *Builder) TotalKeySize() uint64 { return b.totalKeySize }

// MaxLayer returns the deepest BFS layer across all sub-tries, valid
// after Encode.
func (b *Builder) MaxLayer() uint64 { return b.maxLayer }

// Encode finalizes every sub-trie (popping its trailing placeholder
// node, BFS-flattening it, and compressing its diff-bit array) and
// records the running total of keys per trie into the shared offset index,
// mirroring CritBitTriePackedBuilder::encode.
func (b *Builder) Encode() {
	var cumulative uint64
	_ = b.offsetsVec.PushBack(0)
	for _, sub := range b.builderList {
		sub.PopPlaceholder()
		sub.Encode()
		sub.CompressDiffBitArray()
		cumulative += uint64(sub.Len())
		_ = b.offsetsVec.PushBack(cumulative)
	}
	for _, sub := range b.builderList {
		if l := sub.Layer(); l > b.maxLayer {
			b.maxLayer = l
		}
	}
}

// NewCBT assembles the read-side Packed index from the finished
// sub-builders.
func (b *Builder) NewCBT() (*Packed, error) {
	offsetsIdx, err := b.offsetsVec.Finish()
	if err != nil {
		return nil, err
	}
	tries := make([]*critbit.Trie, len(b.builderList))
	for i, sub := range b.builderList {
		tries[i] = sub.Finish()
	}
	return &Packed{
		entryPerTrie: b.entryPerTrie,
		trieNums:     b.trieNums,
		maxLayer:     b.maxLayer,
		hashBitNum:   b.hashBitNum,
		offsets:      offsetsIdx,
		trieList:     tries,
	}, nil
}

// Bounds fills out with each sub-trie's boundary key: the smallest key
// when reverse is true, the largest key when reverse is false, matching
// original_source's get_bounds (crit_bit_trie.cpp). These boundaries let
// a higher-level index route an arbitrary query key to the right
// sub-trie without decoding every trie.
func (b *Builder) Bounds(reverse bool) [][]byte {
	out := make([][]byte, len(b.builderList))
	for i, sub := range b.builderList {
		if reverse {
			out[i] = append([]byte{}, sub.SmallestKey()...)
		} else {
			out[i] = append([]byte{}, sub.LargestKey()...)
		}
	}
	return out
}
