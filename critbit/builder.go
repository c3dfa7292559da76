package critbit

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/Priyanshu23/SuccinctGo/bitvec"
	"github.com/Priyanshu23/SuccinctGo/errs"
	"github.com/Priyanshu23/SuccinctGo/histogram"
	"github.com/Priyanshu23/SuccinctGo/rankselect"
)

// node is the builder-side three-way trie node: Child[0]/Child[1] point
// at other node_storage positions (or invalidPos for "no child yet"),
// DiffBit is this node's diff-bit position.
type node struct {
	Child   [2]uint32
	DiffBit uint64
}

// Builder incrementally inserts keys in strictly increasing order,
// splicing each one into the trie by walking down from the root along the
// append-direction children (spec.md §4.F, grounded on
// CritBitTrieBuilder::insert in crit_bit_trie.cpp).
//
// isReverse mirrors the source's is_reverse_ flag: building the trie
// over keys in descending order (the packed builder passes its own
// isReverse to every sub-trie) swaps which child slot is the "append"
// direction.
type Builder struct {
	isReverse  bool
	hashBitNum uint8

	nodeStorage []node
	rootPos     uint32
	prevKey     []byte
	haveKey     bool
	numKeys     int
	smallestKey []byte
	largestKey  []byte

	hashVec *bitvec.Vec

	// Populated by Encode.
	encodedTrie  *rankselect.Bitmap
	diffBitArray []uint64
	layer        uint64

	// Populated by CompressDiffBitArray.
	baseBitNum  uint64
	extraBitNum uint64
	base        *bitvec.Vec
	bitmap      *rankselect.Bitmap
	extra       *bitvec.Vec
}

// NewBuilder starts an empty builder. When hashBitNum > 0, every
// inserted key's xxhash suffix is recorded for later HashMatch
// filtering (spec.md §4.F's optional per-entry hash filter).
func NewBuilder(isReverse bool, hashBitNum uint8) *Builder {
	b := &Builder{isReverse: isReverse, hashBitNum: hashBitNum, rootPos: invalidPos}
	if hashBitNum > 0 {
		v, _ := bitvec.New(int(hashBitNum))
		b.hashVec = v
	}
	return b
}

// fwdIdx/bwdIdx select which Child slot is the "grow" direction and
// which is the "displaced subtree" direction, per is_reverse_.
func (b *Builder) fwdIdx() int {
	if b.isReverse {
		return 0
	}
	return 1
}
func (b *Builder) bwdIdx() int { return 1 - b.fwdIdx() }

// Insert adds key, which must sort strictly after (resp. before, when
// isReverse) every previously inserted key. Duplicate keys are rejected
// with errs.ErrDuplicateKey — the spec leaves this policy open; this
// implementation always rejects rather than silently collapsing, so a
// caller wanting dedup must filter before calling Insert.
func (b *Builder) Insert(key []byte) error {
	if b.haveKey && bytes.Equal(key, b.prevKey) {
		return fmt.Errorf("%w: %q inserted twice in a row", errs.ErrDuplicateKey, key)
	}
	if b.hashVec != nil {
		hashMask := ^uint64(0) >> (64 - b.hashBitNum)
		_ = b.hashVec.PushBack(xxhash.Sum64(key) & hashMask)
	}
	if !b.haveKey {
		b.prevKey = append([]byte{}, key...)
		b.smallestKey = append([]byte{}, key...)
		b.haveKey = true
		b.numKeys++
		b.nodeStorage = append(b.nodeStorage, node{Child: [2]uint32{invalidPos, invalidPos}})
		return nil
	}

	newNodePos := uint32(len(b.nodeStorage) - 1)
	diffBit := compKey(key, b.prevKey)
	b.nodeStorage[newNodePos] = node{Child: [2]uint32{invalidPos, invalidPos}, DiffBit: diffBit}

	if b.rootPos == invalidPos {
		b.rootPos = newNodePos
	} else {
		fwd, bwd := b.fwdIdx(), b.bwdIdx()
		parent := invalidPos
		child := b.rootPos
		isLeaf := false
		for {
			n := &b.nodeStorage[child]
			if diffBit < n.DiffBit {
				isLeaf = false
				break
			}
			next := n.Child[fwd]
			if next == invalidPos {
				isLeaf = true
				break
			}
			parent = child
			child = next
		}
		if isLeaf {
			b.nodeStorage[child].Child[fwd] = newNodePos
		} else {
			if parent == invalidPos {
				b.rootPos = newNodePos
			} else {
				b.nodeStorage[parent].Child[fwd] = newNodePos
			}
			b.nodeStorage[newNodePos].Child[bwd] = child
		}
	}

	b.prevKey = append(b.prevKey[:0], key...)
	b.largestKey = append(b.largestKey[:0], key...)
	b.numKeys++
	b.nodeStorage = append(b.nodeStorage, node{Child: [2]uint32{invalidPos, invalidPos}})
	return nil
}

// SmallestKey returns the first key inserted (the trie's lower
// boundary in insertion order).
func (b *Builder) SmallestKey() []byte { return b.smallestKey }

// LargestKey returns the most recently inserted key (the trie's upper
// boundary in insertion order). Before a second key is inserted this
// equals SmallestKey.
func (b *Builder) LargestKey() []byte {
	if b.largestKey == nil {
		return b.smallestKey
	}
	return b.largestKey
}

// Encode BFS-flattens node_storage_ into the 2N+1-bit encoded_trie_
// bitmap (2 bits per node: left-child-present, right-child-present) and
// the BFS-order diff_bit_array_, recording the BFS depth count in layer.
// The trailing placeholder node left over from the last Insert call is
// never reachable from root via a child edge, so the BFS naturally
// excludes it — the caller (CritBitTriePackedBuilder) pops it before
// calling Encode purely to free its memory early, which PopPlaceholder
// does.
func (b *Builder) Encode() {
	n := len(b.nodeStorage)
	b.encodedTrie = rankselect.New(2*n + 1)
	if n == 0 {
		b.encodedTrie.BuildCache(false, false)
		return
	}
	queue := []uint32{b.rootPos}
	bitPos := 0
	var layer uint64
	for len(queue) > 0 {
		qsize := len(queue)
		for i := 0; i < qsize; i++ {
			front := queue[0]
			queue = queue[1:]
			nd := b.nodeStorage[front]
			b.diffBitArray = append(b.diffBitArray, nd.DiffBit)
			for _, childPos := range nd.Child {
				if childPos != invalidPos {
					b.encodedTrie.Set1(bitPos)
					queue = append(queue, childPos)
				} else {
					b.encodedTrie.Set0(bitPos)
				}
				bitPos++
			}
		}
		layer++
	}
	b.layer = layer
	b.encodedTrie.BuildCache(false, false)
}

// PopPlaceholder discards the trailing not-yet-used node that every
// Insert call leaves behind, matching the source's "pop_back before
// encode" bookkeeping (crit_bit_trie.cpp, CritBitTriePackedBuilder's use
// of each sub-builder).
func (b *Builder) PopPlaceholder() {
	if len(b.nodeStorage) > 0 {
		b.nodeStorage = b.nodeStorage[:len(b.nodeStorage)-1]
	}
}

// CompressDiffBitArray derives per-node diff-bit deltas relative to
// their parent's diff-bit, histograms the deltas, and picks the
// base_bit_num that minimizes total storage — base_.get(id) for small
// deltas, base_+[extra_.get(bitmap_.rank1(id))<<base_bit_num] when
// bitmap_ marks an overflow (crit_bit_trie.cpp
// compress_diff_bit_array).
func (b *Builder) CompressDiffBitArray() {
	hist := histogram.New(1 << 16)
	diffBitDelta := make([]uint64, 0, len(b.diffBitArray))
	if len(b.diffBitArray) > 0 {
		diffBitDelta = append(diffBitDelta, b.diffBitArray[0])
		hist.Inc(b.diffBitArray[0])
	}
	for parentRank := 0; parentRank < len(b.diffBitArray); parentRank++ {
		for side := 0; side < 2; side++ {
			childPos := parentRank*2 + side
			if !b.encodedTrie.Is1(childPos) {
				continue
			}
			childRank := b.encodedTrie.Rank1(childPos + 1)
			delta := b.diffBitArray[childRank] - b.diffBitArray[parentRank]
			diffBitDelta = append(diffBitDelta, delta)
			hist.Inc(delta)
		}
	}
	hist.Finish()

	maxDeltaBitNum := bitvec.ComputeUintbits(hist.MaxKeyLen)
	var totalStorageSize uint64 = ^uint64(0)
	var baseBitNum uint64
	for i := uint64(1); i <= uint64(maxDeltaBitNum); i++ {
		maxBase := ^uint64(0) >> (64 - i)
		var belowNum uint64
		hist.ForEach(func(key, cnt uint64) {
			if key <= maxBase {
				belowNum += cnt
			}
		})
		upperNum := hist.CntSum - belowNum
		cost := hist.CntSum*i + upperNum*(uint64(maxDeltaBitNum)-i)
		if cost < totalStorageSize {
			totalStorageSize = cost
			baseBitNum = i
		}
	}
	extraBitNum := uint64(maxDeltaBitNum) - baseBitNum
	baseMax := ^uint64(0) >> (64 - baseBitNum)

	base, _ := bitvec.ResizeWithUintbits(len(diffBitDelta), int(baseBitNum))
	extraWidth := int(extraBitNum)
	if extraWidth == 0 {
		extraWidth = 1
	}
	extra, _ := bitvec.New(extraWidth)
	bm := rankselect.New(len(diffBitDelta))
	for i, delta := range diffBitDelta {
		if delta <= baseMax {
			base.SetWire(i, delta)
			bm.Set0(i)
		} else {
			base.SetWire(i, delta&baseMax)
			bm.Set1(i)
			_ = extra.PushBack(delta >> baseBitNum)
		}
	}
	bm.BuildCache(false, false)

	b.baseBitNum = baseBitNum
	b.extraBitNum = extraBitNum
	b.base = base
	b.bitmap = bm
	b.extra = extra
}

// Finish assembles the read-side Trie. Must be called after Encode and
// CompressDiffBitArray.
//
// When isReverse is set, keys arrive in descending order, so hashVec
// (appended in insertion order) is back-to-front relative to the
// ascending rank space Index returns. It is reversed here so that
// hashVec[id] lines up with the same id Index/HashMatch use
// (original_source's CritBitTriePackedBuilder::newcbt does this same
// flip when assembling the packed hash vector).
func (b *Builder) Finish() *Trie {
	hashVec := b.hashVec
	if b.isReverse && hashVec != nil {
		hashVec = reverseVec(hashVec)
	}
	t := &Trie{
		BaseBitNum:  b.baseBitNum,
		ExtraBitNum: b.extraBitNum,
		Layer:       b.layer,
		EncodedTrie: b.encodedTrie,
		Base:        b.base,
		Bitmap:      b.bitmap,
		Extra:       b.extra,
		HashVec:     hashVec,
	}
	t.CalculateLayerPos()
	return t
}

func reverseVec(v *bitvec.Vec) *bitvec.Vec {
	out, _ := bitvec.New(v.Width())
	for i := v.Len() - 1; i >= 0; i-- {
		_ = out.PushBack(v.Get(i))
	}
	return out
}

// Layer returns the BFS depth computed by Encode.
func (b *Builder) Layer() uint64 { return b.layer }

// Len returns the number of keys inserted so far; PopPlaceholder does not
// change it.
func (b *Builder) Len() int { return b.numKeys }
