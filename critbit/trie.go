// Package critbit implements the per-block crit-bit trie (CBT) described
// in spec.md §4.F: a bit-compressed binary trie whose per-node diff-bit
// positions are Elias-style base+extra codes over a BFS-laid-out
// rank/select bitmap. Grounded on
// original_source/src/terark/fsa/crit_bit_trie.{hpp,cpp}.
package critbit

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"

	"github.com/Priyanshu23/SuccinctGo/bitvec"
	"github.com/Priyanshu23/SuccinctGo/rankselect"
)

const invalidPos = ^uint32(0)

// PathElement records, for one step of a prior Index() descent, which
// child was taken and the node id visited — replayed by LowerBound.
type PathElement struct {
	IsRight bool
	ID      uint64
}

// Path is the sequence of PathElements Index() records when asked to.
type Path []PathElement

// Trie is a loaded, read-only crit-bit trie block.
type Trie struct {
	BaseBitNum  uint64
	ExtraBitNum uint64
	Layer       uint64

	EncodedTrie *rankselect.Bitmap
	Base        *bitvec.Vec
	Bitmap      *rankselect.Bitmap
	Extra       *bitvec.Vec
	HashVec     *bitvec.Vec // nil when hash filtering is disabled

	layerID   []uint64
	layerRank []uint64
}

// CalculateLayerPos rebuilds the derived layer_id/layer_rank caches
// (spec.md §4.F: "Derived caches (rebuilt after load)").
func (t *Trie) CalculateLayerPos() {
	t.layerID = make([]uint64, t.Layer+1)
	t.layerRank = make([]uint64, t.Layer+1)
	if t.EncodedTrie.Size() == 0 {
		return
	}
	var id, rank uint64
	for layer := uint64(1); layer < uint64(len(t.layerID)); layer++ {
		pos := (id + 1) * 2
		rank = uint64(t.EncodedTrie.Rank0(int(pos)))
		id = pos - rank
		t.layerID[layer] = id
		t.layerRank[layer] = rank
	}
}

// testKey reports whether bit diffBit of key is set, under the
// byte_index*9 + bit_index_in_byte diff-bit encoding (spec.md §3): bit 0
// of a byte means "key continues past this byte", bits 1..8 select a bit
// MSB-first.
func testKey(key []byte, diffBit uint64) bool {
	quot := diffBit / 9
	rem := diffBit % 9
	if quot >= uint64(len(key)) {
		return false
	}
	if rem == 0 {
		return true
	}
	return (key[quot]>>(8-rem))&1 == 1
}

// compKey returns the diff-bit position of the first differing bit (or
// length*9 for a pure-prefix relationship) between key and key2.
func compKey(key, key2 []byte) uint64 {
	minLen := len(key)
	if len(key2) < minLen {
		minLen = len(key2)
	}
	diffByte := 0
	for ; diffByte < minLen; diffByte++ {
		if key[diffByte] != key2[diffByte] {
			break
		}
	}
	if diffByte == minLen {
		return uint64(diffByte) * 9
	}
	x := key[diffByte] ^ key2[diffByte]
	lz := bits.LeadingZeros32(uint32(x) << 23)
	return uint64(diffByte)*9 + uint64(lz)
}

// CompKey exports compKey for the packed builder's get_bounds and the
// outer trie's three-way comparison.
func CompKey(key, key2 []byte) uint64 { return compKey(key, key2) }

// MakeDiffBit decodes the diff-bit position stored at node id, chaining
// from diffBase (the parent's already-decoded diff-bit).
func (t *Trie) MakeDiffBit(id, diffBase uint64) uint64 {
	baseVal := t.Base.Get(int(id)) + diffBase
	if t.Bitmap.Is0(int(id)) {
		return baseVal
	}
	idx := t.Bitmap.Rank1(int(id))
	return (t.Extra.Get(idx) << t.BaseBitNum) + baseVal
}

// HashMatch reports whether key's hash suffix matches the stored one for
// leaf id, used by the outer trie to reject false positives before a
// full key comparison.
func (t *Trie) HashMatch(key []byte, id uint64, hashBitNum uint8) bool {
	var hashMask uint64
	if hashBitNum > 0 {
		hashMask = ^uint64(0) >> (64 - hashBitNum)
	}
	return xxhash.Sum64(key)&hashMask == t.HashVec.Get(int(id))
}

// climbToLayerID replays the source's `while (id != layer_id_[layer++])`
// tail loop shared by Index and LowerBound: walk the BFS frontier along
// the taken side until the node id matches the expected id at the final
// layer, accumulating rank along the way.
func (t *Trie) climbToLayerID(id, rank, layer uint64) uint64 {
	for {
		expect := t.layerID[layer]
		layer++
		if id == expect {
			return rank
		}
		pos := (id + 1) * 2
		id = uint64(t.EncodedTrie.Rank1(int(pos)))
		rank += (pos - id) - t.layerRank[layer]
	}
}

// Index descends from the root comparing diffBit positions against key,
// returning the leaf rank within this block. When wantPath is true, the
// taken path is recorded for a subsequent LowerBound call.
func (t *Trie) Index(key []byte, wantPath bool) (uint64, Path) {
	var path Path
	if t.Base.Len() == 0 {
		return 0, path
	}
	var id, rank, diffBase uint64
	layer := uint64(0)
	for {
		diffBit := t.MakeDiffBit(id, diffBase)
		diffBase = diffBit
		isRight := testKey(key, diffBit)
		if wantPath {
			path = append(path, PathElement{IsRight: isRight, ID: id})
		}
		var ir uint64
		if isRight {
			ir = 1
		}
		pos := id*2 + ir
		newID := uint64(t.EncodedTrie.Rank1(int(pos)))
		rank += (pos - newID) - t.layerRank[layer]
		if t.EncodedTrie.Is1(int(pos)) {
			layer++
			id = newID + 1
		} else {
			id = newID
			break
		}
	}
	rank = t.climbToLayerID(id, rank, layer)
	return rank, path
}

// LowerBound replays path (produced by Index(bestMatchKey, true) on this
// same block) until the first node whose diff-bit exceeds the common
// prefix length of key and bestMatchKey, then branches by the sign c =
// sign(key, bestMatchKey) alone down to a leaf.
func (t *Trie) LowerBound(key, bestMatchKey []byte, path Path, c int) uint64 {
	commonBits := compKey(key, bestMatchKey)
	var rankInc uint64
	if c > 0 {
		rankInc = 1
	}
	if len(path) == 0 {
		return rankInc
	}
	var id, rank, diffBase uint64
	layer := uint64(0)
	for {
		diffBit := t.MakeDiffBit(id, diffBase)
		diffBase = diffBit
		if diffBit > commonBits {
			for {
				pos := id*2 + rankInc
				newID := uint64(t.EncodedTrie.Rank1(int(pos)))
				rank += (pos - newID) - t.layerRank[layer]
				if t.EncodedTrie.Is1(int(pos)) {
					layer++
					id = newID + 1
				} else {
					id = newID
					break
				}
			}
			break
		}
		var ir uint64
		if path[layer].IsRight {
			ir = 1
		}
		pos := id*2 + ir
		if int(layer)+1 < len(path) {
			id = path[layer+1].ID
			rank += (pos - id) - t.layerRank[layer] + 1
			layer++
		} else {
			id = uint64(t.EncodedTrie.Rank1(int(pos)))
			rank += (pos - id) - t.layerRank[layer]
			break
		}
	}
	rank = t.climbToLayerID(id, rank, layer)
	return rank + rankInc
}

// RiskReleaseOwnership hands ownership of all sub-arrays out, used
// during mmap teardown.
func (t *Trie) RiskReleaseOwnership() {
	t.EncodedTrie.RiskReleaseOwnership()
	t.Base.RiskReleaseOwnership()
	t.Bitmap.RiskReleaseOwnership()
	t.Extra.RiskReleaseOwnership()
	if t.HashVec != nil {
		t.HashVec.RiskReleaseOwnership()
	}
}
