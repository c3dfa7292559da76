package critbitpacked

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func buildPacked(t *testing.T, keys []string, entryPerTrie uint64) *Packed {
	t.Helper()
	b, err := NewBuilder(uint64(len(keys)), entryPerTrie, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, k := range keys {
		if err := b.Insert([]byte(k), uint64(i)); err != nil {
			t.Fatalf("Insert(%q,%d): %v", k, i, err)
		}
	}
	b.Encode()
	p, err := b.NewCBT()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func sortedFixtureKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = randKeyFixture(i)
	}
	sort.Strings(keys)
	out := keys[:0]
	var prev string
	for i, k := range keys {
		if i == 0 || k != prev {
			out = append(out, k)
		}
		prev = k
	}
	return out
}

func randKeyFixture(i int) string {
	b := make([]byte, 6)
	x := uint32(i)*2654435761 + 1
	for j := range b {
		x = x*1664525 + 1013904223
		b[j] = byte('a' + (x>>24)%26)
	}
	return string(b)
}

func TestPackedRoutesAcrossMultipleTries(t *testing.T) {
	keys := sortedFixtureKeys(250)
	p := buildPacked(t, keys, 32)

	wantTries := (len(keys) + 31) / 32
	if p.TrieNums() != wantTries {
		t.Fatalf("TrieNums() = %d, want %d", p.TrieNums(), wantTries)
	}

	for globalRank, k := range keys {
		trieIdx := globalRank / 32
		base := p.BaseRankID(trieIdx)
		trie := p.Trie(trieIdx)
		localRank, _ := trie.Index([]byte(k), false)
		if base+localRank != uint64(globalRank) {
			t.Fatalf("key %q: base(%d)+local(%d) = %d, want %d", k, base, localRank, base+localRank, globalRank)
		}
	}
}

func TestGetSmallestAndLargestID(t *testing.T) {
	keys := sortedFixtureKeys(100)
	p := buildPacked(t, keys, 20)
	for trieIdx := 0; trieIdx < p.TrieNums(); trieIdx++ {
		smallest := p.GetSmallestID(trieIdx)
		largest := p.GetLargestID(trieIdx)
		if smallest > largest {
			t.Fatalf("trie %d: smallest %d > largest %d", trieIdx, smallest, largest)
		}
	}
}

func TestPackedSaveLoadRoundTrip(t *testing.T) {
	keys := sortedFixtureKeys(150)
	p := buildPacked(t, keys, 40)
	data := p.Save()

	loaded, err := Load(data)
	require.NoError(t, err)
	require.Equal(t, p.TrieNums(), loaded.TrieNums())

	wantRanks := make([]int, len(keys))
	gotRanks := make([]int, len(keys))
	for globalRank, k := range keys {
		trieIdx := globalRank / 40
		base := loaded.BaseRankID(trieIdx)
		trie := loaded.Trie(trieIdx)
		localRank, _ := trie.Index([]byte(k), false)
		wantRanks[globalRank] = globalRank
		gotRanks[globalRank] = int(base + localRank)
	}
	if diff := cmp.Diff(wantRanks, gotRanks); diff != "" {
		t.Fatalf("round-tripped global ranks mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundsForwardOrder(t *testing.T) {
	keys := sortedFixtureKeys(64)
	b, err := NewBuilder(uint64(len(keys)), 16, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, k := range keys {
		if err := b.Insert([]byte(k), uint64(i)); err != nil {
			t.Fatal(err)
		}
	}
	bounds := b.Bounds(false)
	for i, k := range bounds {
		want := keys[i*16+15]
		if string(k) != want {
			t.Fatalf("bounds[%d] = %q, want %q", i, k, want)
		}
	}
}
