package critbit

import (
	"bytes"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func buildTrie(t *testing.T, keys []string) (*Builder, *Trie) {
	t.Helper()
	b := NewBuilder(false, 0)
	for _, k := range keys {
		if err := b.Insert([]byte(k)); err != nil {
			t.Fatalf("Insert(%q): %v", k, err)
		}
	}
	b.PopPlaceholder()
	b.Encode()
	b.CompressDiffBitArray()
	return b, b.Finish()
}

func TestIndexRankMatchesSortedPosition(t *testing.T) {
	keys := []string{"apple", "banana", "cherry", "date", "fig", "grape", "kiwi"}
	_, trie := buildTrie(t, keys)
	for want, k := range keys {
		rank, _ := trie.Index([]byte(k), false)
		if int(rank) != want {
			t.Fatalf("Index(%q) rank = %d, want %d", k, rank, want)
		}
	}
}

func TestIndexRejectsDuplicateInsert(t *testing.T) {
	b := NewBuilder(false, 0)
	if err := b.Insert([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := b.Insert([]byte("a")); err == nil {
		t.Fatal("expected ErrDuplicateKey")
	}
}

func TestLowerBoundBetweenKeys(t *testing.T) {
	keys := []string{"apple", "banana", "cherry", "date", "fig"}
	_, trie := buildTrie(t, keys)

	bestMatchKey := []byte("cherry")
	_, path := trie.Index(bestMatchKey, true)

	// "cat" sorts between "banana" and "cherry": lower_bound should land
	// on rank 2 ("cherry"), same as comparing against bestMatchKey with
	// c < 0 (cat < cherry).
	c := bytes.Compare([]byte("cat"), bestMatchKey)
	rank := trie.LowerBound([]byte("cat"), bestMatchKey, path, c)
	if rank != 2 {
		t.Fatalf("LowerBound(cat) = %d, want 2", rank)
	}
}

func TestHashMatchAcceptsInsertedKeys(t *testing.T) {
	keys := []string{"alpha", "beta", "delta", "gamma"}
	b := NewBuilder(false, 16)
	for _, k := range keys {
		if err := b.Insert([]byte(k)); err != nil {
			t.Fatal(err)
		}
	}
	b.PopPlaceholder()
	b.Encode()
	b.CompressDiffBitArray()
	trie := b.Finish()

	for i, k := range keys {
		if !trie.HashMatch([]byte(k), uint64(i), 16) {
			t.Fatalf("HashMatch(%q, %d) = false, want true", k, i)
		}
	}
}

func TestCompKeyPrefixRelationship(t *testing.T) {
	// "ab" is a strict prefix of "abc": diff bit should land exactly at
	// byte_index 2 (the end of the shorter key), bit 0.
	got := compKey([]byte("ab"), []byte("abc"))
	want := uint64(2 * 9)
	if got != want {
		t.Fatalf("compKey(ab,abc) = %d, want %d", got, want)
	}
}

func TestTestKeyMatchesByteBits(t *testing.T) {
	key := []byte{0b1011_0000}
	// bit 1 (MSB of byte 0) should be 1, bit 2 should be 0.
	if !testKey(key, 1) {
		t.Fatal("testKey bit1 = false, want true")
	}
	if testKey(key, 2) {
		t.Fatal("testKey bit2 = true, want false")
	}
	// bit 0 always means "key continues" -> true whenever within range.
	if !testKey(key, 0) {
		t.Fatal("testKey bit0 = false, want true")
	}
	// Past the key's length entirely -> false.
	if testKey(key, 9) {
		t.Fatal("testKey past end = true, want false")
	}
}

func TestBuilderLargeSortedSet(t *testing.T) {
	var keys []string
	for i := 0; i < 500; i++ {
		keys = append(keys, randKeyFixture(i))
	}
	sort.Strings(keys)
	// de-duplicate after sorting, Insert rejects repeats.
	dedup := keys[:0]
	var prev string
	for i, k := range keys {
		if i == 0 || k != prev {
			dedup = append(dedup, k)
		}
		prev = k
	}
	b, trie := buildTrie(t, dedup)
	require.Equal(t, len(dedup), b.Len())

	gotRanks := make([]int, len(dedup))
	for i, k := range dedup {
		rank, _ := trie.Index([]byte(k), false)
		gotRanks[i] = int(rank)
	}
	wantRanks := make([]int, len(dedup))
	for i := range wantRanks {
		wantRanks[i] = i
	}
	if diff := cmp.Diff(wantRanks, gotRanks); diff != "" {
		t.Fatalf("Index rank mismatch across 500-key fixture (-want +got):\n%s", diff)
	}
}

func randKeyFixture(i int) string {
	// Deterministic pseudo-random-looking fixed-width keys, no math/rand
	// dependency needed for a reproducible fixture.
	b := make([]byte, 6)
	x := uint32(i)*2654435761 + 1
	for j := range b {
		x = x*1664525 + 1013904223
		b[j] = byte('a' + (x>>24)%26)
	}
	return string(b)
}
