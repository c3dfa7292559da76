// Command cbtshell is a tiny interactive demo that opens a saved packed
// CBT file and lets a user type keys at a prompt to see index and
// hash_match results. It is not a CLI surface over the
// on-disk format (no flags, no subcommands) — spec.md §6 keeps a real
// CLI out of scope, but this is the same kind of thin demo entrypoint
// the teacher ships as main.go, grounded on peterh/liner's line-editing
// prompt loop.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/Priyanshu23/SuccinctGo/cbtfile"
	"github.com/Priyanshu23/SuccinctGo/critbitpacked"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <packed-cbt-file>\n", os.Args[0])
		os.Exit(2)
	}

	f, err := cbtfile.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
	defer f.Close()

	packed, err := critbitpacked.Load(f.Bytes())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	fmt.Printf("loaded %d sub-tries, max layer %d, hash_bit_num %d\n",
		packed.TrieNums(), packed.MaxLayer(), packed.HashBitNum())

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("cbtshell> ")
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "prompt: %v\n", err)
			return
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		lookup(packed, input)
	}
}

func lookup(packed *critbitpacked.Packed, key string) {
	keyBytes := []byte(key)
	for trieIdx := 0; trieIdx < packed.TrieNums(); trieIdx++ {
		trie := packed.Trie(trieIdx)
		smallest := packed.GetSmallestID(trieIdx)
		largest := packed.GetLargestID(trieIdx)
		if largest < smallest {
			continue
		}
		localRank, _ := trie.Index(keyBytes, false)
		globalRank := packed.BaseRankID(trieIdx) + localRank
		fmt.Printf("trie %d [rank %d..%d]: index(%q) -> local rank %d, global rank %d\n",
			trieIdx, smallest, largest, key, localRank, globalRank)
		if packed.HashBitNum() > 0 {
			matched := trie.HashMatch(keyBytes, localRank, packed.HashBitNum())
			fmt.Printf("  hash_match -> %v\n", matched)
		}
	}
}
