// Package cbtconfig loads a JSONC build-time configuration file for the
// packed CBT build pipeline (entry_per_trie, hash_bit_num, block_units,
// is_reverse, plus spec.md §6's SortableStrVec_* sort-tuning knobs,
// exposed here as struct fields rather than environment variables).
//
// Grounded on calvinalkan-agent-task/config.go's hujson.Standardize +
// encoding/json.Unmarshal pattern (the one repo in the retrieval pack
// that reaches for JSONC config).
package cbtconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/Priyanshu23/SuccinctGo/errs"
)

// Config holds the parameters a packed CBT build pipeline needs at
// build time, independent of any single run's in-process constructor
// arguments.
type Config struct {
	EntryPerTrie uint64 `json:"entry_per_trie"`
	HashBitNum   uint8  `json:"hash_bit_num,omitempty"`
	BlockUnits   int    `json:"block_units"`
	IsReverse    bool   `json:"is_reverse,omitempty"`

	// Sort-tuning knobs, mirroring the original's SortableStrVec_*
	// environment variables (spec.md §6) as struct fields.
	MinRadixSortStrLen   int  `json:"sortable_str_vec_min_radix_sort_str_len,omitempty"`
	UseMergeSort         bool `json:"sortable_str_vec_use_merge_sort,omitempty"`
	EnableParallelSort   bool `json:"sortable_str_vec_enable_parallel_sort,omitempty"`
	StatCompressLevel1   bool `json:"sortable_str_vec_stat_compress_level1,omitempty"`
	PrintHistogram       bool `json:"sortable_str_vec_print_histogram,omitempty"`
}

// Default returns the baseline configuration used when no config file is
// present.
func Default() Config {
	return Config{
		EntryPerTrie: 128,
		HashBitNum:   0,
		BlockUnits:   128,
		IsReverse:    false,
	}
}

// Load reads and parses a JSONC config file at path, standardizing
// comments/trailing-commas via hujson before handing the result to
// encoding/json.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse standardizes and unmarshals a JSONC document already in memory.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid JSONC: %v", errs.ErrCorruptHeader, err)
	}
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errs.ErrCorruptHeader, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the entry_per_trie and block_units invariants the
// builders themselves enforce, plus an upper bound of 63 on hash_bit_num,
// so a bad config file fails fast at load time rather than deep inside a
// build.
func (c Config) Validate() error {
	if c.EntryPerTrie == 0 {
		return fmt.Errorf("%w: entry_per_trie must be > 0", errs.ErrInvalidArgument)
	}
	if c.BlockUnits != 64 && c.BlockUnits != 128 {
		return fmt.Errorf("%w: block_units must be 64 or 128", errs.ErrInvalidArgument)
	}
	if c.HashBitNum > 63 {
		return fmt.Errorf("%w: hash_bit_num must be <= 63", errs.ErrInvalidArgument)
	}
	return nil
}
