package duckdb

import (
	"sort"
	"strconv"
)

// Params holds DuckDB-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// Threads limits the worker threads DuckDB uses.
	Threads int `mapstructure:"threads"`

	// MemoryLimit caps memory use, e.g. "4GB".
	MemoryLimit string `mapstructure:"memory_limit"`

	// Settings to apply at session level (e.g., preserve_insertion_order)
	Settings map[string]string `mapstructure:"settings"`
}

// setting is one SET statement to run after connecting.
type setting struct {
	name  string
	value string
}

// settings returns the explicit fields followed by Settings in key order.
func (p *Params) settings() []setting {
	var out []setting
	if p.Threads > 0 {
		out = append(out, setting{"threads", strconv.Itoa(p.Threads)})
	}
	if p.MemoryLimit != "" {
		out = append(out, setting{"memory_limit", p.MemoryLimit})
	}

	keys := make([]string, 0, len(p.Settings))
	for k := range p.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, setting{k, p.Settings[k]})
	}
	return out
}
