package sqlite

import "strconv"

// Params holds SQLite-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// BusyTimeout is how long, in milliseconds, a locked database is retried.
	BusyTimeout int `mapstructure:"busy_timeout"`

	// JournalMode sets PRAGMA journal_mode (e.g. "wal", "delete").
	JournalMode string `mapstructure:"journal_mode"`

	// Synchronous sets PRAGMA synchronous (e.g. "normal", "off").
	Synchronous string `mapstructure:"synchronous"`
}

// pragmas returns the PRAGMA statements implied by the params.
func (p *Params) pragmas() []string {
	var out []string
	if p.BusyTimeout > 0 {
		out = append(out, "PRAGMA busy_timeout = "+strconv.Itoa(p.BusyTimeout))
	}
	if p.JournalMode != "" {
		out = append(out, "PRAGMA journal_mode = "+p.JournalMode)
	}
	if p.Synchronous != "" {
		out = append(out, "PRAGMA synchronous = "+p.Synchronous)
	}
	return out
}
