package resub

import (
	"strconv"

	"github.com/coregx/coregex"
)

// SearchMode selects how the search expression is interpreted.
type SearchMode int

const (
	// ModeRegex compiles the expression as a regular expression.
	ModeRegex SearchMode = iota
	// ModeNormal searches for the expression as literal text, ignoring case.
	ModeNormal
	// ModeCaseSensitive searches for the expression as literal text.
	ModeCaseSensitive
)

// String returns the mode name.
func (m SearchMode) String() string {
	switch m {
	case ModeRegex:
		return "regex"
	case ModeNormal:
		return "normal"
	case ModeCaseSensitive:
		return "case-sensitive"
	default:
		return "SearchMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Config controls how an expression is compiled and replaced.
//
// Example:
//
//	config := resub.DefaultConfig()
//	config.Minimal = true // .* behaves like .*?
//	re, err := resub.CompileWithConfig(`<b>.*</b>`, config)
type Config struct {
	// Mode selects regex or literal search.
	// Default: ModeRegex
	Mode SearchMode

	// DotAll lets . match newlines, as the (?s) flag does.
	// Default: false
	DotAll bool

	// Minimal swaps greedy and non-greedy repetition, as the (?U) flag does.
	// Default: false
	Minimal bool

	// MaxReplacements caps the number of replacements a single Replace call
	// makes. Zero means no limit.
	// Default: 0
	MaxReplacements int
}

// DefaultConfig returns a configuration for plain regex search without
// flags or limits.
func DefaultConfig() Config {
	return Config{
		Mode: ModeRegex,
	}
}

// Validate checks if the configuration is valid.
//
// Valid values:
//   - Mode: ModeRegex, ModeNormal or ModeCaseSensitive
//   - MaxReplacements: 0 or more
func (c Config) Validate() error {
	switch c.Mode {
	case ModeRegex, ModeNormal, ModeCaseSensitive:
	default:
		return &ConfigError{
			Field:   "Mode",
			Message: "unknown search mode " + c.Mode.String(),
		}
	}

	if c.MaxReplacements < 0 {
		return &ConfigError{
			Field:   "MaxReplacements",
			Message: "must be 0 or more",
		}
	}

	return nil
}

// source returns the expression handed to coregex: literal modes quote
// expr, and enabled options become a leading flag group.
func (c Config) source(expr string) string {
	if c.Mode != ModeRegex {
		expr = coregex.QuoteMeta(expr)
	}

	flags := ""
	if c.Mode == ModeNormal {
		flags += "i"
	}
	if c.DotAll {
		flags += "s"
	}
	if c.Minimal {
		flags += "U"
	}
	if flags == "" {
		return expr
	}
	return "(?" + flags + ")" + expr
}
