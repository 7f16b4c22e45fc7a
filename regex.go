// Package resub performs regex search and replace with PCRE-style replacement
// patterns on top of the coregex engine.
//
// Matching is done by coregex. Replacement patterns use backslash escapes
// rather than the $1 syntax of the stdlib:
//
//	\0 .. \9, \g{N}, \g<N>    numbered groups (\0 is the whole match)
//	\g{name}, \g<name>        named groups
//	\n \t \r \f \v \a \b \\   control characters
//	\xHH, \x{HHHH}, \x{PPHHHH} code points
//	\l \u \L \U \E            case changes
//
// Malformed escapes are copied to the output unchanged instead of failing.
// See package subst for the full rules.
//
// Basic usage:
//
//	re := resub.MustCompile(`(?P<year>\d{4})-(?P<month>\d{2})`)
//	out := re.ReplaceAllString("due 2024-05", `\g{month}/\g{year}`)
//	// out = "due 05/2024"
//
// Literal search modes:
//
//	config := resub.DefaultConfig()
//	config.Mode = resub.ModeNormal // literal text, case-insensitive
//	re, err := resub.CompileWithConfig("a.b", config)
package resub

import (
	"strings"

	"github.com/coregx/coregex"

	"github.com/coregx/resub/subst"
)

// Regex is a compiled search expression.
//
// A Regex is immutable and safe to use concurrently from multiple goroutines.
// The zero value and a nil *Regex are not usable: IsValid reports false and
// replacements fail with ErrInvalidPattern.
type Regex struct {
	re     *coregex.Regex
	expr   string
	config Config
	names  []string
}

// Compile compiles expr as a regular expression with the default
// configuration.
//
// Example:
//
//	re, err := resub.Compile(`(\w+)@(\w+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(expr string) (*Regex, error) {
	return CompileWithConfig(expr, DefaultConfig())
}

// MustCompile is like Compile but panics if the expression cannot be compiled.
func MustCompile(expr string) *Regex {
	re, err := Compile(expr)
	if err != nil {
		panic("resub: Compile(`" + expr + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles expr according to config.
//
// In ModeNormal and ModeCaseSensitive expr is searched for literally.
// Returns a *ConfigError for an invalid configuration and a *CompileError
// when coregex rejects the expression.
//
// Example:
//
//	config := resub.DefaultConfig()
//	config.DotAll = true
//	re, err := resub.CompileWithConfig(`<p>.*?</p>`, config)
func CompileWithConfig(expr string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	re, err := coregex.Compile(config.source(expr))
	if err != nil {
		return nil, &CompileError{Pattern: expr, Err: err}
	}

	return &Regex{
		re:     re,
		expr:   expr,
		config: config,
		names:  re.SubexpNames(),
	}, nil
}

// String returns the expression as passed to Compile, before any mode
// flags or quoting were applied.
func (r *Regex) String() string {
	if r == nil {
		return ""
	}
	return r.expr
}

// Config returns the configuration the Regex was compiled with.
func (r *Regex) Config() Config {
	if r == nil {
		return Config{}
	}
	return r.config
}

// IsValid reports whether r holds a compiled expression.
func (r *Regex) IsValid() bool {
	return r != nil && r.re != nil
}

// NumSubexp returns the number of capture groups, not counting the whole
// match.
func (r *Regex) NumSubexp() int {
	if !r.IsValid() || len(r.names) == 0 {
		return 0
	}
	return len(r.names) - 1
}

// SubexpNames returns the names of the capture groups. names[0] is always
// the empty string. The slice is shared and must not be modified.
func (r *Regex) SubexpNames() []string {
	if !r.IsValid() {
		return nil
	}
	return r.names
}

// SubexpIndex returns the index of the first group with the given name, or
// -1 if there is no such group.
func (r *Regex) SubexpIndex(name string) int {
	if name == "" || !r.IsValid() {
		return -1
	}
	for i, n := range r.names {
		if n == name {
			return i
		}
	}
	return -1
}

// FindStringSubmatchIndex returns the index pairs of the leftmost match and
// its groups, or nil if there is no match. Unmatched groups have -1 indices.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	if !r.IsValid() {
		return nil
	}
	return r.re.FindStringSubmatchIndex(s)
}

// Expand appends the replacement for one match to dst and returns the result.
// match holds index pairs into src as returned by FindStringSubmatchIndex.
// dst is returned unchanged when r is not valid.
//
// Example:
//
//	re := resub.MustCompile(`(\w+)@(\w+)`)
//	src := "mail: user@example"
//	m := re.FindStringSubmatchIndex(src)
//	out := re.Expand(nil, `\2 \U\1`, src, m)
//	// out = []byte("example USER")
func (r *Regex) Expand(dst []byte, template, src string, match []int) []byte {
	text, ok := subst.Build(r, src, subst.SpansFromIndex(match), template)
	if !ok {
		return dst
	}
	return append(dst, text...)
}

// Replace returns a copy of src with up to n matches replaced by the
// expansion of repl, and the number of replacements made. n < 0 replaces
// every match; Config.MaxReplacements, when set, caps n.
//
// The only error is ErrInvalidPattern, returned for an unusable Regex.
//
// Example:
//
//	re := resub.MustCompile(`\d+`)
//	out, count, err := re.Replace("1 2 3", `<\0>`, 2)
//	// out = "<1> <2> 3", count = 2
func (r *Regex) Replace(src, repl string, n int) (string, int, error) {
	if !r.IsValid() {
		return src, 0, ErrInvalidPattern
	}

	if limit := r.config.MaxReplacements; limit > 0 && (n < 0 || n > limit) {
		n = limit
	}
	if n == 0 {
		return src, 0, nil
	}

	matches := r.matches(src)
	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	if len(matches) == 0 {
		return src, 0, nil
	}

	tmpl := subst.NewTemplate(repl)
	var sb strings.Builder
	sb.Grow(len(src))
	lastEnd := 0
	for _, m := range matches {
		text, ok := tmpl.Build(r, src, subst.SpansFromIndex(m))
		if !ok {
			return src, 0, ErrInvalidPattern
		}

		// Append text before match
		sb.WriteString(src[lastEnd:m[0]])
		sb.WriteString(text)
		lastEnd = m[1]
	}

	// Append remaining text
	sb.WriteString(src[lastEnd:])
	return sb.String(), len(matches), nil
}

// matches returns the index pairs of every match in src, laid out like
// FindAllStringSubmatchIndex and following the regexp package's rules for
// successive matches: an empty match directly after the previous match is
// skipped, and matches never overlap.
//
// Match boundaries come from FindAllStringIndex. The submatch search of
// coregex can report extra or repeated empty matches, so its group spans
// are only used where its whole-match span agrees with a boundary.
func (r *Regex) matches(src string) [][]int {
	bounds := r.re.FindAllStringIndex(src, -1)
	if len(bounds) == 0 {
		return nil
	}

	groups := r.NumSubexp()
	var subs [][]int
	if groups > 0 {
		subs = r.re.FindAllStringSubmatchIndex(src, -1)
	}

	out := make([][]int, 0, len(bounds))
	prevEnd := -1
	cursor := 0
	for _, b := range bounds {
		start, end := b[0], b[1]
		if start < prevEnd || (start == end && start == prevEnd) {
			continue
		}
		prevEnd = end

		if groups == 0 {
			out = append(out, []int{start, end})
			continue
		}
		var m []int
		m, cursor = r.submatchAt(src, subs, cursor, start, end, groups)
		out = append(out, m)
	}
	return out
}

// submatchAt returns the group index pairs for the match src[start:end].
// subs is searched from cursor; the returned cursor is where the next
// search should begin.
func (r *Regex) submatchAt(src string, subs [][]int, cursor, start, end, groups int) ([]int, int) {
	for cursor < len(subs) && len(subs[cursor]) >= 2 && subs[cursor][0] < start {
		cursor++
	}
	for i := cursor; i < len(subs) && len(subs[i]) >= 2 && subs[i][0] == start; i++ {
		if subs[i][1] == end {
			return subs[i], i + 1
		}
	}

	// Anchor a fresh search at start; accept it only if it agrees.
	if m := r.re.FindStringSubmatchIndex(src[start:]); len(m) >= 2 && m[0] == 0 && m[1] == end-start {
		shifted := make([]int, len(m))
		for i, v := range m {
			if v >= 0 {
				v += start
			}
			shifted[i] = v
		}
		return shifted, cursor
	}

	// Whole match only.
	m := make([]int, 2*(groups+1))
	for i := range m {
		m[i] = -1
	}
	m[0], m[1] = start, end
	return m, cursor
}

// ReplaceAllString returns a copy of src with every match replaced by the
// expansion of repl. src is returned unchanged when r is not valid.
//
// Example:
//
//	re := resub.MustCompile(`(\w+)@(\w+)\.(\w+)`)
//	out := re.ReplaceAllString("user@example.com", `\1 at \2 dot \3`)
//	// out = "user at example dot com"
func (r *Regex) ReplaceAllString(src, repl string) string {
	out, _, err := r.Replace(src, repl, -1)
	if err != nil {
		return src
	}
	return out
}

// ReplaceAll is the []byte version of ReplaceAllString. It always returns a
// new slice.
func (r *Regex) ReplaceAll(src, repl []byte) []byte {
	return []byte(r.ReplaceAllString(string(src), string(repl)))
}
