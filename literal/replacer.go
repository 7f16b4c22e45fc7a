// Package literal replaces many literal search strings in one pass.
//
// All search strings are compiled into a single Aho-Corasick automaton, so
// the input is scanned once no matter how many rules there are. This is the
// batch counterpart of resub.ModeCaseSensitive: matching is exact and
// case-sensitive.
//
// Replacement patterns use the same escape syntax as package subst, with the
// matched search string as the whole match (\0). There are no other groups.
//
// When several search strings match at the same position, the rule added
// first wins, not the longest one. With rules "ab", "abc" and "bcd" in that
// order, "abcd" becomes the replacement for "ab" followed by "cd".
//
// Example:
//
//	r, err := literal.NewReplacer(
//	    literal.Rule{Find: "colour", Replace: "color"},
//	    literal.Rule{Find: "todo", Replace: `\U\0\E:`},
//	)
//	out, n := r.Replace("todo: pick a colour", -1)
//	// out = "TODO:: pick a color", n = 2
package literal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/resub/subst"
)

// ErrEmptyNeedle indicates a rule with an empty search string.
var ErrEmptyNeedle = errors.New("literal: empty search string")

// Rule pairs a literal search string with a replacement pattern.
type Rule struct {
	Find    string
	Replace string
}

// Replacer applies a fixed set of rules. It is immutable after construction
// and safe for concurrent use.
type Replacer struct {
	auto      *ahocorasick.Automaton
	rules     []Rule
	templates []subst.Template
	index     map[string]int
}

// NewReplacer builds a Replacer from rules. When several rules share the
// same search string the first one is kept.
//
// Returns ErrEmptyNeedle if any rule has an empty Find.
func NewReplacer(rules ...Rule) (*Replacer, error) {
	r := &Replacer{
		index: make(map[string]int, len(rules)),
	}
	if len(rules) == 0 {
		return r, nil
	}

	builder := ahocorasick.NewBuilder()
	for _, rule := range rules {
		if rule.Find == "" {
			return nil, ErrEmptyNeedle
		}
		if _, dup := r.index[rule.Find]; dup {
			continue
		}
		r.index[rule.Find] = len(r.rules)
		r.rules = append(r.rules, rule)
		r.templates = append(r.templates, subst.NewTemplate(rule.Replace))
		builder.AddPattern([]byte(rule.Find))
	}

	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("literal: building automaton: %w", err)
	}
	r.auto = auto
	return r, nil
}

// Len returns the number of distinct rules.
func (r *Replacer) Len() int {
	return len(r.rules)
}

// Contains reports whether src contains any search string.
func (r *Replacer) Contains(src string) bool {
	if r.auto == nil {
		return false
	}
	return r.auto.IsMatch([]byte(src))
}

// Replace returns a copy of src with up to n non-overlapping matches
// replaced, scanning left to right, and the number of replacements made.
// n < 0 replaces every match. Where matches start at the same position the
// earliest added rule is used.
func (r *Replacer) Replace(src string, n int) (string, int) {
	if r.auto == nil || n == 0 || src == "" {
		return src, 0
	}

	haystack := []byte(src)
	var sb strings.Builder
	count := 0
	lastEnd := 0

	for at := 0; at < len(haystack); {
		m := r.auto.Find(haystack, at)
		if m == nil {
			break
		}

		tmpl := r.templates[r.index[src[m.Start:m.End]]]
		spans := []subst.Span{{Start: m.Start, End: m.End}}
		text, ok := tmpl.Build(wholeMatch{}, src, spans)
		if !ok {
			// wholeMatch is always valid.
			panic("literal: replacement rejected a literal match")
		}

		if count == 0 {
			sb.Grow(len(src))
		}
		sb.WriteString(src[lastEnd:m.Start])
		sb.WriteString(text)
		lastEnd = m.End
		at = m.End
		count++

		if n > 0 && count >= n {
			break
		}
	}

	if count == 0 {
		return src, 0
	}
	sb.WriteString(src[lastEnd:])
	return sb.String(), count
}

// wholeMatch is the subst.Regexp for a literal match: always valid, no
// named groups.
type wholeMatch struct{}

func (wholeMatch) IsValid() bool { return true }

func (wholeMatch) SubexpIndex(string) int { return -1 }
