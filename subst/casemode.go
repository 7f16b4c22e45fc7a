package subst

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// caseMode is the case directive in effect.
type caseMode uint8

const (
	caseNone caseMode = iota
	caseLowerNext
	caseUpperNext
	caseLower
	caseUpper
)

// caseEngine rewrites emitted segments according to the active directive.
//
// \l and \u map the first character of the next segment with the simple
// per-rune mapping. \L and \U map whole segments with the full Unicode
// mapping, so "ß" upper-cases to "SS". A segment is a single literal
// character, a decoded escape or a complete group substitution.
type caseEngine struct {
	mode caseMode

	// Casers keep transform state and are created on first use.
	lower *cases.Caser
	upper *cases.Caser
}

// request activates m unless another directive is already active.
func (c *caseEngine) request(m caseMode) {
	if c.mode == caseNone {
		c.mode = m
	}
}

func (c *caseEngine) clear() {
	c.mode = caseNone
}

// consumeNext ends a pending \l or \u without changing any text.
func (c *caseEngine) consumeNext() {
	if c.mode == caseLowerNext || c.mode == caseUpperNext {
		c.mode = caseNone
	}
}

// apply returns segment rewritten for the current mode. An empty segment
// leaves a pending \l or \u in place.
func (c *caseEngine) apply(segment string) string {
	if segment == "" {
		return segment
	}

	switch c.mode {
	case caseLowerNext:
		c.mode = caseNone
		return mapFirst(segment, unicode.ToLower)
	case caseUpperNext:
		c.mode = caseNone
		return mapFirst(segment, unicode.ToUpper)
	case caseLower:
		if c.lower == nil {
			lc := cases.Lower(language.Und)
			c.lower = &lc
		}
		return c.lower.String(segment)
	case caseUpper:
		if c.upper == nil {
			uc := cases.Upper(language.Und)
			c.upper = &uc
		}
		return c.upper.String(segment)
	}
	return segment
}

// mapFirst applies f to the first rune of s. Invalid UTF-8 is left alone.
func mapFirst(s string, f func(rune) rune) string {
	r, w := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && w <= 1 {
		return s
	}
	m := f(r)
	if m == r {
		return s
	}
	return string(m) + s[w:]
}
