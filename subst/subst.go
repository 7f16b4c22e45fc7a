// Package subst builds the replacement text for a single regex match from a
// replacement pattern written in the PCRE replacement syntax.
//
// Supported escapes:
//
//	\0 .. \9           numbered backreference (single digit only)
//	\g{N} \g<N>        numbered backreference, any number of digits
//	\g{name} \g<name>  named backreference
//	\a \b \f \n \r \t \v \\
//	\xHH               code point U+0000..U+00FF
//	\x{HH} \x{HHHH}    code point up to U+FFFF
//	\x{PPHHHH}         code point in plane PP (00..10)
//	\l \u              lower/upper case the next emitted segment's first character
//	\L \U              lower/upper case everything until \E
//	\E                 end case modification
//
// The first case directive stays in effect until \E: a \U inside \L is
// ignored, and so is a \u following \l.
//
// Malformed escapes never fail. An unknown escape, an out-of-range
// backreference or a bad hex sequence is copied to the output as written.
//
// Basic usage:
//
//	spans := subst.SpansFromIndex(re.FindStringSubmatchIndex(text))
//	out, ok := subst.Build(re, text, spans, `\U\1\E-\g{year}`)
//
// For one pattern applied to many matches:
//
//	tmpl := subst.NewTemplate(`<\0>`)
//	out, ok := tmpl.Build(re, text, spans)
package subst

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/coregx/coregex/simd"
)

// Regexp is the compiled expression a match came from.
//
// IsValid reports whether the expression is usable at all. SubexpIndex maps
// a capture group name to its index and returns -1 for unknown names.
type Regexp interface {
	IsValid() bool
	SubexpIndex(name string) int
}

// Span delimits the text of one capture group as byte offsets into the source
// text. A negative Start marks a group that did not participate in the match.
type Span struct {
	Start int
	End   int
}

// Text returns the part of src covered by the span, or "" if the span is
// unset or does not fit in src.
func (s Span) Text(src string) string {
	if s.Start < 0 || s.End < s.Start || s.End > len(src) {
		return ""
	}
	return src[s.Start:s.End]
}

// SpansFromIndex converts index pairs as returned by FindStringSubmatchIndex
// (start0, end0, start1, end1, ...) into spans. A nil match yields nil.
func SpansFromIndex(match []int) []Span {
	if match == nil {
		return nil
	}
	spans := make([]Span, len(match)/2)
	for i := range spans {
		spans[i] = Span{Start: match[2*i], End: match[2*i+1]}
	}
	return spans
}

// Build returns the replacement text for one match.
//
// text is the string the spans index into and spans[0] is the whole match.
// The boolean result is false only when re is nil or reports itself invalid;
// every other input produces a result.
//
// A pattern without a backslash is returned unchanged.
//
// Build keeps no state between calls and is safe for concurrent use provided
// the inputs are not modified during the call. Callers applying one pattern
// to many matches should use NewTemplate instead.
func Build(re Regexp, text string, spans []Span, pattern string) (string, bool) {
	return NewTemplate(pattern).Build(re, text, spans)
}

// Template is a replacement pattern prepared for repeated use. The search
// for escapes runs once, in NewTemplate, instead of once per match.
//
// A Template is a small immutable value and safe for concurrent use.
type Template struct {
	pattern string
	escaped bool
}

// NewTemplate prepares pattern for Build.
func NewTemplate(pattern string) Template {
	return Template{
		pattern: pattern,
		escaped: hasEscape(pattern),
	}
}

// String returns the pattern as passed to NewTemplate.
func (t Template) String() string {
	return t.pattern
}

// Literal reports whether the pattern has no escapes, in which case every
// Build returns it unchanged.
func (t Template) Literal() bool {
	return !t.escaped
}

// Build returns the replacement text for one match. See the package level
// Build for the meaning of the arguments and results.
func (t Template) Build(re Regexp, text string, spans []Span) (string, bool) {
	if re == nil || !re.IsValid() {
		return "", false
	}
	if !t.escaped {
		return t.pattern, true
	}

	b := builder{
		re:    re,
		text:  text,
		spans: spans,
	}
	b.out.Grow(len(t.pattern))
	b.scan(t.pattern)
	return b.out.String(), true
}

// hasEscape reports whether pattern contains a backslash. Long patterns are
// copied for the SIMD search, so it runs once per Template.
func hasEscape(pattern string) bool {
	if len(pattern) < 16 {
		return strings.IndexByte(pattern, '\\') >= 0
	}
	return simd.Memchr([]byte(pattern), '\\') >= 0
}

// builder holds the per-call output and case state.
type builder struct {
	re    Regexp
	text  string
	spans []Span

	out   strings.Builder
	cases caseEngine

	// high is a high surrogate produced by \x{D800}..\x{DBFF} waiting for
	// its low half. Zero when nothing is pending.
	high rune
}

func (b *builder) scan(pattern string) {
	var st parseState

	for i := 0; i < len(pattern); {
		r, w := utf8.DecodeRuneInString(pattern[i:])
		next := i + w

		switch st.kind {
		case stateLiteral:
			if r == '\\' {
				st = parseState{kind: stateControlStart, start: i}
			} else {
				b.emit(pattern[i:next])
			}
		case stateControlStart:
			st = b.control(st, pattern, r, next)
		case stateBackref:
			st = b.backref(st, pattern, r, i, next)
		case stateHexPair:
			st = b.hexPair(st, pattern, r, i, next)
		case stateHexBrace:
			st = b.hexBrace(st, pattern, r, i, next)
		}

		i = next
	}

	// Unterminated escape.
	if st.kind != stateLiteral {
		b.emit(pattern[st.start:])
	}
	b.flushHigh()
}

// control classifies the character following a backslash.
func (b *builder) control(st parseState, pattern string, r rune, next int) parseState {
	if r >= '0' && r <= '9' {
		b.substitute(int(r-'0'), pattern[st.start:next])
		return parseState{}
	}
	if s, ok := controlChar(r); ok {
		b.emit(s)
		return parseState{}
	}

	switch r {
	case 'E':
		b.cases.clear()
	case 'l':
		b.cases.request(caseLowerNext)
	case 'L':
		b.cases.request(caseLower)
	case 'u':
		b.cases.request(caseUpperNext)
	case 'U':
		b.cases.request(caseUpper)
	case 'g':
		st.kind = stateBackref
		st.bracket = bracketNone
		return st
	case 'x':
		st.kind = stateHexPair
		st.mark = next
		return st
	default:
		b.emit(pattern[st.start:next])
	}
	return parseState{}
}

// controlChar maps the metacharacter escapes to the character they stand for.
func controlChar(r rune) (string, bool) {
	switch r {
	case 'a':
		return "\a", true
	case 'b':
		return "\b", true
	case 'f':
		return "\f", true
	case 'n':
		return "\n", true
	case 'r':
		return "\r", true
	case 't':
		return "\t", true
	case 'v':
		return "\v", true
	case '\\':
		return "\\", true
	}
	return "", false
}

// emit runs one segment through the case engine and appends it.
func (b *builder) emit(segment string) {
	if segment == "" {
		return
	}
	b.flushHigh()
	b.out.WriteString(b.cases.apply(segment))
}

// emitCodePoint appends a code point decoded from a hex escape.
//
// Surrogate code points cannot be stored in a Go string. A high surrogate
// directly followed by a low surrogate is joined into the code point the pair
// encodes in UTF-16; an unpaired half becomes U+FFFD.
func (b *builder) emitCodePoint(cp rune) {
	if !utf16.IsSurrogate(cp) {
		b.emit(string(cp))
		return
	}

	// Each half counts as one segment for \l and \u.
	b.cases.consumeNext()
	if cp < 0xDC00 {
		b.flushHigh()
		b.high = cp
		return
	}
	if b.high != 0 {
		b.out.WriteRune(utf16.DecodeRune(b.high, cp))
		b.high = 0
		return
	}
	b.out.WriteRune(utf8.RuneError)
}

func (b *builder) flushHigh() {
	if b.high != 0 {
		b.out.WriteRune(utf8.RuneError)
		b.high = 0
	}
}

// resolve turns the text between \g brackets into a group index.
// Decimal text is an index; anything else is looked up as a name.
func (b *builder) resolve(name string) int {
	if n, err := strconv.Atoi(name); err == nil && (n != 0 || name == "0") {
		return n
	}
	if name == "" {
		return -1
	}
	return b.re.SubexpIndex(name)
}

// substitute appends the text of group idx, or raw if there is no such group.
func (b *builder) substitute(idx int, raw string) {
	if idx < 0 || idx >= len(b.spans) {
		b.emit(raw)
		return
	}
	b.emit(b.spans[idx].Text(b.text))
}
