package subst

import "github.com/coregx/resub/internal/conv"

// hexPair consumes one character after \x. A brace right after the x switches
// to the braced form; otherwise exactly two hex digits are expected.
func (b *builder) hexPair(st parseState, pattern string, r rune, i, next int) parseState {
	if r == '{' && i == st.mark {
		st.kind = stateHexBrace
		st.mark = next
		return st
	}
	if !conv.IsHex(r) {
		b.emit(pattern[st.start:next])
		return parseState{}
	}
	if next-st.mark < 2 {
		return st
	}

	b.emitCodePoint(conv.Uint32ToRune(conv.ParseHex(pattern[st.mark:next])))
	return parseState{}
}

// hexBrace consumes one character of \x{...}.
func (b *builder) hexBrace(st parseState, pattern string, r rune, i, next int) parseState {
	if r == '}' {
		if cp, ok := decodeBraced(pattern[st.mark:i]); ok {
			b.emitCodePoint(cp)
		} else {
			b.emit(pattern[st.start:next])
		}
		return parseState{}
	}
	if !conv.IsHex(r) {
		b.emit(pattern[st.start:next])
		return parseState{}
	}
	return st
}

// decodeBraced decodes the digits of \x{...}. Valid lengths are 2, 4 and 6;
// six digits are a plane byte (00..10) followed by the offset in that plane.
func decodeBraced(digits string) (rune, bool) {
	switch len(digits) {
	case 2, 4:
		return conv.Uint32ToRune(conv.ParseHex(digits)), true
	case 6:
		if digits[0] != '0' && digits[:2] != "10" {
			return 0, false
		}
		return conv.PlaneCodePoint(conv.ParseHex(digits[:2]), conv.ParseHex(digits[2:])), true
	}
	return 0, false
}
