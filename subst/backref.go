package subst

// backref consumes one character of a \g backreference.
func (b *builder) backref(st parseState, pattern string, r rune, i, next int) parseState {
	if st.bracket == bracketNone {
		switch r {
		case '{':
			st.bracket = bracketBrace
		case '<':
			st.bracket = bracketAngle
		default:
			b.emit(pattern[st.start:next])
			return parseState{}
		}
		st.mark = next
		return st
	}

	// A closer of the other bracket kind is part of the name.
	if r != st.bracket.closer() {
		return st
	}

	b.substitute(b.resolve(pattern[st.mark:i]), pattern[st.start:next])
	return parseState{}
}
