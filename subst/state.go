package subst

// stateKind identifies where the scanner is inside the replacement pattern.
type stateKind uint8

const (
	// stateLiteral copies characters to the output.
	stateLiteral stateKind = iota
	// stateControlStart follows a backslash.
	stateControlStart
	// stateBackref is inside \g, \g{...} or \g<...>.
	stateBackref
	// stateHexPair is inside \x, expecting two hex digits or a brace.
	stateHexPair
	// stateHexBrace is inside \x{...}.
	stateHexBrace
)

// bracketKind is the opening bracket of a \g backreference.
type bracketKind uint8

const (
	// bracketNone means \g has been read but no bracket yet.
	bracketNone bracketKind = iota
	bracketBrace
	bracketAngle
)

// closer returns the character that terminates a name opened with k.
func (k bracketKind) closer() rune {
	switch k {
	case bracketBrace:
		return '}'
	case bracketAngle:
		return '>'
	}
	return -1
}

// parseState is the scanner state. The zero value is stateLiteral.
//
// Accumulated text is not copied: start and mark are byte offsets into the
// pattern. pattern[start:] up to the current character is the raw escape seen
// so far, emitted verbatim when the escape turns out to be invalid.
type parseState struct {
	kind stateKind

	// start is the offset of the backslash that opened the escape.
	start int

	// mark is where the backreference name or the hex digits begin.
	// Only meaningful in stateBackref (once bracket is set), stateHexPair
	// and stateHexBrace.
	mark int

	// bracket is set in stateBackref only.
	bracket bracketKind
}
