// Package conv provides checked hex and code point conversion helpers for the
// replacement builder.
//
// Inputs are validated by the caller's state machine before they reach these
// functions, so a bad digit or an out-of-range value indicates a programming
// error and panics rather than returning an error.
package conv

import (
	"math"
	"unicode/utf8"
)

// IsHex reports whether r is an ASCII hexadecimal digit.
func IsHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// HexValue returns the value of a single hex digit.
// Panics if r is not a hex digit.
//
//go:inline
func HexValue(r rune) uint32 {
	switch {
	case r >= '0' && r <= '9':
		return uint32(r - '0')
	case r >= 'a' && r <= 'f':
		return uint32(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return uint32(r-'A') + 10
	}
	panic("invalid hex digit")
}

// ParseHex decodes up to 8 hex digits into a uint32.
// Panics on a non-hex digit or a string longer than 8 digits.
func ParseHex(s string) uint32 {
	if len(s) > 8 {
		panic("integer overflow: hex string out of uint32 range")
	}
	var v uint32
	for i := 0; i < len(s); i++ {
		v = v<<4 | HexValue(rune(s[i]))
	}
	return v
}

// PlaneCodePoint combines a plane number and an offset within the plane into
// a code point. Panics if the result exceeds utf8.MaxRune.
//
//go:inline
func PlaneCodePoint(plane, offset uint32) rune {
	if plane > 0x10 || offset > math.MaxUint16 {
		panic("integer overflow: code point out of range")
	}
	cp := plane*0x10000 + offset
	if cp > utf8.MaxRune {
		panic("integer overflow: code point out of range")
	}
	return rune(cp)
}

// Uint32ToRune converts a uint32 to a rune.
// Panics if n > utf8.MaxRune.
//
//go:inline
func Uint32ToRune(n uint32) rune {
	if n > utf8.MaxRune {
		panic("integer overflow: uint32 value out of rune range")
	}
	return rune(n)
}
