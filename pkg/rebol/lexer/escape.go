package lexer

import (
	"unicode/utf8"
)

// Named escapes accepted inside ^(...).
var escNames = []struct {
	name string
	code rune
}{
	{"line", '\n'},
	{"tab", '\t'},
	{"page", '\f'},
	{"escape", 0x1B},
	{"esc", 0x1B},
	{"back", '\b'},
	{"del", 0x7F},
	{"null", 0},
}

// DecodeCodepoint consumes one UTF-8 codepoint from src starting at i.
// It returns the codepoint and the index just past it, or ok=false on a
// malformed sequence.
func DecodeCodepoint(src []byte, i int) (r rune, next int, ok bool) {
	if i >= len(src) {
		return 0, i, false
	}
	c := src[i]
	if c < 0x80 {
		return rune(c), i + 1, true
	}
	r, size := utf8.DecodeRune(src[i:])
	if r == utf8.RuneError && size <= 1 {
		return 0, i, false
	}
	return r, i + size, true
}

// DecodeEscapable consumes one codepoint, processing ^-escapes:
// ^/ is LF, ^- is TAB, ^! is RS, ^^ is ^, ^(hex) and ^(name) select a
// codepoint, ^@ through ^_ are controls, ^~ is DEL. Any other ^X yields
// the literal X.
func DecodeEscapable(src []byte, i int) (r rune, next int, ok bool) {
	if i >= len(src) {
		return 0, i, false
	}

	c := src[i]
	if c >= 0x80 {
		return DecodeCodepoint(src, i)
	}
	i++

	if c != '^' {
		return rune(c), i, true
	}

	if i >= len(src) {
		return 0, i, true
	}
	c = src[i]
	i++

	switch c {
	case 0:
		return 0, i, true
	case '/':
		return '\n', i, true
	case '^':
		return '^', i, true
	case '-':
		return '\t', i, true
	case '!':
		return 0x1E, i, true
	case '(':
		return decodeEscapeGroup(src, i)
	default:
		u := upperCase(c)
		if u >= '@' && u <= '_' {
			return rune(u - '@'), i, true
		}
		if u == '~' {
			return 0x7F, i, true
		}
		return rune(c), i, true
	}
}

// decodeEscapeGroup handles the body of ^(...): up to four hex digits, or
// one of the named escapes.
func decodeEscapeGroup(src []byte, i int) (rune, int, bool) {
	cp := i
	var r rune
	for cp < len(src) {
		lex := lexMap[src[cp]]
		if lex <= lexWord {
			break
		}
		v := lex & lexValueMask
		if v == 0 && lex < lexNumber {
			break
		}
		r = r<<4 + rune(v)
		cp++
	}
	if cp-i > 4 {
		return 0, i, false
	}
	if cp > i && cp < len(src) && src[cp] == ')' {
		return r, cp + 1, true
	}

	for _, esc := range escNames {
		if end, ok := matchBytes(src, i, esc.name); ok {
			if end < len(src) && src[end] == ')' {
				return esc.code, end + 1, true
			}
		}
	}
	return 0, i, false
}

// matchBytes reports whether src at i matches word case-insensitively.
func matchBytes(src []byte, i int, word string) (int, bool) {
	for j := 0; j < len(word); j++ {
		if i+j >= len(src) || lowerCase(src[i+j]) != word[j] {
			return i, false
		}
	}
	return i + len(word), true
}

func upperCase(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lowerCase(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
