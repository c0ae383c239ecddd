package lexer

import (
	"strings"
	"unicode/utf8"
)

// scanQuotedBody scans a quoted string starting at the opening `"` or `{`,
// decoding escapes into the mold buffer. Braced strings nest and may span
// lines (CR and CR LF normalise to LF); quote-delimited strings may not.
// Returns the index just past the closing delimiter, or ok=false when the
// string is unterminated, contains a NUL, or has a bad escape.
func (s *State) scanQuotedBody(src int) (int, bool) {
	s.Mold = s.Mold[:0]

	term := byte('"')
	if s.at(src) == '{' {
		term = '}'
	}
	src++

	nest := 0
	lines := 0
	for {
		c := s.at(src)
		if c == term && nest == 0 {
			break
		}
		switch {
		case c == 0:
			return 0, false

		case c == '^':
			r, next, ok := DecodeEscapable(s.Src, src)
			if !ok {
				return 0, false
			}
			s.Mold = utf8.AppendRune(s.Mold, r)
			src = next

		case c == '{' && term == '}':
			nest++
			s.Mold = append(s.Mold, c)
			src++

		case c == '}' && term == '}':
			nest--
			s.Mold = append(s.Mold, c)
			src++

		case c == '\r':
			if term == '"' {
				return 0, false
			}
			if s.at(src+1) == '\n' {
				src++
			}
			lines++
			s.Mold = append(s.Mold, '\n')
			src++

		case c == '\n':
			if term == '"' {
				return 0, false
			}
			lines++
			s.Mold = append(s.Mold, '\n')
			src++

		case c >= 0x80:
			r, next, ok := DecodeCodepoint(s.Src, src)
			if !ok {
				return 0, false
			}
			s.Mold = utf8.AppendRune(s.Mold, r)
			src = next

		default:
			s.Mold = append(s.Mold, c)
			src++
		}
	}

	src++ // closing quote or brace
	s.Line += lines
	return src, true
}

// ScanItem decodes an item such as a file name from src[i:end], handling
// %xx encoding, ^-escapes, and backslash-to-slash translation. term is 0
// for a bare item (any whitespace ends it) or '"' for a quoted form.
// Characters listed in invalid are rejected.
func ScanItem(src []byte, i, end int, term byte, invalid string) (text []byte, next int, ok bool) {
	var out []byte

	for i < end && src[i] != term {
		c := rune(src[i])

		if c == 0 {
			break
		}
		if term == 0 && isWhite(byte(c)) {
			break
		}
		if c < ' ' {
			return nil, i, false
		}

		if c == '\\' {
			c = '/'
			i++
		} else if c == '%' {
			if i+2 >= end {
				return nil, i, false
			}
			hi, ok1 := hexDigit(src[i+1])
			lo, ok2 := hexDigit(src[i+2])
			if !ok1 || !ok2 {
				return nil, i, false
			}
			c = rune(hi<<4 | lo)
			i += 3
		} else if c == '^' {
			if i+1 >= end {
				return nil, i, false
			}
			r, n, decoded := DecodeEscapable(src, i)
			if !decoded {
				return nil, i, false
			}
			if term == 0 && r < 0x80 && isWhite(byte(r)) {
				i = n
				break
			}
			c = r
			i = n
		} else if c >= 0x80 {
			r, n, decoded := DecodeCodepoint(src, i)
			if !decoded {
				return nil, i, false
			}
			c = r
			i = n
		} else if invalid != "" && strings.IndexByte(invalid, byte(c)) >= 0 {
			return nil, i, false
		} else {
			i++
		}

		out = utf8.AppendRune(out, c)
	}

	if i < end && src[i] == term && term != 0 {
		i++
	}

	return out, i, true
}

// skipTag advances past a tag's contents, honoring embedded quoted
// strings. cp points at the opening '<'. Returns ok=false if the tag is
// unterminated.
func (s *State) skipTag(cp int) (int, bool) {
	if s.at(cp) == '<' {
		cp++
	}
	for s.at(cp) != 0 && s.at(cp) != '>' {
		if s.at(cp) == '"' {
			cp++
			for s.at(cp) != 0 && s.at(cp) != '"' {
				cp++
			}
			if s.at(cp) == 0 {
				return 0, false
			}
		}
		cp++
	}
	if s.at(cp) != 0 {
		return cp + 1, true
	}
	return 0, false
}

// hexDigit returns the value of a hex digit byte.
func hexDigit(c byte) (byte, bool) {
	lex := lexMap[c]
	if lex < lexWord {
		return 0, false
	}
	v := lex & lexValueMask
	if lex < lexNumber && v == 0 {
		return 0, false
	}
	return v, true
}

func isWhite(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
