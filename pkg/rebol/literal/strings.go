package literal

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"

	"github.com/rhencke/rebol/pkg/rebol/lexer"
	"github.com/rhencke/rebol/pkg/rebol/value"
)

// ScanFile converts a file body. The leading percent is stripped; a
// quoted form may contain spaces, a bare form may not contain brackets
// or parens. Percent escapes decode and backslashes normalize to
// forward slashes.
func ScanFile(b []byte) (value.Cell, bool) {
	i := 0
	if i < len(b) && b[i] == '%' {
		i++
	}

	var term byte
	var invalid string
	if i < len(b) && b[i] == '"' {
		i++
		term = '"'
		invalid = `:;"`
	} else {
		term = 0
		invalid = `:;()[]"`
	}

	text, next, ok := lexer.ScanItem(b, i, len(b), term, invalid)
	if !ok {
		return value.Cell{}, false
	}
	if term == 0 && next != len(b) {
		return value.Cell{}, false
	}
	return value.File(string(text)), true
}

// ScanEmail converts an email body. Exactly one at sign must appear
// and percent escapes decode to bytes.
func ScanEmail(b []byte) (value.Cell, bool) {
	var out []byte
	foundAt := false
	for i := 0; i < len(b); {
		switch b[i] {
		case '@':
			if foundAt {
				return value.Cell{}, false
			}
			foundAt = true
			out = append(out, b[i])
			i++
		case '%':
			if i+2 >= len(b) {
				return value.Cell{}, false
			}
			hi, ok1 := hexNibble(b[i+1])
			lo, ok2 := hexNibble(b[i+2])
			if !ok1 || !ok2 {
				return value.Cell{}, false
			}
			out = append(out, hi<<4|lo)
			i += 3
		default:
			out = append(out, b[i])
			i++
		}
	}
	if !foundAt {
		return value.Cell{}, false
	}
	return value.Email(string(out)), true
}

// ScanURL keeps the body as written.
func ScanURL(b []byte) (value.Cell, bool) {
	return value.URL(string(b)), true
}

// ScanTag keeps the body between the angle brackets.
func ScanTag(b []byte) (value.Cell, bool) {
	if len(b) < 2 || b[0] != '<' || b[len(b)-1] != '>' {
		return value.Cell{}, false
	}
	return value.Tag(string(b[1 : len(b)-1])), true
}

// ScanIssue converts an issue body (after the pound sign). Word and
// number characters are allowed plus a small set of punctuation.
func ScanIssue(b []byte) (value.Cell, bool) {
	if len(b) == 0 {
		return value.Cell{}, false
	}
	for _, c := range b {
		switch lexer.LexClass(c) {
		case lexer.ClassDelimit:
			return value.Cell{}, false
		case lexer.ClassSpecial:
			switch lexer.LexValue(c) {
			case lexer.SpecialApostrophe, lexer.SpecialComma,
				lexer.SpecialPeriod, lexer.SpecialPlus,
				lexer.SpecialMinus, lexer.SpecialBar,
				lexer.SpecialBlank, lexer.SpecialColon:
				// allowed
			default:
				return value.Cell{}, false
			}
		}
	}
	return value.Issue(string(b)), true
}

// ScanChar converts a whole char body of the form #"x", where x may be
// a caret escape.
func ScanChar(b []byte) (value.Cell, bool) {
	if len(b) < 4 || b[0] != '#' || b[1] != '"' || b[len(b)-1] != '"' {
		return value.Cell{}, false
	}
	r, next, ok := lexer.DecodeEscapable(b, 2)
	if !ok || next != len(b)-1 {
		return value.Cell{}, false
	}
	return value.Char(r), true
}

// ScanBinary converts a binary body, which may carry a 2#, 16#, or 64#
// base prefix before the braces. Whitespace inside the braces is
// ignored.
func ScanBinary(b []byte) (value.Cell, bool) {
	base := int64(16)
	i := 0
	if len(b) > 0 && b[0] != '#' {
		n, next := grabInt(b, 0)
		if next == 0 || next >= len(b) || b[next] != '#' {
			return value.Cell{}, false
		}
		base = n
		i = next
	}

	if i+1 >= len(b) || b[i] != '#' || b[i+1] != '{' || b[len(b)-1] != '}' {
		return value.Cell{}, false
	}
	body := b[i+2 : len(b)-1]

	stripped := make([]byte, 0, len(body))
	for _, c := range body {
		if !isBinWhite(c) {
			stripped = append(stripped, c)
		}
	}

	var out []byte
	var err error
	switch base {
	case 16:
		if len(stripped)%2 != 0 {
			return value.Cell{}, false
		}
		out, err = hex.DecodeString(string(stripped))
	case 64:
		out, err = base64.StdEncoding.DecodeString(string(stripped))
	case 2:
		if len(stripped)%8 != 0 {
			return value.Cell{}, false
		}
		out = make([]byte, 0, len(stripped)/8)
		var acc byte
		for n, c := range stripped {
			switch c {
			case '0':
				acc <<= 1
			case '1':
				acc = acc<<1 | 1
			default:
				return value.Cell{}, false
			}
			if n%8 == 7 {
				out = append(out, acc)
				acc = 0
			}
		}
	default:
		return value.Cell{}, false
	}
	if err != nil {
		return value.Cell{}, false
	}
	return value.Binary(out), true
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isBinWhite(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// ScanWordBody checks that a spelling is a loadable word and interns
// it. Used by construct bodies and callers building words from text.
func ScanWordBody(b []byte, kind value.Kind) (value.Cell, bool) {
	if len(b) == 0 {
		return value.Cell{}, false
	}
	c := b[0]
	if !(lexer.LexClass(c) == lexer.ClassWord ||
		c == '+' || c == '-' || c == '_' || c == '|' || c == '.' || c == ',') {
		return value.Cell{}, false
	}
	if bytes.ContainsAny(b, " \t\n\r\"()[]{}/;:@#$%\\<>") {
		return value.Cell{}, false
	}
	return value.Word(kind, value.Intern(string(b))), true
}
