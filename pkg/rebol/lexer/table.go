// Package lexer provides byte classification, prescanning, and token
// location for Rebol source text.
//
// The lexer is table-driven: a 256-entry map assigns every byte a class
// (delimiter, special, word, number) and a value selecting among delimiter
// kinds or special-character identities. Tokens are located by combining
// the first byte's class with a "fingerprint" of the special characters
// seen in the token body.
package lexer

// Lexical classes, stored in the top bits of each table entry.
const (
	lexShift     = 5
	lexClassMask = 3 << lexShift
	lexValueMask = 0x1F
)

const (
	ClassDelimit = iota
	ClassSpecial
	ClassWord
	ClassNumber
)

// Delimiter kinds, stored in the value field of ClassDelimit entries.
// The order matters: everything at or below DelimitReturn counts as
// whitespace for IsAnySpace.
const (
	DelimitSpace = iota
	DelimitEnd
	DelimitLinefeed
	DelimitReturn
	DelimitLeftParen
	DelimitRightParen
	DelimitLeftBracket
	DelimitRightBracket
	DelimitLeftBrace
	DelimitRightBrace
	DelimitDoubleQuote
	DelimitSlash
	DelimitSemicolon
	DelimitUTF8Error
)

// Special-character identities, stored in the value field of ClassSpecial
// entries. These double as bit positions in the prescan fingerprint.
const (
	SpecialAt = iota // @
	SpecialPercent   // %
	SpecialBackslash // \
	SpecialColon     // :
	SpecialApostrophe
	SpecialLesser  // <
	SpecialGreater // >
	SpecialPlus
	SpecialMinus
	SpecialBar   // |
	SpecialBlank // _
	SpecialPeriod
	SpecialComma
	SpecialPound  // #
	SpecialDollar // $

	// Not a table value; a fingerprint-only bit recording that at least
	// one word-class byte appeared in the token body.
	SpecialWord
)

// Flag returns the fingerprint bit for a special-character identity.
func Flag(special int) uint32 {
	return 1 << special
}

// Fingerprint bits that are never legal inside a plain word.
const wordIllegalFlags uint32 = 1<<SpecialAt |
	1<<SpecialPercent |
	1<<SpecialBackslash |
	1<<SpecialComma |
	1<<SpecialPound |
	1<<SpecialDollar |
	1<<SpecialColon

const (
	lexDelimit = ClassDelimit << lexShift
	lexSpecial = ClassSpecial << lexShift
	lexWord    = ClassWord << lexShift
	lexNumber  = ClassNumber << lexShift

	// Control characters scan as whitespace.
	lexDefault = lexDelimit | DelimitSpace
)

// lexMap assigns each byte its class and value. Bytes C0, C1, F5 and FF
// can never appear in well-formed UTF-8 and are flagged as errors; other
// high bytes are treated as word characters so that multibyte sequences
// flow through word scanning.
var lexMap [256]byte

func init() {
	for i := range lexMap {
		lexMap[i] = lexDefault
	}

	lexMap[0] = lexDelimit | DelimitEnd
	lexMap['\n'] = lexDelimit | DelimitLinefeed
	lexMap['\r'] = lexDelimit | DelimitReturn
	lexMap[' '] = lexDelimit | DelimitSpace
	lexMap['"'] = lexDelimit | DelimitDoubleQuote
	lexMap['('] = lexDelimit | DelimitLeftParen
	lexMap[')'] = lexDelimit | DelimitRightParen
	lexMap['['] = lexDelimit | DelimitLeftBracket
	lexMap[']'] = lexDelimit | DelimitRightBracket
	lexMap['{'] = lexDelimit | DelimitLeftBrace
	lexMap['}'] = lexDelimit | DelimitRightBrace
	lexMap['/'] = lexDelimit | DelimitSlash
	lexMap[';'] = lexDelimit | DelimitSemicolon

	lexMap['@'] = lexSpecial | SpecialAt
	lexMap['%'] = lexSpecial | SpecialPercent
	lexMap['\\'] = lexSpecial | SpecialBackslash
	lexMap[':'] = lexSpecial | SpecialColon
	lexMap['\''] = lexSpecial | SpecialApostrophe
	lexMap['<'] = lexSpecial | SpecialLesser
	lexMap['>'] = lexSpecial | SpecialGreater
	lexMap['+'] = lexSpecial | SpecialPlus
	lexMap['-'] = lexSpecial | SpecialMinus
	lexMap['|'] = lexSpecial | SpecialBar
	lexMap['_'] = lexSpecial | SpecialBlank
	lexMap['.'] = lexSpecial | SpecialPeriod
	lexMap[','] = lexSpecial | SpecialComma
	lexMap['#'] = lexSpecial | SpecialPound
	lexMap['$'] = lexSpecial | SpecialDollar

	for _, c := range []byte("!&*=?^`~") {
		lexMap[c] = lexWord
	}
	for c := byte('0'); c <= '9'; c++ {
		lexMap[c] = lexNumber | (c - '0')
	}
	for c := byte('a'); c <= 'z'; c++ {
		lexMap[c] = lexWord
		lexMap[c-'a'+'A'] = lexWord
	}
	// Hex digit values ride along in the word entries for A-F.
	for c := byte('a'); c <= 'f'; c++ {
		lexMap[c] |= c - 'a' + 10
		lexMap[c-'a'+'A'] |= c - 'a' + 10
	}

	for i := 0x80; i < 0x100; i++ {
		lexMap[i] = lexWord
	}
	for _, c := range []byte{0xC0, 0xC1, 0xF5, 0xFF} {
		lexMap[c] = lexDelimit | DelimitUTF8Error
	}
}

// LexClass returns the lexical class of a byte.
func LexClass(c byte) int {
	return int(lexMap[c]) >> lexShift
}

// LexValue returns the class-specific value of a byte.
func LexValue(c byte) int {
	return int(lexMap[c]) & lexValueMask
}

// IsSpace reports whether the byte is plain whitespace (space, tab, or a
// control character other than CR/LF).
func IsSpace(c byte) bool {
	return lexMap[c] == 0
}

// IsAnySpace additionally counts NUL, CR, and LF.
func IsAnySpace(c byte) bool {
	return lexMap[c] <= DelimitReturn
}

// IsDelimit reports whether the byte is a delimiter.
func IsDelimit(c byte) bool {
	return lexMap[c]&lexClassMask == lexDelimit
}

// IsSpecial reports whether the byte is a special character.
func IsSpecial(c byte) bool {
	return lexMap[c]&lexClassMask == lexSpecial
}

// IsWordChar reports whether the byte can begin a word.
func IsWordChar(c byte) bool {
	return lexMap[c]&lexClassMask == lexWord
}

// IsNumberChar reports whether the byte is a decimal digit.
func IsNumberChar(c byte) bool {
	return lexMap[c] >= lexNumber
}

// IsNotDelimit reports whether the byte continues a token.
func IsNotDelimit(c byte) bool {
	return lexMap[c] >= lexSpecial
}

// IsWordOrNumber reports whether the byte continues a word.
func IsWordOrNumber(c byte) bool {
	return lexMap[c] >= lexWord
}

// isCRLFEnd reports whether the byte terminates a line or the input.
func isCRLFEnd(c byte) bool {
	return c == 0 || c == '\r' || c == '\n'
}
