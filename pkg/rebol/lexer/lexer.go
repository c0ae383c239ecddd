package lexer

import (
	"bytes"
	"fmt"

	"github.com/rhencke/rebol/pkg/rebol/errors"
)

// State carries the position of a scan through one source fragment.
// Begin and End bracket the most recently located token. Line counts
// from the caller-supplied start line; LineHead indexes the first byte
// of the current line so errors can show it. StartLine and StartLineHead
// record where the enclosing aggregate began, for errors that cite the
// opener rather than the failure point.
type State struct {
	Src   []byte
	Begin int
	End   int

	File          string
	Line          int
	LineHead      int
	StartLine     int
	StartLineHead int

	// Mold receives the decoded body of the last string-like token.
	Mold []byte
}

// NewState prepares a scan over one closed fragment.
func NewState(file string, startLine int, src []byte) *State {
	return &State{
		Src:       src,
		File:      file,
		Line:      startLine,
		StartLine: startLine,
	}
}

// InstallFragment swaps in the next fragment of a variadic feed. Line
// numbering continues; the head-of-line bookmarks restart at the new
// fragment since the old bytes are no longer addressable.
func (s *State) InstallFragment(src []byte) {
	s.Src = src
	s.Begin = 0
	s.End = 0
	s.LineHead = 0
	s.StartLineHead = 0
}

// at returns the byte at index i, or 0 past either end. The zero byte
// doubles as the end-of-input sentinel, as a literal NUL is never valid
// source.
func (s *State) at(i int) byte {
	if i < 0 || i >= len(s.Src) {
		return 0
	}
	return s.Src[i]
}

// Body returns the source bytes of the given token.
func (s *State) Body(tok Token) []byte {
	begin, end := tok.Begin, tok.End
	if begin > len(s.Src) {
		begin = len(s.Src)
	}
	if end > len(s.Src) {
		end = len(s.Src)
	}
	return s.Src[begin:end]
}

// NearText renders the text of the line starting at head, prefixed with
// its line number, for error reporting.
func (s *State) NearText(line, head int) string {
	cp := head
	for IsSpace(s.at(cp)) {
		cp++
	}
	ep := cp
	for !isCRLFEnd(s.at(ep)) {
		ep++
	}
	return fmt.Sprintf("(line %d) %s", line, s.Src[cp:ep])
}

func (s *State) fillPosition(e *errors.ScanError, line, head int) *errors.ScanError {
	e.Line = line
	e.Near = s.NearText(line, head)
	if s.File != "" {
		e = e.WithFile(s.File)
	}
	return e
}

// ErrSyntax reports an invalid token, citing its name and source text.
func (s *State) ErrSyntax(t TokenType) *errors.ScanError {
	e := errors.New("SCAN-0001", map[string]any{
		"Token": t.String(),
		"Body":  string(s.Body(Token{Begin: s.Begin, End: s.End})),
	})
	return s.fillPosition(e, s.Line, s.LineHead)
}

// ErrMissing reports an unterminated aggregate or string, citing the line
// where it was opened.
func (s *State) ErrMissing(wanted byte) *errors.ScanError {
	e := errors.New("SCAN-0002", map[string]any{"Expected": string(wanted)})
	return s.fillPosition(e, s.StartLine, s.StartLineHead)
}

// ErrMismatch reports the wrong kind of closing bracket, citing the line
// where the open aggregate began.
func (s *State) ErrMismatch(wanted, seen byte) *errors.ScanError {
	e := errors.New("SCAN-0003", map[string]any{
		"Expected": string(wanted),
		"Actual":   string(seen),
	})
	return s.fillPosition(e, s.StartLine, s.StartLineHead)
}

// ErrExtra reports a stray closing bracket or brace.
func (s *State) ErrExtra(seen byte) *errors.ScanError {
	e := errors.New("SCAN-0004", map[string]any{"Char": string(seen)})
	return s.fillPosition(e, s.Line, s.LineHead)
}

// Prescan skips leading whitespace and finds the end of the next token,
// returning a fingerprint of the special characters seen after the
// token's first byte (plus the word bit if any word bytes appeared).
// A leading delimiter is returned as a one-byte token with zero flags.
func (s *State) Prescan() uint32 {
	cp := s.Begin
	for IsSpace(s.at(cp)) {
		cp++
	}
	s.Begin = cp

	var flags uint32
	for {
		c := s.at(cp)
		switch LexClass(c) {
		case ClassDelimit:
			if cp == s.Begin {
				s.End = cp + 1
			} else {
				s.End = cp
			}
			return flags

		case ClassSpecial:
			if cp != s.Begin {
				flags |= Flag(LexValue(c))
			}
			cp++

		case ClassWord:
			flags |= Flag(SpecialWord)
			for IsWordOrNumber(s.at(cp)) {
				cp++
			}

		case ClassNumber:
			for IsNumberChar(s.at(cp)) {
				cp++
			}
		}
	}
}

func (s *State) token(t TokenType) Token {
	return Token{Type: t, Begin: s.Begin, End: s.End}
}

// Locate finds the next token. On TokenEnd the current fragment is
// exhausted; a variadic caller may install another fragment and retry.
// String-like tokens leave their decoded body in the mold buffer.
func (s *State) Locate() (Token, *errors.ScanError) {
	flags := s.Prescan()
	cp := s.Begin

	switch LexClass(s.at(cp)) {
	case ClassDelimit:
		return s.locateDelimit(cp)

	case ClassSpecial:
		if flags&Flag(SpecialAt) != 0 && s.at(cp) != '<' {
			return s.token(TokenEmail), nil
		}
		return s.locateSpecial(cp, flags)

	case ClassWord:
		if flags == Flag(SpecialWord) {
			return s.token(TokenWord), nil
		}
		return s.scanWordTail(cp, flags, TokenWord)

	default: // ClassNumber
		return s.locateNumber(cp, flags)
	}
}

func (s *State) locateDelimit(cp int) (Token, *errors.ScanError) {
	switch LexValue(s.at(cp)) {
	case DelimitSemicolon:
		for !isCRLFEnd(s.at(cp)) {
			cp++
		}
		if s.at(cp) == 0 {
			s.Begin = cp
			s.End = cp
			return s.token(TokenEnd), nil
		}
		fallthrough

	case DelimitReturn, DelimitLinefeed:
		if s.at(cp) == '\r' && s.at(cp+1) == '\n' {
			cp++
		}
		s.Line++
		s.End = cp + 1
		s.LineHead = cp + 1
		return s.token(TokenNewline), nil

	case DelimitLeftBracket:
		return s.token(TokenBlockBegin), nil

	case DelimitRightBracket:
		return s.token(TokenBlockEnd), nil

	case DelimitLeftParen:
		return s.token(TokenGroupBegin), nil

	case DelimitRightParen:
		return s.token(TokenGroupEnd), nil

	case DelimitDoubleQuote, DelimitLeftBrace:
		opener := s.at(cp)
		end, ok := s.scanQuotedBody(cp)
		if ok {
			s.End = end
			return s.token(TokenString), nil
		}
		// recover at the next line so relax mode can resume there
		cp = s.Begin + 1
		for !isCRLFEnd(s.at(cp)) {
			cp++
		}
		s.End = cp
		if opener == '"' {
			return s.token(TokenString), s.ErrMissing('"')
		}
		return s.token(TokenString), s.ErrMissing('}')

	case DelimitRightBrace:
		return s.token(TokenString), s.ErrExtra('}')

	case DelimitSlash:
		s.End = cp + 1
		return s.token(TokenPath), nil

	case DelimitEnd:
		s.Begin = cp
		s.End = cp
		return s.token(TokenEnd), nil

	default: // DelimitUTF8Error
		return s.token(TokenWord), s.ErrSyntax(TokenWord)
	}
}

func (s *State) locateSpecial(cp int, flags uint32) (Token, *errors.ScanError) {
	for {
		switch LexValue(s.at(cp)) {
		case SpecialAt:
			switch s.at(cp + 1) {
			case '(':
				s.End = cp + 2
				return s.token(TokenSymGroupBegin), nil
			case '[':
				s.End = cp + 2
				return s.token(TokenSymBlockBegin), nil
			}
			if IsDelimit(s.at(cp + 1)) {
				return s.token(TokenSym), s.ErrSyntax(TokenSym)
			}
			if flags == Flag(SpecialWord) {
				return s.token(TokenSym), nil
			}
			return s.scanWordTail(cp+1, flags, TokenSym)

		case SpecialPercent:
			cp = s.End
			if s.at(cp) == '"' {
				end, ok := s.scanQuotedBody(cp)
				if !ok {
					return s.token(TokenFile), s.ErrSyntax(TokenFile)
				}
				s.End = end
				return s.token(TokenFile), nil
			}
			for s.at(cp) == '/' {
				cp++
				for IsNotDelimit(s.at(cp)) {
					cp++
				}
			}
			s.End = cp
			return s.token(TokenFile), nil

		case SpecialColon:
			switch s.at(cp + 1) {
			case '(':
				s.End = cp + 2
				return s.token(TokenGetGroupBegin), nil
			case '[':
				s.End = cp + 2
				return s.token(TokenGetBlockBegin), nil
			}
			if IsNumberChar(s.at(cp + 1)) {
				return s.token(TokenTime), nil
			}
			if flags == Flag(SpecialWord) {
				return s.token(TokenGet), nil
			}
			if s.at(cp+1) == '\'' {
				return s.token(TokenWord), s.ErrSyntax(TokenWord)
			}
			if s.at(cp+1) == '<' || s.at(cp+1) == '>' {
				// :< :<< :<> :<= :>= :>> and friends
				cp++
				if s.at(cp+1) == '<' || s.at(cp+1) == '>' || s.at(cp+1) == '=' {
					cp++
				}
				if !IsDelimit(s.at(cp + 1)) {
					return s.token(TokenGet), s.ErrSyntax(TokenGet)
				}
				s.End = cp + 1
				return s.token(TokenGet), nil
			}
			return s.scanWordTail(cp+1, flags, TokenGet)

		case SpecialApostrophe:
			n := cp
			for s.at(n) == '\'' {
				n++
			}
			s.End = n
			return s.token(TokenApostrophe), nil

		case SpecialComma, SpecialPeriod:
			flags |= Flag(LexValue(s.at(cp)))
			if IsNumberChar(s.at(cp + 1)) {
				return s.locateNumber(cp, flags)
			}
			if LexValue(s.at(cp)) != SpecialPeriod {
				return s.token(TokenWord), s.ErrSyntax(TokenWord)
			}
			return s.scanWordTail(cp, flags, TokenWord)

		case SpecialGreater:
			if IsDelimit(s.at(cp + 1)) {
				return s.token(TokenWord), nil
			}
			if s.at(cp+1) == '>' {
				if IsDelimit(s.at(cp + 2)) {
					return s.token(TokenWord), nil
				}
				return s.token(TokenWord), s.ErrSyntax(TokenWord)
			}
			return s.locateAngle(cp)

		case SpecialLesser:
			return s.locateAngle(cp)

		case SpecialPlus, SpecialMinus:
			if flags&Flag(SpecialAt) != 0 {
				return s.token(TokenEmail), nil
			}
			if flags&Flag(SpecialDollar) != 0 {
				return s.token(TokenMoney), nil
			}
			if flags&Flag(SpecialColon) != 0 {
				k := bytes.IndexByte(s.Body(Token{Begin: cp, End: s.End}), ':')
				if k >= 0 && cp+k+1 != s.End { // 12:34 with sign
					return s.token(TokenTime), nil
				}
				cp = s.Begin
				if s.at(cp+1) == ':' { // +: -:
					return s.scanWordTail(cp, flags, TokenWord)
				}
			}
			cp++
			if IsNumberChar(s.at(cp)) {
				return s.locateNumber(cp, flags)
			}
			if IsSpecial(s.at(cp)) {
				if LexValue(s.at(cp)) >= SpecialPeriod {
					continue // reclassify on . , # $
				}
				if s.at(cp) == '+' || s.at(cp) == '-' {
					return s.scanWordTail(cp, flags, TokenWord)
				}
				if s.at(cp) == '>' &&
					(IsDelimit(s.at(cp+1)) || IsAnySpace(s.at(cp+1))) {
					return s.token(TokenWord), nil // ->
				}
				return s.token(TokenWord), s.ErrSyntax(TokenWord)
			}
			return s.scanWordTail(cp, flags, TokenWord)

		case SpecialBar:
			if s.at(cp+1) == '>' &&
				(IsDelimit(s.at(cp+2)) || IsAnySpace(s.at(cp+2))) {
				return s.token(TokenWord), nil // |>
			}
			if flags == 0 || flags == Flag(SpecialWord) {
				return s.token(TokenWord), nil
			}
			return s.scanWordTail(cp, flags, TokenWord)

		case SpecialBlank:
			if IsDelimit(s.at(cp+1)) || IsAnySpace(s.at(cp+1)) {
				return s.token(TokenBlank), nil
			}
			return s.scanWordTail(cp, flags, TokenWord)

		case SpecialPound:
			return s.locatePound(cp)

		case SpecialDollar:
			if flags&Flag(SpecialAt) != 0 {
				return s.token(TokenEmail), nil
			}
			return s.token(TokenMoney), nil

		default:
			return s.token(TokenWord), s.ErrSyntax(TokenWord)
		}
	}
}

// locateAngle resolves tokens opening with < or >: comparison words,
// the arrow words, and tags.
func (s *State) locateAngle(cp int) (Token, *errors.ScanError) {
	if IsAnySpace(s.at(cp+1)) || s.at(cp+1) == ']' || s.at(cp+1) == 0 {
		return s.token(TokenWord), nil // lone < or >, also </tag> close
	}
	if (s.at(cp) == '<' && s.at(cp+1) == '<') ||
		s.at(cp+1) == '=' || s.at(cp+1) == '>' {
		if IsDelimit(s.at(cp + 2)) {
			return s.token(TokenWord), nil
		}
		return s.token(TokenWord), s.ErrSyntax(TokenWord)
	}
	if s.at(cp) == '<' && (s.at(cp+1) == '-' || s.at(cp+1) == '|') &&
		(IsDelimit(s.at(cp+2)) || IsAnySpace(s.at(cp+2))) {
		return s.token(TokenWord), nil // <| and <-
	}
	if s.at(cp) == '>' {
		return s.token(TokenWord), s.ErrSyntax(TokenWord)
	}

	end, ok := s.skipTag(cp)
	if !ok {
		return s.token(TokenTag), s.ErrSyntax(TokenTag)
	}
	s.End = end
	return s.token(TokenTag), nil
}

// locatePound resolves tokens opening with # (or reached through a
// 2#{ / 16#{ / 64#{ base prefix): constructs, chars, binaries, issues.
func (s *State) locatePound(cp int) (Token, *errors.ScanError) {
	cp++
	if s.at(cp) == '[' {
		s.End = cp + 1
		return s.token(TokenConstruct), nil
	}

	if s.at(cp) == '"' { // #"c"
		_, next, ok := DecodeEscapable(s.Src, cp+1)
		if ok && s.at(next) == '"' {
			s.End = next + 1
			return s.token(TokenChar), nil
		}
		// recover at next line
		cp = s.Begin + 1
		for !isCRLFEnd(s.at(cp)) {
			cp++
		}
		s.End = cp
		return s.token(TokenChar), s.ErrSyntax(TokenChar)
	}

	if s.at(cp) == '{' { // #{1A2B...}
		end, ok := s.scanQuotedBody(cp)
		if ok {
			s.End = end
			return s.token(TokenBinary), nil
		}
		cp = s.Begin + 1
		for !isCRLFEnd(s.at(cp)) {
			cp++
		}
		s.End = cp
		return s.token(TokenBinary), s.ErrSyntax(TokenBinary)
	}

	if cp-1 == s.Begin {
		return s.token(TokenIssue), nil
	}
	return s.token(TokenInteger), s.ErrSyntax(TokenInteger)
}

func (s *State) locateNumber(cp int, flags uint32) (Token, *errors.ScanError) {
	if flags == 0 {
		return s.token(TokenInteger), nil
	}
	if flags&Flag(SpecialAt) != 0 {
		return s.token(TokenEmail), nil
	}
	if flags&Flag(SpecialPound) != 0 {
		if cp == s.Begin {
			if (s.at(cp) == '6' && s.at(cp+1) == '4' && s.at(cp+2) == '#' && s.at(cp+3) == '{') ||
				(s.at(cp) == '1' && s.at(cp+1) == '6' && s.at(cp+2) == '#' && s.at(cp+3) == '{') {
				return s.locatePound(cp + 2)
			}
			if s.at(cp) == '2' && s.at(cp+1) == '#' && s.at(cp+2) == '{' {
				return s.locatePound(cp + 1)
			}
		}
		return s.token(TokenInteger), s.ErrSyntax(TokenInteger)
	}
	if flags&Flag(SpecialColon) != 0 { // 12:34
		return s.token(TokenTime), nil
	}
	if flags&Flag(SpecialPeriod) != 0 {
		// 1.2, 1.2.3, 1,200.3, 1.E-2, 1.5x3
		body := s.Body(Token{Begin: cp, End: s.End})
		if bytes.IndexByte(body, 'x') >= 0 {
			return s.token(TokenPair), nil
		}
		k := bytes.IndexByte(body, '.')
		if flags&Flag(SpecialComma) == 0 &&
			k >= 0 && bytes.IndexByte(body[k+1:], '.') >= 0 {
			return s.token(TokenTuple), nil
		}
		return s.token(TokenDecimal), nil
	}
	if flags&Flag(SpecialComma) != 0 {
		if bytes.IndexByte(s.Body(Token{Begin: cp, End: s.End}), 'x') >= 0 {
			return s.token(TokenPair), nil
		}
		return s.token(TokenDecimal), nil // 1,23
	}

	// Dates (1-aug-97), pairs (320x200), exponents (123e4), percents.
	for ; cp != s.End && cp < len(s.Src); cp++ {
		c := s.Src[cp]
		if c == '-' {
			return s.token(TokenDate), nil
		}
		if c == 'x' || c == 'X' {
			return s.token(TokenPair), nil
		}
		if c == 'E' || c == 'e' {
			if bytes.IndexByte(s.Src[cp:s.End], 'x') >= 0 {
				return s.token(TokenPair), nil
			}
			return s.token(TokenDecimal), nil
		}
		if c == '%' {
			return s.token(TokenPercent), nil
		}
	}

	if flags&Flag(SpecialApostrophe) != 0 { // 1'200
		return s.token(TokenInteger), nil
	}
	return s.token(TokenInteger), s.ErrSyntax(TokenInteger)
}

// scanWordTail applies the refinements shared by everything that scans
// like a word: trailing-colon set-word promotion, URL schemes, emails,
// money, and the tag lookalikes.
func (s *State) scanWordTail(cp int, flags uint32, t TokenType) (Token, *errors.ScanError) {
	if flags&Flag(SpecialColon) != 0 { // word: or url:...
		if t != TokenWord {
			// decorated forms keep their kind; trailing colons are
			// validated by the token consumer
			return s.token(t), nil
		}
		k := bytes.IndexByte(s.Src[cp:s.End], ':')
		if k < 0 {
			return s.token(t), s.ErrSyntax(t)
		}
		colon := cp + k
		if s.at(colon+1) != '/' && int(lexMap[s.at(colon+1)]) < lexSpecial {
			// delimited word followed by colon: a set-word
			if flags&(^Flag(SpecialColon)&wordIllegalFlags) != 0 {
				return s.token(TokenWord), s.ErrSyntax(TokenWord)
			}
			return s.token(TokenSet), nil
		}
		cp = s.End // must be a URL
		for s.at(cp) == '/' {
			cp++
			for IsNotDelimit(s.at(cp)) || s.at(cp) == '/' {
				cp++
			}
		}
		s.End = cp
		return s.token(TokenURL), nil
	}
	if flags&Flag(SpecialAt) != 0 {
		return s.token(TokenEmail), nil
	}
	if flags&Flag(SpecialDollar) != 0 {
		return s.token(TokenMoney), nil
	}
	if flags&wordIllegalFlags != 0 {
		return s.token(t), s.ErrSyntax(t)
	}

	if flags&Flag(SpecialLesser) != 0 {
		// allow word<tag> and word</tag> but not word< word<= word<>
		if s.at(cp) == '=' && s.at(cp+1) == '<' && IsDelimit(s.at(cp+2)) {
			return s.token(TokenWord), nil
		}
		k := bytes.IndexByte(s.Src[cp:s.End], '<')
		if k < 0 {
			return s.token(t), s.ErrSyntax(t)
		}
		lt := cp + k
		if s.at(lt+1) == '<' || s.at(lt+1) == '>' || s.at(lt+1) == '=' ||
			IsSpace(s.at(lt+1)) ||
			(s.at(lt+1) != '/' && IsDelimit(s.at(lt+1))) {
			return s.token(t), s.ErrSyntax(t)
		}
		s.End = lt
		return s.token(t), nil
	}
	if flags&Flag(SpecialGreater) != 0 {
		if s.at(cp) == '=' && s.at(cp+1) == '>' && IsDelimit(s.at(cp+2)) {
			return s.token(TokenWord), nil
		}
		return s.token(t), s.ErrSyntax(t)
	}

	return s.token(t), nil
}
