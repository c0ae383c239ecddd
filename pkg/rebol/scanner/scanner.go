// Package scanner turns Rebol source text into arrays of cells. It
// drives the lexer token by token, converts token bodies through the
// literal package, and assembles nested blocks, groups, and paths.
package scanner

import (
	"context"

	"github.com/rhencke/rebol/pkg/rebol/errors"
	"github.com/rhencke/rebol/pkg/rebol/lexer"
	"github.com/rhencke/rebol/pkg/rebol/literal"
	"github.com/rhencke/rebol/pkg/rebol/value"
)

// Flags adjust how far a scan runs and how it reacts to errors.
type Flags uint32

const (
	// FlagNext stops after one complete value. Aggregates still load
	// in full; the flag does not propagate into child scans.
	FlagNext Flags = 1 << iota

	// FlagOnly stops after a single value at every level.
	FlagOnly

	// FlagRelax converts malformed tokens into error cells in place
	// and resumes scanning after them.
	FlagRelax
)

// A Binder is applied to every word cell as it is pushed, giving the
// caller a chance to attach context before the array is assembled.
type Binder func(*value.Cell)

// Scanner holds one scan in progress. A zero Scanner is not usable;
// construct one with New or NewVariadic.
type Scanner struct {
	lex  *lexer.State
	feed *feed

	opts   Flags
	binder Binder
	ctx    context.Context

	stack []value.Cell

	// mode selects what closes the current level: ']', ')', '/' or 0
	// for top level.
	mode byte

	newlinePending bool
	pendingQuote   int

	// tokenLine is the line the current token started on, captured
	// before Locate so multiline strings keep their opening line.
	tokenLine int
}

// New prepares a scan over a single closed buffer. Line numbers start
// at startLine, which is almost always 1.
func New(file string, startLine int, src []byte) *Scanner {
	if startLine < 1 {
		startLine = 1
	}
	return &Scanner{
		lex: lexer.NewState(file, startLine, src),
		ctx: context.Background(),
	}
}

// SetFlags replaces the scan flags.
func (s *Scanner) SetFlags(f Flags) { s.opts = f }

// SetBinder installs a word binder.
func (s *Scanner) SetBinder(b Binder) { s.binder = b }

// SetContext installs a cancellation context, checked between tokens.
func (s *Scanner) SetContext(ctx context.Context) {
	if ctx != nil {
		s.ctx = ctx
	}
}

// Rest returns the offset into the current fragment where scanning
// stopped. Meaningful after a FlagNext or FlagOnly scan.
func (s *Scanner) Rest() int { return s.lex.Begin }

// Line returns the current source line.
func (s *Scanner) Line() int { return s.lex.Line }

// Run scans everything into a single array.
func (s *Scanner) Run() (*value.Array, error) {
	startLine := s.lex.Line
	var err *errors.ScanError
	if s.opts&FlagRelax != 0 {
		err = s.scanRelaxed()
	} else {
		err = s.scanToStack()
	}
	if err != nil {
		return nil, err
	}

	a := value.NewArray()
	a.Cells = append(a.Cells, s.stack...)
	s.stack = s.stack[:0]
	a.TailNewline = s.newlinePending
	a.File = s.lex.File
	a.Line = startLine
	return a, nil
}

func (s *Scanner) push(c value.Cell) {
	c.Line = s.tokenLine
	s.stack = append(s.stack, c)
}

func (s *Scanner) top() *value.Cell {
	return &s.stack[len(s.stack)-1]
}

// peek reads the source byte at i, or 0 past the fragment.
func (s *Scanner) peek(i int) byte {
	if i < 0 || i >= len(s.lex.Src) {
		return 0
	}
	return s.lex.Src[i]
}

func (s *Scanner) checkCancel() *errors.ScanError {
	if err := s.ctx.Err(); err != nil {
		e := errors.New("SCAN-0007", nil)
		e.Line = s.lex.Line
		if s.lex.File != "" {
			e = e.WithFile(s.lex.File)
		}
		return e
	}
	return nil
}

// scanToStack is the scan core. It pushes cells until the closer named
// by the current mode arrives, input runs out, or a single-value flag
// stops it. On a syntax problem the lexer state is left on the bad
// token so relaxed mode can resume past it.
func (s *Scanner) scanToStack() *errors.ScanError {
	justOnce := s.opts&FlagNext != 0
	s.opts &^= FlagNext

	for {
		if err := s.checkCancel(); err != nil {
			return err
		}

		s.tokenLine = s.lex.Line
		tok, lerr := s.lex.Locate()

		if tok.Type == lexer.TokenEnd {
			if s.feed != nil {
				item, ok := s.feed.next()
				if !ok {
					break
				}
				if item.cell == nil {
					s.lex.InstallFragment(item.bytes)
					continue
				}
				// splice a prebuilt value into the stream
				s.push(*item.cell)
				s.finishValue()
				if s.opts&FlagOnly != 0 || justOnce {
					return nil
				}
				continue
			}
			break
		}
		if lerr != nil {
			return lerr
		}

		bp, ep := tok.Begin, tok.End
		body := s.lex.Body(tok)
		s.lex.Begin = ep // accept the token

		switch tok.Type {
		case lexer.TokenNewline:
			s.newlinePending = true
			continue

		case lexer.TokenBlank:
			s.push(value.Blank())

		case lexer.TokenWord:
			s.push(value.Word(value.KindWord, value.Intern(string(body))))

		case lexer.TokenSet:
			spelling := body[:len(body)-1]
			if len(spelling) == 0 {
				return s.errSyntax(tok)
			}
			if s.mode == '/' {
				// a trailing colon in a path closes a set-path; give
				// the colon back and push a plain word
				s.lex.Begin = ep - 1
				s.push(value.Word(value.KindWord, value.Intern(string(spelling))))
			} else {
				s.push(value.Word(value.KindSetWord, value.Intern(string(spelling))))
			}

		case lexer.TokenGet, lexer.TokenSym:
			spelling := body[1:]
			if len(spelling) > 0 && spelling[len(spelling)-1] == ':' {
				if len(spelling) == 1 || s.mode != '/' {
					return s.errSyntax(tok)
				}
				spelling = spelling[:len(spelling)-1]
				s.lex.Begin = ep - 1
			}
			if len(spelling) == 0 {
				return s.errSyntax(tok)
			}
			kind := value.KindGetWord
			if tok.Type == lexer.TokenSym {
				kind = value.KindSymWord
			}
			s.push(value.Word(kind, value.Intern(string(spelling))))

		case lexer.TokenApostrophe:
			depth := len(body)
			next := s.peek(ep)
			if lexer.IsAnySpace(next) || next == 0 ||
				next == ']' || next == ')' || next == ';' {
				// quotes with nothing after them quote a null
				c := value.Null()
				c.Quote = s.pendingQuote + depth
				s.pendingQuote = 0
				s.push(c)
				break
			}
			s.pendingQuote += depth
			continue

		case lexer.TokenBlockBegin, lexer.TokenGetBlockBegin, lexer.TokenSymBlockBegin:
			arr, err := s.childArray(']')
			if err != nil {
				return err
			}
			kind := value.KindBlock
			switch tok.Type {
			case lexer.TokenGetBlockBegin:
				kind = value.KindGetBlock
			case lexer.TokenSymBlockBegin:
				kind = value.KindSymBlock
			}
			s.push(value.AnyArrayCell(s.promoteSet(kind), arr))
			ep = s.lex.Begin // past the closer, where a path slash would sit

		case lexer.TokenGroupBegin, lexer.TokenGetGroupBegin, lexer.TokenSymGroupBegin:
			arr, err := s.childArray(')')
			if err != nil {
				return err
			}
			kind := value.KindGroup
			switch tok.Type {
			case lexer.TokenGetGroupBegin:
				kind = value.KindGetGroup
			case lexer.TokenSymGroupBegin:
				kind = value.KindSymGroup
			}
			s.push(value.AnyArrayCell(s.promoteSet(kind), arr))
			ep = s.lex.Begin

		case lexer.TokenBlockEnd:
			if s.mode == ']' {
				return nil
			}
			if s.mode == ')' {
				return s.lex.ErrMismatch(')', ']')
			}
			return s.lex.ErrExtra(']')

		case lexer.TokenGroupEnd:
			if s.mode == ')' {
				return nil
			}
			if s.mode == ']' {
				return s.lex.ErrMismatch(']', ')')
			}
			return s.lex.ErrExtra(')')

		case lexer.TokenPath:
			// a bare slash: the blank head of a path
			s.push(value.Blank())
			ep = bp
			s.lex.Begin = bp

		case lexer.TokenInteger:
			if s.peek(ep) == '/' && s.mode != '/' {
				// a date written with slashes, e.g. 6/5/2023
				for s.peek(ep) == '/' || lexer.IsNotDelimit(s.peek(ep)) {
					ep++
					if ep-bp > 50 {
						break
					}
				}
				s.lex.Begin = ep
				s.lex.End = ep
				c, ok := literal.ScanDate(s.lex.Src[bp:ep])
				if !ok {
					return s.errSyntaxRange(lexer.TokenDate, bp, ep)
				}
				s.push(c)
				break
			}
			c, ok := literal.ScanInteger(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenDecimal, lexer.TokenPercent:
			if s.peek(ep) == '/' {
				return s.errSyntax(tok)
			}
			f, ok := literal.ScanDecimal(body, false)
			if !ok {
				return s.errSyntax(tok)
			}
			if body[len(body)-1] == '%' {
				s.push(value.Percent(f / 100))
			} else {
				s.push(value.Decimal(f))
			}

		case lexer.TokenMoney:
			if s.peek(ep) == '/' {
				return s.errSyntax(tok)
			}
			c, ok := literal.ScanMoney(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenTime:
			if body[len(body)-1] == ':' && s.mode == '/' {
				// path/10: reads as a set-path with an integer tail
				c, ok := literal.ScanInteger(body[:len(body)-1])
				if !ok {
					return s.errSyntax(tok)
				}
				s.lex.Begin = ep - 1
				s.push(c)
				break
			}
			c, ok := literal.ScanTime(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenDate:
			for s.peek(ep) == '/' && s.mode != '/' {
				// date/time joined with a slash
				ep++
				for lexer.IsNotDelimit(s.peek(ep)) {
					ep++
				}
				if ep-bp > 50 {
					break
				}
				s.lex.Begin = ep
			}
			c, ok := literal.ScanDate(s.lex.Src[bp:ep])
			if !ok {
				return s.errSyntaxRange(lexer.TokenDate, bp, ep)
			}
			s.push(c)

		case lexer.TokenChar:
			c, ok := literal.ScanChar(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenString:
			s.push(value.Text(string(s.lex.Mold)))

		case lexer.TokenBinary:
			c, ok := literal.ScanBinary(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenPair:
			c, ok := literal.ScanPair(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenTuple:
			c, ok := literal.ScanTuple(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenFile:
			c, ok := literal.ScanFile(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenEmail:
			c, ok := literal.ScanEmail(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenURL:
			c, ok := literal.ScanURL(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenTag:
			c, ok := literal.ScanTag(body)
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenIssue:
			c, ok := literal.ScanIssue(body[1:])
			if !ok {
				return s.errSyntax(tok)
			}
			s.push(c)

		case lexer.TokenConstruct:
			c, err := s.scanConstruct()
			if err != nil {
				return err
			}
			s.push(c)
			ep = s.lex.Begin

		default:
			return s.errSyntax(tok)
		}

		if s.binder != nil && s.top().AnyWord() {
			s.binder(s.top())
		}

		// Path continuation and initiation both look at the byte just
		// past the value's source text.
		if s.mode == '/' {
			if s.peek(ep) != '/' {
				return nil
			}
			ep++
			s.lex.Begin = ep
			c := s.peek(ep)
			if c != '(' && c != '[' && c != '/' && lexer.IsDelimit(c) {
				// nothing after the slash: a blank path tail
				s.push(value.Blank())
				s.finishValue()
				return nil
			}
		} else if s.peek(ep) == '/' {
			if err := s.stealIntoPath(ep); err != nil {
				return err
			}
		}

		s.finishValue()

		if s.opts&FlagOnly != 0 || justOnce {
			return nil
		}
	}

	if s.mode == ']' || s.mode == ')' {
		return s.lex.ErrMissing(s.mode)
	}
	return nil
}

// finishValue applies the pending newline flag and quote depth to the
// value just pushed. Deferred to after path handling so the marks land
// on the whole path rather than its head.
func (s *Scanner) finishValue() {
	top := s.top()
	if s.newlinePending {
		s.newlinePending = false
		top.NewlineBefore = true
	}
	if s.pendingQuote != 0 {
		top.Quote += s.pendingQuote
		s.pendingQuote = 0
	}
}

// stealIntoPath retroactively turns the value on top of the stack into
// the head of a path, scanning the remaining segments. The slash at ep
// begins the continuation.
func (s *Scanner) stealIntoPath(ep int) *errors.ScanError {
	s.lex.Begin = ep + 1

	var arr *value.Array
	c := s.peek(ep + 1)
	if c != '(' && c != '[' && c != '/' && lexer.IsDelimit(c) {
		// sole trailing slash, e.g. "a/": close with a blank tail
		arr = value.NewArray()
		arr.Cells = append(arr.Cells, *s.top(), value.Blank())
		s.stack = s.stack[:len(s.stack)-1]
		arr.File = s.lex.File
		arr.Line = s.lex.Line
	} else {
		var err *errors.ScanError
		arr, err = s.childArray('/')
		if err != nil {
			return err
		}
	}

	kind := value.KindPath
	head := &arr.Cells[0]
	switch {
	case head.Kind == value.KindGetWord && head.Quote == 0:
		if s.peek(s.lex.Begin) == ':' {
			return s.errSyntaxRange(lexer.TokenPath, s.lex.Begin, s.lex.Begin+1)
		}
		kind = value.KindGetPath
		head.Kind = value.KindWord
	case head.Kind == value.KindSymWord && head.Quote == 0:
		kind = value.KindSymPath
		head.Kind = value.KindWord
	case s.peek(s.lex.Begin) == ':':
		kind = value.KindSetPath
		s.lex.Begin++
	}

	s.push(value.AnyArrayCell(kind, arr))
	return nil
}

// promoteSet turns a block or group into its set- form when the closer
// is immediately followed by a colon and then a delimiter.
func (s *Scanner) promoteSet(kind value.Kind) value.Kind {
	if s.peek(s.lex.Begin) != ':' || !lexer.IsDelimit(s.peek(s.lex.Begin+1)) {
		return kind
	}
	var set value.Kind
	switch kind {
	case value.KindBlock:
		set = value.KindSetBlock
	case value.KindGroup:
		set = value.KindSetGroup
	default:
		return kind
	}
	s.lex.Begin++
	return set
}

// childArray scans one nested level and pops its cells into a fresh
// array. In path mode the value most recently pushed by the caller is
// taken over as the path's head.
func (s *Scanner) childArray(mode byte) (*value.Array, *errors.ScanError) {
	savedMode := s.mode
	savedNewline := s.newlinePending
	savedQuote := s.pendingQuote
	savedOpts := s.opts
	savedStart := s.lex.StartLine
	savedStartHead := s.lex.StartLineHead

	openLine := s.lex.Line
	s.lex.StartLine = s.lex.Line
	s.lex.StartLineHead = s.lex.LineHead
	s.mode = mode
	s.newlinePending = false
	s.pendingQuote = 0
	s.opts &^= FlagNext

	base := len(s.stack)
	if mode == '/' {
		base--
	}

	var err *errors.ScanError
	if s.opts&FlagRelax != 0 {
		err = s.scanRelaxed()
	} else {
		err = s.scanToStack()
	}

	var arr *value.Array
	if err == nil {
		arr = value.NewArray()
		arr.Cells = append(arr.Cells, s.stack[base:]...)
		arr.TailNewline = s.newlinePending
		arr.File = s.lex.File
		arr.Line = openLine
	}
	s.stack = s.stack[:base]

	s.mode = savedMode
	s.newlinePending = savedNewline
	s.pendingQuote = savedQuote
	s.opts = savedOpts
	s.lex.StartLine = savedStart
	s.lex.StartLineHead = savedStartHead
	return arr, err
}

// scanConstruct reads the body of a #[...] form and builds the value
// it describes. Constructs never evaluate; the body must be a known
// literal name or a datatype name with a spec.
func (s *Scanner) scanConstruct() (value.Cell, *errors.ScanError) {
	savedOnly := s.opts & FlagOnly
	s.opts &^= FlagOnly
	arr, err := s.childArray(']')
	s.opts |= savedOnly
	if err != nil {
		return value.Cell{}, err
	}

	c, ok := literal.Construct(arr.Cells)
	if !ok {
		e := errors.New("SCAN-0005", map[string]any{
			"Block": value.MoldArray(arr),
		})
		e.Line = s.lex.Line
		e.Near = s.lex.NearText(s.lex.Line, s.lex.LineHead)
		if s.lex.File != "" {
			e = e.WithFile(s.lex.File)
		}
		return value.Cell{}, e
	}
	return c, nil
}

// scanRelaxed keeps scanning after errors, pushing each one as an
// error cell where the bad token sat. An error that leaves no way to
// make progress, such as an unclosed aggregate at end of input, still
// propagates.
func (s *Scanner) scanRelaxed() *errors.ScanError {
	for {
		err := s.scanToStack()
		if err == nil {
			return nil
		}

		progress := s.lex.End > s.lex.Begin
		if !progress && s.lex.Begin >= len(s.lex.Src) {
			return err
		}

		s.lex.Begin = s.lex.End // skip the malformed token
		s.push(value.ErrorCell(err))
		s.finishValue()
	}
}

func (s *Scanner) errSyntax(tok lexer.Token) *errors.ScanError {
	return s.errSyntaxRange(tok.Type, tok.Begin, tok.End)
}

// errSyntaxRange reports an invalid token spanning the given bytes,
// leaving the lexer positioned on it for relaxed resumption.
func (s *Scanner) errSyntaxRange(t lexer.TokenType, begin, end int) *errors.ScanError {
	s.lex.Begin = begin
	s.lex.End = end
	err := s.lex.ErrSyntax(t)
	s.lex.Begin = begin // relax skips Begin..End
	return err
}
