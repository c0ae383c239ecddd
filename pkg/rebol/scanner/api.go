package scanner

import (
	"bytes"
	"context"

	"github.com/rhencke/rebol/pkg/rebol/value"
)

// Options configure the high-level scan entry points.
type Options struct {
	// File names the source in errors and array metadata.
	File string

	// Line is the starting line number; zero means 1.
	Line int

	// Relax turns malformed tokens into error cells instead of
	// stopping the scan.
	Relax bool

	// Binder, when set, is applied to every word cell pushed.
	Binder Binder

	// Context cancels a long scan between tokens.
	Context context.Context
}

func (o Options) apply(s *Scanner) {
	var flags Flags
	if o.Relax {
		flags |= FlagRelax
	}
	s.SetFlags(flags)
	s.SetBinder(o.Binder)
	s.SetContext(o.Context)
}

// Scan loads a whole source buffer into one array.
func Scan(src []byte, opts Options) (*value.Array, error) {
	s := New(opts.File, opts.Line, src)
	opts.apply(s)
	return s.Run()
}

// ScanString is Scan for string sources.
func ScanString(src string, opts Options) (*value.Array, error) {
	return Scan([]byte(src), opts)
}

// ScanNext loads the next complete value from src. The returned array
// holds zero cells at end of input or one cell otherwise, and rest is
// the offset where scanning stopped.
func ScanNext(src []byte, opts Options) (*value.Array, int, error) {
	s := New(opts.File, opts.Line, src)
	opts.apply(s)
	s.opts |= FlagNext
	a, err := s.Run()
	if err != nil {
		return nil, s.Rest(), err
	}
	return a, s.Rest(), nil
}

// ScanVariadic scans interleaved source fragments and spliced values.
// See NewVariadic for the accepted part types.
func ScanVariadic(opts Options, parts ...any) (*value.Array, error) {
	s, err := NewVariadic(opts.File, opts.Line, parts...)
	if err != nil {
		return nil, err
	}
	opts.apply(s)
	return s.Run()
}

// Transcode scans src and returns the values along with the offset of
// the unconsumed remainder. With next set it stops after one complete
// value; with only set it stops after one value at every level.
func Transcode(src []byte, next, only bool, opts Options) (*value.Array, int, error) {
	s := New(opts.File, opts.Line, src)
	opts.apply(s)
	if next {
		s.opts |= FlagNext
	}
	if only {
		s.opts |= FlagOnly
	}

	a, err := s.Run()
	if err != nil {
		return nil, s.Rest(), err
	}

	rest := len(src)
	if next || only {
		rest = s.Rest()
	}
	return a, rest, nil
}

var headerWord = []byte("REBOL")

// ScanHeader searches src for a script header: the word REBOL
// (case-insensitive) followed, across lines and comments only, by a
// block. An optional single bracket may precede it for scripts
// embedded in data. It returns the offset of the header block's
// opening bracket.
func ScanHeader(src []byte) (offset int, found bool) {
	rebolSeen := false

	cp := 0
	for {
		for cp < len(src) && (src[cp] == ' ' || src[cp] == '\t') {
			cp++
		}
		if cp >= len(src) {
			return 0, false
		}

		switch c := src[cp]; {
		case c == '[':
			if rebolSeen {
				return cp, true
			}
			cp++
			continue

		case c == 'R' || c == 'r':
			if len(src)-cp >= len(headerWord) &&
				bytes.EqualFold(src[cp:cp+len(headerWord)], headerWord) {
				rebolSeen = true
				cp += len(headerWord)
				continue
			}
			cp = skipHeaderLine(src, cp)

		case c == ';':
			cp = skipHeaderLine(src, cp)

		case c == '\r' || c == '\n':
			cp = skipHeaderLine(src, cp)

		default:
			rebolSeen = false
			cp = skipHeaderLine(src, cp)
		}
	}
}

func skipHeaderLine(src []byte, cp int) int {
	for cp < len(src) && src[cp] != '\r' && src[cp] != '\n' {
		cp++
	}
	if cp+1 < len(src) && src[cp] == '\r' && src[cp+1] == '\n' {
		cp++
	}
	if cp < len(src) {
		cp++
	}
	return cp
}
