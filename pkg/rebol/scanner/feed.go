package scanner

import (
	"context"
	"fmt"

	"github.com/rhencke/rebol/pkg/rebol/lexer"
	"github.com/rhencke/rebol/pkg/rebol/value"
)

// feedItem is one element of a variadic scan: either a fragment of
// UTF-8 source or a prebuilt cell to splice in as-is.
type feedItem struct {
	bytes []byte
	cell  *value.Cell
}

type feed struct {
	items []feedItem
	i     int
}

func (f *feed) next() (feedItem, bool) {
	if f.i >= len(f.items) {
		return feedItem{}, false
	}
	item := f.items[f.i]
	f.i++
	return item, true
}

// NewVariadic prepares a scan over interleaved source fragments and
// spliced values, numbering lines from startLine. Fragments may be
// string or []byte; splices may be value.Cell or *value.Cell. Every
// token must lie entirely inside one fragment: ("a", "/", "b") scans
// as three values, not a path.
func NewVariadic(file string, startLine int, parts ...any) (*Scanner, error) {
	f := &feed{}
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			f.items = append(f.items, feedItem{bytes: []byte(v)})
		case []byte:
			f.items = append(f.items, feedItem{bytes: v})
		case value.Cell:
			c := v
			f.items = append(f.items, feedItem{cell: &c})
		case *value.Cell:
			c := *v
			f.items = append(f.items, feedItem{cell: &c})
		default:
			return nil, fmt.Errorf("scan: cannot feed %T, want string, []byte, or value.Cell", p)
		}
	}

	if startLine < 1 {
		startLine = 1
	}
	s := &Scanner{
		lex:  lexer.NewState(file, startLine, nil),
		feed: f,
		ctx:  context.Background(),
	}
	return s, nil
}
