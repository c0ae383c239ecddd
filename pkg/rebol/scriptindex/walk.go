package scriptindex

import "github.com/rhencke/rebol/pkg/rebol/value"

// collect walks a loaded array and gathers everything worth indexing:
// words of any decoration, strings, and the string-like kinds that
// name external things.
func collect(a *value.Array) []Entry {
	var out []Entry
	walkArray(a, &out)
	return out
}

func walkArray(a *value.Array, out *[]Entry) {
	for i := range a.Cells {
		c := &a.Cells[i]
		line := c.Line
		if line == 0 {
			line = a.Line
		}
		walkCell(c, line, out)
	}
}

func walkCell(c *value.Cell, line int, out *[]Entry) {
	switch {
	case c.AnyWord():
		*out = append(*out, Entry{
			Text: c.Spelling(),
			Kind: c.Kind.String(),
			Line: line,
		})

	case c.AnyArray():
		walkArray(c.Array, out)

	default:
		switch c.Kind {
		case value.KindText, value.KindFile, value.KindURL,
			value.KindEmail, value.KindTag, value.KindIssue:
			*out = append(*out, Entry{
				Text: c.Str,
				Kind: c.Kind.String(),
				Line: line,
			})
		}
	}
}
