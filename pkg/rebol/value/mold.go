package value

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Mold renders a cell back to loadable source text. Molding then
// rescanning a well-formed value yields an equal value.
func Mold(c *Cell) string {
	var b strings.Builder
	moldInto(&b, c)
	return b.String()
}

// MoldArray renders an array's cells separated by spaces, honoring the
// newline-before flags so vertical layout survives a round trip.
func MoldArray(a *Array) string {
	var b strings.Builder
	moldArrayInto(&b, a)
	return b.String()
}

func moldArrayInto(b *strings.Builder, a *Array) {
	for i := range a.Cells {
		c := &a.Cells[i]
		if i > 0 {
			if c.NewlineBefore {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		} else if c.NewlineBefore {
			b.WriteByte('\n')
		}
		moldInto(b, c)
	}
	if a.TailNewline {
		b.WriteByte('\n')
	}
}

func moldInto(b *strings.Builder, c *Cell) {
	for i := 0; i < c.Quote; i++ {
		b.WriteByte('\'')
	}

	switch c.Kind {
	case KindNull:
		// quoted nulls render as their apostrophes alone

	case KindBlank:
		b.WriteByte('_')

	case KindLogic:
		if c.Logic {
			b.WriteString("#[true]")
		} else {
			b.WriteString("#[false]")
		}

	case KindInteger:
		b.WriteString(strconv.FormatInt(c.Int, 10))

	case KindDecimal:
		b.WriteString(moldFloat(c.Float))

	case KindPercent:
		b.WriteString(moldPercentValue(c.Float))
		b.WriteByte('%')

	case KindMoney:
		f := c.Float
		if f < 0 {
			b.WriteByte('-')
			f = -f
		}
		b.WriteByte('$')
		b.WriteString(trimFloat(f))

	case KindChar:
		b.WriteString(`#"`)
		b.WriteString(moldCharBody(c.Rune, '"'))
		b.WriteByte('"')

	case KindPair:
		b.WriteString(trimFloat(c.Pair[0]))
		b.WriteByte('x')
		b.WriteString(trimFloat(c.Pair[1]))

	case KindTuple:
		for i, v := range c.Tuple {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(strconv.Itoa(int(v)))
		}

	case KindTime:
		b.WriteString(moldTime(c.Nano))

	case KindDate:
		moldDate(b, &c.Date)

	case KindText:
		moldText(b, c.Str)

	case KindBinary:
		b.WriteString("#{")
		b.WriteString(strings.ToUpper(hex.EncodeToString(c.Bytes)))
		b.WriteByte('}')

	case KindFile:
		if strings.ContainsAny(c.Str, " \t") {
			b.WriteString(`%"`)
			b.WriteString(c.Str)
			b.WriteByte('"')
		} else {
			b.WriteByte('%')
			b.WriteString(c.Str)
		}

	case KindEmail, KindURL:
		b.WriteString(c.Str)

	case KindTag:
		b.WriteByte('<')
		b.WriteString(c.Str)
		b.WriteByte('>')

	case KindIssue:
		b.WriteByte('#')
		b.WriteString(c.Str)

	case KindWord:
		b.WriteString(c.Spelling())
	case KindSetWord:
		b.WriteString(c.Spelling())
		b.WriteByte(':')
	case KindGetWord:
		b.WriteByte(':')
		b.WriteString(c.Spelling())
	case KindSymWord:
		b.WriteByte('@')
		b.WriteString(c.Spelling())

	case KindPath, KindSetPath, KindGetPath, KindSymPath:
		moldPath(b, c)

	case KindBlock, KindSetBlock, KindGetBlock, KindSymBlock:
		moldAggregate(b, c, "[", "]")

	case KindGroup, KindSetGroup, KindGetGroup, KindSymGroup:
		moldAggregate(b, c, "(", ")")

	case KindError:
		b.WriteString("#[error! {")
		if c.Err != nil {
			b.WriteString(c.Err.Message)
		}
		b.WriteString("}]")

	default:
		fmt.Fprintf(b, "#[unknown %d]", c.Kind)
	}
}

func moldPath(b *strings.Builder, c *Cell) {
	switch c.Kind {
	case KindGetPath:
		b.WriteByte(':')
	case KindSymPath:
		b.WriteByte('@')
	}
	for i := range c.Array.Cells {
		if i > 0 {
			b.WriteByte('/')
		}
		elem := &c.Array.Cells[i]
		if elem.Kind == KindBlank {
			continue // blanks in paths render as bare slashes
		}
		moldInto(b, elem)
	}
	if c.Kind == KindSetPath {
		b.WriteByte(':')
	}
}

func moldAggregate(b *strings.Builder, c *Cell, open, close string) {
	switch c.Kind {
	case KindGetBlock, KindGetGroup:
		b.WriteByte(':')
	case KindSymBlock, KindSymGroup:
		b.WriteByte('@')
	}
	b.WriteString(open)
	moldArrayInto(b, c.Array)
	b.WriteString(close)
	switch c.Kind {
	case KindSetBlock, KindSetGroup:
		b.WriteByte(':')
	}
}

// moldFloat renders a decimal so it rescans as a decimal (a dot or
// exponent is always present).
func moldFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// trimFloat renders a number without forcing a decimal point.
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// moldPercentValue renders f scaled by 100. Scaling picks up float
// noise, so a 15-digit rendering is preferred whenever it still parses
// back to the stored fraction.
func moldPercentValue(f float64) string {
	v := f * 100
	s := strconv.FormatFloat(v, 'g', 15, 64)
	if p, err := strconv.ParseFloat(s, 64); err != nil || p/100 != f {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return s
}

func moldTime(nano int64) string {
	var b strings.Builder
	if nano < 0 {
		b.WriteByte('-')
		nano = -nano
	}
	secs := nano / 1e9
	frac := nano % 1e9
	fmt.Fprintf(&b, "%d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
	if frac != 0 {
		f := strings.TrimRight(fmt.Sprintf("%09d", frac), "0")
		b.WriteByte('.')
		b.WriteString(f)
	}
	return b.String()
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func moldDate(b *strings.Builder, d *Date) {
	fmt.Fprintf(b, "%d-%s-%d", d.Day, monthNames[d.Month-1][:3], d.Year)
	if d.HasTime {
		b.WriteByte('/')
		b.WriteString(moldTime(d.Nano))
	}
	if d.HasZone {
		z := d.Zone
		sign := byte('+')
		if z < 0 {
			sign = '-'
			z = -z
		}
		fmt.Fprintf(b, "%c%d:%02d", sign, z/60, z%60)
	}
}

func moldText(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		b.WriteString(moldCharBody(r, '"'))
	}
	b.WriteByte('"')
}

// moldCharBody escapes one codepoint for a quoted context.
func moldCharBody(r rune, quote rune) string {
	switch r {
	case '\n':
		return "^/"
	case '\t':
		return "^-"
	case '^':
		return "^^"
	case quote:
		return "^" + string(quote)
	}
	if r < 0x20 || r == 0x7F {
		return fmt.Sprintf("^(%02X)", r)
	}
	return string(r)
}
