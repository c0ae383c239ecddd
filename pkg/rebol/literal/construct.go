package literal

import (
	"github.com/araddon/dateparse"

	"github.com/rhencke/rebol/pkg/rebol/value"
)

// Construct builds a value from the body of a #[...] form without
// evaluating anything. One-word bodies name a self-describing value;
// two-element bodies pair a datatype name with a literal spec.
func Construct(cells []value.Cell) (value.Cell, bool) {
	if len(cells) == 0 {
		return value.Cell{}, false
	}

	head := &cells[0]
	if head.Kind != value.KindWord || head.Quote != 0 {
		return value.Cell{}, false
	}
	name := head.Symbol.Canon.Name

	if len(cells) == 1 {
		switch name {
		case "true", "on", "yes":
			return value.Logic(true), true
		case "false", "off", "no":
			return value.Logic(false), true
		case "blank", "none":
			return value.Blank(), true
		case "null", "unset":
			return value.Null(), true
		}
		return value.Cell{}, false
	}

	if len(cells) != 2 {
		return value.Cell{}, false
	}

	hook, ok := makeHooks[name]
	if !ok {
		return value.Cell{}, false
	}
	return hook(&cells[1])
}

type makeHook func(spec *value.Cell) (value.Cell, bool)

var makeHooks map[string]makeHook

func init() {
	// filled here rather than in the literal to avoid an init cycle
	// through hooks that return their own spec
	makeHooks = map[string]makeHook{
		"integer!":  makeInteger,
		"decimal!":  makeDecimal,
		"percent!":  makePercent,
		"money!":    makeMoney,
		"char!":     makeChar,
		"pair!":     makePair,
		"tuple!":    makeTuple,
		"time!":     makeTime,
		"date!":     makeDate,
		"text!":     makeText,
		"string!":   makeText,
		"binary!":   makeBinary,
		"file!":     makeFile,
		"email!":    makeEmail,
		"url!":      makeURL,
		"tag!":      makeTag,
		"issue!":    makeIssue,
		"word!":     makeWordKind(value.KindWord),
		"set-word!": makeWordKind(value.KindSetWord),
		"get-word!": makeWordKind(value.KindGetWord),
		"sym-word!": makeWordKind(value.KindSymWord),
		"block!":    makeArrayKind(value.KindBlock),
		"group!":    makeArrayKind(value.KindGroup),
		"paren!":    makeArrayKind(value.KindGroup),
		"logic!":    makeLogic,
	}
}

func makeInteger(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindInteger:
		return *spec, true
	case value.KindText:
		return ScanInteger([]byte(spec.Str))
	}
	return value.Cell{}, false
}

func makeDecimal(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindDecimal:
		return *spec, true
	case value.KindInteger:
		return value.Decimal(float64(spec.Int)), true
	case value.KindText:
		f, ok := ScanDecimal([]byte(spec.Str), true)
		if !ok {
			return value.Cell{}, false
		}
		return value.Decimal(f), true
	}
	return value.Cell{}, false
}

func makePercent(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindPercent:
		return *spec, true
	case value.KindDecimal:
		return value.Percent(spec.Float), true
	case value.KindInteger:
		return value.Percent(float64(spec.Int)), true
	}
	return value.Cell{}, false
}

func makeMoney(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindMoney:
		return *spec, true
	case value.KindInteger:
		return value.Money(float64(spec.Int)), true
	case value.KindDecimal:
		return value.Money(spec.Float), true
	case value.KindText:
		return ScanMoney([]byte(spec.Str))
	}
	return value.Cell{}, false
}

func makeChar(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindChar:
		return *spec, true
	case value.KindInteger:
		if spec.Int < 0 || spec.Int > 0x10FFFF {
			return value.Cell{}, false
		}
		return value.Char(rune(spec.Int)), true
	case value.KindText:
		rs := []rune(spec.Str)
		if len(rs) != 1 {
			return value.Cell{}, false
		}
		return value.Char(rs[0]), true
	}
	return value.Cell{}, false
}

func makePair(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindPair:
		return *spec, true
	case value.KindText:
		return ScanPair([]byte(spec.Str))
	case value.KindBlock:
		if spec.Array.Len() != 2 {
			return value.Cell{}, false
		}
		x, ok1 := cellToFloat(spec.Array.At(0))
		y, ok2 := cellToFloat(spec.Array.At(1))
		if !ok1 || !ok2 {
			return value.Cell{}, false
		}
		return value.Pair(x, y), true
	}
	return value.Cell{}, false
}

func makeTuple(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindTuple:
		return *spec, true
	case value.KindText:
		return ScanTuple([]byte(spec.Str))
	case value.KindBlock:
		if spec.Array.Len() > maxTupleLen {
			return value.Cell{}, false
		}
		parts := make([]byte, 0, spec.Array.Len())
		for i := 0; i < spec.Array.Len(); i++ {
			e := spec.Array.At(i)
			if e.Kind != value.KindInteger || e.Int < 0 || e.Int > 255 {
				return value.Cell{}, false
			}
			parts = append(parts, byte(e.Int))
		}
		for len(parts) < 3 {
			parts = append(parts, 0)
		}
		return value.Tuple(parts), true
	}
	return value.Cell{}, false
}

func makeTime(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindTime:
		return *spec, true
	case value.KindInteger:
		return value.TimeOfDay(spec.Int * nanoPerSec), true
	case value.KindText:
		return ScanTime([]byte(spec.Str))
	}
	return value.Cell{}, false
}

// makeDate accepts a date value, a loadable date string, or any of the
// looser calendar formats dateparse understands (ISO 8601, RFC 822,
// slashed US dates and so on).
func makeDate(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindDate:
		return *spec, true
	case value.KindText:
		if c, ok := ScanDate([]byte(spec.Str)); ok {
			return c, true
		}
		t, err := dateparse.ParseAny(spec.Str)
		if err != nil {
			return value.Cell{}, false
		}
		d := value.Date{
			Year:  t.Year(),
			Month: int(t.Month()),
			Day:   t.Day(),
		}
		nano := int64(t.Hour())*3600*nanoPerSec +
			int64(t.Minute())*60*nanoPerSec +
			int64(t.Second())*nanoPerSec +
			int64(t.Nanosecond())
		if nano != 0 {
			d.Nano = nano
			d.HasTime = true
		}
		if _, offset := t.Zone(); offset != 0 {
			d.Zone = offset / 60
			d.HasZone = true
		}
		return value.DateOf(d), true
	}
	return value.Cell{}, false
}

func makeText(spec *value.Cell) (value.Cell, bool) {
	if spec.Kind == value.KindText {
		return *spec, true
	}
	return value.Cell{}, false
}

func makeBinary(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindBinary:
		return *spec, true
	case value.KindText:
		return ScanBinary([]byte(spec.Str))
	}
	return value.Cell{}, false
}

func makeFile(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindFile:
		return *spec, true
	case value.KindText:
		return ScanFile([]byte(spec.Str))
	}
	return value.Cell{}, false
}

func makeEmail(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindEmail:
		return *spec, true
	case value.KindText:
		return ScanEmail([]byte(spec.Str))
	}
	return value.Cell{}, false
}

func makeURL(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindURL:
		return *spec, true
	case value.KindText:
		return value.URL(spec.Str), true
	}
	return value.Cell{}, false
}

func makeTag(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindTag:
		return *spec, true
	case value.KindText:
		return value.Tag(spec.Str), true
	}
	return value.Cell{}, false
}

func makeIssue(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindIssue:
		return *spec, true
	case value.KindText:
		return ScanIssue([]byte(spec.Str))
	}
	return value.Cell{}, false
}

func makeLogic(spec *value.Cell) (value.Cell, bool) {
	switch spec.Kind {
	case value.KindLogic:
		return *spec, true
	case value.KindWord:
		switch spec.Symbol.Canon.Name {
		case "true", "on", "yes":
			return value.Logic(true), true
		case "false", "off", "no":
			return value.Logic(false), true
		}
	}
	return value.Cell{}, false
}

func makeWordKind(kind value.Kind) makeHook {
	return func(spec *value.Cell) (value.Cell, bool) {
		switch {
		case spec.AnyWord() && spec.Quote == 0:
			return value.Word(kind, spec.Symbol), true
		case spec.Kind == value.KindText:
			return ScanWordBody([]byte(spec.Str), kind)
		}
		return value.Cell{}, false
	}
}

func makeArrayKind(kind value.Kind) makeHook {
	return func(spec *value.Cell) (value.Cell, bool) {
		if !spec.AnyArray() || spec.Quote != 0 {
			return value.Cell{}, false
		}
		return value.AnyArrayCell(kind, spec.Array), true
	}
}

func cellToFloat(c *value.Cell) (float64, bool) {
	switch c.Kind {
	case value.KindInteger:
		return float64(c.Int), true
	case value.KindDecimal:
		return c.Float, true
	}
	return 0, false
}
