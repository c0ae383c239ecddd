// Package value defines the cells, arrays, and symbols the scanner
// produces. A Cell is a tagged union covering every literal kind the
// loader can emit; aggregates reference an Array of further cells.
package value

import (
	"time"

	"github.com/rhencke/rebol/pkg/rebol/errors"
)

// Kind tags the datatype stored in a Cell.
type Kind int

const (
	KindBlank Kind = iota
	KindLogic
	KindInteger
	KindDecimal
	KindPercent
	KindMoney
	KindChar
	KindPair
	KindTuple
	KindTime
	KindDate
	KindText
	KindBinary
	KindFile
	KindEmail
	KindURL
	KindTag
	KindIssue
	KindWord
	KindSetWord
	KindGetWord
	KindSymWord
	KindPath
	KindSetPath
	KindGetPath
	KindSymPath
	KindBlock
	KindSetBlock
	KindGetBlock
	KindSymBlock
	KindGroup
	KindSetGroup
	KindGetGroup
	KindSymGroup
	KindError
	KindNull
)

var kindNames = [...]string{
	KindBlank:    "blank!",
	KindLogic:    "logic!",
	KindInteger:  "integer!",
	KindDecimal:  "decimal!",
	KindPercent:  "percent!",
	KindMoney:    "money!",
	KindChar:     "char!",
	KindPair:     "pair!",
	KindTuple:    "tuple!",
	KindTime:     "time!",
	KindDate:     "date!",
	KindText:     "text!",
	KindBinary:   "binary!",
	KindFile:     "file!",
	KindEmail:    "email!",
	KindURL:      "url!",
	KindTag:      "tag!",
	KindIssue:    "issue!",
	KindWord:     "word!",
	KindSetWord:  "set-word!",
	KindGetWord:  "get-word!",
	KindSymWord:  "sym-word!",
	KindPath:     "path!",
	KindSetPath:  "set-path!",
	KindGetPath:  "get-path!",
	KindSymPath:  "sym-path!",
	KindBlock:    "block!",
	KindSetBlock: "set-block!",
	KindGetBlock: "get-block!",
	KindSymBlock: "sym-block!",
	KindGroup:    "group!",
	KindSetGroup: "set-group!",
	KindGetGroup: "get-group!",
	KindSymGroup: "sym-group!",
	KindError:    "error!",
	KindNull:     "null",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown!"
}

// Date is a calendar date with an optional time and zone. Zone is in
// minutes east of UTC and meaningful only when HasZone is set.
type Date struct {
	Year    int
	Month   int
	Day     int
	Nano    int64
	Zone    int
	HasTime bool
	HasZone bool
}

// Cell is one scanned value. Quote carries the number of leading
// apostrophes; NewlineBefore records that a source newline preceded the
// token that produced this cell; Line is the source line the token
// started on.
type Cell struct {
	Kind          Kind
	Quote         int
	NewlineBefore bool
	Line          int

	Logic  bool
	Int    int64
	Float  float64 // decimal, percent (stored as fraction), money
	Rune   rune
	Pair   [2]float64
	Tuple  []byte
	Date   Date
	Nano   int64 // time! as nanoseconds since midnight
	Str    string
	Bytes  []byte
	Symbol *Symbol
	Array  *Array
	Err    *errors.ScanError
}

// AnyWord reports whether the cell is a word of any decoration.
func (c *Cell) AnyWord() bool {
	switch c.Kind {
	case KindWord, KindSetWord, KindGetWord, KindSymWord:
		return true
	}
	return false
}

// AnyArray reports whether the cell holds an array payload.
func (c *Cell) AnyArray() bool {
	switch c.Kind {
	case KindPath, KindSetPath, KindGetPath, KindSymPath,
		KindBlock, KindSetBlock, KindGetBlock, KindSymBlock,
		KindGroup, KindSetGroup, KindGetGroup, KindSymGroup:
		return true
	}
	return false
}

// Spelling returns the interned spelling for word-family cells.
func (c *Cell) Spelling() string {
	if c.Symbol == nil {
		return ""
	}
	return c.Symbol.Name
}

// Constructors, one per literal kind the scanner emits.

func Blank() Cell               { return Cell{Kind: KindBlank} }
func Null() Cell                { return Cell{Kind: KindNull} }
func Logic(b bool) Cell         { return Cell{Kind: KindLogic, Logic: b} }
func Integer(n int64) Cell      { return Cell{Kind: KindInteger, Int: n} }
func Decimal(f float64) Cell    { return Cell{Kind: KindDecimal, Float: f} }
func Percent(f float64) Cell    { return Cell{Kind: KindPercent, Float: f} }
func Money(f float64) Cell      { return Cell{Kind: KindMoney, Float: f} }
func Char(r rune) Cell          { return Cell{Kind: KindChar, Rune: r} }
func Pair(x, y float64) Cell    { return Cell{Kind: KindPair, Pair: [2]float64{x, y}} }
func Tuple(b []byte) Cell       { return Cell{Kind: KindTuple, Tuple: b} }
func TimeOfDay(nano int64) Cell { return Cell{Kind: KindTime, Nano: nano} }
func DateOf(d Date) Cell        { return Cell{Kind: KindDate, Date: d} }
func Text(s string) Cell        { return Cell{Kind: KindText, Str: s} }
func Binary(b []byte) Cell      { return Cell{Kind: KindBinary, Bytes: b} }
func File(s string) Cell        { return Cell{Kind: KindFile, Str: s} }
func Email(s string) Cell       { return Cell{Kind: KindEmail, Str: s} }
func URL(s string) Cell         { return Cell{Kind: KindURL, Str: s} }
func Tag(s string) Cell         { return Cell{Kind: KindTag, Str: s} }
func Issue(s string) Cell       { return Cell{Kind: KindIssue, Str: s} }

func Word(kind Kind, sym *Symbol) Cell {
	return Cell{Kind: kind, Symbol: sym}
}

func AnyArrayCell(kind Kind, a *Array) Cell {
	return Cell{Kind: kind, Array: a}
}

func ErrorCell(e *errors.ScanError) Cell {
	return Cell{Kind: KindError, Err: e}
}

// TimeDuration converts a time! cell's nanosecond payload.
func (c *Cell) TimeDuration() time.Duration {
	return time.Duration(c.Nano)
}
