// Package literal converts token bodies into typed cells. Each scanner
// takes the exact byte range a token occupies and either produces a cell
// or reports that the body is malformed.
package literal

import (
	"math"
	"strconv"

	"github.com/rhencke/rebol/pkg/rebol/lexer"
	"github.com/rhencke/rebol/pkg/rebol/value"
)

const (
	maxNumLen   = 64
	maxTupleLen = 8
	maxIntChars = 19
)

// grabInt reads an optional sign and a run of digits starting at i.
// It returns the parsed value and the index of the first unread byte.
// When no digits are present the index comes back unchanged.
func grabInt(b []byte, i int) (int64, int) {
	neg := false
	start := i
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		neg = b[i] == '-'
		i++
	}
	var n int64
	digits := 0
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		n = n*10 + int64(b[i]-'0')
		digits++
		i++
	}
	if digits == 0 {
		return 0, start
	}
	if neg {
		n = -n
	}
	return n, i
}

// grabIntScale reads digits as a fraction scaled to the given number of
// decimal places, rounding on the first dropped digit.
func grabIntScale(b []byte, i int, scale int) (int64, int) {
	var n int64
	for scale > 0 && i < len(b) && b[i] >= '0' && b[i] <= '9' {
		n = n*10 + int64(b[i]-'0')
		scale--
		i++
	}
	if i < len(b) && b[i] >= '5' && b[i] <= '9' {
		n++
	}
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	for ; scale > 0; scale-- {
		n *= 10
	}
	return n, i
}

// ScanInteger converts a signed digit run. Apostrophes may group digits
// anywhere after the sign. More than nineteen significant digits or a
// value outside the int64 range fails.
func ScanInteger(b []byte) (value.Cell, bool) {
	if len(b) == 0 || len(b) > maxNumLen {
		return value.Cell{}, false
	}

	i := 0
	neg := false
	if b[i] == '-' {
		neg = true
		i++
	} else if b[i] == '+' {
		i++
	}

	for i < len(b) && (b[i] == '0' || b[i] == '\'') {
		i++
	}
	if i == len(b) {
		return value.Integer(0), true
	}

	buf := make([]byte, 0, len(b))
	if neg {
		buf = append(buf, '-')
	}
	for ; i < len(b); i++ {
		switch {
		case b[i] >= '0' && b[i] <= '9':
			buf = append(buf, b[i])
		case b[i] == '\'':
			// grouping mark, skip
		default:
			return value.Cell{}, false
		}
	}

	digits := len(buf)
	if neg {
		digits--
	}
	if digits > maxIntChars {
		return value.Cell{}, false
	}

	n, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		return value.Cell{}, false
	}
	return value.Integer(n), true
}

// ScanDecimal converts a decimal body. A comma may serve as the radix
// point and apostrophes group digits. When decOnly is set a trailing
// percent sign is rejected rather than ignored.
func ScanDecimal(b []byte, decOnly bool) (float64, bool) {
	if len(b) == 0 || len(b) > maxNumLen {
		return 0, false
	}

	buf := make([]byte, 0, len(b)+2)
	i := 0
	if b[i] == '+' || b[i] == '-' {
		buf = append(buf, b[i])
		i++
	}

	digits := false
	for i < len(b) && (lexer.IsNumberChar(b[i]) || b[i] == '\'') {
		if b[i] != '\'' {
			buf = append(buf, b[i])
			digits = true
		}
		i++
	}

	if i < len(b) && (b[i] == ',' || b[i] == '.') {
		i++
	}
	buf = append(buf, '.')

	for i < len(b) && (lexer.IsNumberChar(b[i]) || b[i] == '\'') {
		if b[i] != '\'' {
			buf = append(buf, b[i])
			digits = true
		}
		i++
	}

	if !digits {
		return 0, false
	}

	if i < len(b) && (b[i] == 'E' || b[i] == 'e') {
		buf = append(buf, b[i])
		i++
		digits = false
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			buf = append(buf, b[i])
			i++
		}
		for i < len(b) && lexer.IsNumberChar(b[i]) {
			buf = append(buf, b[i])
			digits = true
			i++
		}
		if !digits {
			return 0, false
		}
	}

	if i < len(b) && b[i] == '%' {
		if decOnly {
			return 0, false
		}
		i++
	}

	if i != len(b) {
		return 0, false
	}

	f, err := strconv.ParseFloat(string(buf), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// scanDecBuf validates one decimal number inside a larger body and
// reports where it stopped. Used for the halves of a pair.
func scanDecBuf(b []byte, i int) (f float64, integral bool, next int, ok bool) {
	buf := make([]byte, 0, maxNumLen)
	integral = true

	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		buf = append(buf, b[i])
		i++
	}

	digits := false
	for i < len(b) && (lexer.IsNumberChar(b[i]) || b[i] == '\'') {
		if b[i] != '\'' {
			buf = append(buf, b[i])
			digits = true
		}
		i++
	}

	if i < len(b) && (b[i] == ',' || b[i] == '.') {
		integral = false
		i++
	}
	buf = append(buf, '.')

	for i < len(b) && (lexer.IsNumberChar(b[i]) || b[i] == '\'') {
		if b[i] != '\'' {
			buf = append(buf, b[i])
			digits = true
		}
		i++
	}

	if !digits {
		return 0, false, i, false
	}

	if i < len(b) && (b[i] == 'E' || b[i] == 'e') {
		buf = append(buf, b[i])
		i++
		integral = false
		digits = false
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			buf = append(buf, b[i])
			i++
		}
		for i < len(b) && lexer.IsNumberChar(b[i]) {
			buf = append(buf, b[i])
			digits = true
			i++
		}
		if !digits {
			return 0, false, i, false
		}
	}

	if len(buf) > maxNumLen {
		return 0, false, i, false
	}

	f, err := strconv.ParseFloat(string(buf), 64)
	if err != nil {
		return 0, false, i, false
	}
	return f, integral, i, true
}

// ScanPair converts two decimals joined by an x.
func ScanPair(b []byte) (value.Cell, bool) {
	x, _, i, ok := scanDecBuf(b, 0)
	if !ok {
		return value.Cell{}, false
	}
	if i >= len(b) || (b[i] != 'x' && b[i] != 'X') {
		return value.Cell{}, false
	}
	y, _, i, ok := scanDecBuf(b, i+1)
	if !ok || i != len(b) {
		return value.Cell{}, false
	}
	return value.Pair(x, y), true
}

// ScanMoney converts an optionally signed dollar amount.
func ScanMoney(b []byte) (value.Cell, bool) {
	i := 0
	neg := false
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		neg = b[i] == '-'
		i++
	}
	if i >= len(b) || b[i] != '$' {
		return value.Cell{}, false
	}
	i++
	if i >= len(b) {
		return value.Cell{}, false
	}

	f, ok := ScanDecimal(b[i:], true)
	if !ok {
		return value.Cell{}, false
	}
	if neg {
		f = -f
	}
	return value.Money(f), true
}

// ScanTuple converts dot-separated byte components. Fewer than three
// components are padded with zeros; each must fit in a byte.
func ScanTuple(b []byte) (value.Cell, bool) {
	if len(b) == 0 {
		return value.Cell{}, false
	}

	size := 1
	for _, c := range b {
		if c == '.' {
			size++
		}
	}
	if size > maxTupleLen {
		return value.Cell{}, false
	}
	if size < 3 {
		size = 3
	}

	parts := make([]byte, 0, size)
	i := 0
	for {
		n, next := grabInt(b, i)
		if next == i || n < 0 || n > 255 {
			return value.Cell{}, false
		}
		parts = append(parts, byte(n))
		i = next
		if i >= len(b) {
			break
		}
		if b[i] != '.' {
			return value.Cell{}, false
		}
		i++
		if i >= len(b) {
			break // trailing dot pads with a zero component
		}
	}

	for len(parts) < size {
		parts = append(parts, 0)
	}
	return value.Tuple(parts), true
}
