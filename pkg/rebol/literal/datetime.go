package literal

import (
	"bytes"

	"github.com/rhencke/rebol/pkg/rebol/value"
)

const (
	maxYear  = 0x3fff
	zoneMins = 15
	maxHour  = (1<<31 - 1) / 3600

	nanoPerSec = int64(1e9)
	nanoPerDay = 24 * 60 * 60 * nanoPerSec
)

var monthMaxDays = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// scanTimeAt reads a time starting at i and reports where it stopped.
//
// Accepted shapes:
//
//	HH:MM
//	HH:MM:SS
//	HH:MM:SS.FFF
//	MM:SS.FFF
//
// A trailing AM or PM adjusts hours in the first three shapes.
func scanTimeAt(b []byte, i int) (int64, int, bool) {
	neg := false
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		neg = b[i] == '-'
		i++
	}
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		return 0, i, false
	}

	// An absent hour field means zero, so ":10" reads as 0:10.
	part1, next := grabInt(b, i)
	if part1 > maxHour {
		return 0, i, false
	}
	i = next

	if i >= len(b) || b[i] != ':' {
		return 0, i, false
	}
	i++

	part2, next := grabInt(b, i)
	if next == i || part2 < 0 {
		return 0, i, false
	}
	i = next

	part3 := int64(-1)
	if i < len(b) && b[i] == ':' {
		part3, next = grabInt(b, i+1)
		if next == i+1 || part3 < 0 {
			return 0, i, false
		}
		i = next
	}

	part4 := int64(-1)
	if i < len(b) && (b[i] == '.' || b[i] == ',') {
		part4, i = grabIntScale(b, i+1, 9)
		if part4 == 0 {
			part4 = -1
		}
	}

	merid := byte(0)
	if i+1 < len(b) {
		c0 := upperByte(b[i])
		if (c0 == 'A' || c0 == 'P') && upperByte(b[i+1]) == 'M' {
			merid = c0
			i += 2
		}
	}

	var nano int64
	if part3 >= 0 || part4 < 0 {
		// hours and minutes, maybe seconds
		if merid != 0 {
			if part1 > 12 {
				return 0, i, false
			}
			if part1 == 12 {
				part1 = 0
			}
			if merid == 'P' {
				part1 += 12
			}
		}
		if part3 < 0 {
			part3 = 0
		}
		nano = (part1*3600 + part2*60 + part3) * nanoPerSec
	} else {
		// minutes and fractional seconds
		if merid != 0 {
			return 0, i, false
		}
		nano = (part1*60 + part2) * nanoPerSec
	}

	if part4 > 0 {
		nano += part4
	}
	if neg {
		nano = -nano
	}
	return nano, i, true
}

// ScanTime converts a whole token body to a time of day.
func ScanTime(b []byte) (value.Cell, bool) {
	nano, i, ok := scanTimeAt(b, 0)
	if !ok || i != len(b) {
		return value.Cell{}, false
	}
	return value.TimeOfDay(nano), true
}

var dateMonths = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// matchMonth resolves a month name of three or more letters, matched
// case-insensitively as a prefix of the English name.
func matchMonth(word []byte) int {
	if len(word) < 3 {
		return 0
	}
	for m, name := range dateMonths {
		if len(word) <= len(name) && bytes.EqualFold(word, []byte(name)[:len(word)]) {
			return m + 1
		}
	}
	return 0
}

func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 32
	}
	return c
}

func isDateWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ScanDate converts a date body, optionally with a time and zone.
// Either day-first (12-Dec-2012) or year-first (2012-12-25, requiring
// four or more digits) ordering is accepted; the field separator may
// be a slash, dash, dot, or space but must be used consistently.
func ScanDate(b []byte) (value.Cell, bool) {
	i := 0
	for i < len(b) && b[i] == ' ' {
		i++
	}

	// An optional leading day name ends with a comma.
	if j := bytes.IndexByte(b[i:], ','); j >= 0 {
		i += j + 1
		for i < len(b) && b[i] == ' ' {
			i++
		}
	}
	if i >= len(b) {
		return value.Cell{}, false
	}

	num, next := grabInt(b, i)
	if next == i || num < 0 {
		return value.Cell{}, false
	}

	var d value.Date
	yearFirst := next-i >= 4
	if yearFirst {
		d.Year = int(num)
	} else {
		if num == 0 {
			return value.Cell{}, false
		}
		d.Day = int(num)
	}
	i = next

	if i >= len(b) {
		return value.Cell{}, false
	}
	sep := b[i]
	if sep != '/' && sep != '-' && sep != '.' && sep != ' ' {
		return value.Cell{}, false
	}
	i++

	// Month as a number or a name.
	num, next = grabInt(b, i)
	if num < 0 {
		return value.Cell{}, false
	}
	if next > i {
		d.Month = int(num)
		i = next
	} else {
		j := i
		for j < len(b) && isDateWordChar(b[j]) {
			j++
		}
		d.Month = matchMonth(b[i:j])
		i = j
	}
	if d.Month < 1 || d.Month > 12 {
		return value.Cell{}, false
	}

	if i >= len(b) || b[i] != sep {
		return value.Cell{}, false
	}
	i++

	if i < len(b) && b[i] == '-' {
		return value.Cell{}, false
	}
	num, next = grabInt(b, i)
	if next == i || num < 0 {
		return value.Cell{}, false
	}
	if yearFirst {
		d.Day = int(num)
	} else {
		d.Year = int(num)
	}
	i = next

	if d.Year > maxYear || d.Day < 1 || d.Day > monthMaxDays[d.Month-1] {
		return value.Cell{}, false
	}
	if d.Month == 2 && d.Day == 29 {
		if d.Year%4 != 0 || (d.Year%100 == 0 && d.Year%400 != 0) {
			return value.Cell{}, false
		}
	}

	if i >= len(b) {
		return value.DateOf(d), true
	}

	if b[i] == '/' || b[i] == ' ' {
		sep = b[i]
		i++
		if i >= len(b) {
			return value.DateOf(d), true
		}
		nano, next, ok := scanTimeAt(b, i)
		if !ok || nano < 0 || nano >= nanoPerDay {
			return value.Cell{}, false
		}
		d.Nano = nano
		d.HasTime = true
		i = next
	}

	if i < len(b) && b[i] == sep {
		i++
	}

	// Zone as +H:MM, +HH:MM, or +HHMM in quarter-hour steps.
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		negZone := b[i] == '-'
		num, next = grabInt(b, i+1)
		if next == i+1 {
			return value.Cell{}, false
		}
		var zone int64
		if next < len(b) && b[next] == ':' {
			if num > 15 {
				return value.Cell{}, false
			}
			mins, after := grabInt(b, next+1)
			if after == next+1 || mins%zoneMins != 0 {
				return value.Cell{}, false
			}
			zone = num*60 + mins
			next = after
		} else {
			if num > 1500 {
				return value.Cell{}, false
			}
			zone = (num/100)*60 + num%100
		}
		if next != len(b) || zone > 15*60 {
			return value.Cell{}, false
		}
		if negZone {
			zone = -zone
		}
		d.Zone = int(zone)
		d.HasZone = true
		i = next
	}

	if i != len(b) {
		return value.Cell{}, false
	}
	return value.DateOf(d), true
}
