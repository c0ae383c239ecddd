package literal

import (
	"bytes"
	"testing"

	"github.com/rhencke/rebol/pkg/rebol/value"
)

func TestScanInteger(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"0", 0, true},
		{"1", 1, true},
		{"42", 42, true},
		{"+42", 42, true},
		{"-42", -42, true},
		{"1'000'000", 1000000, true},
		{"0000007", 7, true},
		{"''", 0, true},
		{"9223372036854775807", 9223372036854775807, true},
		{"-9223372036854775808", -9223372036854775808, true},
		{"9223372036854775808", 0, false},
		{"12345678901234567890", 0, false},
		{"12a", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		c, ok := ScanInteger([]byte(tt.in))
		if ok != tt.ok {
			t.Errorf("ScanInteger(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && c.Int != tt.want {
			t.Errorf("ScanInteger(%q) = %d, want %d", tt.in, c.Int, tt.want)
		}
	}
}

func TestScanDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.5", 1.5, true},
		{"-1.5", -1.5, true},
		{"1,5", 1.5, true},
		{"1.", 1, true},
		{".5", 0.5, true},
		{"1e3", 1000, true},
		{"1.5e-1", 0.15, true},
		{"1'234.5", 1234.5, true},
		{"10%", 10, true},
		{"1e", 0, false},
		{".", 0, false},
		{"", 0, false},
		{"1.5x", 0, false},
	}
	for _, tt := range tests {
		f, ok := ScanDecimal([]byte(tt.in), false)
		if ok != tt.ok {
			t.Errorf("ScanDecimal(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && f != tt.want {
			t.Errorf("ScanDecimal(%q) = %g, want %g", tt.in, f, tt.want)
		}
	}

	if _, ok := ScanDecimal([]byte("10%"), true); ok {
		t.Error("percent accepted in decimal-only mode")
	}
}

func TestScanPair(t *testing.T) {
	tests := []struct {
		in   string
		x, y float64
		ok   bool
	}{
		{"10x20", 10, 20, true},
		{"1.5x-2.5", 1.5, -2.5, true},
		{"-1x1", -1, 1, true},
		{"10X20", 10, 20, true},
		{"10x", 0, 0, false},
		{"x20", 0, 0, false},
		{"10x20x30", 0, 0, false},
	}
	for _, tt := range tests {
		c, ok := ScanPair([]byte(tt.in))
		if ok != tt.ok {
			t.Errorf("ScanPair(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && (c.Pair[0] != tt.x || c.Pair[1] != tt.y) {
			t.Errorf("ScanPair(%q) = %vx%v", tt.in, c.Pair[0], c.Pair[1])
		}
	}
}

func TestScanMoney(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1", 1, true},
		{"$1.50", 1.5, true},
		{"-$20", -20, true},
		{"+$0.5", 0.5, true},
		{"$", 0, false},
		{"1.50", 0, false},
	}
	for _, tt := range tests {
		c, ok := ScanMoney([]byte(tt.in))
		if ok != tt.ok {
			t.Errorf("ScanMoney(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && c.Float != tt.want {
			t.Errorf("ScanMoney(%q) = %g, want %g", tt.in, c.Float, tt.want)
		}
	}
}

func TestScanTuple(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
		ok   bool
	}{
		{"1.2.3", []byte{1, 2, 3}, true},
		{"255.0.255", []byte{255, 0, 255}, true},
		{"1.2", []byte{1, 2, 0}, true},
		{"1.2.3.4.5", []byte{1, 2, 3, 4, 5}, true},
		{"256.1.1", nil, false},
		{"1.2.3.4.5.6.7.8.9", nil, false},
		{"1.a.3", nil, false},
	}
	for _, tt := range tests {
		c, ok := ScanTuple([]byte(tt.in))
		if ok != tt.ok {
			t.Errorf("ScanTuple(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !bytes.Equal(c.Tuple, tt.want) {
			t.Errorf("ScanTuple(%q) = %v, want %v", tt.in, c.Tuple, tt.want)
		}
	}
}

func TestScanTime(t *testing.T) {
	const sec = int64(1e9)
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"10:20", (10*3600 + 20*60) * sec, true},
		{"10:20:03", (10*3600 + 20*60 + 3) * sec, true},
		{"0:00", 0, true},
		{"10:20:03.04", (10*3600+20*60+3)*sec + 40000000, true},
		{"-0:01:01", -(61 * sec), true},
		{"1:00pm", 13 * 3600 * sec, true},
		{"12:00AM", 0, true},
		{":10", 10 * 60 * sec, true},
		{"13:00pm", 0, false},
		{"10", 0, false},
		{"10:", 0, false},
		{"a:b", 0, false},
	}
	for _, tt := range tests {
		c, ok := ScanTime([]byte(tt.in))
		if ok != tt.ok {
			t.Errorf("ScanTime(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && c.Nano != tt.want {
			t.Errorf("ScanTime(%q) = %d, want %d", tt.in, c.Nano, tt.want)
		}
	}
}

func TestScanTimeMinuteSecondMode(t *testing.T) {
	// two parts with a fraction read as minutes:seconds.frac
	c, ok := ScanTime([]byte("5:30.5"))
	if !ok {
		t.Fatal("scan failed")
	}
	want := (5*60+30)*int64(1e9) + 500000000
	if c.Nano != want {
		t.Errorf("got %d, want %d", c.Nano, want)
	}
}

func TestScanDate(t *testing.T) {
	tests := []struct {
		in   string
		want value.Date
		ok   bool
	}{
		{"12-Dec-2012", value.Date{Year: 2012, Month: 12, Day: 12}, true},
		{"12-December-2012", value.Date{Year: 2012, Month: 12, Day: 12}, true},
		{"12/12/2012", value.Date{Year: 2012, Month: 12, Day: 12}, true},
		{"2012-12-25", value.Date{Year: 2012, Month: 12, Day: 25}, true},
		{"29-Feb-2000", value.Date{Year: 2000, Month: 2, Day: 29}, true},
		{"1-Jan-5", value.Date{Year: 5, Month: 1, Day: 1}, true},
		{"29-Feb-1900", value.Date{}, false},
		{"29-Feb-2001", value.Date{}, false},
		{"32-Jan-2000", value.Date{}, false},
		{"12-13-2000", value.Date{}, false},
		{"12-Ja-2000", value.Date{}, false},
		{"12-Jan/2000", value.Date{}, false},
		{"0-Jan-2000", value.Date{}, false},
	}
	for _, tt := range tests {
		c, ok := ScanDate([]byte(tt.in))
		if ok != tt.ok {
			t.Errorf("ScanDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && c.Date != tt.want {
			t.Errorf("ScanDate(%q) = %+v, want %+v", tt.in, c.Date, tt.want)
		}
	}
}

func TestScanDateWithTimeAndZone(t *testing.T) {
	c, ok := ScanDate([]byte("31-Dec-2000/10:20+5:00"))
	if !ok {
		t.Fatal("scan failed")
	}
	d := c.Date
	if !d.HasTime || d.Nano != (10*3600+20*60)*int64(1e9) {
		t.Errorf("time wrong: %+v", d)
	}
	if !d.HasZone || d.Zone != 5*60 {
		t.Errorf("zone wrong: %+v", d)
	}

	c, ok = ScanDate([]byte("31-Dec-2000/10:20-0530"))
	if !ok {
		t.Fatal("compact zone failed")
	}
	if c.Date.Zone != -(5*60 + 30) {
		t.Errorf("compact zone = %d", c.Date.Zone)
	}

	if _, ok := ScanDate([]byte("31-Dec-2000/10:20+5:07")); ok {
		t.Error("zone minutes off the quarter hour accepted")
	}
	if _, ok := ScanDate([]byte("1-Jan-2000/25:00")); ok {
		t.Error("time past midnight accepted")
	}
}

func TestScanFile(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"%foo.txt", "foo.txt", true},
		{"%dir/foo.txt", "dir/foo.txt", true},
		{`%"with space.txt"`, "with space.txt", true},
		{"%a%20b", "a b", true},
		{`%a\b`, "a/b", true},
		{"%a:b", "", false},
		{"%a;b", "", false},
		{"%a(b", "", false},
	}
	for _, tt := range tests {
		c, ok := ScanFile([]byte(tt.in))
		if ok != tt.ok {
			t.Errorf("ScanFile(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && c.Str != tt.want {
			t.Errorf("ScanFile(%q) = %q, want %q", tt.in, c.Str, tt.want)
		}
	}
}

func TestScanEmail(t *testing.T) {
	c, ok := ScanEmail([]byte("a@b.com"))
	if !ok || c.Str != "a@b.com" {
		t.Errorf("got %q ok=%v", c.Str, ok)
	}
	c, ok = ScanEmail([]byte("a%40x@b.com"))
	if !ok || c.Str != "a@x@b.com" {
		// decoded at signs do not count toward the single-@ rule
		t.Errorf("got %q ok=%v", c.Str, ok)
	}
	if _, ok := ScanEmail([]byte("a@b@c")); ok {
		t.Error("two at signs accepted")
	}
	if _, ok := ScanEmail([]byte("nobody")); ok {
		t.Error("missing at sign accepted")
	}
}

func TestScanIssue(t *testing.T) {
	good := []string{"foo", "123", "foo-bar", "a'b", "a.b", "a:b", "_x"}
	for _, in := range good {
		if _, ok := ScanIssue([]byte(in)); !ok {
			t.Errorf("ScanIssue(%q) rejected", in)
		}
	}
	bad := []string{"", "a b", "a@b", "a$b", "a(b"}
	for _, in := range bad {
		if _, ok := ScanIssue([]byte(in)); ok {
			t.Errorf("ScanIssue(%q) accepted", in)
		}
	}
}

func TestScanBinary(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
		ok   bool
	}{
		{"#{DEAD}", []byte{0xDE, 0xAD}, true},
		{"#{de ad}", []byte{0xDE, 0xAD}, true},
		{"#{}", []byte{}, true},
		{"16#{CAFE}", []byte{0xCA, 0xFE}, true},
		{"2#{11111111}", []byte{0xFF}, true},
		{"2#{1111}", nil, false},
		{"64#{aGk=}", []byte("hi"), true},
		{"#{DEA}", nil, false},
		{"#{XY}", nil, false},
		{"8#{77}", nil, false},
	}
	for _, tt := range tests {
		c, ok := ScanBinary([]byte(tt.in))
		if ok != tt.ok {
			t.Errorf("ScanBinary(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !bytes.Equal(c.Bytes, tt.want) {
			t.Errorf("ScanBinary(%q) = %x, want %x", tt.in, c.Bytes, tt.want)
		}
	}
}

func TestScanChar(t *testing.T) {
	tests := []struct {
		in   string
		want rune
		ok   bool
	}{
		{`#"a"`, 'a', true},
		{`#"^/"`, '\n', true},
		{`#"^(1E)"`, 0x1E, true},
		{`#"é"`, 'é', true},
		{`#"ab"`, 0, false},
		{`#""`, 0, false},
	}
	for _, tt := range tests {
		c, ok := ScanChar([]byte(tt.in))
		if ok != tt.ok {
			t.Errorf("ScanChar(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && c.Rune != tt.want {
			t.Errorf("ScanChar(%q) = %q, want %q", tt.in, c.Rune, tt.want)
		}
	}
}

func word(name string) value.Cell {
	return value.Word(value.KindWord, value.Intern(name))
}

func TestConstructLiterals(t *testing.T) {
	tests := []struct {
		name string
		kind value.Kind
	}{
		{"true", value.KindLogic},
		{"false", value.KindLogic},
		{"none", value.KindBlank},
		{"blank", value.KindBlank},
		{"null", value.KindNull},
	}
	for _, tt := range tests {
		c, ok := Construct([]value.Cell{word(tt.name)})
		if !ok || c.Kind != tt.kind {
			t.Errorf("Construct(%s) = %v ok=%v", tt.name, c.Kind, ok)
		}
	}

	c, _ := Construct([]value.Cell{word("true")})
	if !c.Logic {
		t.Error("true is not true")
	}
}

func TestConstructMake(t *testing.T) {
	c, ok := Construct([]value.Cell{word("integer!"), value.Text("42")})
	if !ok || c.Kind != value.KindInteger || c.Int != 42 {
		t.Errorf("make integer! failed: %+v ok=%v", c, ok)
	}

	c, ok = Construct([]value.Cell{word("date!"), value.Text("12-Dec-2012")})
	if !ok || c.Kind != value.KindDate || c.Date.Year != 2012 {
		t.Errorf("make date! failed: %+v ok=%v", c, ok)
	}

	// looser calendar formats fall through to the permissive parser
	c, ok = Construct([]value.Cell{word("date!"), value.Text("December 25, 2012")})
	if !ok || c.Kind != value.KindDate || c.Date.Month != 12 || c.Date.Day != 25 {
		t.Errorf("permissive date failed: %+v ok=%v", c, ok)
	}

	if _, ok := Construct([]value.Cell{word("frob!"), value.Integer(1)}); ok {
		t.Error("unknown datatype accepted")
	}
	if _, ok := Construct(nil); ok {
		t.Error("empty body accepted")
	}
	if _, ok := Construct([]value.Cell{value.Integer(1), value.Integer(2)}); ok {
		t.Error("non-word head accepted")
	}
}
