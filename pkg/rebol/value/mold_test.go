package value

import (
	"testing"
)

func TestMoldScalars(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{Blank(), "_"},
		{Logic(true), "#[true]"},
		{Logic(false), "#[false]"},
		{Integer(42), "42"},
		{Integer(-7), "-7"},
		{Decimal(1.5), "1.5"},
		{Decimal(2), "2.0"},
		{Percent(0.105), "10.5%"},
		{Money(1.5), "$1.5"},
		{Money(-20), "-$20"},
		{Char('a'), `#"a"`},
		{Char('\n'), `#"^/"`},
		{Char('"'), `#"^""`},
		{Char(0x1E), `#"^(1E)"`},
		{Pair(10, 20), "10x20"},
		{Tuple([]byte{1, 2, 3}), "1.2.3"},
		{Issue("foo"), "#foo"},
		{Tag("a href"), "<a href>"},
		{Email("a@b.com"), "a@b.com"},
		{URL("http://x.y/z"), "http://x.y/z"},
		{File("foo/bar.txt"), "%foo/bar.txt"},
		{File("with space.txt"), `%"with space.txt"`},
		{Binary([]byte{0xDE, 0xAD}), "#{DEAD}"},
	}
	for _, tt := range tests {
		c := tt.cell
		if got := Mold(&c); got != tt.want {
			t.Errorf("Mold(%v) = %q, want %q", c.Kind, got, tt.want)
		}
	}
}

func TestMoldTime(t *testing.T) {
	tests := []struct {
		nano int64
		want string
	}{
		{0, "0:00:00"},
		{int64(10*3600+20*60+3) * 1e9, "10:20:03"},
		{int64(90) * 1e9, "0:01:30"},
		{1500000000, "0:00:01.5"},
		{-int64(61) * 1e9, "-0:01:01"},
	}
	for _, tt := range tests {
		c := TimeOfDay(tt.nano)
		if got := Mold(&c); got != tt.want {
			t.Errorf("Mold(time %d) = %q, want %q", tt.nano, got, tt.want)
		}
	}
}

func TestMoldDate(t *testing.T) {
	d := Date{Year: 2012, Month: 1, Day: 12}
	c := DateOf(d)
	if got := Mold(&c); got != "12-Jan-2012" {
		t.Errorf("got %q", got)
	}

	d = Date{
		Year: 2000, Month: 12, Day: 31,
		Nano: int64(10*3600+20*60) * 1e9, HasTime: true,
		Zone: -5 * 60, HasZone: true,
	}
	c = DateOf(d)
	if got := Mold(&c); got != "31-Dec-2000/10:20:00-5:00" {
		t.Errorf("got %q", got)
	}
}

func TestMoldText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", `"hello"`},
		{`say "hi"`, `"say ^"hi^""`},
		{"a^b", `"a^^b"`},
		{"line1\nline2", `"line1^/line2"`},
		{"tab\there", `"tab^-here"`},
	}
	for _, tt := range tests {
		c := Text(tt.in)
		if got := Mold(&c); got != tt.want {
			t.Errorf("Mold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMoldWords(t *testing.T) {
	foo := Intern("foo")
	tests := []struct {
		cell Cell
		want string
	}{
		{Word(KindWord, foo), "foo"},
		{Word(KindSetWord, foo), "foo:"},
		{Word(KindGetWord, foo), ":foo"},
		{Word(KindSymWord, foo), "@foo"},
	}
	for _, tt := range tests {
		c := tt.cell
		if got := Mold(&c); got != tt.want {
			t.Errorf("Mold(%v) = %q, want %q", c.Kind, got, tt.want)
		}
	}

	q := Word(KindWord, foo)
	q.Quote = 2
	if got := Mold(&q); got != "''foo" {
		t.Errorf("quoted word molds as %q", got)
	}

	n := Null()
	n.Quote = 1
	if got := Mold(&n); got != "'" {
		t.Errorf("quoted null molds as %q", got)
	}
}

func TestMoldArrays(t *testing.T) {
	foo := Intern("foo")
	bar := Intern("bar")

	inner := NewArray()
	inner.Append(Integer(1))
	inner.Append(Integer(2))

	a := NewArray()
	a.Append(Word(KindWord, foo))
	a.Append(AnyArrayCell(KindBlock, inner))

	c := AnyArrayCell(KindBlock, a)
	if got := Mold(&c); got != "[foo [1 2]]" {
		t.Errorf("got %q", got)
	}

	// newline-before layout survives
	b := NewArray()
	b.Append(Word(KindWord, foo))
	second := Word(KindWord, bar)
	second.NewlineBefore = true
	b.Append(second)
	b.TailNewline = true
	if got := MoldArray(b); got != "foo\nbar\n" {
		t.Errorf("got %q", got)
	}
}

func TestMoldPaths(t *testing.T) {
	a := Intern("a")
	b := Intern("b")

	p := NewArray()
	p.Append(Word(KindWord, a))
	p.Append(Word(KindWord, b))

	c := AnyArrayCell(KindPath, p)
	if got := Mold(&c); got != "a/b" {
		t.Errorf("got %q", got)
	}

	c = AnyArrayCell(KindSetPath, p)
	if got := Mold(&c); got != "a/b:" {
		t.Errorf("got %q", got)
	}

	c = AnyArrayCell(KindGetPath, p)
	if got := Mold(&c); got != ":a/b" {
		t.Errorf("got %q", got)
	}

	// a blank head renders as a leading slash
	bp := NewArray()
	bp.Append(Blank())
	bp.Append(Word(KindWord, a))
	c = AnyArrayCell(KindPath, bp)
	if got := Mold(&c); got != "/a" {
		t.Errorf("got %q", got)
	}

	// bare slash is a path of two blanks
	bb := NewArray()
	bb.Append(Blank())
	bb.Append(Blank())
	c = AnyArrayCell(KindPath, bb)
	if got := Mold(&c); got != "/" {
		t.Errorf("got %q", got)
	}
}

func TestInternCanon(t *testing.T) {
	a := Intern("Foo")
	b := Intern("foo")
	c := Intern("FOO")
	if a == b || a == c {
		t.Fatal("distinct spellings interned to same symbol")
	}
	if a.Canon != b || c.Canon != b || b.Canon != b {
		t.Error("canon links wrong")
	}
	if Intern("Foo") != a {
		t.Error("interning is not idempotent")
	}
}
