package load

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"

	reberrors "github.com/rhencke/rebol/pkg/rebol/errors"
	"github.com/rhencke/rebol/pkg/rebol/value"
)

func bodyMold(t *testing.T, name string, src []byte, opts Options) string {
	t.Helper()
	script, err := Bytes(name, src, opts)
	if err != nil {
		t.Fatalf("Bytes(%q) error: %v", src, err)
	}
	return value.MoldArray(script.Body)
}

func loadCode(t *testing.T, err error) string {
	t.Helper()
	se, ok := err.(*reberrors.ScanError)
	if !ok {
		t.Fatalf("error type %T: %v", err, err)
	}
	return se.Code
}

func TestLoadPlain(t *testing.T) {
	script, err := Bytes("t.r", []byte("foo: 10"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if script.Header != nil {
		t.Error("plain source should have no header")
	}
	if got := value.MoldArray(script.Body); got != "foo: 10" {
		t.Errorf("body molds %q", got)
	}
}

func TestLoadHeader(t *testing.T) {
	src := []byte("; preamble\nREBOL [title: \"t\"]\nfoo: 10\n")
	script, err := Bytes("t.r", src, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if script.Header == nil {
		t.Fatal("header block not found")
	}
	if got := value.MoldArray(script.Header); got != `title: "t"` {
		t.Errorf("header molds %q", got)
	}
	if got := value.MoldArray(script.Body); got != "\nfoo: 10\n" {
		t.Errorf("body molds %q", got)
	}
	if script.Body.Line != 2 {
		t.Errorf("body starts at line %d, want 2", script.Body.Line)
	}
}

func TestLoadUTF16(t *testing.T) {
	plain := "foo: 10 \"héllo\""
	want := bodyMold(t, "t.r", []byte(plain), Options{})

	le := []byte{0xff, 0xfe}
	be := []byte{0xfe, 0xff}
	for _, r := range plain {
		// all test characters fit one UTF-16 unit
		le = append(le, byte(r), byte(r>>8))
		be = append(be, byte(r>>8), byte(r))
	}

	if got := bodyMold(t, "le.r", le, Options{}); got != want {
		t.Errorf("UTF-16LE molds %q, want %q", got, want)
	}
	if got := bodyMold(t, "be.r", be, Options{}); got != want {
		t.Errorf("UTF-16BE molds %q, want %q", got, want)
	}
}

func TestLoadUTF8BOM(t *testing.T) {
	src := append([]byte{0xef, 0xbb, 0xbf}, "foo: 10"...)
	if got := bodyMold(t, "t.r", src, Options{}); got != "foo: 10" {
		t.Errorf("BOM'd source molds %q", got)
	}
}

func TestLoadGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte("foo: 10 [a b]")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	if got := bodyMold(t, "t.r.gz", buf.Bytes(), Options{}); got != "foo: 10 [a b]" {
		t.Errorf("gzip source molds %q", got)
	}
}

func TestLoadBadEncoding(t *testing.T) {
	_, err := Bytes("t.r", []byte{0x80, 0x81, 0x82}, Options{})
	if err == nil {
		t.Fatal("invalid bytes should not load")
	}
	if code := loadCode(t, err); code != "LOAD-0002" {
		t.Errorf("got %s, want LOAD-0002", code)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := File("/no/such/path.r", Options{})
	if err == nil {
		t.Fatal("missing file should not load")
	}
	if code := loadCode(t, err); code != "LOAD-0001" {
		t.Errorf("got %s, want LOAD-0001", code)
	}
}

const literateDoc = `# Title

` + "```rebol" + `
foo: 10
` + "```" + `

prose between fences

` + "```go" + `
x := 1
` + "```" + `

` + "```rebol" + `
bar: 20
` + "```" + `
`

func TestFences(t *testing.T) {
	fences := Fences([]byte(literateDoc))
	if len(fences) != 2 {
		t.Fatalf("found %d fences, want 2", len(fences))
	}
	if string(fences[0].Source) != "foo: 10\n" {
		t.Errorf("first fence %q", fences[0].Source)
	}
	if fences[0].Line != 4 {
		t.Errorf("first fence starts at line %d, want 4", fences[0].Line)
	}
	if string(fences[1].Source) != "bar: 20\n" {
		t.Errorf("second fence %q", fences[1].Source)
	}
	if fences[1].Line != 14 {
		t.Errorf("second fence starts at line %d, want 14", fences[1].Line)
	}
}

func TestLoadLiterate(t *testing.T) {
	script, err := Bytes("doc.md", []byte(literateDoc), Options{Literate: true})
	if err != nil {
		t.Fatal(err)
	}
	if script.Body.Len() != 4 {
		t.Fatalf("literate body has %d cells: %q",
			script.Body.Len(), value.MoldArray(script.Body))
	}
	if script.Body.At(0).Spelling() != "foo" || script.Body.At(2).Spelling() != "bar" {
		t.Errorf("literate body molds %q", value.MoldArray(script.Body))
	}
}
