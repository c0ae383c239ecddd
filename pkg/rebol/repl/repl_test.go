package repl

import (
	"strings"
	"testing"

	"github.com/rhencke/rebol/pkg/rebol/value"
)

func TestEntry(t *testing.T) {
	tests := []struct {
		src    string
		result string
		more   bool
	}{
		{"1 2", "== 1 2", false},
		{"foo: 10", "== foo: 10", false},
		{"", "", false},
	}
	for _, tt := range tests {
		result, more := Entry(tt.src)
		if result != tt.result || more != tt.more {
			t.Errorf("Entry(%q) = %q, %v; want %q, %v",
				tt.src, result, more, tt.result, tt.more)
		}
	}
}

func TestEntryContinuation(t *testing.T) {
	for _, src := range []string{"[a b", "(1", `"unterminated`, "[a [b"} {
		if _, more := Entry(src); !more {
			t.Errorf("Entry(%q) should ask for another line", src)
		}
	}

	// Joined lines complete the entry.
	result, more := Entry("[a b\nc]")
	if more || !strings.HasPrefix(result, "== ") {
		t.Errorf("completed entry gave %q, %v", result, more)
	}
}

func TestEntryError(t *testing.T) {
	result, more := Entry(")")
	if more {
		t.Fatal("a stray closer is an error, not a continuation")
	}
	if strings.HasPrefix(result, "== ") || result == "" {
		t.Errorf("stray closer gave %q", result)
	}
}

func TestCompletions(t *testing.T) {
	value.Intern("frobnicator")
	got := completions("x fro")
	found := false
	for _, m := range got {
		if m == "x frobnicator" {
			found = true
		}
	}
	if !found {
		t.Errorf("completions = %v, want one ending in frobnicator", got)
	}

	if c := completions("x "); c != nil {
		t.Errorf("trailing space should not complete, got %v", c)
	}
}
