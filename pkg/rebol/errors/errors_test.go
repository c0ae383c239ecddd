package errors

import (
	"strings"
	"testing"
)

func TestCatalogTemplates(t *testing.T) {
	tests := []struct {
		code     string
		data     map[string]any
		expected string
	}{
		{"SCAN-0001", map[string]any{"Token": "integer", "Body": "1x"}, "invalid integer -- 1x"},
		{"SCAN-0002", map[string]any{"Expected": "]"}, "missing ] at end of input"},
		{"SCAN-0003", map[string]any{"Expected": "]", "Actual": ")"}, "expected ] before )"},
		{"SCAN-0004", map[string]any{"Char": ")"}, "unexpected )"},
		{"SCAN-0005", map[string]any{"Block": "date 1"}, "malformed construction syntax: #[date 1]"},
	}

	for _, tt := range tests {
		err := New(tt.code, tt.data)
		if err.Message != tt.expected {
			t.Errorf("New(%q) message = %q, want %q", tt.code, err.Message, tt.expected)
		}
		if err.Code != tt.code {
			t.Errorf("New(%q) code = %q", tt.code, err.Code)
		}
	}
}

func TestStringFormat(t *testing.T) {
	err := NewWithPosition("SCAN-0002", 3, "(line 3) [a b", map[string]any{"Expected": "]"})
	err = err.WithFile("test.r")

	got := err.String()
	if !strings.Contains(got, "test.r") {
		t.Errorf("String() = %q, missing file", got)
	}
	if !strings.Contains(got, "line 3") {
		t.Errorf("String() = %q, missing line", got)
	}
	if !strings.Contains(got, "(line 3) [a b") {
		t.Errorf("String() = %q, missing near text", got)
	}
}

func TestPrettyStringHints(t *testing.T) {
	err := New("SCAN-0002", map[string]any{"Expected": "]"})

	pretty := err.PrettyString()
	if !strings.Contains(pretty, "Syntax error") {
		t.Errorf("PrettyString() = %q, missing heading", pretty)
	}
	if !strings.Contains(pretty, "Use: add a closing ]") {
		t.Errorf("PrettyString() = %q, missing rendered hint", pretty)
	}
}

func TestUnknownCode(t *testing.T) {
	err := New("SCAN-9999", map[string]any{"message": "something odd"})
	if err.Message != "something odd" {
		t.Errorf("unknown code message = %q", err.Message)
	}
}

func TestWithPositionCopies(t *testing.T) {
	base := New("SCAN-0004", map[string]any{"Char": ")"})
	moved := base.WithPosition(7, "(line 7) )")

	if base.Line != 0 {
		t.Errorf("base mutated: line = %d", base.Line)
	}
	if moved.Line != 7 || moved.Near != "(line 7) )" {
		t.Errorf("WithPosition = %d %q", moved.Line, moved.Near)
	}
}

func TestIsScanError(t *testing.T) {
	if !New("SCAN-0001", nil).IsScanError() {
		t.Error("SCAN-0001 should be a scan error")
	}
	if New("LOAD-0001", nil).IsScanError() {
		t.Error("LOAD-0001 should not be a scan error")
	}
}
