// Package errors provides structured error types for the Rebol loader.
//
// This package defines ScanError, a unified error type covering every
// failure the lexical scanner can raise, with enough metadata (file, line,
// near-text) for display and programmatic handling.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// ErrorClass categorizes errors for filtering and templating.
type ErrorClass string

const (
	ClassScan      ErrorClass = "scan"      // Lexical/syntax errors
	ClassConstruct ErrorClass = "construct" // Construction syntax #[...] errors
	ClassIO        ErrorClass = "io"        // Source acquisition failures
	ClassIndex     ErrorClass = "index"     // Script index / storage errors
	ClassCancel    ErrorClass = "cancel"    // Cooperative cancellation
)

// ScanError represents any error from scanning or loading.
type ScanError struct {
	Class   ErrorClass     `json:"class"`          // Error category
	Code    string         `json:"code"`           // Error code (e.g., "SCAN-0001")
	Message string         `json:"message"`        // Human-readable message
	Hints   []string       `json:"hints,omitempty"`
	Line    int            `json:"line"`           // 1-based line (0 if unknown)
	File    string         `json:"file,omitempty"` // Source name (if known)
	Near    string         `json:"near,omitempty"` // "(line N) <text of line>"
	Data    map[string]any `json:"data,omitempty"` // Template variables
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return e.String()
}

// String returns a formatted one-line representation of the error.
func (e *ScanError) String() string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d: ", e.Line))
	}

	sb.WriteString(e.Message)

	if e.Near != "" {
		sb.WriteString(" near ")
		sb.WriteString(e.Near)
	}

	return sb.String()
}

// PrettyString returns a multi-line formatted string for display.
func (e *ScanError) PrettyString() string {
	var sb strings.Builder

	switch e.Class {
	case ClassScan, ClassConstruct:
		sb.WriteString("Syntax error")
	case ClassIO:
		sb.WriteString("Load error")
	case ClassIndex:
		sb.WriteString("Index error")
	case ClassCancel:
		sb.WriteString("Cancelled")
	default:
		sb.WriteString("Error")
	}

	if e.File != "" {
		sb.WriteString(":\n  in: ")
		sb.WriteString(e.File)
		if e.Line > 0 {
			sb.WriteString(fmt.Sprintf("\n  at: line %d", e.Line))
		}
		sb.WriteString("\n  ")
	} else if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(": line %d\n  ", e.Line))
	} else {
		sb.WriteString(":\n  ")
	}

	sb.WriteString(e.Message)

	if e.Near != "" {
		sb.WriteString("\n  near: ")
		sb.WriteString(e.Near)
	}

	for i, hint := range e.Hints {
		sb.WriteString("\n  ")
		if i == 0 {
			sb.WriteString("Use: ")
		} else {
			sb.WriteString(" or: ")
		}
		sb.WriteString(hint)
	}

	return sb.String()
}

// ToJSON returns the error as JSON bytes.
func (e *ScanError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// WithFile returns a copy of the error with the source name set.
func (e *ScanError) WithFile(file string) *ScanError {
	dup := *e
	dup.File = file
	return &dup
}

// WithPosition returns a copy of the error with line and near-text set.
func (e *ScanError) WithPosition(line int, near string) *ScanError {
	dup := *e
	dup.Line = line
	dup.Near = near
	return &dup
}

// IsScanError reports whether this is a lexical/syntax error (as opposed
// to an I/O, index, or cancellation error).
func (e *ScanError) IsScanError() bool {
	return e.Class == ClassScan || e.Class == ClassConstruct
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass // Error category
	Template string     // Message template with {{.placeholders}}
	Hints    []string   // Hint templates (may use {{.placeholders}})
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	// Scan errors (SCAN-0xxx)
	"SCAN-0001": {
		Class:    ClassScan,
		Template: "invalid {{.Token}} -- {{.Body}}",
	},
	"SCAN-0002": {
		Class:    ClassScan,
		Template: "missing {{.Expected}} at end of input",
		Hints:    []string{"add a closing {{.Expected}}"},
	},
	"SCAN-0003": {
		Class:    ClassScan,
		Template: "expected {{.Expected}} before {{.Actual}}",
	},
	"SCAN-0004": {
		Class:    ClassScan,
		Template: "unexpected {{.Char}}",
	},
	"SCAN-0005": {
		Class:    ClassConstruct,
		Template: "malformed construction syntax: #[{{.Block}}]",
		Hints:    []string{"#[kind value] with a known kind word"},
	},
	"SCAN-0006": {
		Class:    ClassScan,
		Template: "invalid UTF-8 sequence",
	},
	"SCAN-0007": {
		Class:    ClassCancel,
		Template: "scan cancelled",
	},

	// Load errors (LOAD-0xxx)
	"LOAD-0001": {
		Class:    ClassIO,
		Template: "cannot read source {{.Path}}: {{.Reason}}",
	},
	"LOAD-0002": {
		Class:    ClassIO,
		Template: "unsupported source encoding in {{.Path}}",
		Hints:    []string{"sources must be UTF-8, or UTF-16 with a BOM"},
	},

	// Index errors (INDEX-0xxx)
	"INDEX-0001": {
		Class:    ClassIndex,
		Template: "script index failure: {{.Reason}}",
	},
}

// New creates a ScanError from the catalog.
func New(code string, data map[string]any) *ScanError {
	def, ok := ErrorCatalog[code]
	if !ok {
		msg := code
		if data != nil {
			if m, ok := data["message"].(string); ok {
				msg = m
			}
		}
		return &ScanError{
			Class:   ClassScan,
			Code:    code,
			Message: msg,
			Data:    data,
		}
	}

	msg := renderTemplate(def.Template, data)

	var hints []string
	for _, hintTmpl := range def.Hints {
		rendered := renderTemplate(hintTmpl, data)
		if rendered != "" {
			hints = append(hints, rendered)
		}
	}

	return &ScanError{
		Class:   def.Class,
		Code:    code,
		Message: msg,
		Hints:   hints,
		Data:    data,
	}
}

// NewWithPosition creates a ScanError with position information.
func NewWithPosition(code string, line int, near string, data map[string]any) *ScanError {
	err := New(code, data)
	err.Line = line
	err.Near = near
	return err
}

// NewSimple creates an error without using the catalog.
func NewSimple(class ErrorClass, message string) *ScanError {
	return &ScanError{
		Class:   class,
		Message: message,
	}
}

// renderTemplate renders a Go template with the given data.
func renderTemplate(tmplStr string, data map[string]any) string {
	if data == nil {
		return tmplStr
	}

	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}

	return buf.String()
}
