// Package repl is the interactive transcode-and-mold loop. Lines are
// scanned, not evaluated: the result of each entry is the molded form
// of the values it scanned to.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/rhencke/rebol/pkg/rebol/errors"
	"github.com/rhencke/rebol/pkg/rebol/scanner"
	"github.com/rhencke/rebol/pkg/rebol/value"
)

const (
	prompt             = ">> "
	continuationPrompt = ".. "
)

// Start runs the REPL until exit or end of input.
func Start(out io.Writer, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completions)

	historyFile := filepath.Join(os.TempDir(), ".rebload_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(out, "rebload %s\n", version)
	fmt.Fprintln(out, "Values are scanned and molded back, not evaluated.")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "")

	var buffer strings.Builder

	for {
		current := prompt
		if buffer.Len() > 0 {
			current = continuationPrompt
		}
		input, err := line.Prompt(current)
		if err != nil {
			if err == liner.ErrPromptAborted {
				if buffer.Len() > 0 {
					fmt.Fprintln(out, "^C (cleared)")
				} else {
					fmt.Fprintln(out, "^C")
				}
				buffer.Reset()
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if buffer.Len() == 0 && (trimmed == "exit" || trimmed == "quit") {
			fmt.Fprintln(out, "Goodbye!")
			return
		}
		if buffer.Len() == 0 && trimmed == "" {
			continue
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(input)

		full := buffer.String()
		result, more := Entry(full)
		if more {
			continue
		}

		if trimmed != "" {
			line.AppendHistory(full)
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
		buffer.Reset()
	}
}

// Entry scans one REPL entry. It returns the text to display, or
// more=true when the entry is incomplete and needs another line: an
// unterminated block, group, or string continues rather than failing.
func Entry(src string) (result string, more bool) {
	arr, err := scanner.ScanString(src, scanner.Options{File: "repl"})
	if err != nil {
		if se, ok := err.(*errors.ScanError); ok {
			if se.Code == "SCAN-0002" {
				return "", true
			}
			return se.PrettyString(), false
		}
		return err.Error(), false
	}
	if arr.Len() == 0 {
		return "", false
	}
	return "== " + value.MoldArray(arr), false
}

// completions offers the interned word spellings that extend the word
// under the cursor. Every word ever scanned in this process is a
// candidate, so completion grows as scripts load.
func completions(line string) []string {
	if line == "" || line[len(line)-1] == ' ' || line[len(line)-1] == '\t' {
		return nil
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	last := words[len(words)-1]
	head := line[:len(line)-len(last)]

	var matches []string
	for _, name := range value.InternedNames() {
		if name != last && strings.HasPrefix(name, last) {
			matches = append(matches, head+name)
		}
	}
	sort.Strings(matches)
	return matches
}
