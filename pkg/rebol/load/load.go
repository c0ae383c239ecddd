// Package load acquires Rebol source text and hands it to the scanner.
// It reads plain, gzip-compressed, and UTF-16 encoded scripts, pulls
// code fences out of literate markdown documents, and splits a script
// header from its body.
package load

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/unicode"

	"github.com/rhencke/rebol/pkg/rebol/errors"
	"github.com/rhencke/rebol/pkg/rebol/scanner"
	"github.com/rhencke/rebol/pkg/rebol/value"
)

// Options adjust how a source is acquired and scanned.
type Options struct {
	// Relax records malformed tokens as error cells instead of
	// failing the load.
	Relax bool

	// Literate forces markdown fence extraction regardless of the
	// file extension.
	Literate bool

	// Binder is passed through to the scanner.
	Binder scanner.Binder

	// Context cancels a long scan.
	Context context.Context
}

// Script is one loaded source: its body values, plus the header block
// when the source carries one. Text before an embedded header is
// discarded.
type Script struct {
	Path   string
	Header *value.Array
	Body   *value.Array
}

// File loads a script from disk. Files ending in .md or .markdown are
// treated as literate sources unless Options says otherwise.
func File(path string, opts Options) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("LOAD-0001", map[string]any{
			"Path":   path,
			"Reason": err.Error(),
		})
	}
	switch filepath.Ext(path) {
	case ".md", ".markdown":
		opts.Literate = true
	}
	return Bytes(path, src, opts)
}

// Reader loads a script from an arbitrary stream. The name stands in
// for a path in errors and array metadata.
func Reader(r io.Reader, name string, opts Options) (*Script, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("LOAD-0001", map[string]any{
			"Path":   name,
			"Reason": err.Error(),
		})
	}
	return Bytes(name, src, opts)
}

// Bytes loads a script from an in-memory source.
func Bytes(name string, src []byte, opts Options) (*Script, error) {
	src, err := decode(name, src)
	if err != nil {
		return nil, err
	}

	if opts.Literate {
		return literate(name, src, opts)
	}

	script := &Script{Path: name}

	sopts := scanner.Options{
		File:    name,
		Relax:   opts.Relax,
		Binder:  opts.Binder,
		Context: opts.Context,
	}

	body := src
	if off, ok := scanner.ScanHeader(src); ok {
		sopts.Line = lineAt(src, off)
		header, rest, herr := scanner.ScanNext(src[off:], sopts)
		if herr != nil {
			return nil, herr
		}
		if header.Len() == 1 && header.At(0).Kind == value.KindBlock {
			script.Header = header.At(0).Array
			body = src[off+rest:]
			sopts.Line = lineAt(src, off+rest)
		}
	}

	arr, serr := scanner.Scan(body, sopts)
	if serr != nil {
		return nil, serr
	}
	script.Body = arr
	return script, nil
}

var gzipMagic = []byte{0x1f, 0x8b}

// decode unwraps gzip and normalizes the text to UTF-8. A UTF-16
// source must announce itself with a byte order mark.
func decode(name string, src []byte) ([]byte, *errors.ScanError) {
	if bytes.HasPrefix(src, gzipMagic) {
		zr, err := gzip.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, errors.New("LOAD-0001", map[string]any{
				"Path":   name,
				"Reason": err.Error(),
			})
		}
		defer zr.Close()
		plain, err := io.ReadAll(zr)
		if err != nil {
			return nil, errors.New("LOAD-0001", map[string]any{
				"Path":   name,
				"Reason": err.Error(),
			})
		}
		src = plain
	}

	switch {
	case bytes.HasPrefix(src, []byte{0xef, 0xbb, 0xbf}):
		src = src[3:]

	case bytes.HasPrefix(src, []byte{0xff, 0xfe}),
		bytes.HasPrefix(src, []byte{0xfe, 0xff}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		plain, err := dec.Bytes(src)
		if err != nil {
			return nil, errors.New("LOAD-0002", map[string]any{"Path": name})
		}
		src = plain
	}

	if !utf8.Valid(src) {
		return nil, errors.New("LOAD-0002", map[string]any{"Path": name})
	}
	return src, nil
}

// lineAt converts a byte offset to a 1-based line number.
func lineAt(src []byte, off int) int {
	return 1 + bytes.Count(src[:off], []byte{'\n'})
}
