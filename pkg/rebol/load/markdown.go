package load

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/rhencke/rebol/pkg/rebol/scanner"
	"github.com/rhencke/rebol/pkg/rebol/value"
)

// Fence is one fenced code block lifted from a markdown document.
type Fence struct {
	Source []byte
	Line   int // line of the first source line in the document
}

// Fences extracts the rebol-tagged fenced code blocks from a markdown
// document, in order.
func Fences(doc []byte) []Fence {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(doc))

	var fences []Fence
	gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		fc, ok := n.(*gmast.FencedCodeBlock)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if !bytes.Equal(fc.Language(doc), []byte("rebol")) {
			return gmast.WalkContinue, nil
		}

		lines := fc.Lines()
		if lines.Len() == 0 {
			return gmast.WalkContinue, nil
		}
		var buf bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(doc))
		}
		fences = append(fences, Fence{
			Source: buf.Bytes(),
			Line:   lineAt(doc, lines.At(0).Start),
		})
		return gmast.WalkContinue, nil
	})
	return fences
}

// literate scans every rebol fence of a markdown document into one
// body, keeping document line numbers so errors point at the prose
// file.
func literate(name string, doc []byte, opts Options) (*Script, error) {
	script := &Script{
		Path: name,
		Body: value.NewArray(),
	}
	script.Body.File = name
	script.Body.Line = 1

	for _, f := range Fences(doc) {
		arr, err := scanner.Scan(f.Source, scanner.Options{
			File:    name,
			Line:    f.Line,
			Relax:   opts.Relax,
			Binder:  opts.Binder,
			Context: opts.Context,
		})
		if err != nil {
			return nil, err
		}
		script.Body.Cells = append(script.Body.Cells, arr.Cells...)
		script.Body.TailNewline = arr.TailNewline
	}
	return script, nil
}
