// Package parser turns a stream of HTML bytes into a document tree. The
// pipeline has three stages: character decoding, tokenization, and tree
// construction. Markup errors never abort a parse; they are recorded and
// recovered from, and only I/O failures surface as errors.
package parser

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/transform"

	"github.com/essentia/browsercore/parser/spec"
)

// Result is the outcome of a completed parse.
type Result struct {
	Document *spec.Document
	// Encoding is the canonical name of the character encoding the
	// document was decoded with.
	Encoding string
	// Errors holds every recoverable markup error, in the order observed.
	Errors []ParseError
}

// Parse reads an HTML byte stream to completion and builds a document.
// declaredEncoding is an optional encoding label from outside the stream
// (an HTTP Content-Type, typically); it takes precedence over anything
// sniffed from the bytes themselves. An empty string means autodetect.
//
// The returned error is non-nil only for stream-level failures; malformed
// markup yields a best-effort document plus entries in Result.Errors.
func Parse(r io.Reader, url, declaredEncoding string) (*Result, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "reading document head")
	}

	enc, name := resolveEncoding(declaredEncoding, head)
	tokenizer := NewHTMLTokenizer(transform.NewReader(br, enc.NewDecoder()))
	constructor := NewHTMLTreeConstructor()
	for tokenizer.Next() {
		constructor.ProcessToken(tokenizer.Token())
	}
	if err := tokenizer.Err(); err != nil {
		return nil, errors.Wrap(err, "reading document stream")
	}
	if !constructor.Done() {
		constructor.ProcessToken(Token{Type: endOfStreamToken})
	}

	errs := append([]ParseError(nil), tokenizer.Errors()...)
	errs = append(errs, constructor.Errors()...)
	return &Result{
		Document: constructor.Document(url),
		Encoding: name,
		Errors:   errs,
	}, nil
}
