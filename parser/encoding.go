package parser

import (
	"bytes"
	"regexp"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// sniffLen is how many bytes of the document head are inspected for a
// byte-order mark or a meta charset declaration.
const sniffLen = 1024

var metaCharsetRe = regexp.MustCompile(`(?i)<meta[^>]+charset\s*=\s*["']?([a-zA-Z0-9][a-zA-Z0-9._-]*)`)

// resolveEncoding picks the character encoding for a byte stream.
// Precedence: caller-declared label, byte-order mark, meta charset found in
// the first sniffLen bytes, statistical detection, UTF-8.
func resolveEncoding(declared string, head []byte) (encoding.Encoding, string) {
	if declared != "" {
		if enc, err := htmlindex.Get(declared); err == nil {
			name, _ := htmlindex.Name(enc)
			return enc, name
		}
	}

	if enc, name := bomEncoding(head); enc != nil {
		return enc, name
	}

	if m := metaCharsetRe.FindSubmatch(head); m != nil {
		if enc, err := htmlindex.Get(string(m[1])); err == nil {
			name, _ := htmlindex.Name(enc)
			return enc, name
		}
	}

	if res, err := chardet.NewHtmlDetector().DetectBest(head); err == nil && res.Confidence > 50 {
		if enc, err := htmlindex.Get(res.Charset); err == nil {
			name, _ := htmlindex.Name(enc)
			return enc, name
		}
	}

	return unicode.UTF8, "utf-8"
}

func bomEncoding(head []byte) (encoding.Encoding, string) {
	switch {
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		return unicode.UTF8BOM, "utf-8"
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), "utf-16be"
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), "utf-16le"
	}
	return nil, ""
}
