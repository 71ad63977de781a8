package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/essentia/browsercore/parser/spec"
)

func collectTokens(t *testing.T, in string) []Token {
	t.Helper()
	tok := NewHTMLTokenizer(strings.NewReader(in))
	var out []Token
	for tok.Next() {
		out = append(out, tok.Token())
	}
	if err := tok.Err(); err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	return out
}

// flattenTokens renders a token stream compactly, merging adjacent
// character tokens, so table tests can state expectations in one line.
func flattenTokens(tokens []Token) []string {
	var out []string
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			out = append(out, "text:"+text.String())
			text.Reset()
		}
	}
	for _, tok := range tokens {
		switch tok.Type {
		case characterToken:
			text.WriteString(tok.Data)
			continue
		case startTagToken:
			flush()
			s := "start:" + tok.TagName
			for _, a := range tok.Attributes {
				s += " " + a.Name + "=" + a.Value
			}
			if tok.SelfClosing {
				s += " selfclosing"
			}
			out = append(out, s)
		case endTagToken:
			flush()
			out = append(out, "end:"+tok.TagName)
		case commentToken:
			flush()
			out = append(out, "comment:"+tok.Data)
		case doctypeToken:
			flush()
			out = append(out, "doctype:"+tok.TagName)
		case endOfStreamToken:
			flush()
			out = append(out, "eos")
		}
	}
	flush()
	return out
}

var tokenizerAttributeAccuracyTests = []struct {
	inHTML string
	attrs  []spec.Attribute
}{
	{"<head></head>", nil},
	{"<script src='123' onload='test'></script>", []spec.Attribute{
		{Name: "src", Value: "123"},
		{Name: "onload", Value: "test"},
	}},
	{"<a href=\"https://example.test\" onclick='alert(1)'>x</a>", []spec.Attribute{
		{Name: "href", Value: "https://example.test"},
		{Name: "onclick", Value: "alert(1)"},
	}},
	// a duplicated name keeps its position but takes the later value
	{"<script src='123' src='456'></script>", []spec.Attribute{
		{Name: "src", Value: "456"},
	}},
	{"<script src=123 onload=test></script>", []spec.Attribute{
		{Name: "src", Value: "123"},
		{Name: "onload", Value: "test"},
	}},
	{"<script src='123' onload='test' ></script>", []spec.Attribute{
		{Name: "src", Value: "123"},
		{Name: "onload", Value: "test"},
	}},
	{"<script src></script>", []spec.Attribute{
		{Name: "src", Value: ""},
	}},
	{"<script src test></script>", []spec.Attribute{
		{Name: "src", Value: ""},
		{Name: "test", Value: ""},
	}},
	{"<script ABC=123></script>", []spec.Attribute{
		{Name: "abc", Value: "123"},
	}},
	{"<script abc='\u0000123'></script>", []spec.Attribute{
		{Name: "abc", Value: "�123"},
	}},
	{"<script abc=></script>", []spec.Attribute{
		{Name: "abc", Value: ""},
	}},
	{"<script\tabc=123></script>", []spec.Attribute{
		{Name: "abc", Value: "123"},
	}},
}

func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		t.Run(tt.inHTML, func(t *testing.T) {
			tokens := collectTokens(t, tt.inHTML)
			if len(tokens) == 0 || tokens[0].Type != startTagToken {
				t.Fatalf("expected a start tag first, got %+v", tokens)
			}
			if diff := cmp.Diff(tt.attrs, tokens[0].Attributes); diff != "" {
				t.Errorf("attribute mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

var tokenStreamTests = []struct {
	inHTML string
	want   []string
}{
	{"plain text", []string{"text:plain text", "eos"}},
	{"<p>A</p>", []string{"start:p", "text:A", "end:p", "eos"}},
	// an unterminated "<" becomes literal text
	{"a < b", []string{"text:a < b", "eos"}},
	{"<DIV CLASS=x></DIV>", []string{"start:div class=x", "end:div", "eos"}},
	{"<br/>", []string{"start:br selfclosing", "eos"}},
	{"<!-- hey -->", []string{"comment: hey ", "eos"}},
	{"<!---->", []string{"comment:", "eos"}},
	{"<!-- a - b -->", []string{"comment: a - b ", "eos"}},
	{"<!DOCTYPE html>", []string{"doctype:html", "eos"}},
	{"<!doctype HTML PUBLIC \"x\">", []string{"doctype:html", "eos"}},
	{"<![CDATA[x<y]]>", []string{"text:x<y", "eos"}},
	{"<?xml version='1.0'?>", []string{"comment:?xml version='1.0'?", "eos"}},
	{"</>", []string{"eos"}},
	{"</ x>", []string{"comment: x", "eos"}},
	// null bytes in content are dropped
	{"a\u0000b", []string{"text:ab", "eos"}},
	// rawtext content is never interpreted as markup
	{"<script>if (a < b) { go(); }</script>", []string{
		"start:script", "text:if (a < b) { go(); }", "end:script", "eos",
	}},
	{"<style>a</st>b</style>", []string{
		"start:style", "text:a</st>b", "end:style", "eos",
	}},
	{"<title>Hi</TITLE>", []string{"start:title", "text:Hi", "end:title", "eos"}},
	{"<textarea><p>no tags</p></textarea>", []string{
		"start:textarea", "text:<p>no tags</p>", "end:textarea", "eos",
	}},
	// end tags never carry attributes
	{"<div></div class=x>", []string{"start:div", "end:div", "eos"}},
	{"<p>", []string{"start:p", "eos"}},
	{"<p", []string{"eos"}},
	{"<", []string{"text:<", "eos"}},
	{"<!-- unterminated", []string{"comment: unterminated", "eos"}},
}

func TestTokenStreams(t *testing.T) {
	for _, tt := range tokenStreamTests {
		t.Run(tt.inHTML, func(t *testing.T) {
			got := flattenTokens(collectTokens(t, tt.inHTML))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("token stream mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

var tokenizerErrorTests = []struct {
	inHTML   string
	wantCode string
}{
	{"<", "eof-before-tag-name"},
	{"</", "eof-before-tag-name"},
	{"<p", "eof-in-tag"},
	{"a\u0000b", "unexpected-null-character"},
	{"<!-- x", "eof-in-comment"},
	{"<!DOCTYPE", "eof-in-doctype"},
	{"<!x>", "incorrectly-opened-comment"},
	{"</>", "missing-end-tag-name"},
	{"<div></div class=x>", "end-tag-with-attributes"},
	{"<![CDATA[x", "eof-in-cdata"},
}

func TestTokenizerRecordsErrors(t *testing.T) {
	for _, tt := range tokenizerErrorTests {
		t.Run(tt.inHTML, func(t *testing.T) {
			tok := NewHTMLTokenizer(strings.NewReader(tt.inHTML))
			for tok.Next() {
				tok.Token()
			}
			for _, e := range tok.Errors() {
				if e.Code == tt.wantCode {
					return
				}
			}
			t.Errorf("expected error %q, got %v", tt.wantCode, tok.Errors())
		})
	}
}

func TestTokenizerWellFormedHasNoErrors(t *testing.T) {
	in := "<!DOCTYPE html><html><head><title>t</title></head>" +
		"<body><p class=\"a\">x</p><!-- c --></body></html>"
	tok := NewHTMLTokenizer(strings.NewReader(in))
	for tok.Next() {
		tok.Token()
	}
	if errs := tok.Errors(); len(errs) != 0 {
		t.Errorf("expected no errors for well-formed input, got %v", errs)
	}
}
