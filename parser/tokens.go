package parser

import (
	"strings"

	"github.com/essentia/browsercore/parser/spec"
)

type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	commentToken
	doctypeToken
	endOfStreamToken
)

func (t tokenType) String() string {
	switch t {
	case characterToken:
		return "character"
	case startTagToken:
		return "start-tag"
	case endTagToken:
		return "end-tag"
	case commentToken:
		return "comment"
	case doctypeToken:
		return "doctype"
	case endOfStreamToken:
		return "end-of-stream"
	}
	return "unknown"
}

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Token is a concrete token ready to be handed to the tree builder.
// Immutable once emitted.
type Token struct {
	Type        tokenType
	TagName     string
	Attributes  []spec.Attribute
	SelfClosing bool
	Data        string
}

func (t Token) isWhitespace() bool {
	if t.Type != characterToken {
		return false
	}
	switch t.Data {
	case "\u0009", "\u000A", "\u000C", "\u000D", "\u0020":
		return true
	}
	return false
}

// TokenBuilder accumulates the pieces of the token currently being
// tokenized. Attribute order is preserved; committing a duplicate name
// overwrites the earlier value (last duplicate wins).
type TokenBuilder struct {
	attributes     []spec.Attribute
	attributeKey   strings.Builder
	attributeValue strings.Builder
	name           strings.Builder
	data           strings.Builder
	tempBuffer     strings.Builder
	selfClosing    bool
	curTagType     tagType
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// Reset clears all builder state for the next tag-like token.
func (t *TokenBuilder) Reset() {
	t.attributes = nil
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.name.Reset()
	t.data.Reset()
	t.selfClosing = false
	t.curTagType = startTag
}

// EnableSelfClosing sets the self-closing flag on the pending tag.
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// Name returns the pending tag or doctype name built so far.
func (t *TokenBuilder) Name() string {
	return t.name.String()
}

// WriteName appends a rune to the pending tag or doctype name.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// WriteData appends a rune to the pending comment data.
func (t *TokenBuilder) WriteData(r rune) {
	t.data.WriteRune(r)
}

// WriteAttributeName appends a rune to the pending attribute's name.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	t.attributeKey.WriteRune(r)
}

// WriteAttributeValue appends a rune to the pending attribute's value.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	t.attributeValue.WriteRune(r)
}

// CommitAttribute finishes the pending name/value pair. A name already
// committed keeps its position but takes the new value.
func (t *TokenBuilder) CommitAttribute() {
	k := t.attributeKey.String()
	v := t.attributeValue.String()
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	if k == "" {
		return
	}
	for i := range t.attributes {
		if t.attributes[i].Name == k {
			t.attributes[i].Value = v
			return
		}
	}
	t.attributes = append(t.attributes, spec.Attribute{Name: k, Value: v})
}

// WriteTempBuffer appends a rune to the temporary buffer shared by the
// rawtext end-tag states.
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer.WriteRune(r)
}

// ResetTempBuffer clears the temporary buffer for the next state that
// needs it.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

// TempBuffer returns the current temporary buffer contents.
func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// TempBufferCharTokens converts the temporary buffer into character
// tokens, one per rune.
func (t *TokenBuilder) TempBufferCharTokens() []Token {
	var tokens []Token
	for _, r := range t.tempBuffer.String() {
		tokens = append(tokens, t.CharacterToken(r))
	}
	return tokens
}

// TagToken builds the pending start or end tag.
func (t *TokenBuilder) TagToken() Token {
	tok := Token{
		TagName: t.name.String(),
	}
	if t.curTagType == endTag {
		// end tags carry no attributes or self-closing flag
		tok.Type = endTagToken
		return tok
	}
	tok.Type = startTagToken
	tok.Attributes = t.attributes
	tok.SelfClosing = t.selfClosing
	return tok
}

// CharacterToken wraps a single rune of text.
func (t *TokenBuilder) CharacterToken(r rune) Token {
	return Token{Type: characterToken, Data: string(r)}
}

// CommentToken builds a comment from the accumulated data.
func (t *TokenBuilder) CommentToken() Token {
	return Token{Type: commentToken, Data: t.data.String()}
}

// DoctypeToken builds a doctype from the accumulated name.
func (t *TokenBuilder) DoctypeToken() Token {
	return Token{Type: doctypeToken, TagName: t.name.String()}
}

// EndOfStreamToken marks input exhaustion.
func (t *TokenBuilder) EndOfStreamToken() Token {
	return Token{Type: endOfStreamToken}
}
