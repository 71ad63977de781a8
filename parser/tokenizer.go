package parser

import (
	"bufio"
	"bytes"
	"io"
)

type tokenizerState uint

const (
	dataState tokenizerState = iota
	tagOpenState
	endTagOpenState
	tagNameState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentEndDashState
	commentEndState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	bogusDoctypeState
	rawTextState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
)

type parserStateHandler func(r rune, eof bool) (bool, tokenizerState)

// HTMLTokenizer converts a decoded character stream into a lazy sequence
// of tokens. Malformed markup never fails the tokenizer: each state has a
// recovery rule and surfaces a non-fatal ParseError instead.
type HTMLTokenizer struct {
	inputStream             *bufio.Reader
	currentState            tokenizerState
	pending                 []Token
	tokenBuilder            *TokenBuilder
	lastEmittedStartTagName string
	errs                    []ParseError
	readErr                 error
	done                    bool
}

// NewHTMLTokenizer creates a tokenizer over an already-decoded (UTF-8)
// character stream. Restartable only by re-invocation on a fresh stream.
func NewHTMLTokenizer(in io.Reader) *HTMLTokenizer {
	return &HTMLTokenizer{
		inputStream:  bufio.NewReader(in),
		currentState: dataState,
		tokenBuilder: newTokenBuilder(),
	}
}

// Next reports whether another token is available, consuming input as
// needed.
func (p *HTMLTokenizer) Next() bool {
	for len(p.pending) == 0 && !p.done {
		r, _, err := p.inputStream.ReadRune()
		eof := false
		if err != nil {
			eof = true
			if err != io.EOF {
				p.readErr = err
			}
		}
		p.step(r, eof)
		if eof {
			p.done = true
		}
	}
	return len(p.pending) > 0
}

// Token returns the next token. Valid only after Next reported true.
func (p *HTMLTokenizer) Token() Token {
	t := p.pending[0]
	p.pending = p.pending[1:]
	return t
}

// Errors returns the non-fatal markup errors observed so far.
func (p *HTMLTokenizer) Errors() []ParseError {
	return p.errs
}

// Err returns the underlying stream error, if the input reader failed with
// anything other than EOF.
func (p *HTMLTokenizer) Err() error {
	return p.readErr
}

// step feeds one input character (or EOF) through the state machine,
// following reconsume transitions until the character is consumed.
func (p *HTMLTokenizer) step(r rune, eof bool) {
	for {
		reconsume, next := p.stateToParser(p.currentState)(r, eof)
		p.currentState = next
		if !reconsume {
			return
		}
	}
}

func (p *HTMLTokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentStartState:
		return p.commentStartStateParser
	case commentStartDashState:
		return p.commentStartDashStateParser
	case commentState:
		return p.commentStateParser
	case commentEndDashState:
		return p.commentEndDashStateParser
	case commentEndState:
		return p.commentEndStateParser
	case doctypeState:
		return p.doctypeStateParser
	case beforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case doctypeNameState:
		return p.doctypeNameStateParser
	case bogusDoctypeState:
		return p.bogusDoctypeStateParser
	case rawTextState:
		return p.rawTextStateParser
	case rawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	case cdataSectionState:
		return p.cdataSectionStateParser
	case cdataSectionBracketState:
		return p.cdataSectionBracketStateParser
	case cdataSectionEndState:
		return p.cdataSectionEndStateParser
	}

	return nil
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || isASCIIUpper(r)
}

// rawtextElements are the elements whose content is tokenized as raw text
// rather than markup. The tree builder never sees tags inside them.
func isRawTextElement(name string) bool {
	switch name {
	case "script", "style", "title", "textarea":
		return true
	}
	return false
}

func (p *HTMLTokenizer) parseErr(code parseError) {
	p.errs = append(p.errs, ParseError{Code: code.String()})
}

func (p *HTMLTokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		if token.Type == startTagToken {
			p.lastEmittedStartTagName = token.TagName
		}
		p.pending = append(p.pending, token)
	}
}

// emitCurrentTag emits the tag being built and picks the state the next
// character should be handled in. Start tags of rawtext elements flip the
// tokenizer into the rawtext state so their content is treated as text.
func (p *HTMLTokenizer) emitCurrentTag() tokenizerState {
	if p.tokenBuilder.curTagType == endTag {
		if len(p.tokenBuilder.attributes) > 0 {
			p.parseErr(endTagWithAttributes)
		}
		if p.tokenBuilder.selfClosing {
			p.parseErr(unexpectedSolidusInTag)
		}
	}
	t := p.tokenBuilder.TagToken()
	p.emit(t)
	if t.Type == startTagToken && !t.SelfClosing && isRawTextElement(t.TagName) {
		p.tokenBuilder.ResetTempBuffer()
		return rawTextState
	}
	return dataState
}

// isApprEndTagToken reports whether the end tag being built matches the
// last emitted start tag; only then does a rawtext end tag close the
// element.
func (p *HTMLTokenizer) isApprEndTagToken() bool {
	return p.lastEmittedStartTagName == p.tokenBuilder.Name()
}

func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '<':
		return false, tagOpenState
	case '\u0000':
		// null bytes in content are dropped, not replaced
		p.parseErr(unexpectedNullCharacter)
		return false, dataState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, dataState
	}
}

func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofBeforeTagName)
		p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIILetter(r):
		p.tokenBuilder.Reset()
		p.tokenBuilder.curTagType = startTag
		return true, tagNameState
	case r == '?':
		p.parseErr(generalParseError)
		p.tokenBuilder.Reset()
		return true, bogusCommentState
	default:
		// unterminated "<" becomes literal text
		p.parseErr(invalidFirstCharacterOfTagName)
		p.emit(p.tokenBuilder.CharacterToken('<'))
		return true, dataState
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofBeforeTagName)
		p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.CharacterToken('/'), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch {
	case isASCIILetter(r):
		p.tokenBuilder.Reset()
		p.tokenBuilder.curTagType = endTag
		return true, tagNameState
	case r == '>':
		p.parseErr(missingEndTagName)
		return false, dataState
	default:
		p.parseErr(invalidFirstCharacterOfTagName)
		p.tokenBuilder.Reset()
		return true, bogusCommentState
	}
}

func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInTag)
		p.emit(p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch {
	case r == '\u0009' || r == '\u000A' || r == '\u000C' || r == ' ':
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, p.emitCurrentTag()
	case isASCIIUpper(r):
		p.tokenBuilder.WriteName(r + 0x20)
		return false, tagNameState
	case r == '\u0000':
		p.parseErr(unexpectedNullCharacter)
		p.tokenBuilder.WriteName('�')
		return false, tagNameState
	default:
		p.tokenBuilder.WriteName(r)
		return false, tagNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, beforeAttributeNameState
	case '/', '>':
		return true, afterAttributeNameState
	case '=':
		p.parseErr(generalParseError)
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.tokenBuilder.CommitAttribute()
		return true, afterAttributeNameState
	}
	switch {
	case r == '\u0009' || r == '\u000A' || r == '\u000C' || r == ' ' || r == '/' || r == '>':
		p.tokenBuilder.CommitAttribute()
		return true, afterAttributeNameState
	case r == '=':
		return false, beforeAttributeValueState
	case isASCIIUpper(r):
		p.tokenBuilder.WriteAttributeName(r + 0x20)
		return false, attributeNameState
	case r == '\u0000':
		p.parseErr(unexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeName('�')
		return false, attributeNameState
	case r == '"' || r == '\'' || r == '<':
		p.parseErr(generalParseError)
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	}
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInTag)
		p.emit(p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, afterAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '=':
		return false, beforeAttributeValueState
	case '>':
		return false, p.emitCurrentTag()
	default:
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, attributeValueUnquotedState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, beforeAttributeValueState
	case '"':
		return false, attributeValueDoubleQuotedState
	case '\'':
		return false, attributeValueSingleQuotedState
	case '>':
		p.parseErr(generalParseError)
		p.tokenBuilder.CommitAttribute()
		return false, p.emitCurrentTag()
	default:
		return true, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInTag)
		p.emit(p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '"':
		p.tokenBuilder.CommitAttribute()
		return false, afterAttributeValueQuotedState
	case '\u0000':
		p.parseErr(unexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueDoubleQuotedState
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueDoubleQuotedState
	}
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInTag)
		p.emit(p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '\'':
		p.tokenBuilder.CommitAttribute()
		return false, afterAttributeValueQuotedState
	case '\u0000':
		p.parseErr(unexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueSingleQuotedState
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueSingleQuotedState
	}
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInTag)
		p.emit(p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', ' ':
		// unquoted values are coerced at the first whitespace
		p.tokenBuilder.CommitAttribute()
		return false, beforeAttributeNameState
	case '>':
		p.tokenBuilder.CommitAttribute()
		return false, p.emitCurrentTag()
	case '\u0000':
		p.parseErr(unexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueUnquotedState
	case '"', '\'', '<', '=', '`':
		p.parseErr(generalParseError)
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInTag)
		p.emit(p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, beforeAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, p.emitCurrentTag()
	default:
		p.parseErr(generalParseError)
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInTag)
		p.emit(p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '>':
		p.tokenBuilder.EnableSelfClosing()
		return false, p.emitCurrentTag()
	default:
		p.parseErr(unexpectedSolidusInTag)
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '>':
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	case '\u0000':
		p.parseErr(unexpectedNullCharacter)
		p.tokenBuilder.WriteData('�')
		return false, bogusCommentState
	default:
		p.tokenBuilder.WriteData(r)
		return false, bogusCommentState
	}
}

// used to peek at what construct follows "<!"
var doctypeKeyword = []byte("octype")
var cdataKeyword = []byte("CDATA[")

const peekDist = 6

func (p *HTMLTokenizer) defaultMarkupDeclarationOpenStateParser() (bool, tokenizerState) {
	p.parseErr(incorrectlyOpenedComment)
	p.tokenBuilder.Reset()
	return true, bogusCommentState
}

func (p *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.defaultMarkupDeclarationOpenStateParser()
	}

	switch r {
	case '-':
		peeked, _ := p.inputStream.Peek(1)
		if len(peeked) == 1 && peeked[0] == '-' {
			p.inputStream.Discard(1)
			p.tokenBuilder.Reset()
			return false, commentStartState
		}
		return p.defaultMarkupDeclarationOpenStateParser()
	case 'D', 'd':
		peeked, _ := p.inputStream.Peek(peekDist)
		if bytes.EqualFold(peeked, doctypeKeyword) {
			p.inputStream.Discard(peekDist)
			return false, doctypeState
		}
		return p.defaultMarkupDeclarationOpenStateParser()
	case '[':
		peeked, _ := p.inputStream.Peek(peekDist)
		if bytes.Equal(peeked, cdataKeyword) {
			p.inputStream.Discard(peekDist)
			return false, cdataSectionState
		}
		return p.defaultMarkupDeclarationOpenStateParser()
	default:
		return p.defaultMarkupDeclarationOpenStateParser()
	}
}

func (p *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, commentState
	}
	switch r {
	case '-':
		return false, commentStartDashState
	case '>':
		p.parseErr(generalParseError)
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	default:
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInComment)
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		p.parseErr(generalParseError)
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	default:
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInComment)
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndDashState
	case '\u0000':
		p.parseErr(unexpectedNullCharacter)
		p.tokenBuilder.WriteData('�')
		return false, commentState
	default:
		p.tokenBuilder.WriteData(r)
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInComment)
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	default:
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInComment)
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '>':
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	case '-':
		p.tokenBuilder.WriteData('-')
		return false, commentEndState
	default:
		p.tokenBuilder.WriteData('-')
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (p *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInDoctype)
		p.tokenBuilder.Reset()
		p.emit(p.tokenBuilder.DoctypeToken(), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '\u0009', '\u000A', '\u000C', ' ':
		return false, beforeDoctypeNameState
	case '>':
		return true, beforeDoctypeNameState
	default:
		p.parseErr(generalParseError)
		return true, beforeDoctypeNameState
	}
}

func (p *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInDoctype)
		p.tokenBuilder.Reset()
		p.emit(p.tokenBuilder.DoctypeToken(), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch {
	case r == '\u0009' || r == '\u000A' || r == '\u000C' || r == ' ':
		return false, beforeDoctypeNameState
	case isASCIIUpper(r):
		p.tokenBuilder.Reset()
		p.tokenBuilder.WriteName(r + 0x20)
		return false, doctypeNameState
	case r == '\u0000':
		p.parseErr(unexpectedNullCharacter)
		p.tokenBuilder.Reset()
		p.tokenBuilder.WriteName('�')
		return false, doctypeNameState
	case r == '>':
		p.parseErr(missingDoctypeName)
		p.tokenBuilder.Reset()
		p.emit(p.tokenBuilder.DoctypeToken())
		return false, dataState
	default:
		p.tokenBuilder.Reset()
		p.tokenBuilder.WriteName(r)
		return false, doctypeNameState
	}
}

func (p *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInDoctype)
		p.emit(p.tokenBuilder.DoctypeToken(), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch {
	case r == '\u0009' || r == '\u000A' || r == '\u000C' || r == ' ':
		// public/system identifiers are skipped to the closing ">"
		return false, bogusDoctypeState
	case r == '>':
		p.emit(p.tokenBuilder.DoctypeToken())
		return false, dataState
	case isASCIIUpper(r):
		p.tokenBuilder.WriteName(r + 0x20)
		return false, doctypeNameState
	case r == '\u0000':
		p.parseErr(unexpectedNullCharacter)
		p.tokenBuilder.WriteName('�')
		return false, doctypeNameState
	default:
		p.tokenBuilder.WriteName(r)
		return false, doctypeNameState
	}
}

func (p *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.DoctypeToken(), p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '>':
		p.emit(p.tokenBuilder.DoctypeToken())
		return false, dataState
	default:
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case '<':
		return false, rawTextLessThanSignState
	case '\u0000':
		p.parseErr(unexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, rawTextState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, rawTextState
	}
}

func (p *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CharacterToken('<'))
		return true, rawTextState
	}
	switch r {
	case '/':
		p.tokenBuilder.ResetTempBuffer()
		return false, rawTextEndTagOpenState
	default:
		p.emit(p.tokenBuilder.CharacterToken('<'))
		return true, rawTextState
	}
}

func (p *HTMLTokenizer) defaultRawTextEndTagOpenStateParser() (bool, tokenizerState) {
	p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.CharacterToken('/'))
	return true, rawTextState
}

func (p *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.defaultRawTextEndTagOpenStateParser()
	}
	if isASCIILetter(r) {
		p.tokenBuilder.Reset()
		p.tokenBuilder.curTagType = endTag
		return true, rawTextEndTagNameState
	}
	return p.defaultRawTextEndTagOpenStateParser()
}

func (p *HTMLTokenizer) defaultRawTextEndTagNameStateCase() (bool, tokenizerState) {
	p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.CharacterToken('/'))
	p.emit(p.tokenBuilder.TempBufferCharTokens()...)
	return true, rawTextState
}

func (p *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.defaultRawTextEndTagNameStateCase()
	}
	switch {
	case r == '\u0009' || r == '\u000A' || r == '\u000C' || r == ' ':
		if p.isApprEndTagToken() {
			return false, beforeAttributeNameState
		}
		return p.defaultRawTextEndTagNameStateCase()
	case r == '/':
		if p.isApprEndTagToken() {
			return false, selfClosingStartTagState
		}
		return p.defaultRawTextEndTagNameStateCase()
	case r == '>':
		if p.isApprEndTagToken() {
			return false, p.emitCurrentTag()
		}
		return p.defaultRawTextEndTagNameStateCase()
	case isASCIIUpper(r):
		p.tokenBuilder.WriteTempBuffer(r)
		p.tokenBuilder.WriteName(r + 0x20)
		return false, rawTextEndTagNameState
	case isASCIILetter(r):
		p.tokenBuilder.WriteTempBuffer(r)
		p.tokenBuilder.WriteName(r)
		return false, rawTextEndTagNameState
	default:
		return p.defaultRawTextEndTagNameStateCase()
	}
}

func (p *HTMLTokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseErr(eofInCdata)
		p.emit(p.tokenBuilder.EndOfStreamToken())
		return false, dataState
	}
	switch r {
	case ']':
		return false, cdataSectionBracketState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, cdataSectionState
	}
}

func (p *HTMLTokenizer) cdataSectionBracketStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CharacterToken(']'))
		return true, cdataSectionState
	}
	switch r {
	case ']':
		return false, cdataSectionEndState
	default:
		p.emit(p.tokenBuilder.CharacterToken(']'))
		return true, cdataSectionState
	}
}

func (p *HTMLTokenizer) cdataSectionEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CharacterToken(']'), p.tokenBuilder.CharacterToken(']'))
		return true, cdataSectionState
	}
	switch r {
	case ']':
		p.emit(p.tokenBuilder.CharacterToken(']'))
		return false, cdataSectionEndState
	case '>':
		return false, dataState
	default:
		p.emit(p.tokenBuilder.CharacterToken(']'), p.tokenBuilder.CharacterToken(']'))
		return true, cdataSectionState
	}
}
