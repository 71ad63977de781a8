package parser

// parseError identifies a recoverable markup error. Every code maps to a
// documented recovery rule; none of them stop a parse.
type parseError uint

const (
	noError parseError = iota
	generalParseError
	unexpectedNullCharacter
	eofBeforeTagName
	eofInTag
	eofInComment
	eofInDoctype
	eofInCdata
	invalidFirstCharacterOfTagName
	missingEndTagName
	incorrectlyOpenedComment
	missingDoctypeName
	endTagWithAttributes
	unexpectedSolidusInTag
	unexpectedDoctype
	unexpectedStartTag
	unexpectedEndTag
	misnestedTableContent
	unexpectedEndOfStream
)

func (e parseError) String() string {
	switch e {
	case noError:
		return "no-error"
	case generalParseError:
		return "parse-error"
	case unexpectedNullCharacter:
		return "unexpected-null-character"
	case eofBeforeTagName:
		return "eof-before-tag-name"
	case eofInTag:
		return "eof-in-tag"
	case eofInComment:
		return "eof-in-comment"
	case eofInDoctype:
		return "eof-in-doctype"
	case eofInCdata:
		return "eof-in-cdata"
	case invalidFirstCharacterOfTagName:
		return "invalid-first-character-of-tag-name"
	case missingEndTagName:
		return "missing-end-tag-name"
	case incorrectlyOpenedComment:
		return "incorrectly-opened-comment"
	case missingDoctypeName:
		return "missing-doctype-name"
	case endTagWithAttributes:
		return "end-tag-with-attributes"
	case unexpectedSolidusInTag:
		return "unexpected-solidus-in-tag"
	case unexpectedDoctype:
		return "unexpected-doctype"
	case unexpectedStartTag:
		return "unexpected-start-tag"
	case unexpectedEndTag:
		return "unexpected-end-tag"
	case misnestedTableContent:
		return "misnested-table-content"
	case unexpectedEndOfStream:
		return "unexpected-end-of-stream"
	}
	return "unknown-error"
}

// ParseError is a non-fatal markup error recorded alongside the token
// stream. A parse always terminates with a best-effort tree regardless of
// how many of these were observed.
type ParseError struct {
	Code string
}

func (e ParseError) Error() string {
	return e.Code
}
