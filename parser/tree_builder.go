package parser

import (
	"github.com/essentia/browsercore/parser/spec"
)

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	afterHead
	inBody
	textMode
	inTable
	inTableBody
	inRow
	inCell
	afterBody
	afterAfterBody
)

type treeConstructionModeHandler func(t Token) (bool, insertionMode, parseError)

// HTMLTreeConstructor consumes tokens one at a time and builds the
// document tree, tracking the current insertion mode and the stack of open
// elements. The stack holds references into the tree; nodes themselves
// carry no parent pointers, so all upward lookups go through it.
type HTMLTreeConstructor struct {
	document              *spec.Node
	mode                  insertionMode
	originalInsertionMode insertionMode
	stackOfOpenElements   []*spec.Node
	headElementPointer    *spec.Node
	fosterParenting       bool
	done                  bool
	errs                  []ParseError
	mappings              map[insertionMode]treeConstructionModeHandler
}

// NewHTMLTreeConstructor creates a tree constructor with an empty document
// root.
func NewHTMLTreeConstructor() *HTMLTreeConstructor {
	c := &HTMLTreeConstructor{
		document: spec.NewDocumentNode(),
		mode:     initial,
	}
	c.createMappings()
	return c
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:        c.initialModeHandler,
		beforeHTML:     c.beforeHTMLModeHandler,
		beforeHead:     c.beforeHeadModeHandler,
		inHead:         c.inHeadModeHandler,
		afterHead:      c.afterHeadModeHandler,
		inBody:         c.inBodyModeHandler,
		textMode:       c.textModeHandler,
		inTable:        c.inTableModeHandler,
		inTableBody:    c.inTableBodyModeHandler,
		inRow:          c.inRowModeHandler,
		inCell:         c.inCellModeHandler,
		afterBody:      c.afterBodyModeHandler,
		afterAfterBody: c.afterAfterBodyModeHandler,
	}
}

// ProcessToken dispatches one token through the current insertion mode,
// following reprocess transitions until the token is consumed. On
// end-of-stream the remaining open elements are implicitly closed in stack
// order and the document is finished.
func (c *HTMLTreeConstructor) ProcessToken(t Token) {
	if c.done {
		return
	}
	reprocess := true
	for reprocess {
		var err parseError
		reprocess, c.mode, err = c.mappings[c.mode](t)
		if err != noError {
			c.errs = append(c.errs, ParseError{Code: err.String()})
		}
	}
	if t.Type == endOfStreamToken {
		c.stackOfOpenElements = nil
		c.done = true
	}
}

// Done reports whether end-of-stream has been processed.
func (c *HTMLTreeConstructor) Done() bool {
	return c.done
}

// Errors returns the non-fatal tree-construction errors observed so far.
func (c *HTMLTreeConstructor) Errors() []ParseError {
	return c.errs
}

// Document materializes the finished tree. Only meaningful once Done
// reports true; callers needing partial progress use Snapshot.
func (c *HTMLTreeConstructor) Document(url string) *spec.Document {
	return spec.NewDocument(url, c.document)
}

// Snapshot returns a consistent deep copy of the tree built so far, for
// progressive rendering of partial progress.
func (c *HTMLTreeConstructor) Snapshot(url string) *spec.Document {
	return spec.NewDocument(url, c.document.Clone())
}

func (c *HTMLTreeConstructor) getCurrentNode() *spec.Node {
	if len(c.stackOfOpenElements) == 0 {
		return c.document
	}
	return c.stackOfOpenElements[len(c.stackOfOpenElements)-1]
}

func (c *HTMLTreeConstructor) popCurrentNode() *spec.Node {
	n := c.stackOfOpenElements[len(c.stackOfOpenElements)-1]
	c.stackOfOpenElements = c.stackOfOpenElements[:len(c.stackOfOpenElements)-1]
	return n
}

// insertionLocation is a parent node plus a position among its children.
type insertionLocation struct {
	parent *spec.Node
	index  int
}

// appropriatePlaceForInsertion is the current node's end, unless foster
// parenting is active and the current node is part of a table, in which
// case misplaced content is relocated to just before the last open table.
func (c *HTMLTreeConstructor) appropriatePlaceForInsertion() insertionLocation {
	target := c.getCurrentNode()
	if c.fosterParenting {
		switch target.Tag {
		case "table", "tbody", "tfoot", "thead", "tr":
			for i := len(c.stackOfOpenElements) - 1; i > 0; i-- {
				if c.stackOfOpenElements[i].Tag != "table" {
					continue
				}
				parent := c.stackOfOpenElements[i-1]
				if idx := parent.IndexOfChild(c.stackOfOpenElements[i]); idx >= 0 {
					return insertionLocation{parent: parent, index: idx}
				}
			}
		}
	}
	return insertionLocation{parent: target, index: len(target.Children)}
}

func (c *HTMLTreeConstructor) insertCharacter(t Token) {
	loc := c.appropriatePlaceForInsertion()
	if loc.parent.Type == spec.DocumentNode {
		// text is never a direct child of the document
		return
	}
	if loc.index > 0 {
		if prev := loc.parent.Children[loc.index-1]; prev.Type == spec.TextNode {
			prev.Data += t.Data
			return
		}
	}
	loc.parent.InsertChildAt(loc.index, spec.NewText(t.Data))
}

func (c *HTMLTreeConstructor) insertComment(t Token) {
	loc := c.appropriatePlaceForInsertion()
	loc.parent.InsertChildAt(loc.index, spec.NewComment(t.Data))
}

// insertElementForToken creates an element for a start tag, inserts it at
// the appropriate place and pushes it onto the stack of open elements.
func (c *HTMLTreeConstructor) insertElementForToken(t Token) *spec.Node {
	elem := spec.NewElement(t.TagName, t.Attributes)
	loc := c.appropriatePlaceForInsertion()
	loc.parent.InsertChildAt(loc.index, elem)
	c.stackOfOpenElements = append(c.stackOfOpenElements, elem)
	return elem
}

// insertImpliedElement inserts an element that has no corresponding start
// tag in the input, e.g. the html/head/body scaffolding of a fragment.
func (c *HTMLTreeConstructor) insertImpliedElement(name string) *spec.Node {
	return c.insertElementForToken(Token{Type: startTagToken, TagName: name})
}

var defaultScopeBoundaries = []string{"html", "body", "table", "td", "th", "caption", "object"}

// elementInScope walks the stack of open elements from the top looking for
// target, stopping at any of the boundary names.
func (c *HTMLTreeConstructor) elementInScope(target string, boundaries ...string) bool {
	if boundaries == nil {
		boundaries = defaultScopeBoundaries
	}
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		entry := c.stackOfOpenElements[i]
		if entry.Tag == target {
			return true
		}
		for _, name := range boundaries {
			if entry.Tag == name {
				return false
			}
		}
	}
	return false
}

func (c *HTMLTreeConstructor) elementInButtonScope(target string) bool {
	return c.elementInScope(target, append([]string{"button"}, defaultScopeBoundaries...)...)
}

func (c *HTMLTreeConstructor) elementInListItemScope(target string) bool {
	return c.elementInScope(target, append([]string{"ol", "ul"}, defaultScopeBoundaries...)...)
}

func (c *HTMLTreeConstructor) elementInTableScope(target string) bool {
	return c.elementInScope(target, "html", "table")
}

var impliedEndTags = map[string]bool{
	"p": true, "li": true, "dd": true, "dt": true,
	"option": true, "optgroup": true, "rb": true, "rp": true, "rt": true, "rtc": true,
}

func (c *HTMLTreeConstructor) generateImpliedEndTags(except string) {
	for len(c.stackOfOpenElements) > 0 {
		cur := c.getCurrentNode()
		if !impliedEndTags[cur.Tag] || cur.Tag == except {
			return
		}
		c.popCurrentNode()
	}
}

// popUntilInclusive pops the stack until an element named target has been
// popped. The caller must have verified the element is in scope.
func (c *HTMLTreeConstructor) popUntilInclusive(target string) {
	for len(c.stackOfOpenElements) > 0 {
		if c.popCurrentNode().Tag == target {
			return
		}
	}
}

func (c *HTMLTreeConstructor) closePElement() {
	c.generateImpliedEndTags("p")
	c.popUntilInclusive("p")
}

// clearStackBackTo pops until the current node is one of the given names.
// html is always included as a backstop.
func (c *HTMLTreeConstructor) clearStackBackTo(names ...string) {
	for len(c.stackOfOpenElements) > 1 {
		cur := c.getCurrentNode().Tag
		for _, name := range names {
			if cur == name {
				return
			}
		}
		if cur == "html" {
			return
		}
		c.popCurrentNode()
	}
}

// resetInsertionMode picks the mode appropriate for the current stack,
// used after structurally closing a table construct.
func (c *HTMLTreeConstructor) resetInsertionMode() insertionMode {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		switch c.stackOfOpenElements[i].Tag {
		case "td", "th":
			return inCell
		case "tr":
			return inRow
		case "tbody", "thead", "tfoot":
			return inTableBody
		case "table":
			return inTable
		case "body":
			return inBody
		case "head":
			return inHead
		case "html":
			return beforeHead
		}
	}
	return inBody
}

// useRulesFor processes the token with another mode's rules while staying
// in the caller's mode unless the delegate explicitly transitions.
func (c *HTMLTreeConstructor) useRulesFor(t Token, returnState, expectedState insertionMode) (bool, insertionMode, parseError) {
	reprocess, nextstate, err := c.mappings[expectedState](t)
	if nextstate == expectedState {
		return reprocess, returnState, err
	}
	return reprocess, nextstate, err
}

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"center": true, "details": true, "dialog": true, "dir": true, "div": true,
	"dl": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "header": true, "hgroup": true, "listing": true,
	"main": true, "menu": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "summary": true, "ul": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// endTagScopeBoundaries terminate the downward search for a matching open
// element; an end tag that hits one of these is ignored.
var endTagScopeBoundaries = map[string]bool{
	"html": true, "body": true, "table": true, "td": true, "th": true, "caption": true,
}

func (c *HTMLTreeConstructor) initialModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			return false, initial, noError
		}
	case commentToken:
		c.document.AppendChild(spec.NewComment(t.Data))
		return false, initial, noError
	case doctypeToken:
		c.document.AppendChild(spec.NewDoctype(t.TagName))
		return false, beforeHTML, noError
	}
	return true, beforeHTML, noError
}

func (c *HTMLTreeConstructor) defaultBeforeHTMLModeHandler(t Token) (bool, insertionMode, parseError) {
	elem := spec.NewElement("html", nil)
	c.document.AppendChild(elem)
	c.stackOfOpenElements = append(c.stackOfOpenElements, elem)
	return true, beforeHead, noError
}

func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case doctypeToken:
		return false, beforeHTML, unexpectedDoctype
	case commentToken:
		c.document.AppendChild(spec.NewComment(t.Data))
		return false, beforeHTML, noError
	case characterToken:
		if t.isWhitespace() {
			return false, beforeHTML, noError
		}
	case startTagToken:
		if t.TagName == "html" {
			elem := spec.NewElement("html", t.Attributes)
			c.document.AppendChild(elem)
			c.stackOfOpenElements = append(c.stackOfOpenElements, elem)
			return false, beforeHead, noError
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			return false, beforeHTML, unexpectedEndTag
		}
	}
	return c.defaultBeforeHTMLModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultBeforeHeadModeHandler(t Token) (bool, insertionMode, parseError) {
	c.headElementPointer = c.insertImpliedElement("head")
	return true, inHead, noError
}

func (c *HTMLTreeConstructor) beforeHeadModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			return false, beforeHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, beforeHead, noError
	case doctypeToken:
		return false, beforeHead, unexpectedDoctype
	case startTagToken:
		if t.TagName == "head" {
			c.headElementPointer = c.insertElementForToken(t)
			return false, inHead, noError
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			return false, beforeHead, unexpectedEndTag
		}
	}
	return c.defaultBeforeHeadModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultInHeadModeHandler(t Token) (bool, insertionMode, parseError) {
	c.popCurrentNode()
	return true, afterHead, noError
}

func (c *HTMLTreeConstructor) inHeadModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			c.insertCharacter(t)
			return false, inHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, inHead, noError
	case doctypeToken:
		return false, inHead, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "base", "basefont", "bgsound", "link", "meta":
			c.insertElementForToken(t)
			c.popCurrentNode()
			return false, inHead, noError
		case "title", "style", "script", "textarea":
			c.insertElementForToken(t)
			c.originalInsertionMode = inHead
			return false, textMode, noError
		case "head":
			return false, inHead, unexpectedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "head":
			c.popCurrentNode()
			return false, afterHead, noError
		case "body", "html", "br":
		default:
			return false, inHead, unexpectedEndTag
		}
	}
	return c.defaultInHeadModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultAfterHeadModeHandler(t Token) (bool, insertionMode, parseError) {
	c.insertImpliedElement("body")
	return true, inBody, noError
}

func (c *HTMLTreeConstructor) afterHeadModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			c.insertCharacter(t)
			return false, afterHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, afterHead, noError
	case doctypeToken:
		return false, afterHead, unexpectedDoctype
	case startTagToken:
		switch t.TagName {
		case "body":
			c.insertElementForToken(t)
			return false, inBody, noError
		case "head":
			return false, afterHead, unexpectedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "body", "html", "br":
		default:
			return false, afterHead, unexpectedEndTag
		}
	}
	return c.defaultAfterHeadModeHandler(t)
}

func (c *HTMLTreeConstructor) inBodyModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case characterToken:
		if t.Data == "\u0000" {
			return false, inBody, unexpectedNullCharacter
		}
		c.insertCharacter(t)
		return false, inBody, noError
	case commentToken:
		c.insertComment(t)
		return false, inBody, noError
	case doctypeToken:
		return false, inBody, unexpectedDoctype
	case endOfStreamToken:
		return false, inBody, noError
	case startTagToken:
		return c.inBodyStartTagHandler(t)
	case endTagToken:
		return c.inBodyEndTagHandler(t)
	}
	return false, inBody, noError
}

func (c *HTMLTreeConstructor) inBodyStartTagHandler(t Token) (bool, insertionMode, parseError) {
	name := t.TagName
	switch {
	case name == "html" || name == "head":
		return false, inBody, unexpectedStartTag
	case name == "body":
		return false, inBody, unexpectedStartTag
	case blockTags[name]:
		// an open p is implicitly closed by any block-level start tag
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		if headingTags[name] && headingTags[c.getCurrentNode().Tag] {
			c.popCurrentNode()
		}
		c.insertElementForToken(t)
		return false, inBody, noError
	case name == "li":
		if c.elementInListItemScope("li") {
			c.generateImpliedEndTags("li")
			c.popUntilInclusive("li")
		}
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertElementForToken(t)
		return false, inBody, noError
	case name == "dd" || name == "dt":
		// a new term or description closes whichever of dd/dt is open
		for _, open := range []string{"dd", "dt"} {
			if c.elementInScope(open) {
				c.generateImpliedEndTags(open)
				c.popUntilInclusive(open)
				break
			}
		}
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertElementForToken(t)
		return false, inBody, noError
	case name == "table":
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertElementForToken(t)
		return false, inTable, noError
	case name == "hr":
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertElementForToken(t)
		c.popCurrentNode()
		return false, inBody, noError
	case voidTags[name]:
		c.insertElementForToken(t)
		c.popCurrentNode()
		return false, inBody, noError
	case name == "title" || name == "style" || name == "script" || name == "textarea":
		c.insertElementForToken(t)
		c.originalInsertionMode = inBody
		return false, textMode, noError
	default:
		c.insertElementForToken(t)
		if t.SelfClosing {
			c.popCurrentNode()
		}
		return false, inBody, noError
	}
}

func (c *HTMLTreeConstructor) inBodyEndTagHandler(t Token) (bool, insertionMode, parseError) {
	switch t.TagName {
	case "body":
		if !c.elementInScope("body", "html") {
			return false, inBody, unexpectedEndTag
		}
		return false, afterBody, noError
	case "html":
		if !c.elementInScope("body", "html") {
			return false, inBody, unexpectedEndTag
		}
		return true, afterBody, noError
	case "p":
		if !c.elementInButtonScope("p") {
			return false, inBody, unexpectedEndTag
		}
		c.closePElement()
		return false, inBody, noError
	case "br":
		// </br> is treated as <br>
		c.insertElementForToken(Token{Type: startTagToken, TagName: "br"})
		c.popCurrentNode()
		return false, inBody, unexpectedEndTag
	case "li":
		if !c.elementInListItemScope("li") {
			return false, inBody, unexpectedEndTag
		}
		c.generateImpliedEndTags("li")
		c.popUntilInclusive("li")
		return false, inBody, noError
	default:
		return c.anyOtherEndTagHandler(t)
	}
}

// anyOtherEndTagHandler closes elements from the top of the stack downward
// until the matching tag; an end tag with no open counterpart inside the
// nearest scope boundary is ignored.
func (c *HTMLTreeConstructor) anyOtherEndTagHandler(t Token) (bool, insertionMode, parseError) {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		if node.Tag == t.TagName {
			c.generateImpliedEndTags(t.TagName)
			err := noError
			if c.getCurrentNode() != node {
				err = generalParseError
			}
			for len(c.stackOfOpenElements) > i {
				c.popCurrentNode()
			}
			return false, inBody, err
		}
		if endTagScopeBoundaries[node.Tag] {
			break
		}
	}
	return false, inBody, unexpectedEndTag
}

func (c *HTMLTreeConstructor) textModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case characterToken:
		c.insertCharacter(t)
		return false, textMode, noError
	case endOfStreamToken:
		c.popCurrentNode()
		return true, c.originalInsertionMode, unexpectedEndOfStream
	case endTagToken:
		c.popCurrentNode()
		return false, c.originalInsertionMode, noError
	}
	return false, textMode, noError
}

func (c *HTMLTreeConstructor) inTableModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			c.insertCharacter(t)
			return false, inTable, noError
		}
		// non-whitespace text directly inside a table is foster parented
		// to just before the table
		c.fosterParenting = true
		reprocess, next, _ := c.useRulesFor(t, inTable, inBody)
		c.fosterParenting = false
		return reprocess, next, misnestedTableContent
	case commentToken:
		c.insertComment(t)
		return false, inTable, noError
	case doctypeToken:
		return false, inTable, unexpectedDoctype
	case endOfStreamToken:
		return false, inTable, noError
	case startTagToken:
		switch t.TagName {
		case "caption", "colgroup":
			c.clearStackBackTo("table")
			c.insertElementForToken(t)
			return false, inTable, noError
		case "col":
			c.clearStackBackTo("table", "colgroup")
			if c.getCurrentNode().Tag != "colgroup" {
				c.insertImpliedElement("colgroup")
			}
			c.insertElementForToken(t)
			c.popCurrentNode()
			return false, inTable, noError
		case "tbody", "thead", "tfoot":
			c.clearStackBackTo("table")
			c.insertElementForToken(t)
			return false, inTableBody, noError
		case "tr", "td", "th":
			c.clearStackBackTo("table")
			c.insertImpliedElement("tbody")
			return true, inTableBody, noError
		case "table":
			if !c.elementInTableScope("table") {
				return false, inTable, unexpectedStartTag
			}
			c.popUntilInclusive("table")
			return true, c.resetInsertionMode(), unexpectedStartTag
		}
	case endTagToken:
		switch t.TagName {
		case "table":
			if !c.elementInTableScope("table") {
				return false, inTable, unexpectedEndTag
			}
			c.popUntilInclusive("table")
			return false, c.resetInsertionMode(), noError
		case "body", "html", "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			return false, inTable, unexpectedEndTag
		}
	}
	// anything else is processed with body rules, foster parented out of
	// the table
	c.fosterParenting = true
	reprocess, next, _ := c.useRulesFor(t, inTable, inBody)
	c.fosterParenting = false
	return reprocess, next, misnestedTableContent
}

func (c *HTMLTreeConstructor) inTableBodyModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case startTagToken:
		switch t.TagName {
		case "tr":
			c.clearStackBackTo("tbody", "thead", "tfoot")
			c.insertElementForToken(t)
			return false, inRow, noError
		case "td", "th":
			c.clearStackBackTo("tbody", "thead", "tfoot")
			c.insertImpliedElement("tr")
			return true, inRow, unexpectedStartTag
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			c.clearStackBackTo("tbody", "thead", "tfoot")
			if c.getCurrentNode().Tag != "html" {
				c.popCurrentNode()
			}
			return true, inTable, noError
		}
	case endTagToken:
		switch t.TagName {
		case "tbody", "thead", "tfoot":
			if !c.elementInTableScope(t.TagName) {
				return false, inTableBody, unexpectedEndTag
			}
			c.clearStackBackTo("tbody", "thead", "tfoot")
			c.popCurrentNode()
			return false, inTable, noError
		case "table":
			c.clearStackBackTo("tbody", "thead", "tfoot")
			if c.getCurrentNode().Tag != "html" {
				c.popCurrentNode()
			}
			return true, inTable, noError
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			return false, inTableBody, unexpectedEndTag
		}
	}
	return c.useRulesFor(t, inTableBody, inTable)
}

func (c *HTMLTreeConstructor) inRowModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case startTagToken:
		switch t.TagName {
		case "td", "th":
			c.clearStackBackTo("tr")
			c.insertElementForToken(t)
			return false, inCell, noError
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !c.elementInTableScope("tr") {
				return false, inRow, unexpectedStartTag
			}
			c.clearStackBackTo("tr")
			c.popCurrentNode()
			return true, inTableBody, noError
		}
	case endTagToken:
		switch t.TagName {
		case "tr":
			if !c.elementInTableScope("tr") {
				return false, inRow, unexpectedEndTag
			}
			c.clearStackBackTo("tr")
			c.popCurrentNode()
			return false, inTableBody, noError
		case "table", "tbody", "thead", "tfoot":
			if !c.elementInTableScope("tr") {
				return false, inRow, unexpectedEndTag
			}
			c.clearStackBackTo("tr")
			c.popCurrentNode()
			return true, inTableBody, noError
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			return false, inRow, unexpectedEndTag
		}
	}
	return c.useRulesFor(t, inRow, inTable)
}

func (c *HTMLTreeConstructor) inCellModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.elementInTableScope("td") && !c.elementInTableScope("th") {
				return false, inCell, unexpectedStartTag
			}
			c.closeCell()
			return true, inRow, noError
		}
	case endTagToken:
		switch t.TagName {
		case "td", "th":
			if !c.elementInTableScope(t.TagName) {
				return false, inCell, unexpectedEndTag
			}
			c.generateImpliedEndTags("")
			c.popUntilInclusive(t.TagName)
			return false, inRow, noError
		case "table", "tbody", "thead", "tfoot", "tr":
			if !c.elementInTableScope(t.TagName) {
				return false, inCell, unexpectedEndTag
			}
			c.closeCell()
			return true, inRow, noError
		case "body", "caption", "col", "colgroup", "html":
			return false, inCell, unexpectedEndTag
		}
	}
	return c.useRulesFor(t, inCell, inBody)
}

func (c *HTMLTreeConstructor) closeCell() {
	c.generateImpliedEndTags("")
	for len(c.stackOfOpenElements) > 0 {
		n := c.popCurrentNode()
		if n.Tag == "td" || n.Tag == "th" {
			return
		}
	}
}

func (c *HTMLTreeConstructor) afterBodyModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case characterToken:
		if t.isWhitespace() {
			return c.useRulesFor(t, afterBody, inBody)
		}
	case commentToken:
		// comments after body attach to the html element
		if len(c.stackOfOpenElements) > 0 {
			c.stackOfOpenElements[0].AppendChild(spec.NewComment(t.Data))
		} else {
			c.document.AppendChild(spec.NewComment(t.Data))
		}
		return false, afterBody, noError
	case doctypeToken:
		return false, afterBody, unexpectedDoctype
	case endOfStreamToken:
		return false, afterBody, noError
	case endTagToken:
		if t.TagName == "html" {
			return false, afterAfterBody, noError
		}
	}
	return true, inBody, generalParseError
}

func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t Token) (bool, insertionMode, parseError) {
	switch t.Type {
	case commentToken:
		c.document.AppendChild(spec.NewComment(t.Data))
		return false, afterAfterBody, noError
	case doctypeToken:
		return c.useRulesFor(t, afterAfterBody, inBody)
	case characterToken:
		if t.isWhitespace() {
			return c.useRulesFor(t, afterAfterBody, inBody)
		}
	case endOfStreamToken:
		return false, afterAfterBody, noError
	}
	return true, inBody, generalParseError
}
