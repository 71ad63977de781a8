// Package spec holds the document model produced by the tree construction
// phase. The tree owns its children exclusively and carries no parent
// back-pointers; upward lookups during construction are served by the tree
// builder's stack of open elements instead.
package spec

import (
	"strings"
)

type NodeType uint16

const (
	DocumentNode NodeType = iota + 1
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
)

func (n NodeType) String() string {
	switch n {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case DoctypeNode:
		return "doctype"
	}
	return "unknown"
}

// Attribute is a single name/value pair on an element. Attribute order is
// source order; a duplicated name keeps its first position with the last
// value seen.
type Attribute struct {
	Name  string
	Value string
}

// Node is one entity in the document tree. Which fields are meaningful
// depends on Type: Tag for elements and doctypes, Data for text and
// comments. Children are exclusively owned by their parent.
type Node struct {
	Type       NodeType
	Tag        string
	Data       string
	Attributes []Attribute
	Children   []*Node
}

// NewDocumentNode creates the single root of a document tree.
func NewDocumentNode() *Node {
	return &Node{Type: DocumentNode}
}

// NewElement creates an element node with a copy of the given attributes.
func NewElement(tag string, attrs []Attribute) *Node {
	var cp []Attribute
	if len(attrs) > 0 {
		cp = make([]Attribute, len(attrs))
		copy(cp, attrs)
	}
	return &Node{Type: ElementNode, Tag: tag, Attributes: cp}
}

// NewText creates a text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// NewComment creates a comment node.
func NewComment(data string) *Node {
	return &Node{Type: CommentNode, Data: data}
}

// NewDoctype creates a doctype node.
func NewDoctype(name string) *Node {
	return &Node{Type: DoctypeNode, Tag: name}
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	n.Children = append(n.Children, c)
}

// InsertChildAt inserts c at position i among n's children. An index past
// the end appends.
func (n *Node) InsertChildAt(i int, c *Node) {
	if i >= len(n.Children) {
		n.AppendChild(c)
		return
	}
	if i < 0 {
		i = 0
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
}

// IndexOfChild returns the position of c among n's children, or -1.
func (n *Node) IndexOfChild(c *Node) int {
	for i, child := range n.Children {
		if child == c {
			return i
		}
	}
	return -1
}

// LastChild returns the last child of n, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Attr looks up an attribute value by name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the concatenated text content of n and its descendants.
func (n *Node) Text() string {
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n *Node) appendText(sb *strings.Builder) {
	if n.Type == TextNode {
		sb.WriteString(n.Data)
		return
	}
	for _, c := range n.Children {
		c.appendText(sb)
	}
}

// Clone returns a deep copy of n. Used to hand out consistent snapshots of
// partially built trees.
func (n *Node) Clone() *Node {
	cp := &Node{Type: n.Type, Tag: n.Tag, Data: n.Data}
	if len(n.Attributes) > 0 {
		cp.Attributes = make([]Attribute, len(n.Attributes))
		copy(cp.Attributes, n.Attributes)
	}
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, 0, len(n.Children))
		for _, c := range n.Children {
			cp.Children = append(cp.Children, c.Clone())
		}
	}
	return cp
}

// Equal reports whether two trees are structurally identical.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type || n.Tag != o.Tag || n.Data != o.Data {
		return false
	}
	if len(n.Attributes) != len(o.Attributes) || len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Attributes {
		if n.Attributes[i] != o.Attributes[i] {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Walk visits n and every descendant depth-first, pre-order. Returning
// false from the visitor stops the walk.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(visit) {
			return false
		}
	}
	return true
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	switch n.Type {
	case DocumentNode:
		sb.WriteString("#document")
	case ElementNode:
		sb.WriteString("<" + n.Tag)
		for _, a := range n.Attributes {
			sb.WriteString(" " + a.Name + "=" + quote(a.Value))
		}
		sb.WriteString(">")
	case TextNode:
		sb.WriteString(quote(n.Data))
	case CommentNode:
		sb.WriteString("<!-- " + n.Data + " -->")
	case DoctypeNode:
		sb.WriteString("<!DOCTYPE " + n.Tag + ">")
	}
	sb.WriteString("\n")
	for _, c := range n.Children {
		c.dump(sb, depth+1)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
