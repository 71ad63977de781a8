package spec

import "strings"

// Document wraps a finished (or snapshotted) tree together with the URL it
// was parsed from. Once installed on a tab session the tree is treated as
// immutable; re-navigation replaces it wholesale, so concurrent readers
// need no locking.
type Document struct {
	URL  string
	root *Node
}

// NewDocument wraps root, which must be a DocumentNode.
func NewDocument(url string, root *Node) *Document {
	return &Document{URL: url, root: root}
}

// Root returns the single document root.
func (d *Document) Root() *Node {
	return d.root
}

// Find returns every node matching pred in depth-first pre-order.
func (d *Document) Find(pred func(*Node) bool) []*Node {
	var out []*Node
	d.root.Walk(func(n *Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindFirst returns the first node matching pred in depth-first pre-order,
// or nil.
func (d *Document) FindFirst(pred func(*Node) bool) *Node {
	var found *Node
	d.root.Walk(func(n *Node) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// Title returns the text of the first title element, or "".
func (d *Document) Title() string {
	title := d.FindFirst(func(n *Node) bool {
		return n.Type == ElementNode && n.Tag == "title"
	})
	if title == nil {
		return ""
	}
	return strings.TrimSpace(title.Text())
}

// Equal reports whether two documents hold structurally identical trees.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.root.Equal(o.root)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{URL: d.URL, root: d.root.Clone()}
}

// Dump renders the tree in an indented one-node-per-line form. Test helper
// and debugging aid.
func (d *Document) Dump() string {
	var sb strings.Builder
	d.root.dump(&sb, 0)
	return sb.String()
}
