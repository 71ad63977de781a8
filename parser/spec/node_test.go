package spec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleDocument() *Document {
	root := NewDocumentNode()
	html := NewElement("html", nil)
	head := NewElement("head", nil)
	title := NewElement("title", nil)
	title.AppendChild(NewText(" Sample Page "))
	head.AppendChild(title)
	body := NewElement("body", nil)
	first := NewElement("p", []Attribute{{Name: "class", Value: "intro"}})
	first.AppendChild(NewText("first"))
	second := NewElement("p", nil)
	second.AppendChild(NewText("second"))
	body.AppendChild(first)
	body.AppendChild(second)
	html.AppendChild(head)
	html.AppendChild(body)
	root.AppendChild(html)
	return NewDocument("https://example.test/", root)
}

func TestWalkPreOrder(t *testing.T) {
	doc := sampleDocument()
	var visited []string
	doc.Root().Walk(func(n *Node) bool {
		switch n.Type {
		case ElementNode:
			visited = append(visited, n.Tag)
		case TextNode:
			visited = append(visited, "#text")
		case DocumentNode:
			visited = append(visited, "#document")
		}
		return true
	})
	want := []string{"#document", "html", "head", "title", "#text", "body", "p", "#text", "p", "#text"}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkEarlyStop(t *testing.T) {
	doc := sampleDocument()
	count := 0
	doc.Root().Walk(func(n *Node) bool {
		count++
		return n.Tag != "head"
	})
	if count != 3 {
		t.Errorf("expected walk to stop after 3 nodes, visited %d", count)
	}
}

func TestFind(t *testing.T) {
	doc := sampleDocument()
	paragraphs := doc.Find(func(n *Node) bool {
		return n.Type == ElementNode && n.Tag == "p"
	})
	if len(paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paragraphs))
	}
	if got := paragraphs[0].Text(); got != "first" {
		t.Errorf("expected first paragraph text %q, got %q", "first", got)
	}
	if v, ok := paragraphs[0].Attr("class"); !ok || v != "intro" {
		t.Errorf("expected class=intro, got %q (present=%v)", v, ok)
	}
}

func TestFindFirst(t *testing.T) {
	doc := sampleDocument()
	p := doc.FindFirst(func(n *Node) bool {
		return n.Type == ElementNode && n.Tag == "p"
	})
	if p == nil || p.Text() != "first" {
		t.Fatalf("expected first paragraph, got %+v", p)
	}
	missing := doc.FindFirst(func(n *Node) bool {
		return n.Tag == "video"
	})
	if missing != nil {
		t.Errorf("expected nil for absent element, got %+v", missing)
	}
}

func TestTitle(t *testing.T) {
	doc := sampleDocument()
	if got := doc.Title(); got != "Sample Page" {
		t.Errorf("expected trimmed title %q, got %q", "Sample Page", got)
	}

	empty := NewDocument("", NewDocumentNode())
	if got := empty.Title(); got != "" {
		t.Errorf("expected empty title for bare document, got %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()
	if !doc.Equal(clone) {
		t.Fatal("clone should compare equal to the original")
	}

	p := doc.FindFirst(func(n *Node) bool { return n.Tag == "p" })
	p.AppendChild(NewComment("mutated"))
	if doc.Equal(clone) {
		t.Error("mutating the original must not affect the clone")
	}
}

func TestEqual(t *testing.T) {
	a := sampleDocument()
	b := sampleDocument()
	if !a.Equal(b) {
		t.Fatal("identically built documents should be equal")
	}

	p := b.FindFirst(func(n *Node) bool { return n.Tag == "p" })
	p.Attributes[0].Value = "outro"
	if a.Equal(b) {
		t.Error("attribute change should break equality")
	}
}

func TestInsertChildAt(t *testing.T) {
	parent := NewElement("ul", nil)
	a := NewElement("li", nil)
	b := NewElement("li", nil)
	c := NewElement("li", nil)
	parent.AppendChild(a)
	parent.AppendChild(c)
	parent.InsertChildAt(1, b)

	if got := parent.IndexOfChild(b); got != 1 {
		t.Errorf("expected inserted child at index 1, got %d", got)
	}
	if got := parent.IndexOfChild(c); got != 2 {
		t.Errorf("expected shifted child at index 2, got %d", got)
	}

	d := NewElement("li", nil)
	parent.InsertChildAt(99, d)
	if parent.LastChild() != d {
		t.Error("out-of-range insert should append")
	}
}

func TestTextConcatenation(t *testing.T) {
	doc := sampleDocument()
	body := doc.FindFirst(func(n *Node) bool { return n.Tag == "body" })
	if got := body.Text(); got != "firstsecond" {
		t.Errorf("expected concatenated text %q, got %q", "firstsecond", got)
	}
}

func TestNewElementCopiesAttributes(t *testing.T) {
	attrs := []Attribute{{Name: "id", Value: "x"}}
	el := NewElement("div", attrs)
	attrs[0].Value = "y"
	if v, _ := el.Attr("id"); v != "x" {
		t.Errorf("element should hold its own attribute copy, got id=%q", v)
	}
}
