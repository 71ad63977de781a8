package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/essentia/browsercore/parser/spec"
)

func parseTree(t *testing.T, in string) *spec.Document {
	t.Helper()
	res, err := Parse(strings.NewReader(in), "https://tree.test/", "utf-8")
	if err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	return res.Document
}

var treeConstructionTests = []struct {
	name   string
	inHTML string
	want   string
}{
	{
		name:   "well-formed nesting",
		inHTML: `<!DOCTYPE html><html><head><title>T</title></head><body><div id="a"><p>x</p></div></body></html>`,
		want: `#document
  <!DOCTYPE html>
  <html>
    <head>
      <title>
        "T"
    <body>
      <div id="a">
        <p>
          "x"
`,
	},
	{
		name:   "implied scaffolding",
		inHTML: `<p>hi`,
		want: `#document
  <html>
    <head>
    <body>
      <p>
        "hi"
`,
	},
	{
		name:   "implied p closing",
		inHTML: `<p>A<p>B`,
		want: `#document
  <html>
    <head>
    <body>
      <p>
        "A"
      <p>
        "B"
`,
	},
	{
		name:   "block start tag closes open p",
		inHTML: `<p>A<div>B</div>`,
		want: `#document
  <html>
    <head>
    <body>
      <p>
        "A"
      <div>
        "B"
`,
	},
	{
		name:   "stray end tag ignored",
		inHTML: `<div></span></div>after`,
		want: `#document
  <html>
    <head>
    <body>
      <div>
      "after"
`,
	},
	{
		name:   "foster parenting",
		inHTML: `<table>fostered<tr><td>cell</td></tr></table>`,
		want: `#document
  <html>
    <head>
    <body>
      "fostered"
      <table>
        <tbody>
          <tr>
            <td>
              "cell"
`,
	},
	{
		name:   "implied list item closing",
		inHTML: `<ul><li>a<li>b</ul>`,
		want: `#document
  <html>
    <head>
    <body>
      <ul>
        <li>
          "a"
        <li>
          "b"
`,
	},
	{
		name:   "implied table sections",
		inHTML: `<table><td>x</table>`,
		want: `#document
  <html>
    <head>
    <body>
      <table>
        <tbody>
          <tr>
            <td>
              "x"
`,
	},
	{
		name:   "void elements do not nest",
		inHTML: `<p>a<br>b<img src="i.png">c</p>`,
		want: `#document
  <html>
    <head>
    <body>
      <p>
        "a"
        <br>
        "b"
        <img src="i.png">
        "c"
`,
	},
	{
		name:   "comments attach in place",
		inHTML: `<!--top--><p>x<!--inner--></p>`,
		want: `#document
  <!-- top -->
  <html>
    <head>
    <body>
      <p>
        "x"
        <!-- inner -->
`,
	},
	{
		name:   "head content stays in head",
		inHTML: `<head><meta charset="utf-8"><style>b{}</style></head><body>x`,
		want: `#document
  <html>
    <head>
      <meta charset="utf-8">
      <style>
        "b{}"
    <body>
      "x"
`,
	},
	{
		name:   "unclosed elements closed at end of stream",
		inHTML: `<div><section><p>deep`,
		want: `#document
  <html>
    <head>
    <body>
      <div>
        <section>
          <p>
            "deep"
`,
	},
	{
		name:   "definition terms close each other",
		inHTML: `<dl><dt>a<dd>b</dl>`,
		want: `#document
  <html>
    <head>
    <body>
      <dl>
        <dt>
          "a"
        <dd>
          "b"
`,
	},
}

func TestTreeConstruction(t *testing.T) {
	for _, tt := range treeConstructionTests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseTree(t, tt.inHTML)
			if diff := cmp.Diff(tt.want, doc.Dump()); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Children of an element must be exactly the nodes between its start and
// end tags, in document order.
func TestChildOrderPreserved(t *testing.T) {
	doc := parseTree(t, `<div><a>1</a><b>2</b><c>3</c></div>`)
	div := doc.FindFirst(func(n *spec.Node) bool { return n.Tag == "div" })
	if div == nil {
		t.Fatal("div not found")
	}
	var tags []string
	for _, c := range div.Children {
		tags = append(tags, c.Tag)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, tags); diff != "" {
		t.Errorf("child order mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotIsConsistentCopy(t *testing.T) {
	c := NewHTMLTreeConstructor()
	for _, tok := range []Token{
		{Type: startTagToken, TagName: "html"},
		{Type: startTagToken, TagName: "body"},
		{Type: startTagToken, TagName: "p"},
		{Type: characterToken, Data: "x"},
	} {
		c.ProcessToken(tok)
	}
	snap := c.Snapshot("https://tree.test/")

	c.ProcessToken(Token{Type: characterToken, Data: "y"})
	c.ProcessToken(Token{Type: endOfStreamToken})
	final := c.Document("https://tree.test/")

	if snap.Equal(final) {
		t.Error("snapshot should not reflect tokens processed after it was taken")
	}
	p := snap.FindFirst(func(n *spec.Node) bool { return n.Tag == "p" })
	if p == nil || p.Text() != "x" {
		t.Fatalf("snapshot should contain the tree built so far, got %+v", p)
	}
}

func TestStrayEndTagsRecordErrors(t *testing.T) {
	res, err := Parse(strings.NewReader(`<div></span></div>`), "https://tree.test/", "utf-8")
	if err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	found := false
	for _, e := range res.Errors {
		if e.Code == "unexpected-end-tag" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unexpected-end-tag in %v", res.Errors)
	}
}
