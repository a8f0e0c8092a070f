// Package doctree is the structured document model: a Document root holding
// chapters, sections, paragraphs, floating objects and footnotes.
package doctree

import (
	"slices"
	"weak"
)

// Kind tags the variant a Node represents.
type Kind int

const (
	KindDocument Kind = iota
	KindChapter
	KindSection
	KindParagraph
	KindFloat
	KindFootnote
)

// String returns the element name used in serialized trees.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindChapter:
		return "chapter"
	case KindSection:
		return "section"
	case KindParagraph:
		return "paragraph"
	case KindFloat:
		return "float"
	case KindFootnote:
		return "footnote"
	default:
		return "unknown"
	}
}

// Meta is optional document metadata.
type Meta struct {
	Title    string
	Authors  []string
	Language string
}

// Node is a single element of the document tree. Which fields are meaningful
// depends on Kind:
//
//	Document           Meta
//	Chapter, Section   Title, Number
//	Paragraph          Text, Font, FontSize, Emph, WordCount
//	Float, Footnote    Text, Number
//
// Every node carries Page. A node owns its children; the parent link is weak
// and only used for upward lookups.
type Node struct {
	Kind Kind

	Text   string
	Page   string // Page identifier of the source fragment
	Title  string
	Number string

	Font      string
	FontSize  float64
	Emph      []string
	WordCount int

	Meta *Meta

	parent   weak.Pointer[Node]
	children []*Node
}

// NewDocument creates an empty document root. meta may be nil.
func NewDocument(meta *Meta) *Node {
	return &Node{Kind: KindDocument, Meta: meta}
}

// NewSection creates a section heading node.
func NewSection(title, number, page string) *Node {
	return &Node{Kind: KindSection, Title: title, Number: number, Page: page}
}

// NewChapter creates a chapter heading node.
func NewChapter(title, number, page string) *Node {
	return &Node{Kind: KindChapter, Title: title, Number: number, Page: page}
}

// NewParagraph creates a body text node.
func NewParagraph(text, page, font string, fontSize float64, emph []string, wordCount int) *Node {
	return &Node{
		Kind:      KindParagraph,
		Text:      text,
		Page:      page,
		Font:      font,
		FontSize:  fontSize,
		Emph:      slices.Clone(emph),
		WordCount: wordCount,
	}
}

// NewFloat creates a floating object (figure, table, listing, ...).
func NewFloat(text, number, page string) *Node {
	return &Node{Kind: KindFloat, Text: text, Number: number, Page: page}
}

// NewFootnote creates a footnote node.
func NewFootnote(text, number, page string) *Node {
	return &Node{Kind: KindFootnote, Text: text, Number: number, Page: page}
}

// Parent returns the node this node is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent.Value()
}

// Children returns the ordered child list. Callers must not modify it.
func (n *Node) Children() []*Node {
	return n.children
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent() == nil
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// AddChild attaches child according to the hierarchical relation between n
// and child:
//
//	 1  child becomes the last child of n
//	 0  child becomes a sibling of n (last child of n's parent)
//	-1  child becomes a sibling of n's parent, -2 of its grandparent, ...
//
// It reports whether the child was attached. Relations above 1 attach
// nothing.
func (n *Node) AddChild(child *Node, relation int) bool {
	if child == nil {
		return false
	}
	switch {
	case relation == 1:
		child.parent = weak.Make(n)
		n.children = append(n.children, child)
		return true
	case relation < 1:
		p := n.Parent()
		if p == nil {
			return false
		}
		return p.AddChild(child, relation+1)
	default:
		return false
	}
}

// Append attaches child as the last child of n.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		n.AddChild(c, 1)
	}
}

// RemoveChild detaches child from n. It is a no-op if child is not a direct
// child of n.
func (n *Node) RemoveChild(child *Node) {
	i := slices.Index(n.children, child)
	if i < 0 {
		return
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = weak.Pointer[Node]{}
}

// Sections returns the direct children that are sections or chapters.
func (n *Node) Sections() []*Node {
	var out []*Node
	for _, c := range n.children {
		if IsSection(c) {
			out = append(out, c)
		}
	}
	return out
}

// Paragraphs returns paragraph children, descending into sections when
// recursive is set.
func (n *Node) Paragraphs(recursive bool) []*Node {
	return n.collect(IsParagraph, recursive)
}

// Floats returns floating-object children, descending into sections when
// recursive is set. Footnotes are not floats.
func (n *Node) Floats(recursive bool) []*Node {
	return n.collect(IsFloat, recursive)
}

// Footnotes returns footnote children, descending into sections when
// recursive is set.
func (n *Node) Footnotes(recursive bool) []*Node {
	return n.collect(IsFootnote, recursive)
}

func (n *Node) collect(match func(*Node) bool, recursive bool) []*Node {
	var out []*Node
	for _, c := range n.children {
		switch {
		case match(c):
			out = append(out, c)
		case recursive && IsSection(c):
			out = append(out, c.collect(match, true)...)
		}
	}
	return out
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Path returns the chain of section titles from the root to n, excluding
// the root itself.
func (n *Node) Path() []string {
	var path []string
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Kind == KindDocument {
			break
		}
		if IsSection(cur) {
			path = append(path, cur.Title)
		}
	}
	slices.Reverse(path)
	return path
}

// IsSection reports whether n is a section-like container (section, chapter
// or the document root).
func IsSection(n *Node) bool {
	return n != nil && (n.Kind == KindSection || n.Kind == KindChapter || n.Kind == KindDocument)
}

// IsChapter reports whether n is a chapter, or a section attached directly to
// the document root.
func IsChapter(n *Node) bool {
	if n == nil {
		return false
	}
	if n.Kind == KindChapter {
		return true
	}
	if n.Kind == KindSection {
		p := n.Parent()
		return p != nil && p.Kind == KindDocument
	}
	return false
}

// IsParagraph reports whether n is a paragraph.
func IsParagraph(n *Node) bool {
	return n != nil && n.Kind == KindParagraph
}

// IsFloat reports whether n is a floating object.
func IsFloat(n *Node) bool {
	return n != nil && n.Kind == KindFloat
}

// IsFootnote reports whether n is a footnote.
func IsFootnote(n *Node) bool {
	return n != nil && n.Kind == KindFootnote
}

// Equal compares two trees structurally: kinds, text fields, paragraph
// attributes, metadata and child order. Parent links and the derived
// WordCount are not compared.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Text != b.Text || a.Page != b.Page ||
		a.Title != b.Title || a.Number != b.Number ||
		a.Font != b.Font || a.FontSize != b.FontSize ||
		!slices.Equal(a.Emph, b.Emph) {
		return false
	}
	if !metaEqual(a.Meta, b.Meta) {
		return false
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

func metaEqual(a, b *Meta) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Title == b.Title && a.Language == b.Language && slices.Equal(a.Authors, b.Authors)
}
