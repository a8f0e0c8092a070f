package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docstruct/internal/doctree"
)

// JSONNode is the JSON form of a tree node. Empty fields are omitted.
type JSONNode struct {
	Kind     string      `json:"kind"`
	Title    string      `json:"title,omitempty"`
	Number   string      `json:"number,omitempty"`
	Page     string      `json:"page,omitempty"`
	Text     string      `json:"text,omitempty"`
	Font     string      `json:"font,omitempty"`
	FontSize float64     `json:"fontsize,omitempty"`
	Emph     []string    `json:"emph,omitempty"`
	Words    int         `json:"words,omitempty"`
	Meta     *JSONMeta   `json:"meta,omitempty"`
	Children []*JSONNode `json:"children,omitempty"`
}

type JSONMeta struct {
	Title    string   `json:"title,omitempty"`
	Authors  []string `json:"authors,omitempty"`
	Language string   `json:"language,omitempty"`
}

// ToJSON converts a tree into its JSON form.
func ToJSON(n *doctree.Node) *JSONNode {
	if n == nil {
		return nil
	}
	j := &JSONNode{
		Kind:     n.Kind.String(),
		Title:    n.Title,
		Number:   n.Number,
		Page:     n.Page,
		Text:     n.Text,
		Font:     n.Font,
		FontSize: n.FontSize,
		Emph:     n.Emph,
		Words:    n.WordCount,
	}
	if n.Meta != nil {
		j.Meta = &JSONMeta{Title: n.Meta.Title, Authors: n.Meta.Authors, Language: n.Meta.Language}
	}
	for _, c := range n.Children() {
		j.Children = append(j.Children, ToJSON(c))
	}
	return j
}

// Tree rebuilds the document tree. Errors carry a JSON pointer to the
// offending node.
func (j *JSONNode) Tree() (*doctree.Node, error) {
	return j.tree("")
}

func (j *JSONNode) tree(path string) (*doctree.Node, error) {
	if j == nil {
		return nil, &FormatError{Path: pointer(path), Msg: "null node"}
	}
	var n *doctree.Node
	switch j.Kind {
	case "document":
		n = doctree.NewDocument(nil)
		if j.Meta != nil {
			n.Meta = &doctree.Meta{Title: j.Meta.Title, Authors: j.Meta.Authors, Language: j.Meta.Language}
		}
	case "chapter":
		n = doctree.NewChapter(j.Title, j.Number, j.Page)
	case "section":
		n = doctree.NewSection(j.Title, j.Number, j.Page)
	case "paragraph":
		words := j.Words
		if words == 0 {
			words = len(strings.Fields(j.Text))
		}
		n = doctree.NewParagraph(j.Text, j.Page, j.Font, j.FontSize, j.Emph, words)
	case "float":
		n = doctree.NewFloat(j.Text, j.Number, j.Page)
	case "footnote":
		n = doctree.NewFootnote(j.Text, j.Number, j.Page)
	default:
		return nil, &FormatError{Path: pointer(path), Msg: fmt.Sprintf("unknown kind %q", j.Kind)}
	}

	if len(j.Children) > 0 && isLeaf(n) {
		return nil, &FormatError{Path: pointer(path + "/children"), Msg: fmt.Sprintf("children inside %s", j.Kind)}
	}
	for i, c := range j.Children {
		if c != nil && c.Kind == "document" {
			return nil, &FormatError{Path: pointer(fmt.Sprintf("%s/children/%d", path, i)), Msg: "nested document"}
		}
		child, err := c.tree(fmt.Sprintf("%s/children/%d", path, i))
		if err != nil {
			return nil, err
		}
		n.Append(child)
	}
	return n, nil
}

func pointer(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// EncodeJSON writes the JSON form of doc.
func EncodeJSON(w io.Writer, doc *doctree.Node, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(ToJSON(doc))
}

// DecodeJSON reads a tree written by EncodeJSON.
func DecodeJSON(r io.Reader) (*doctree.Node, error) {
	var j JSONNode
	if err := json.NewDecoder(r).Decode(&j); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if j.Kind != "document" {
		return nil, &FormatError{Path: "/kind", Msg: fmt.Sprintf("root must be a document, got %q", j.Kind)}
	}
	return j.Tree()
}
