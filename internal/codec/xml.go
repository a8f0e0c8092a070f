package codec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/docstruct/internal/doctree"
)

// Emphasized words are whitespace-free tokens, so a space separates them.
const emphSeparator = " "

// EncodeXML writes docs wrapped in a <documents> element. With pretty set the
// output is indented; leaf text is never reformatted.
func EncodeXML(w io.Writer, docs []*doctree.Node, pretty bool) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if pretty {
		enc.Indent("", "  ")
	}
	root := xml.StartElement{Name: xml.Name{Local: "documents"}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	for i, d := range docs {
		if d == nil || d.Kind != doctree.KindDocument {
			return &FormatError{Path: fmt.Sprintf("/documents/document[%d]", i+1), Msg: "not a document node"}
		}
		if err := encodeNode(enc, d); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	if pretty {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func attr(attrs []xml.Attr, name, value string) []xml.Attr {
	if value == "" {
		return attrs
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

func encodeNode(enc *xml.Encoder, n *doctree.Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Kind.String()}}
	leaf := false

	switch n.Kind {
	case doctree.KindChapter, doctree.KindSection:
		start.Attr = attr(start.Attr, "number", n.Number)
		start.Attr = attr(start.Attr, "title", n.Title)
		start.Attr = attr(start.Attr, "pagenr", n.Page)
	case doctree.KindParagraph:
		leaf = true
		start.Attr = attr(start.Attr, "pagenr", n.Page)
		start.Attr = attr(start.Attr, "font", n.Font)
		if n.FontSize != 0 {
			start.Attr = attr(start.Attr, "fontsize", strconv.FormatFloat(n.FontSize, 'g', -1, 64))
		}
		start.Attr = attr(start.Attr, "emph", strings.Join(n.Emph, emphSeparator))
	case doctree.KindFloat, doctree.KindFootnote:
		leaf = true
		start.Attr = attr(start.Attr, "number", n.Number)
		start.Attr = attr(start.Attr, "pagenr", n.Page)
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if leaf {
		if n.Text != "" {
			if err := enc.EncodeToken(xml.CharData(n.Text)); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	}

	if n.Kind == doctree.KindDocument && n.Meta != nil {
		if err := encodeMeta(enc, n.Meta); err != nil {
			return err
		}
	}
	for _, c := range n.Children() {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func encodeMeta(enc *xml.Encoder, m *doctree.Meta) error {
	start := xml.StartElement{Name: xml.Name{Local: "meta"}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	text := func(name, value string) error {
		return enc.EncodeElement(value, xml.StartElement{Name: xml.Name{Local: name}})
	}
	if m.Title != "" {
		if err := text("title", m.Title); err != nil {
			return err
		}
	}
	for _, a := range m.Authors {
		if err := text("author", a); err != nil {
			return err
		}
	}
	if m.Language != "" {
		if err := text("language", m.Language); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// DecodeXML reads documents written by EncodeXML. A bare <document> root is
// accepted as well.
func DecodeXML(r io.Reader) ([]*doctree.Node, error) {
	p := &xmlParser{d: xml.NewDecoder(r)}
	for {
		tok, err := p.d.Token()
		if errors.Is(err, io.EOF) {
			return nil, &FormatError{Path: "/", Msg: "missing root element"}
		}
		if err != nil {
			return nil, &FormatError{Path: "/", Msg: err.Error()}
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "documents":
			return p.documents("/documents")
		case "document":
			doc, err := p.element(start, "/document")
			if err != nil {
				return nil, err
			}
			return []*doctree.Node{doc}, nil
		default:
			return nil, &FormatError{Path: "/" + start.Name.Local, Msg: "unknown root element"}
		}
	}
}

type xmlParser struct {
	d *xml.Decoder
}

func (p *xmlParser) token(path string) (xml.Token, error) {
	tok, err := p.d.Token()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{Path: path, Msg: "unexpected end of input"}
	}
	if err != nil {
		return nil, &FormatError{Path: path, Msg: err.Error()}
	}
	return tok, nil
}

func (p *xmlParser) documents(path string) ([]*doctree.Node, error) {
	var docs []*doctree.Node
	for {
		tok, err := p.token(path)
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			childPath := fmt.Sprintf("%s/%s[%d]", path, t.Name.Local, len(docs)+1)
			if t.Name.Local != "document" {
				return nil, &FormatError{Path: childPath, Msg: "expected <document>"}
			}
			doc, err := p.element(t, childPath)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, &FormatError{Path: path, Msg: "unexpected text"}
			}
		case xml.EndElement:
			return docs, nil
		}
	}
}

func newNode(start xml.StartElement, path string) (*doctree.Node, error) {
	get := func(name string) string {
		for _, a := range start.Attr {
			if a.Name.Local == name {
				return a.Value
			}
		}
		return ""
	}

	switch start.Name.Local {
	case "document":
		return doctree.NewDocument(nil), nil
	case "chapter":
		return doctree.NewChapter(get("title"), get("number"), get("pagenr")), nil
	case "section":
		return doctree.NewSection(get("title"), get("number"), get("pagenr")), nil
	case "paragraph":
		var size float64
		if s := get("fontsize"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &FormatError{Path: path, Msg: fmt.Sprintf("bad fontsize %q", s)}
			}
			size = v
		}
		var emph []string
		if e := get("emph"); e != "" {
			emph = strings.Fields(e)
		}
		return doctree.NewParagraph("", get("pagenr"), get("font"), size, emph, 0), nil
	case "float":
		return doctree.NewFloat("", get("number"), get("pagenr")), nil
	case "footnote":
		return doctree.NewFootnote("", get("number"), get("pagenr")), nil
	default:
		return nil, &FormatError{Path: path, Msg: fmt.Sprintf("unknown element <%s>", start.Name.Local)}
	}
}

func isLeaf(n *doctree.Node) bool {
	return n.Kind == doctree.KindParagraph || n.Kind == doctree.KindFloat || n.Kind == doctree.KindFootnote
}

// element decodes start and everything up to its end tag.
func (p *xmlParser) element(start xml.StartElement, path string) (*doctree.Node, error) {
	n, err := newNode(start, path)
	if err != nil {
		return nil, err
	}
	var text strings.Builder
	seen := make(map[string]int)

	for {
		tok, err := p.token(path)
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			seen[name]++
			childPath := fmt.Sprintf("%s/%s[%d]", path, name, seen[name])
			if isLeaf(n) {
				return nil, &FormatError{Path: childPath, Msg: fmt.Sprintf("element inside <%s>", n.Kind)}
			}
			if name == "meta" {
				if n.Kind != doctree.KindDocument {
					return nil, &FormatError{Path: childPath, Msg: "meta outside document"}
				}
				if n.Meta, err = p.meta(childPath); err != nil {
					return nil, err
				}
				continue
			}
			if name == "document" {
				return nil, &FormatError{Path: childPath, Msg: "nested document"}
			}
			child, err := p.element(t, childPath)
			if err != nil {
				return nil, err
			}
			n.Append(child)
		case xml.CharData:
			if isLeaf(n) {
				text.Write(t)
			} else if strings.TrimSpace(string(t)) != "" {
				return nil, &FormatError{Path: path, Msg: fmt.Sprintf("text inside <%s>", n.Kind)}
			}
		case xml.EndElement:
			if isLeaf(n) {
				n.Text = text.String()
				if n.Kind == doctree.KindParagraph {
					n.WordCount = len(strings.Fields(n.Text))
				}
			}
			return n, nil
		}
	}
}

func (p *xmlParser) meta(path string) (*doctree.Meta, error) {
	m := &doctree.Meta{}
	for {
		tok, err := p.token(path)
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var v string
			if err := p.d.DecodeElement(&v, &t); err != nil {
				return nil, &FormatError{Path: path + "/" + t.Name.Local, Msg: err.Error()}
			}
			switch t.Name.Local {
			case "title":
				m.Title = v
			case "author":
				m.Authors = append(m.Authors, v)
			case "language":
				m.Language = v
			default:
				return nil, &FormatError{Path: path + "/" + t.Name.Local, Msg: "unknown meta field"}
			}
		case xml.EndElement:
			return m, nil
		}
	}
}
