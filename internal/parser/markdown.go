package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Every block becomes
// one fragment; headings get a per-level font and an outline number.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*fragment.Stream, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	b := newPageBuilder(Stem(filename))
	var num numberer

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			lines, _ := inlineLines(node, src)
			title := fragment.JoinLines(lines, " ")
			if title == "" {
				return ast.WalkSkipChildren, nil
			}
			font, size := headingFontFor(node.Level)
			b.add([]string{num.label(node.Level, title)}, font, size, nil)
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph, *ast.TextBlock:
			lines, emph := inlineLines(node, src)
			b.add(lines, BodyFont, BodySize, emph)
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			b.add(blockLines(node, src), CodeFont, BodySize, nil)
			return ast.WalkSkipChildren, nil

		case *ast.HTMLBlock, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return b.finish(), nil
}

// inlineLines renders the inline children of n as text lines, split at soft
// and hard line breaks, and collects the words set in emphasis.
func inlineLines(n ast.Node, src []byte) (lines, emph []string) {
	var cur strings.Builder
	var walk func(ast.Node, bool)
	walk = func(n ast.Node, emphasized bool) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				seg := string(t.Segment.Value(src))
				cur.WriteString(seg)
				if emphasized {
					emph = append(emph, strings.Fields(seg)...)
				}
				if t.SoftLineBreak() || t.HardLineBreak() {
					lines = append(lines, cur.String())
					cur.Reset()
				}
			case *ast.String:
				cur.Write(t.Value)
			case *ast.AutoLink:
				cur.Write(t.URL(src))
			case *ast.Emphasis:
				walk(t, true)
			default:
				walk(c, emphasized)
			}
		}
	}
	walk(n, false)
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines, emph
}

// blockLines returns the raw source lines of a code block.
func blockLines(n ast.Node, src []byte) []string {
	var lines []string
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		lines = append(lines, strings.TrimRight(string(seg.Value(src)), "\r\n"))
	}
	return lines
}
