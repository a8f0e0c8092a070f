package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Block elements become fragments; the class
// attribute, when present, stands in for the font name.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*fragment.Stream, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	b := newPageBuilder(Stem(filename))
	if title := findTitle(doc); title != "" {
		b.stream.Title = title
	}
	b.stream.Authors = findMeta(doc, "author")
	var num numberer

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				lines, _ := inlineHTML(n, false)
				title := fragment.JoinLines(lines, " ")
				if title != "" {
					font, size := headingFontFor(level)
					b.add([]string{num.label(level, title)}, font, size, nil)
				}
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header", "head":
				return
			case "pre":
				lines, _ := inlineHTML(n, true)
				b.add(lines, CodeFont, BodySize, nil)
				return
			case "figcaption", "caption":
				lines, emph := inlineHTML(n, false)
				b.add(lines, CaptionFont, BodySize, emph)
				return
			case "p", "li", "td", "th", "blockquote", "dd", "dt":
				lines, emph := inlineHTML(n, false)
				b.add(lines, classFont(n), BodySize, emph)
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return b.finish(), nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' {
		if l, err := strconv.Atoi(tag[1:]); err == nil && l >= 1 && l <= 6 {
			return l
		}
	}
	return 0
}

func classFont(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "class" {
			if f := strings.Fields(a.Val); len(f) > 0 {
				return f[0]
			}
		}
	}
	return BodyFont
}

// inlineHTML renders the text below n as lines. <br> breaks lines; with
// pre set, source newlines do too. Words inside strong/b/em/i are returned
// as emphasis.
func inlineHTML(n *html.Node, pre bool) (lines, emph []string) {
	var cur strings.Builder
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, emphasized bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if pre {
					parts := strings.Split(c.Data, "\n")
					for i, part := range parts {
						if i > 0 {
							lines = append(lines, cur.String())
							cur.Reset()
						}
						cur.WriteString(part)
					}
					continue
				}
				cur.WriteString(c.Data)
				if emphasized {
					emph = append(emph, strings.Fields(c.Data)...)
				}
			case html.ElementNode:
				switch c.Data {
				case "br":
					lines = append(lines, cur.String())
					cur.Reset()
				case "strong", "b", "em", "i":
					walk(c, true)
				case "script", "style":
				default:
					walk(c, emphasized)
				}
			}
		}
	}
	walk(n, false)
	lines = append(lines, cur.String())

	out := lines[:0]
	for _, l := range lines {
		if !pre {
			l = strings.Join(strings.Fields(l), " ")
		}
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out, emph
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// findMeta returns the content of every <meta name=...> with the given name.
func findMeta(n *html.Node, name string) []string {
	var out []string
	if n.Type == html.ElementNode && n.Data == "meta" {
		var key, content string
		for _, a := range n.Attr {
			switch a.Key {
			case "name":
				key = a.Val
			case "content":
				content = a.Val
			}
		}
		if strings.EqualFold(key, name) && content != "" {
			out = append(out, content)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findMeta(c, name)...)
	}
	return out
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
