// Package parser extracts positioned, font-annotated text fragments from
// source documents. Every parser yields a fragment.Stream; structure is
// recovered later by internal/heuristics.
package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// ErrUnsupported is returned by ForFile for unknown file types.
var ErrUnsupported = errors.New("unsupported file extension")

// Parser converts raw document bytes into a fragment stream.
type Parser interface {
	Parse(r io.Reader, filename string) (*fragment.Stream, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Stem returns the file name without directory and extension.
func Stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Fonts used by sources that carry no real font information. Body text of
// every source shares BodyFont so that the primary-font heuristic picks it.
const (
	BodyFont     = "body"
	BodySize     = 10.0
	LineFont     = "line"
	CodeFont     = "code"
	CaptionFont  = "caption"
	headingFont  = "heading"
	headingBase  = 20.0
	headingDelta = 2.0
)

// headingFontFor returns the synthetic font of a heading level.
func headingFontFor(level int) (string, float64) {
	return headingFont + strconv.Itoa(level), headingBase - headingDelta*float64(level)
}

// numberer prefixes unnumbered headings with an outline number derived from
// their level, the way a word processor renders auto-numbered headings.
type numberer struct {
	counters []int
}

func (n *numberer) label(level int, title string) string {
	if level < 1 {
		level = 1
	}
	// A level can only go one deeper than the current outline.
	if level > len(n.counters)+1 {
		level = len(n.counters) + 1
	}
	if len(n.counters) > level {
		n.counters = n.counters[:level]
	}
	for len(n.counters) < level {
		n.counters = append(n.counters, 0)
	}
	n.counters[level-1]++

	if startsWithNumber(title) {
		return title
	}
	parts := make([]string, len(n.counters))
	for i, c := range n.counters {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ".") + " " + title
}

func startsWithNumber(s string) bool {
	s = strings.TrimLeft(strings.TrimSpace(s), ".")
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// pageBuilder collects fragments of a source without geometry.
type pageBuilder struct {
	stream *fragment.Stream
	page   *fragment.Page
}

func newPageBuilder(title string) *pageBuilder {
	b := &pageBuilder{stream: &fragment.Stream{Title: title}}
	b.newPage()
	return b
}

func (b *pageBuilder) newPage() {
	if b.page != nil && len(b.page.Fragments) == 0 {
		return
	}
	b.page = fragment.NewPage(strconv.Itoa(len(b.stream.Pages)+1), nil)
	b.stream.Pages = append(b.stream.Pages, b.page)
}

// add appends a block unless it holds no text.
func (b *pageBuilder) add(lines []string, font string, size float64, emph []string) {
	if strings.TrimSpace(strings.Join(lines, "")) == "" {
		return
	}
	b.page.Add(fragment.New(b.page.ID, 0, lines, font, size, emph))
}

func (b *pageBuilder) finish() *fragment.Stream {
	if n := len(b.stream.Pages); n > 0 && len(b.stream.Pages[n-1].Fragments) == 0 {
		b.stream.Pages = b.stream.Pages[:n-1]
	}
	return b.stream
}
