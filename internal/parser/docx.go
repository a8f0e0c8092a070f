package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Each paragraph becomes one fragment whose
// font is the face carrying most of its characters.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*fragment.Stream, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docstruct-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	b := newPageBuilder(Stem(filename))
	var num numberer
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		run := docxParagraphRuns(para)
		text := strings.TrimSpace(run.text.String())
		if text == "" {
			continue
		}
		if level := docxHeadingLevel(para); level > 0 {
			font, size := headingFontFor(level)
			b.add([]string{num.label(level, text)}, font, size, nil)
			continue
		}
		font, size := run.dominant()
		b.add(strings.Split(text, "\n"), font, size, run.emph)
	}
	return b.finish(), nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if rest, ok := strings.CutPrefix(style, "heading"); ok {
		if l, err := strconv.Atoi(rest); err == nil && l >= 1 && l <= 9 {
			return l
		}
	}
	if style == "title" {
		return 1
	}
	return 0
}

// docxRuns accumulates the text of a paragraph and how many characters each
// face carries.
type docxRuns struct {
	text   strings.Builder
	emph   []string
	counts map[fragment.FontKey]int
	order  []fragment.FontKey
}

func docxParagraphRuns(para *docx.Paragraph) *docxRuns {
	out := &docxRuns{counts: make(map[fragment.FontKey]int)}
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
		s := buf.String()
		if s == "" {
			continue
		}
		out.text.WriteString(s)

		key := fragment.FontKey{Name: BodyFont, Size: BodySize}
		if rp := run.RunProperties; rp != nil {
			if rp.Fonts != nil && rp.Fonts.ASCII != "" {
				key.Name = rp.Fonts.ASCII
			}
			if rp.Size != nil {
				// Sizes are stored in half-points.
				if v, err := strconv.ParseFloat(rp.Size.Val, 64); err == nil && v > 0 {
					key.Size = v / 2
				}
			}
			if rp.Bold != nil || rp.Italic != nil {
				out.emph = append(out.emph, strings.Fields(s)...)
			}
		}
		if _, seen := out.counts[key]; !seen {
			out.order = append(out.order, key)
		}
		out.counts[key] += len(s)
	}
	return out
}

func (r *docxRuns) dominant() (string, float64) {
	best := fragment.FontKey{Name: BodyFont, Size: BodySize}
	n := 0
	for _, k := range r.order {
		if r.counts[k] > n {
			best, n = k, r.counts[k]
		}
	}
	return best.Name, best.Size
}
