package parser

import (
	"slices"
	"testing"

	pdflib "github.com/ledongthuc/pdf"
)

// glyphs lays out s one glyph per rune, each half the font size wide.
func glyphs(font string, size, x, y float64, s string) []pdflib.Text {
	var out []pdflib.Text
	for _, r := range s {
		w := size / 2
		out = append(out, pdflib.Text{Font: font, FontSize: size, X: x, Y: y, W: w, S: string(r)})
		x += w
	}
	return out
}

func TestPDFLayout_Blocks(t *testing.T) {
	var g []pdflib.Text
	// Reading order in the content stream need not match the layout.
	g = append(g, glyphs("Times-Roman", 10, 300, 50, "3")...)
	g = append(g, glyphs("Times-Roman", 10, 72, 668, "Body text two")...)
	g = append(g, glyphs("ABCDEF+Times-Bold", 14, 72, 700, "1. Intro")...)
	g = append(g, glyphs("Times-Roman", 10, 72, 680, "Body text one")...)

	p := &PDFParser{}
	page := p.layout("7", g)

	if len(page.Fragments) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(page.Fragments))
	}
	head, body, num := page.Fragments[0], page.Fragments[1], page.Fragments[2]

	if head.Text() != "1. Intro" || head.Font != "Times-Bold" || head.FontSize != 14 {
		t.Errorf("unexpected heading %q %s/%v", head.Text(), head.Font, head.FontSize)
	}
	if !slices.Equal(head.Emph, []string{"1.", "Intro"}) {
		t.Errorf("expected bold words as emphasis, got %q", head.Emph)
	}
	if !slices.Equal(body.Lines, []string{"Body text one", "Body text two"}) {
		t.Errorf("unexpected body lines %q", body.Lines)
	}
	if len(body.Emph) != 0 || body.Font != "Times-Roman" {
		t.Errorf("unexpected body font %s emph %q", body.Font, body.Emph)
	}
	if num.Text() != "3" || num.PageID != "7" || num.Index != 2 {
		t.Errorf("unexpected page number fragment %q on %s/%d", num.Text(), num.PageID, num.Index)
	}
	if body.Box.Top != 690 || body.Box.Bottom != 668 || body.Box.Left != 72 {
		t.Errorf("unexpected body box %+v", body.Box)
	}
	if !page.IsSibling(head, body) {
		t.Error("expected heading and body to be siblings")
	}
	if page.IsSibling(body, num) {
		t.Error("expected the page number to be far from the body")
	}
}

func TestPDFLayout_ColumnsSplit(t *testing.T) {
	var g []pdflib.Text
	g = append(g, glyphs("Times-Roman", 10, 72, 500, "Left")...)
	g = append(g, glyphs("Times-Roman", 10, 300, 500.5, "Right")...)

	page := (&PDFParser{}).layout("1", g)
	if len(page.Fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(page.Fragments))
	}
	if page.Fragments[0].Text() != "Left" || page.Fragments[1].Text() != "Right" {
		t.Errorf("unexpected order %q, %q", page.Fragments[0].Text(), page.Fragments[1].Text())
	}
}

func TestPDFLayout_MixedEmphasis(t *testing.T) {
	var g []pdflib.Text
	g = append(g, glyphs("Helvetica-Oblique", 10, 72, 400, "see")...)
	g = append(g, glyphs("Helvetica", 10, 87, 400, " also")...)

	page := (&PDFParser{}).layout("1", g)
	f := page.Fragments[0]
	if f.Text() != "see also" {
		t.Fatalf("unexpected text %q", f.Text())
	}
	if !slices.Equal(f.Emph, []string{"see"}) {
		t.Errorf("unexpected emphasis %q", f.Emph)
	}
	if f.Font != "Helvetica" {
		t.Errorf("expected the face with most glyphs, got %q", f.Font)
	}
}

func TestSplitAuthors(t *testing.T) {
	got := splitAuthors("A. Autor; B. Autorin ,")
	if !slices.Equal(got, []string{"A. Autor", "B. Autorin"}) {
		t.Errorf("unexpected authors %q", got)
	}
}

func TestBaseFontName(t *testing.T) {
	for in, want := range map[string]string{
		"ABCDEF+Times-Bold": "Times-Bold",
		"Times+Extra":       "Times+Extra",
		"Courier":           "Courier",
	} {
		if got := baseFontName(in); got != want {
			t.Errorf("baseFontName(%q) = %q, want %q", in, got, want)
		}
	}
}
