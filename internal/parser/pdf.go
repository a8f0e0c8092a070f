package parser

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dgallion1/docstruct/internal/fragment"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser extracts positioned glyphs with ledongthuc/pdf and groups them
// into rows and rows into blocks. Each block becomes a fragment.
type PDFParser struct {
	// RowTolerance is the vertical distance within which glyphs share a row.
	RowTolerance float64
	// BlockGap is the largest vertical gap between rows of one block, in
	// multiples of the font size. It is also the sibling distance.
	BlockGap float64
}

const (
	defaultRowTolerance = 2.0
	defaultBlockGap     = 1.5
	// Glyphs further apart than this many font sizes start a new segment.
	columnGap = 2.0
	// Horizontal distance in font sizes that separates two words.
	wordGap = 0.15
)

func (p *PDFParser) Parse(r io.Reader, filename string) (*fragment.Stream, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docstruct-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	stream := &fragment.Stream{Title: Stem(filename)}
	info := reader.Trailer().Key("Info")
	if t := strings.TrimSpace(info.Key("Title").Text()); t != "" {
		stream.Title = t
	}
	if a := strings.TrimSpace(info.Key("Author").Text()); a != "" {
		stream.Authors = splitAuthors(a)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		stream.Pages = append(stream.Pages, p.layout(strconv.Itoa(i), page.Content().Text))
	}
	return stream, nil
}

func splitAuthors(s string) []string {
	var out []string
	for _, a := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' }) {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// layout turns the glyphs of one page into a fragment page.
func (p *PDFParser) layout(pageID string, glyphs []pdflib.Text) *fragment.Page {
	gap := cmp.Or(p.BlockGap, defaultBlockGap)
	page := fragment.NewPage(pageID, fragment.GeometricSiblings(gap))

	var blocks []*pdfBlock
	for _, seg := range p.segments(glyphs) {
		if n := len(blocks); n > 0 && blocks[n-1].accepts(seg, gap) {
			blocks[n-1].add(seg)
			continue
		}
		blocks = append(blocks, newPDFBlock(seg))
	}
	for _, b := range blocks {
		if f := b.fragment(pageID); f != nil {
			page.Add(f)
		}
	}
	return page
}

// pdfWord is a run of glyphs without an intervening word gap.
type pdfWord struct {
	text string
	emph bool
}

// pdfSegment is a horizontal run of glyphs on one row.
type pdfSegment struct {
	words []pdfWord
	box   fragment.Box
	fonts map[fragment.FontKey]int
	order []fragment.FontKey
}

func (s *pdfSegment) font() fragment.FontKey {
	var best fragment.FontKey
	n := 0
	for _, k := range s.order {
		if s.fonts[k] > n {
			best, n = k, s.fonts[k]
		}
	}
	return best
}

func (s *pdfSegment) line() string {
	parts := make([]string, len(s.words))
	for i, w := range s.words {
		parts[i] = w.text
	}
	return strings.Join(parts, " ")
}

// segments groups glyphs into rows (top to bottom) and splits each row at
// wide horizontal gaps.
func (p *PDFParser) segments(glyphs []pdflib.Text) []*pdfSegment {
	tol := cmp.Or(p.RowTolerance, defaultRowTolerance)

	type row struct {
		y      float64
		glyphs []pdflib.Text
	}
	var rows []*row
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		var target *row
		for _, r := range rows {
			if math.Abs(r.y-g.Y) <= tol {
				target = r
				break
			}
		}
		if target == nil {
			target = &row{y: g.Y}
			rows = append(rows, target)
		}
		target.glyphs = append(target.glyphs, g)
	}
	// PDF y grows upwards.
	slices.SortStableFunc(rows, func(a, b *row) int { return cmp.Compare(b.y, a.y) })

	var out []*pdfSegment
	for _, r := range rows {
		slices.SortStableFunc(r.glyphs, func(a, b pdflib.Text) int { return cmp.Compare(a.X, b.X) })
		var seg *pdfSegment
		var word strings.Builder
		wordEmph := true
		var prev pdflib.Text

		endWord := func() {
			if w := strings.TrimSpace(word.String()); w != "" {
				seg.words = append(seg.words, pdfWord{text: w, emph: wordEmph})
			}
			word.Reset()
			wordEmph = true
		}
		for i, g := range r.glyphs {
			size := cmp.Or(g.FontSize, 10)
			if i > 0 {
				space := g.X - (prev.X + prev.W)
				switch {
				case space > columnGap*size:
					endWord()
					out = append(out, seg)
					seg = nil
				case space > wordGap*size:
					endWord()
				}
			}
			if seg == nil {
				seg = &pdfSegment{
					fonts: make(map[fragment.FontKey]int),
					box:   fragment.Box{Left: g.X, Right: g.X + g.W, Top: g.Y + size, Bottom: g.Y},
				}
			}
			if strings.TrimSpace(g.S) == "" {
				endWord()
			} else {
				word.WriteString(g.S)
				wordEmph = wordEmph && isEmphasisFont(g.Font)
			}
			key := fragment.FontKey{Name: baseFontName(g.Font), Size: g.FontSize}
			if _, ok := seg.fonts[key]; !ok {
				seg.order = append(seg.order, key)
			}
			seg.fonts[key]++
			seg.box.Left = min(seg.box.Left, g.X)
			seg.box.Right = max(seg.box.Right, g.X+g.W)
			seg.box.Top = max(seg.box.Top, g.Y+size)
			seg.box.Bottom = min(seg.box.Bottom, g.Y)
			prev = g
		}
		if seg != nil {
			endWord()
			out = append(out, seg)
		}
	}
	return out
}

// baseFontName strips the subset tag of embedded fonts ("ABCDEF+Times").
func baseFontName(name string) string {
	if i := strings.IndexByte(name, '+'); i == 6 {
		return name[i+1:]
	}
	return name
}

func isEmphasisFont(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "bold") || strings.Contains(n, "italic") ||
		strings.Contains(n, "oblique") || strings.Contains(n, "black")
}

// pdfBlock is a stack of segments forming one fragment.
type pdfBlock struct {
	segs  []*pdfSegment
	box   fragment.Box
	fonts map[fragment.FontKey]int
	order []fragment.FontKey
}

func newPDFBlock(s *pdfSegment) *pdfBlock {
	b := &pdfBlock{box: s.box, fonts: make(map[fragment.FontKey]int)}
	b.add(s)
	return b
}

func (b *pdfBlock) add(s *pdfSegment) {
	b.segs = append(b.segs, s)
	b.box.Left = min(b.box.Left, s.box.Left)
	b.box.Right = max(b.box.Right, s.box.Right)
	b.box.Top = max(b.box.Top, s.box.Top)
	b.box.Bottom = min(b.box.Bottom, s.box.Bottom)
	for _, k := range s.order {
		if _, ok := b.fonts[k]; !ok {
			b.order = append(b.order, k)
		}
		b.fonts[k] += s.fonts[k]
	}
}

// accepts reports whether s continues the block: directly below it, of the
// same size, and overlapping horizontally.
func (b *pdfBlock) accepts(s *pdfSegment, gap float64) bool {
	last := b.segs[len(b.segs)-1]
	size := last.font().Size
	if math.Abs(size-s.font().Size) > 0.5 {
		return false
	}
	vertical := last.box.Bottom - s.box.Top
	if vertical < -0.5*size || vertical > gap*size {
		return false
	}
	return s.box.Left < b.box.Right && s.box.Right > b.box.Left
}

func (b *pdfBlock) fragment(pageID string) *fragment.Fragment {
	var lines, emph []string
	for _, s := range b.segs {
		if l := s.line(); l != "" {
			lines = append(lines, l)
		}
		for _, w := range s.words {
			if w.emph {
				emph = append(emph, w.text)
			}
		}
	}
	if len(lines) == 0 {
		return nil
	}
	var font fragment.FontKey
	n := 0
	for _, k := range b.order {
		if b.fonts[k] > n {
			font, n = k, b.fonts[k]
		}
	}
	f := fragment.New(pageID, 0, lines, font.Name, font.Size, emph)
	f.Box = b.box
	return f
}
