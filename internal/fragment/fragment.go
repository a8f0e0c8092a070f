// Package fragment holds the positioned, font-annotated text blocks produced
// by the extractors in internal/parser and consumed by internal/heuristics.
package fragment

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Box is a bounding box in PDF user space (Top > Bottom).
type Box struct {
	Left, Right float64
	Top, Bottom float64
}

// IsZero reports whether the box carries no geometry.
func (b Box) IsZero() bool {
	return b == Box{}
}

// Fragment is one extracted text block. It is not modified after extraction.
type Fragment struct {
	Lines     []string // Text lines in reading order
	Font      string   // Dominant font name
	FontSize  float64  // Dominant font size
	Emph      []string // Words set in a bold or italic face
	WordCount int
	PageID    string // Identifier of the originating page
	Index     int    // Reading-order position on its page
	Box       Box
}

// New builds a fragment from raw lines, counting words and normalizing text.
func New(pageID string, index int, lines []string, font string, size float64, emph []string) *Fragment {
	clean := make([]string, 0, len(lines))
	words := 0
	for _, l := range lines {
		l = Normalize(l)
		clean = append(clean, l)
		words += len(strings.Fields(l))
	}
	em := make([]string, 0, len(emph))
	for _, e := range emph {
		// Normalization can turn compatibility characters into spaces;
		// emphasized words stay whitespace-free tokens.
		em = append(em, strings.Fields(Normalize(e))...)
	}
	return &Fragment{
		Lines:     clean,
		Font:      font,
		FontSize:  size,
		Emph:      em,
		WordCount: words,
		PageID:    pageID,
		Index:     index,
	}
}

// Text returns the stripped lines joined by newlines.
func (f *Fragment) Text() string {
	return JoinLines(f.Lines, "\n")
}

// FontKey returns the (font, size) pair of the fragment.
func (f *Fragment) FontKey() FontKey {
	return FontKey{Name: f.Font, Size: f.FontSize}
}

// Normalize applies NFKC so that typographic ligatures and compatibility
// characters from PDF fonts compare equal to their plain spellings.
func Normalize(s string) string {
	return norm.NFKC.String(s)
}

// FontKey identifies a font face at a given size.
type FontKey struct {
	Name string
	Size float64
}

// PrimaryFont returns the font carried by the most fragments across all
// pages. Ties resolve to the font seen first.
func PrimaryFont(pages []*Page) FontKey {
	counts := make(map[FontKey]int)
	var order []FontKey
	for _, p := range pages {
		for _, f := range p.Fragments {
			k := f.FontKey()
			if _, ok := counts[k]; !ok {
				order = append(order, k)
			}
			counts[k]++
		}
	}

	var best FontKey
	bestN := 0
	for _, k := range order {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best
}

// Stream is the extractor output for one document.
type Stream struct {
	Title   string
	Authors []string
	Pages   []*Page
}

// FragmentCount returns the number of fragments over all pages.
func (s *Stream) FragmentCount() int {
	n := 0
	for _, p := range s.Pages {
		n += len(p.Fragments)
	}
	return n
}
