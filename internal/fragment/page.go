package fragment

import "math"

// SiblingFunc reports whether the given fragments sit next to each other in
// the reading flow of a page.
type SiblingFunc func(frags ...*Fragment) bool

// Page is an ordered list of fragments plus the page's adjacency test.
type Page struct {
	ID        string
	Fragments []*Fragment
	Sibling   SiblingFunc
}

// NewPage creates a page. A nil predicate falls back to SequentialSiblings.
func NewPage(id string, sibling SiblingFunc) *Page {
	if sibling == nil {
		sibling = SequentialSiblings
	}
	return &Page{ID: id, Sibling: sibling}
}

// Add appends a fragment, assigning its page ID and reading-order index.
func (p *Page) Add(f *Fragment) {
	f.PageID = p.ID
	f.Index = len(p.Fragments)
	p.Fragments = append(p.Fragments, f)
}

// IsSibling applies the page's predicate. Fragments from other pages are
// never siblings of this page's fragments.
func (p *Page) IsSibling(frags ...*Fragment) bool {
	if p == nil || p.Sibling == nil || len(frags) < 2 {
		return false
	}
	for _, f := range frags {
		if f == nil || f.PageID != p.ID {
			return false
		}
	}
	return p.Sibling(frags...)
}

// SequentialSiblings treats fragments as siblings when their indexes are
// consecutive. Used by sources without geometry.
func SequentialSiblings(frags ...*Fragment) bool {
	for i := 1; i < len(frags); i++ {
		if frags[i].Index != frags[i-1].Index+1 {
			return false
		}
	}
	return true
}

// GeometricSiblings returns a predicate that accepts fragments stacked on top
// of each other: each consecutive pair must be separated vertically by at most
// maxGap times the larger font size and overlap horizontally.
func GeometricSiblings(maxGap float64) SiblingFunc {
	return func(frags ...*Fragment) bool {
		for i := 1; i < len(frags); i++ {
			a, b := frags[i-1], frags[i]
			if a.Box.IsZero() || b.Box.IsZero() {
				return SequentialSiblings(a, b)
			}
			size := math.Max(a.FontSize, b.FontSize)
			if size <= 0 {
				size = 10
			}
			gap := a.Box.Bottom - b.Box.Top
			if gap < 0 {
				// Same row: side by side, e.g. "3.2" left of its title.
				gap = b.Box.Left - a.Box.Right
			}
			if gap > maxGap*size {
				return false
			}
			if b.Box.Left > a.Box.Right+maxGap*size || a.Box.Left > b.Box.Right+maxGap*size {
				return false
			}
		}
		return true
	}
}
