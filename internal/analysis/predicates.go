package analysis

import (
	"strings"

	"github.com/dgallion1/docstruct/internal/doctree"
)

// Minimum caption length in words for numbered floats. Unnumbered floats
// still carry their number token in the text, so they need two words more.
const (
	captionMinWords    = 3
	captionNumberWords = 2
)

// HasIntroduction reports whether the first child of n is a paragraph.
func HasIntroduction(n *doctree.Node) bool {
	children := n.Children()
	return len(children) > 0 && doctree.IsParagraph(children[0])
}

// CountSubsections counts the section-like direct children of n.
func CountSubsections(n *doctree.Node) int {
	count := 0
	for _, c := range n.Children() {
		if doctree.IsSection(c) {
			count++
		}
	}
	return count
}

// HasCaption reports whether a float carries a caption beyond its label.
func HasCaption(flt *doctree.Node) bool {
	words := strings.Split(strings.ReplaceAll(strings.TrimSpace(flt.Text), "\n", " "), " ")
	if flt.Number != "" {
		return len(words) >= captionMinWords
	}
	return len(words) >= captionMinWords+captionNumberWords
}

// IsReferenced reports whether a paragraph next to flt mentions it.
func IsReferenced(flt *doctree.Node) bool {
	return referenced(flt, false)
}

// WasReferencedBefore reports whether a paragraph preceding flt mentions it.
func WasReferencedBefore(flt *doctree.Node) bool {
	return referenced(flt, true)
}

// referenced looks for the float's number as a whole token, or else its first two words
// ("Tabelle 3"), in the text of the paragraphs sharing its parent.
func referenced(flt *doctree.Node, before bool) bool {
	parent := flt.Parent()
	if parent == nil {
		return false
	}
	var text strings.Builder
	for _, c := range parent.Children() {
		if before && c == flt {
			break
		}
		if doctree.IsParagraph(c) {
			text.WriteString(c.Text)
		}
	}
	paras := text.String()

	if flt.Number != "" {
		return hasToken(paras, flt.Number)
	}
	words := strings.Split(strings.TrimSpace(flt.Text), " ")
	if len(words) < 2 {
		return false
	}
	label := strings.ReplaceAll(strings.TrimSpace(words[0])+" "+strings.TrimSpace(words[1]), ":", "")
	// Line breaks inside a reference count as spaces.
	return strings.Contains(paras, label) || strings.Contains(paras, strings.ReplaceAll(label, " ", "\n"))
}

// hasToken reports whether tok occurs in text as a whole word, ignoring
// surrounding punctuation, so "2" does not match "2019".
func hasToken(text, tok string) bool {
	for _, w := range strings.Fields(text) {
		if strings.Trim(w, ".,;:!?()[]\"'") == tok {
			return true
		}
	}
	return false
}
