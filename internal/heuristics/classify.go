package heuristics

import (
	"github.com/dgallion1/docstruct/internal/fragment"
)

// Tagged is a fragment together with its page and current role.
type Tagged struct {
	Page     *fragment.Page
	Fragment *fragment.Fragment
	Role     Role
}

// Classify tags every fragment of every page, in document order. primary is
// the document's body-text font, usually fragment.PrimaryFont(pages).
func Classify(pages []*fragment.Page, primary fragment.FontKey) []Tagged {
	var out []Tagged
	for _, p := range pages {
		for _, f := range p.Fragments {
			out = append(out, Tagged{Page: p, Fragment: f, Role: ClassifyFragment(f, primary)})
		}
	}
	return out
}

// ClassifyFragment applies the content, caption and font rules to a single
// fragment. Later rules overwrite earlier ones.
func ClassifyFragment(f *fragment.Fragment, primary fragment.FontKey) Role {
	lines := f.Lines
	lineCount := len(lines)
	if lineCount == 0 {
		return RoleNone
	}
	wordsPerLine := float64(f.WordCount) / float64(lineCount)

	role := RoleNone

	// Tables of contents, heading/page numbers and footnotes.
	switch {
	case fragment.MatchEach(sectionNrRe, lines):
		switch {
		case lineCount > 1:
			// Pure listing line numbers have one word per line.
			if wordsPerLine > 1.0 {
				role = RoleTocList
			}
		case f.WordCount > 1:
			role = footnoteOrHeading(f)
		default:
			role = RolePageNumberOrHeadingPart
		}
	case fragment.MatchLines(sectionNrRe, lines):
		role = footnoteOrHeading(f)
	}

	// Floating objects.
	for _, c := range captionPatterns {
		if fragment.MatchLines(c.re, lines) {
			role = c.role
			break
		}
	}

	// Body text.
	if f.FontKey() == primary &&
		fragment.AvgWordLength(lines) > 2 &&
		wordsPerLine > 1.8 &&
		!(f.WordCount == 1 && fragment.MatchLines(pageNrRe, lines)) &&
		role != RoleFootnote {
		role = RoleParagraph
		if fragment.MatchLines(sectionNrRe, lines) {
			switch {
			case fragment.LinesUsing(lines, f.Emph) > 0:
				role = RoleParagraphWithHeading
			case len(f.Emph) == 1 && fragment.WordsUsing(lines, f.Emph) == 1:
				role = RoleFootnote
			}
		}
	}
	return role
}

func footnoteOrHeading(f *fragment.Fragment) Role {
	if fragment.MatchLines(latexFootnoteRe, f.Lines) && fragment.LinesUsing(f.Lines, f.Emph) == 0 {
		return RoleFootnote
	}
	return RoleHeading
}
