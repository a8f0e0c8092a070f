package heuristics

import (
	"log/slog"
	"strings"

	"github.com/dgallion1/docstruct/internal/doctree"
	"github.com/dgallion1/docstruct/internal/fragment"
)

// Builder folds tagged fragments into a document tree. Headings are attached
// relative to the previous heading by comparing numbering depth.
type Builder struct {
	log       *slog.Logger
	root      *doctree.Node
	cursor    *doctree.Node
	lastTitle string
	pending   *fragment.Fragment // heading number awaiting its title
}

// NewBuilder starts a new document. log may be nil.
func NewBuilder(meta *doctree.Meta, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	root := doctree.NewDocument(meta)
	return &Builder{log: log, root: root, cursor: root}
}

// Document returns the root of the tree built so far.
func (b *Builder) Document() *doctree.Node {
	return b.root
}

// Add consumes the next fragment in document order.
func (b *Builder) Add(t Tagged) {
	f := t.Fragment
	page := pageID(t)

	switch {
	case t.Role == RoleHeading:
		title := f.Text()
		b.openSection(doctree.NewSection(title, "", page), title)

	case t.Role == RoleHeadingPartNumber:
		b.pending = f

	case t.Role == RoleHeadingPartHeading:
		if b.pending == nil {
			b.log.Debug("heading part without number dropped", "page", page, "text", f.Text())
			return
		}
		number := b.pending.Text()
		b.pending = nil
		b.openSection(doctree.NewSection(f.Text(), number, page), number)

	case t.Role == RoleFootnote:
		text := f.Text()
		nr, _ := SectionNumber(text)
		b.cursor.Append(doctree.NewFootnote(text, strings.TrimSpace(nr), page))

	case t.Role == RoleParagraph:
		b.cursor.Append(doctree.NewParagraph(f.Text(), page, f.Font, f.FontSize, f.Emph, f.WordCount))

	case t.Role == RoleParagraphWithHeading:
		head, body := splitHeading(f.Lines, fragment.LinesUsing(f.Lines, f.Emph))
		title := fragment.JoinLines(head, "\n")
		b.openSection(doctree.NewSection(title, "", page), title)
		text := fragment.JoinLines(body, "\n")
		b.cursor.Append(doctree.NewParagraph(text, page, f.Font, f.FontSize, f.Emph, len(strings.Fields(text))))

	case t.Role.IsFloat(), t.Role == RoleFloatCaptionPart:
		// The caption label keeps its number in the text; Number stays empty.
		b.cursor.Append(doctree.NewFloat(f.Text(), "", page))
	}
}

// openSection attaches sec relative to the previous heading and makes it the
// new cursor. key is the text whose numbering decides the depth.
func (b *Builder) openSection(sec *doctree.Node, key string) {
	relation := CompareSections(b.lastTitle, key)
	if relation == Incomparable {
		b.cursor.Append(sec)
	} else if !b.cursor.AddChild(sec, relation) {
		// A jump of more than one level, or a climb past the root, leaves
		// the heading and its content detached.
		b.log.Warn("heading not attached",
			"title", sec.Title,
			"number", sec.Number,
			"previous", b.lastTitle,
			"relation", relation,
			"page", sec.Page,
		)
	}
	b.cursor = sec
	b.lastTitle = key
}

// Build folds a complete tagged sequence into an unchecked document.
func Build(tagged []Tagged, meta *doctree.Meta, log *slog.Logger) *doctree.Node {
	b := NewBuilder(meta, log)
	for _, t := range tagged {
		b.Add(t)
	}
	return b.Document()
}

func pageID(t Tagged) string {
	if t.Page != nil {
		return t.Page.ID
	}
	return t.Fragment.PageID
}

// splitHeading splits lines after the n-th non-empty line.
func splitHeading(lines []string, n int) (head, body []string) {
	seen := 0
	for i, l := range lines {
		if seen == n {
			return lines[:i], lines[i:]
		}
		if strings.TrimSpace(l) != "" {
			seen++
		}
	}
	return lines, nil
}
