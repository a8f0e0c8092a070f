package heuristics

import (
	"log/slog"
	"slices"

	"github.com/dgallion1/docstruct/internal/doctree"
	"github.com/dgallion1/docstruct/internal/fragment"
)

// Options control a conversion.
type Options struct {
	Language string
	Logger   *slog.Logger
}

// Result is a converted document plus conversion counters.
type Result struct {
	Document  *doctree.Node
	Tagged    []Tagged
	Removed   []*doctree.Node
	Primary   fragment.FontKey
	Fragments int
}

// Convert runs classification, regrouping, tree building and cleanup over a
// fragment stream. It never fails; an empty stream yields an empty document.
func Convert(s *fragment.Stream, opts Options) *Result {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	meta := &doctree.Meta{Language: opts.Language}
	var pages []*fragment.Page
	if s != nil {
		meta.Title = s.Title
		meta.Authors = slices.Clone(s.Authors)
		pages = s.Pages
	}

	primary := fragment.PrimaryFont(pages)
	tagged := Classify(pages, primary)
	Regroup(tagged)

	doc := Build(tagged, meta, log)
	removed := Cleanup(doc, log)

	log.Debug("document converted",
		"pages", len(pages),
		"fragments", len(tagged),
		"primary_font", primary.Name,
		"primary_size", primary.Size,
		"removed", len(removed),
	)
	return &Result{
		Document:  doc,
		Tagged:    tagged,
		Removed:   removed,
		Primary:   primary,
		Fragments: len(tagged),
	}
}

// Cleanup runs the consistency checker and logs what it removed.
func Cleanup(doc *doctree.Node, log *slog.Logger) []*doctree.Node {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	removed := doctree.Cleanup(doc)
	for _, n := range removed {
		log.Debug("removed top-level node", "kind", n.Kind.String(), "title", n.Title, "page", n.Page)
	}
	return removed
}

// Counts tallies the roles of a tagged sequence.
func Counts(tagged []Tagged) map[Role]int {
	out := make(map[Role]int)
	for _, t := range tagged {
		out[t.Role]++
	}
	return out
}
