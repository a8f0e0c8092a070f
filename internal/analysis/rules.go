package analysis

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docstruct/internal/doctree"
)

type ruleText struct {
	brief, description, message string
}

var ruleTexts = map[string]map[string]ruleText{
	"de": {
		"introduction":         {"Kapiteleinleitungen", "Kapitel müssen eine Einleitung haben", "Kapitel %q hat keine Einleitung!"},
		"subsections":          {"Mind. 2 Unterabschnitte", "Sektionen haben entweder 2 oder keine Untersektionen", "Abschnitt %q hat nur einen Unterabschnitt!"},
		"floatreference":       {"Gleitobjekte-Referenzen", "Gleitobjekte müssen in den umliegenden Paragraphen referenziert werden", "Gleitobjekt %q wird nicht im Text referenziert!"},
		"floatreferencebefore": {"Gleitobjekte-Vorabreferenzen", "Gleitobjekte müssen vor ihrem Auftreten referenziert werden", "Gleitobjekt %q wird nicht vorher im Text referenziert!"},
		"floatcaption":         {"Gleitobjekte-Beschriftung", "Gleitobjekte müssen beschriftet sein", "Gleitobjekt %q hat keine Beschriftung!"},
	},
	"en": {
		"introduction":         {"Chapter introductions", "Chapters must start with an introduction", "Chapter %q has no introduction!"},
		"subsections":          {"At least 2 subsections", "Sections have either two or no subsections", "Section %q has only one subsection!"},
		"floatreference":       {"Float references", "Floats must be referenced in the surrounding paragraphs", "Float %q is not referenced in the text!"},
		"floatreferencebefore": {"Float forward references", "Floats must be referenced before they appear", "Float %q is not referenced before it appears!"},
		"floatcaption":         {"Float captions", "Floats must have a caption", "Float %q has no caption!"},
	},
}

func builtinRules(lang string) []*Rule {
	texts := ruleTexts[lang]
	mk := func(id string, check func(*doctree.Node) bool, subject func(*doctree.Node) string) *Rule {
		t := texts[id]
		return &Rule{
			ID:          id,
			Language:    lang,
			Brief:       t.brief,
			Description: t.description,
			Check:       check,
			Message: func(n *doctree.Node) string {
				return fmt.Sprintf(t.message, subject(n))
			},
		}
	}
	title := func(n *doctree.Node) string { return n.Title }
	text := func(n *doctree.Node) string { return strings.TrimSpace(n.Text) }

	return []*Rule{
		mk("introduction", func(n *doctree.Node) bool {
			return !doctree.IsChapter(n) || HasIntroduction(n)
		}, title),
		mk("subsections", func(n *doctree.Node) bool {
			count := CountSubsections(n)
			return !doctree.IsSection(n) || count == 0 || count >= 2
		}, title),
		mk("floatreference", func(n *doctree.Node) bool {
			return !doctree.IsFloat(n) || IsReferenced(n)
		}, text),
		mk("floatreferencebefore", func(n *doctree.Node) bool {
			return !doctree.IsFloat(n) || WasReferencedBefore(n)
		}, text),
		mk("floatcaption", func(n *doctree.Node) bool {
			return !doctree.IsFloat(n) || HasCaption(n)
		}, text),
	}
}

// Violation is a failed rule at one node.
type Violation struct {
	Rule    string   `json:"rule"`
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// EvalDoc checks every rule on n and its descendants, depth first, and
// returns the violations in that order.
func EvalDoc(n *doctree.Node, rules []*Rule) []Violation {
	var out []Violation
	n.Walk(func(node *doctree.Node) bool {
		for _, r := range rules {
			if !r.Check(node) {
				out = append(out, Violation{Rule: r.ID, Message: r.Message(node), Path: node.Path()})
			}
		}
		return true
	})
	return out
}
