package heuristics

import (
	"testing"

	"github.com/dgallion1/docstruct/internal/fragment"
)

var body = fragment.FontKey{Name: "Times", Size: 10}

func frag(font string, size float64, emph []string, lines ...string) *fragment.Fragment {
	return fragment.New("1", 0, lines, font, size, emph)
}

func TestClassifyFragment(t *testing.T) {
	tests := []struct {
		name string
		f    *fragment.Fragment
		want Role
	}{
		{"empty", frag("Times", 10, nil), RoleNone},
		{"numbered heading", frag("Bold", 14, nil, "1. Einleitung"), RoleHeading},
		{"heading with prose line", frag("Bold", 14, nil, "2.1 Aufbau", "und Ablauf"), RoleHeading},
		{"lone number", frag("Bold", 14, nil, "12"), RolePageNumberOrHeadingPart},
		{"lone number in body font", frag("Times", 10, nil, "42"), RolePageNumberOrHeadingPart},
		{"table of contents", frag("Sans", 11, nil, "1 Einleitung 3", "2 Grundlagen 5"), RoleTocList},
		{"listing line numbers", frag("Mono", 8, nil, "1", "2", "3"), RoleNone},
		{"latex footnote", frag("Times", 8, nil, "2Foo is part of bar."), RoleFootnote},
		{"emphasised glued number", frag("Times", 8, []string{"2Foo", "is", "part", "of", "bar."}, "2Foo is part of bar."), RoleHeading},
		{"table caption", frag("Italic", 9, nil, "Tabelle 1: Foo bar."), RoleTable},
		{"figure caption", frag("Italic", 9, nil, "Abbildung 2.1: Aufbau des Systems"), RoleFigure},
		{"english figure caption", frag("Italic", 9, nil, "Figure 3 System overview"), RoleFigure},
		{"proof", frag("Italic", 9, nil, "Beweis 1"), RoleProof},
		{"caption without number", frag("Italic", 9, nil, "Tabelle zeigt Werte"), RoleNone},
		{
			"paragraph",
			frag("Times", 10, nil,
				"Lorem ipsum dolor sit amet, consectetur adipiscing elit,",
				"sed do eiusmod tempor incididunt ut labore et dolore."),
			RoleParagraph,
		},
		{
			"caption in body font",
			frag("Times", 10, nil, "Tabelle 1 zeigt Foobar."),
			RoleParagraph,
		},
		{
			"paragraph with run-in heading",
			frag("Times", 10, []string{"3.2", "Related", "Work"},
				"3.2 Related", "Work", "Prior systems focus on recall and precision."),
			RoleParagraphWithHeading,
		},
		{
			"footnote in body font",
			frag("Times", 10, []string{"1"}, "1 Siehe auch den Anhang für Details."),
			RoleFootnote,
		},
		{
			"short words are not body text",
			frag("Times", 10, nil, "a b c d e f"),
			RoleNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyFragment(tt.f, body); got != tt.want {
				t.Errorf("ClassifyFragment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_DocumentOrder(t *testing.T) {
	p1 := fragment.NewPage("1", nil)
	p1.Add(frag("Bold", 14, nil, "1. Einleitung"))
	p2 := fragment.NewPage("2", nil)
	p2.Add(frag("Bold", 14, nil, "7"))
	p2.Add(frag("Italic", 9, nil, "Tabelle 1: Werte"))

	tagged := Classify([]*fragment.Page{p1, p2}, body)
	want := []Role{RoleHeading, RolePageNumberOrHeadingPart, RoleTable}
	if len(tagged) != len(want) {
		t.Fatalf("expected %d tags, got %d", len(want), len(tagged))
	}
	for i, r := range want {
		if tagged[i].Role != r {
			t.Errorf("tag %d = %v, want %v", i, tagged[i].Role, r)
		}
	}
	if tagged[2].Page != p2 {
		t.Error("expected tag to reference its page")
	}
}
