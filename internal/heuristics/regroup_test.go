package heuristics

import (
	"slices"
	"strings"
	"testing"

	"github.com/dgallion1/docstruct/internal/fragment"
)

type placed struct {
	page string
	role Role
	text string
}

// layout places fragments on pages in order, all pages sharing one predicate.
func layout(sibling fragment.SiblingFunc, items ...placed) []Tagged {
	pages := map[string]*fragment.Page{}
	var out []Tagged
	for _, it := range items {
		p, ok := pages[it.page]
		if !ok {
			p = fragment.NewPage(it.page, sibling)
			pages[it.page] = p
		}
		f := fragment.New("", 0, strings.Split(it.text, "\n"), "Times", 10, nil)
		p.Add(f)
		out = append(out, Tagged{Page: p, Fragment: f, Role: it.role})
	}
	return out
}

func TestRegroup(t *testing.T) {
	never := func(...*fragment.Fragment) bool { return false }

	tests := []struct {
		name    string
		sibling fragment.SiblingFunc
		items   []placed
		want    []Role
	}{
		{
			name: "short float label takes its sibling as caption",
			items: []placed{
				{"1", RoleFigure, "Abb. 3"},
				{"1", RoleParagraph, "Aufbau des Systems im Überblick"},
			},
			want: []Role{RoleFigure, RoleFloatCaptionPart},
		},
		{
			name: "float label with a caption keeps the next fragment",
			items: []placed{
				{"1", RoleFigure, "Abb. 3: Aufbau"},
				{"1", RoleParagraph, "Der Aufbau besteht aus drei Teilen."},
			},
			want: []Role{RoleFigure, RoleParagraph},
		},
		{
			name: "float label at the end of a page",
			items: []placed{
				{"1", RoleTable, "Tabelle 2"},
				{"2", RoleParagraph, "Messwerte der zweiten Reihe"},
			},
			want: []Role{RoleTable, RoleParagraph},
		},
		{
			name:    "non-sibling caption candidate",
			sibling: never,
			items: []placed{
				{"1", RoleTable, "Tabelle 2"},
				{"1", RoleParagraph, "Messwerte der zweiten Reihe"},
			},
			want: []Role{RoleTable, RoleParagraph},
		},
		{
			name: "split heading",
			items: []placed{
				{"1", RolePageNumberOrHeadingPart, "3"},
				{"1", RoleHeading, "Grundlagen"},
				{"1", RoleParagraph, "Dieses Kapitel führt die Begriffe ein."},
			},
			want: []Role{RoleHeadingPartNumber, RoleHeadingPartHeading, RoleParagraph},
		},
		{
			name:    "non-sibling number and line are page furniture",
			sibling: never,
			items: []placed{
				{"1", RolePageNumberOrHeadingPart, "3"},
				{"1", RoleHeading, "Grundlagen"},
				{"1", RoleParagraph, "Dieses Kapitel führt die Begriffe ein."},
			},
			want: []Role{RolePageNumber, RoleHeaderFooter, RoleParagraph},
		},
		{
			name: "window spans the page break",
			items: []placed{
				{"1", RoleParagraph, "Letzter Absatz der ersten Seite."},
				{"1", RolePageNumberOrHeadingPart, "7"},
				{"1", RoleHeading, "Kapitel 1 Einleitung"},
				{"2", RoleParagraph, "Erster Absatz der zweiten Seite."},
			},
			want: []Role{RoleParagraph, RolePageNumber, RoleHeaderFooter, RoleParagraph},
		},
		{
			name: "number and line on different pages",
			items: []placed{
				{"1", RolePageNumberOrHeadingPart, "7"},
				{"2", RoleHeading, "Kapitel 1 Einleitung"},
				{"2", RoleParagraph, "Erster Absatz der zweiten Seite."},
			},
			want: []Role{RolePageNumberOrHeadingPart, RoleHeading, RoleParagraph},
		},
		{
			name: "no paragraph after the pair",
			items: []placed{
				{"1", RolePageNumberOrHeadingPart, "3"},
				{"1", RoleHeading, "Grundlagen"},
				{"1", RoleHeading, "3.1 Begriffe"},
			},
			want: []Role{RolePageNumberOrHeadingPart, RoleHeading, RoleHeading},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tagged := layout(tt.sibling, tt.items...)
			Regroup(tagged)
			got := make([]Role, len(tagged))
			for i, tg := range tagged {
				got[i] = tg.Role
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("roles = %v, want %v", got, tt.want)
			}
		})
	}
}
