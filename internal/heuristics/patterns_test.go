package heuristics

import "testing"

func TestCompareSections(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2", "1.3", 0},
		{"1.", "1.1", 1},
		{"1.2.3", "5.", -2},
		{"foo", "2.", Incomparable},
		{"2.", "foo", Incomparable},
		{"", "1.", Incomparable},
		{"4.", "4.1", 1},
		{"2.3", "1.4", 0},
		{".....4. Chapter", "2.3 Section", 1},
		{"2.3.1 Subsection", "2.3 Section", -1},
		{"1. Foo", "2. Raboof", 0},
	}
	for _, tt := range tests {
		if got := CompareSections(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareSections(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDepth(t *testing.T) {
	tests := map[string]int{
		"1":           1,
		"1.":          1,
		"1.2.3 Titel": 3,
		". 3.1":       2,
		"Titel":       0,
	}
	for in, want := range tests {
		if got := Depth(in); got != want {
			t.Errorf("Depth(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestLatexFootnotePattern(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2Foo is part of bar.", true},
		{"2.3 Foobar", false},
		{"2.3", false},
	}
	for _, tt := range tests {
		if got := latexFootnoteRe.MatchString(tt.in); got != tt.want {
			t.Errorf("latex footnote match %q = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoleString(t *testing.T) {
	if RoleParagraphWithHeading.String() != "paragraph-with-heading" {
		t.Errorf("unexpected name %q", RoleParagraphWithHeading.String())
	}
	if Role(99).String() != "unknown" {
		t.Error("expected out-of-range role to be unknown")
	}
	if !RoleProof.IsFloat() || RoleFloatCaptionPart.IsFloat() || RoleParagraph.IsFloat() {
		t.Error("IsFloat classification wrong")
	}
}
