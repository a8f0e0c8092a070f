package heuristics

import (
	"regexp"
	"strings"
)

const (
	sectionNr = `(\.\s?)*(\d\.?)+`
	floatNr   = `[\s\x{a0}]*` + sectionNr + `:?`
)

var (
	sectionNrRe = regexp.MustCompile(`^` + sectionNr)
	pageNrRe    = regexp.MustCompile(`^\d+`)

	// A LaTeX footnote starts with its number glued to the first word.
	latexFootnoteRe = regexp.MustCompile(`^` + sectionNr + `[^\s\x{a0}\d.]+`)
)

// captionPatterns are tried in order; the first match decides the role.
var captionPatterns = []struct {
	role Role
	re   *regexp.Regexp
}{
	{RoleFigure, caption(`Abbildung|Abb\.?|Figure|Figur|Fig\.?|Grafik|Bild`)},
	{RoleTable, caption(`Tabelle|Tab\.?|Table`)},
	{RoleListing, caption(`Quelltext|Sourcecode|Source [Cc]ode|Listing`)},
	{RoleDefinition, caption(`Definition|Def\.?`)},
	{RoleFormula, caption(`Formel|Formula|Equation`)},
	{RoleTheorem, caption(`Theorem|Satz`)},
	{RoleProof, caption(`Beweis|Proof`)},
}

func caption(keywords string) *regexp.Regexp {
	return regexp.MustCompile(`^(` + keywords + `)` + floatNr)
}

// Incomparable is returned by CompareSections when either heading lacks a
// numbering prefix.
const Incomparable = -42

// SectionNumber returns the leading numbering of s ("1.2" of "1.2 Scope").
func SectionNumber(s string) (string, bool) {
	loc := sectionNrRe.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[:loc[1]], true
}

// Depth counts the non-empty dot-separated components of the numbering
// prefix of s, 0 when there is none.
func Depth(s string) int {
	nr, ok := SectionNumber(s)
	if !ok {
		return 0
	}
	n := 0
	for _, part := range strings.Split(nr, ".") {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

// CompareSections returns the hierarchical relation of heading b relative to
// heading a: 1 when b is a subsection of a, 0 for the same level, -1 when b
// climbs one level, and so on. Unnumbered headings yield Incomparable.
//
//	CompareSections("4.", "4.1")    ==  1
//	CompareSections("2.3", "1.4")   ==  0
//	CompareSections("1.2.3", "5.")  == -2
func CompareSections(a, b string) int {
	if _, ok := SectionNumber(a); !ok {
		return Incomparable
	}
	if _, ok := SectionNumber(b); !ok {
		return Incomparable
	}
	return Depth(b) - Depth(a)
}
