// Package heuristics turns a stream of extracted fragments into a document
// tree: every fragment is tagged with a structural role, adjacent tags are
// regrouped, and the tagged sequence is folded into a doctree.Node.
package heuristics

// Role is the structural tag assigned to a fragment.
type Role int

const (
	RoleNone Role = iota
	RoleSingleNumber
	RoleTocList
	RoleHeading
	RoleParagraph

	RoleFigure
	RoleTable
	RoleListing
	RoleDefinition
	RoleFormula
	RoleTheorem
	RoleProof

	RolePageNumber
	RolePageNumberOrHeadingPart
	RoleFloatCaptionPart
	RoleHeaderFooter
	RoleHeadingPartNumber
	RoleHeadingPartHeading
	RoleParagraphWithHeading
	RoleFootnote
)

var roleNames = [...]string{
	RoleNone:                    "none",
	RoleSingleNumber:            "single-number",
	RoleTocList:                 "toc-list",
	RoleHeading:                 "heading",
	RoleParagraph:               "paragraph",
	RoleFigure:                  "figure",
	RoleTable:                   "table",
	RoleListing:                 "listing",
	RoleDefinition:              "definition",
	RoleFormula:                 "formula",
	RoleTheorem:                 "theorem",
	RoleProof:                   "proof",
	RolePageNumber:              "page-number",
	RolePageNumberOrHeadingPart: "page-number-or-heading-part",
	RoleFloatCaptionPart:        "float-caption-part",
	RoleHeaderFooter:            "header-footer",
	RoleHeadingPartNumber:       "heading-part-number",
	RoleHeadingPartHeading:      "heading-part-heading",
	RoleParagraphWithHeading:    "paragraph-with-heading",
	RoleFootnote:                "footnote",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// IsFloat reports whether r is one of the floating-object roles.
func (r Role) IsFloat() bool {
	return r >= RoleFigure && r <= RoleProof
}
