package heuristics

// Regroup retags fragments that the extractor split apart, looking back over
// a window of the two previous fragments. The window runs across page
// boundaries; siblinghood is always judged by the current fragment's page.
//
// A float keyword with at most two words followed by a sibling makes that
// sibling a caption part. A lone number and the fragment after it on the
// same page become a split heading when a paragraph follows and all three are
// siblings. Otherwise they are demoted to page number and running header.
func Regroup(tagged []Tagged) {
	twoBack, oneBack := -1, -1
	for cur := range tagged {
		if oneBack >= 0 {
			prev := &tagged[oneBack]
			if prev.Role.IsFloat() && prev.Fragment.WordCount <= 2 &&
				tagged[cur].Page.IsSibling(prev.Fragment, tagged[cur].Fragment) {
				tagged[cur].Role = RoleFloatCaptionPart
			}
		}

		if twoBack >= 0 && tagged[cur].Role == RoleParagraph &&
			tagged[twoBack].Role == RolePageNumberOrHeadingPart &&
			tagged[twoBack].Page == tagged[oneBack].Page {
			nr, head, body := &tagged[twoBack], &tagged[oneBack], &tagged[cur]
			if body.Page.IsSibling(nr.Fragment, head.Fragment, body.Fragment) {
				nr.Role = RoleHeadingPartNumber
				head.Role = RoleHeadingPartHeading
			} else {
				nr.Role = RolePageNumber
				head.Role = RoleHeaderFooter
			}
		}

		twoBack, oneBack = oneBack, cur
	}
}
