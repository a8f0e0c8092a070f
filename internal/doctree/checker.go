package doctree

// Cleanup tidies the top level of a built document and returns the nodes it
// removed, in removal order.
//
// First, when the document holds at least one section, every top-level child
// that is not a section is dropped (title pages, tables of contents and
// trailing boilerplate end up there). Then top-level sections whose key
// (number, or title when unnumbered) is not exceeded by the following section
// are dropped as superseded. The second pass repeats until nothing changes,
// so Cleanup(Cleanup(doc)) removes nothing.
func Cleanup(doc *Node) []*Node {
	if doc == nil {
		return nil
	}
	removed := stripNonSections(doc)
	for {
		dups := supersededSections(doc)
		if len(dups) == 0 {
			return removed
		}
		for _, d := range dups {
			doc.RemoveChild(d)
		}
		removed = append(removed, dups...)
	}
}

func stripNonSections(doc *Node) []*Node {
	if len(doc.Sections()) == 0 {
		return nil
	}
	var marked []*Node
	for _, c := range doc.children {
		if !IsSection(c) {
			marked = append(marked, c)
		}
	}
	for _, c := range marked {
		doc.RemoveChild(c)
	}
	return marked
}

func supersededSections(doc *Node) []*Node {
	var (
		marked  []*Node
		lastKey string
		last    *Node
	)
	for _, c := range doc.children {
		if !IsSection(c) {
			continue
		}
		key := sectionKey(c)
		if last != nil && key <= lastKey {
			marked = append(marked, last)
		}
		lastKey, last = key, c
	}
	return marked
}

func sectionKey(n *Node) string {
	if n.Number != "" {
		return n.Number
	}
	return n.Title
}
