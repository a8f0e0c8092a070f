package doctree

import (
	"iter"
	"slices"
	"strings"

	"github.com/dgallion1/docstruct/internal/tokenize"
)

// SentenceTokenizer splits running text into sentences.
type SentenceTokenizer interface {
	Sentences(text string) iter.Seq[string]
}

// Words yields the word tokens of the node's text. Direct paragraph children
// always contribute; section children only when recursive is set. Float and
// footnote children contribute only when ignoreFloats is false.
func (n *Node) Words(recursive, ignoreFloats bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		for part := range n.texts(recursive, ignoreFloats) {
			for w := range tokenize.Words(part) {
				if !yield(w) {
					return
				}
			}
		}
	}
}

// Raw returns the node's text joined with single spaces, following the same
// traversal as Words.
func (n *Node) Raw(recursive, ignoreFloats bool) string {
	return strings.Join(slices.Collect(n.texts(recursive, ignoreFloats)), " ")
}

// Sents splits Raw into sentences with tok and yields each sentence as a word
// list. A nil tokenizer yields nothing.
func (n *Node) Sents(tok SentenceTokenizer, recursive, ignoreFloats bool) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		if tok == nil {
			return
		}
		for s := range tok.Sentences(n.Raw(recursive, ignoreFloats)) {
			if !yield(slices.Collect(tokenize.Words(s))) {
				return
			}
		}
	}
}

// texts yields the non-empty text parts in document order.
func (n *Node) texts(recursive, ignoreFloats bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		n.eachText(recursive, ignoreFloats, yield)
	}
}

func (n *Node) eachText(recursive, ignoreFloats bool, yield func(string) bool) bool {
	if t := strings.TrimSpace(n.Text); t != "" {
		if !yield(t) {
			return false
		}
	}
	for _, c := range n.children {
		switch {
		case IsFloat(c) || IsFootnote(c):
			if ignoreFloats {
				continue
			}
			if !c.eachText(recursive, false, yield) {
				return false
			}
		case IsSection(c):
			if !recursive {
				continue
			}
			if !c.eachText(recursive, ignoreFloats, yield) {
				return false
			}
		default:
			if !c.eachText(recursive, ignoreFloats, yield) {
				return false
			}
		}
	}
	return true
}
