// Package tokenize segments text into words and sentences following Unicode
// text segmentation rules (UAX #29).
package tokenize

import (
	"iter"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// Words yields the word and punctuation tokens of s, skipping whitespace.
func Words(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		tokens := words.FromString(s)
		for tokens.Next() {
			tok := tokens.Value()
			if strings.TrimSpace(tok) == "" {
				continue
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// IsWord reports whether a token contains at least one letter or digit.
func IsWord(tok string) bool {
	return strings.IndexFunc(tok, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

// Sentences is a sentence tokenizer backed by UAX #29 sentence boundaries.
type Sentences struct{}

// Sentences yields the trimmed, non-empty sentences of text.
func (Sentences) Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		tokens := sentences.FromString(text)
		for tokens.Next() {
			s := strings.TrimSpace(tokens.Value())
			if s == "" {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}
