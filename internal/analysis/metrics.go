package analysis

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docstruct/internal/doctree"
	"github.com/dgallion1/docstruct/internal/tokenize"
)

// Metrics read the running text of a node and all its subsections. Float
// captions and footnotes are ignored.
const (
	metricRecursive    = true
	metricIgnoreFloats = true
)

// exampleIndicators are lower-case tokens announcing an example, with any
// trailing period removed.
var exampleIndicators = map[string][]string{
	"de": {"beispiel", "beispiele", "bsp", "zb", "z.b", "beispielsweise", "bspw"},
	"en": {"example", "examples", "e.g", "eg"},
}

type metricText struct {
	wordlength, sentlength, sentlengthvar, lexicon, examplecount string
}

var metricBriefs = map[string]metricText{
	"de": {"Wortlänge", "Durchschnittliche Satzlänge", "Variation der Satzlänge", "Anteil verschiedener Wörter", "Zählt Beispiele"},
	"en": {"Word length", "Average sentence length", "Sentence length variation", "Share of distinct words", "Counts examples"},
}

type adviceText struct {
	longWords, longSents, monotone, lexiconLow, lexiconHigh, fewExamples string
}

var advice = map[string]adviceText{
	"de": {
		longWords:   "Versuche kürzere Wörter zu verwenden!",
		longSents:   "Zu viele lange Sätze!",
		monotone:    "Versuche kurze und lange Sätze mehr abzuwechseln!",
		lexiconLow:  "Zu geringer Wortschatz",
		lexiconHigh: "Zu vielfältiger Wortschatz (viele Fremdwörter?)",
		fewExamples: "Versuche mehr Beispiele zu nennen!",
	},
	"en": {
		longWords:   "Try to use shorter words!",
		longSents:   "Too many long sentences!",
		monotone:    "Try to alternate short and long sentences more!",
		lexiconLow:  "Vocabulary too small",
		lexiconHigh: "Vocabulary too diverse (many foreign words?)",
		fewExamples: "Try to give more examples!",
	},
}

func builtinMetrics(lang string) []*Metric {
	b, a := metricBriefs[lang], advice[lang]
	indicators := exampleIndicators[lang]
	return []*Metric{
		{
			ID: "wordlength", Language: lang, Brief: b.wordlength,
			Expect:   &Expectation{High: 6.28, HasHigh: true, TooHigh: a.longWords},
			Evaluate: func(n *doctree.Node, _ doctree.SentenceTokenizer) float64 { return WordLength(n) },
		},
		{
			ID: "sentlength", Language: lang, Brief: b.sentlength,
			Expect:   &Expectation{High: 17.38, HasHigh: true, TooHigh: a.longSents},
			Evaluate: SentLength,
		},
		{
			ID: "sentlengthvar", Language: lang, Brief: b.sentlengthvar,
			Expect:   &Expectation{Low: 5.27, HasLow: true, TooLow: a.monotone},
			Evaluate: SentLengthVariation,
		},
		{
			ID: "lexicon", Language: lang, Brief: b.lexicon,
			Expect: &Expectation{
				Low: 0.46, High: 0.56, HasLow: true, HasHigh: true,
				TooLow: a.lexiconLow, TooHigh: a.lexiconHigh,
			},
			Evaluate: func(n *doctree.Node, _ doctree.SentenceTokenizer) float64 { return Lexicon(n) },
		},
		{
			ID: "examplecount", Language: lang, Brief: b.examplecount,
			Expect: &Expectation{Low: 1, HasLow: true, TooLow: a.fewExamples},
			Evaluate: func(n *doctree.Node, _ doctree.SentenceTokenizer) float64 {
				return float64(ExampleCount(n, indicators))
			},
		},
	}
}

// words returns the word tokens of n, dropping punctuation.
func words(n *doctree.Node) []string {
	var out []string
	for w := range n.Words(metricRecursive, metricIgnoreFloats) {
		if tokenize.IsWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// sentenceLengths returns the word count of every sentence of n.
func sentenceLengths(n *doctree.Node, tok doctree.SentenceTokenizer) []int {
	var out []int
	for s := range n.Sents(tok, metricRecursive, metricIgnoreFloats) {
		count := 0
		for _, w := range s {
			if tokenize.IsWord(w) {
				count++
			}
		}
		out = append(out, count)
	}
	return out
}

// WordLength is the average number of characters per word.
func WordLength(n *doctree.Node) float64 {
	ws := words(n)
	if len(ws) == 0 {
		return 0
	}
	total := 0
	for _, w := range ws {
		total += utf8.RuneCountInString(w)
	}
	return float64(total) / float64(len(ws))
}

// SentLength is the average number of words per sentence.
func SentLength(n *doctree.Node, tok doctree.SentenceTokenizer) float64 {
	lengths := sentenceLengths(n, tok)
	if len(lengths) == 0 {
		return 0
	}
	total := 0
	for _, l := range lengths {
		total += l
	}
	return float64(total) / float64(len(lengths))
}

// SentLengthVariation is the mean absolute length difference of consecutive
// sentences.
func SentLengthVariation(n *doctree.Node, tok doctree.SentenceTokenizer) float64 {
	lengths := sentenceLengths(n, tok)
	if len(lengths) < 2 {
		return 0
	}
	diff := 0.0
	for i := 1; i < len(lengths); i++ {
		diff += math.Abs(float64(lengths[i] - lengths[i-1]))
	}
	return diff / float64(len(lengths)-1)
}

// Lexicon is the number of distinct words, case-folded, relative to all
// words.
func Lexicon(n *doctree.Node) float64 {
	ws := words(n)
	if len(ws) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		seen[strings.ToLower(w)] = struct{}{}
	}
	return float64(len(seen)) / float64(len(ws))
}

// ExampleCount counts the tokens of n that announce an example.
func ExampleCount(n *doctree.Node, indicators []string) int {
	count := 0
	for w := range n.Words(metricRecursive, metricIgnoreFloats) {
		w = strings.TrimSuffix(strings.ToLower(w), ".")
		for _, ind := range indicators {
			if w == ind {
				count++
				break
			}
		}
	}
	return count
}
