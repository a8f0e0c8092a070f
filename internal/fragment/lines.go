package fragment

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// JoinLines strips every line, drops the empty ones and joins the rest with
// sep.
func JoinLines(lines []string, sep string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, sep)
}

// MatchLines reports whether re matches the joined, stripped text. Patterns
// are expected to be anchored with ^.
func MatchLines(re *regexp.Regexp, lines []string) bool {
	return re.MatchString(JoinLines(lines, "\n"))
}

// MatchEach reports whether re matches every stripped line. An empty line
// list never matches.
func MatchEach(re *regexp.Regexp, lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	for _, l := range lines {
		if !re.MatchString(strings.TrimSpace(l)) {
			return false
		}
	}
	return true
}

// LinesUsing returns how many leading non-empty lines consist only of words
// from the given set.
func LinesUsing(lines, words []string) int {
	n := 0
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		for _, w := range splitWords(l) {
			if !slices.Contains(words, w) {
				return n
			}
		}
		n++
	}
	return n
}

// WordsUsing returns how many leading words are contained in the given set.
func WordsUsing(lines, words []string) int {
	n := 0
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		for _, w := range splitWords(l) {
			if !slices.Contains(words, w) {
				return n
			}
			n++
		}
	}
	return n
}

// AvgWordLength returns the mean word length in runes, 0 for no words.
func AvgWordLength(lines []string) float64 {
	words := strings.Fields(JoinLines(lines, " "))
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += utf8.RuneCountInString(w)
	}
	return float64(total) / float64(len(words))
}

// splitWords splits on single spaces and drops empty tokens.
func splitWords(line string) []string {
	var out []string
	for _, w := range strings.Split(line, " ") {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
