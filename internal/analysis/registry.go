// Package analysis evaluates structural rules and simple text metrics on a
// converted document tree and renders the results as a report.
//
// Rules and metrics are localized: each one belongs to a language and is
// looked up through an explicit Registry.
package analysis

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgallion1/docstruct/internal/doctree"
)

var (
	ErrDuplicate       = errors.New("already registered")
	ErrUnknownLanguage = errors.New("no rules or metrics for language")
)

// Rule is a structural requirement checked on every node of a tree.
type Rule struct {
	ID          string
	Language    string
	Brief       string
	Description string
	// Check reports whether n satisfies the rule. Nodes the rule does not
	// apply to must satisfy it.
	Check func(n *doctree.Node) bool
	// Message describes a violation at n.
	Message func(n *doctree.Node) string
}

// Metric computes a number for a node's text.
type Metric struct {
	ID       string
	Language string
	Brief    string
	Expect   *Expectation
	Evaluate func(n *doctree.Node, tok doctree.SentenceTokenizer) float64
}

// Expectation is the range a metric value should fall into, with the advice
// given when it does not.
type Expectation struct {
	Low, High       float64
	HasLow, HasHigh bool
	TooLow, TooHigh string
}

// Judge reports whether v lies within the expectation and, if not, the
// matching advice.
func (e *Expectation) Judge(v float64) (bool, string) {
	switch {
	case e == nil:
		return true, ""
	case e.HasLow && v < e.Low:
		return false, e.TooLow
	case e.HasHigh && v > e.High:
		return false, e.TooHigh
	}
	return true, ""
}

// String renders the expected range.
func (e *Expectation) String() string {
	switch {
	case e == nil:
		return ""
	case e.HasLow && e.HasHigh:
		return fmt.Sprintf("%.2f .. %.2f", e.Low, e.High)
	case e.HasLow:
		return fmt.Sprintf("min. %.2f", e.Low)
	case e.HasHigh:
		return fmt.Sprintf("max. %.2f", e.High)
	}
	return ""
}

// Entry is anything that can be registered: *Rule or *Metric.
type Entry interface {
	key() (lang, id string)
}

func (r *Rule) key() (string, string)   { return r.Language, r.ID }
func (m *Metric) key() (string, string) { return m.Language, m.ID }

// Registry holds rules and metrics keyed by language and ID. It is not safe
// for concurrent registration; lookups after setup are.
type Registry struct {
	rules   map[string][]*Rule
	metrics map[string][]*Metric
}

func NewRegistry() *Registry {
	return &Registry{
		rules:   make(map[string][]*Rule),
		metrics: make(map[string][]*Metric),
	}
}

// Register adds entries. An ID may be used once per language and kind. A
// batch with a duplicate, against the registry or within itself, adds nothing.
func (r *Registry) Register(entries ...Entry) error {
	type key struct {
		rule     bool
		lang, id string
	}
	seen := make(map[key]bool, len(entries))
	for _, e := range entries {
		lang, id := e.key()
		switch e.(type) {
		case *Rule:
			k := key{true, lang, id}
			if seen[k] || r.Rule(lang, id) != nil {
				return fmt.Errorf("rule %s/%s: %w", lang, id, ErrDuplicate)
			}
			seen[k] = true
		case *Metric:
			k := key{false, lang, id}
			if seen[k] || r.Metric(lang, id) != nil {
				return fmt.Errorf("metric %s/%s: %w", lang, id, ErrDuplicate)
			}
			seen[k] = true
		}
	}
	for _, e := range entries {
		lang, _ := e.key()
		switch v := e.(type) {
		case *Rule:
			r.rules[lang] = append(r.rules[lang], v)
		case *Metric:
			r.metrics[lang] = append(r.metrics[lang], v)
		}
	}
	return nil
}

// Rules returns the rules of lang in registration order.
func (r *Registry) Rules(lang string) []*Rule {
	return slices.Clone(r.rules[lang])
}

// Metrics returns the metrics of lang sorted by ID.
func (r *Registry) Metrics(lang string) []*Metric {
	out := slices.Clone(r.metrics[lang])
	slices.SortFunc(out, func(a, b *Metric) int { return strings.Compare(a.ID, b.ID) })
	return out
}

func (r *Registry) Rule(lang, id string) *Rule {
	for _, x := range r.rules[lang] {
		if x.ID == id {
			return x
		}
	}
	return nil
}

func (r *Registry) Metric(lang, id string) *Metric {
	for _, x := range r.metrics[lang] {
		if x.ID == id {
			return x
		}
	}
	return nil
}

// Languages lists every language with at least one rule or metric.
func (r *Registry) Languages() []string {
	var out []string
	for l := range r.rules {
		out = append(out, l)
	}
	for l := range r.metrics {
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	slices.Sort(out)
	return out
}

// DefaultRegistry returns a new registry holding the built-in rules and
// metrics for German and English.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, lang := range []string{"de", "en"} {
		for _, rule := range builtinRules(lang) {
			// IDs are unique per language by construction.
			_ = r.Register(rule)
		}
		for _, m := range builtinMetrics(lang) {
			_ = r.Register(m)
		}
	}
	return r
}
