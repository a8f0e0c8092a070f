package analysis

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/docstruct/internal/doctree"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// DefaultLanguage is used when neither the caller nor the document names one.
const DefaultLanguage = "de"

// MetricValue is one evaluated metric.
type MetricValue struct {
	ID       string  `json:"id"`
	Value    float64 `json:"value"`
	Expected string  `json:"expected,omitempty"`
	OK       bool    `json:"ok"`
	Advice   string  `json:"advice,omitempty"`
}

// Scope holds the metric values of the whole document or one chapter.
type Scope struct {
	Title   string        `json:"title"`
	Metrics []MetricValue `json:"metrics"`
}

// Report is the analysis of a single document.
type Report struct {
	Title      string      `json:"title"`
	Language   string      `json:"language"`
	Document   Scope       `json:"document"`
	Chapters   []Scope     `json:"chapters,omitempty"`
	Violations []Violation `json:"violations"`
}

type Options struct {
	// Language selects rules and metrics. Empty means the document's own
	// language, then DefaultLanguage.
	Language  string
	Tokenizer doctree.SentenceTokenizer
}

// Analyze evaluates every metric of the language on the document and on each
// top-level section, and every rule on the whole tree.
func Analyze(doc *doctree.Node, reg *Registry, opts Options) (*Report, error) {
	lang := opts.Language
	if lang == "" && doc.Meta != nil {
		lang = doc.Meta.Language
	}
	if lang == "" {
		lang = DefaultLanguage
	}
	rules, metrics := reg.Rules(lang), reg.Metrics(lang)
	if len(rules) == 0 && len(metrics) == 0 {
		return nil, fmt.Errorf("analyze %q: %w", lang, ErrUnknownLanguage)
	}

	rep := &Report{Language: lang, Violations: EvalDoc(doc, rules)}
	if rep.Violations == nil {
		rep.Violations = []Violation{}
	}
	if doc.Meta != nil {
		rep.Title = doc.Meta.Title
	}
	rep.Document = evalScope(rep.Title, doc, metrics, opts.Tokenizer)
	for _, sec := range doc.Sections() {
		rep.Chapters = append(rep.Chapters, evalScope(sec.Title, sec, metrics, opts.Tokenizer))
	}
	return rep, nil
}

func evalScope(title string, n *doctree.Node, metrics []*Metric, tok doctree.SentenceTokenizer) Scope {
	s := Scope{Title: title, Metrics: make([]MetricValue, 0, len(metrics))}
	for _, m := range metrics {
		v := m.Evaluate(n, tok)
		ok, adv := m.Expect.Judge(v)
		s.Metrics = append(s.Metrics, MetricValue{
			ID:       m.ID,
			Value:    v,
			Expected: m.Expect.String(),
			OK:       ok,
			Advice:   adv,
		})
	}
	return s
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText renders the report as tables. With colored set, verdicts and
// violations are highlighted with ANSI colors.
func (r *Report) WriteText(w io.Writer, colored bool) error {
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{good, bad} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	title := r.Title
	if title == "" {
		title = "(untitled)"
	}
	if _, err := fmt.Fprintf(w, "# %s [%s]\n\n", title, r.Language); err != nil {
		return err
	}

	scopes := append([]Scope{{Title: "Document", Metrics: r.Document.Metrics}}, r.Chapters...)
	for _, s := range scopes {
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.SetTitle(s.Title)
		t.AppendHeader(table.Row{"Metric", "Value", "Expected", "Verdict"})
		for _, m := range s.Metrics {
			verdict := good.Sprint("OK")
			if !m.OK {
				verdict = bad.Sprint(m.Advice)
			}
			t.AppendRow(table.Row{m.ID, fmt.Sprintf("%.2f", m.Value), m.Expected, verdict})
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", t.Render()); err != nil {
			return err
		}
	}

	if len(r.Violations) == 0 {
		_, err := fmt.Fprintln(w, good.Sprint("No rule violations."))
		return err
	}
	if _, err := fmt.Fprintf(w, "Rule violations (%d):\n", len(r.Violations)); err != nil {
		return err
	}
	for _, v := range r.Violations {
		if _, err := fmt.Fprintf(w, " * %s %s\n", bad.Sprintf("[%s]", v.Rule), v.Message); err != nil {
			return err
		}
	}
	return nil
}
