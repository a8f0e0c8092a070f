package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docstruct/internal/doctree"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	flagWidth      int
	flagOutlineAll bool
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Print the section outline of a document",
	Long: `Outline converts a file and prints its section tree, one node per line,
cut to the terminal width. With --all, paragraphs, floats and footnotes are
listed too.`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)

	outlineCmd.Flags().IntVarP(&flagWidth, "width", "w", 80, "Maximum line width in terminal cells")
	outlineCmd.Flags().BoolVarP(&flagOutlineAll, "all", "a", false, "Include paragraphs, floats and footnotes")
}

func runOutline(cmd *cobra.Command, args []string) error {
	res, err := convertFile(cmd, args[0])
	if err != nil {
		return fmt.Errorf("convert %s: %w", args[0], err)
	}
	return writeOutline(cmd.OutOrStdout(), res.Document, flagWidth, flagOutlineAll)
}

// writeOutline prints the descendants of doc indented by depth. Lines wider than
// width cells are truncated; width <= 0 disables truncation.
func writeOutline(w io.Writer, doc *doctree.Node, width int, all bool) error {
	title := "(untitled)"
	if doc.Meta != nil && doc.Meta.Title != "" {
		title = doc.Meta.Title
	}
	if _, err := fmt.Fprintln(w, fit(title, width)); err != nil {
		return err
	}

	var walk func(n *doctree.Node, depth int) error
	walk = func(n *doctree.Node, depth int) error {
		for _, c := range n.Children() {
			label := outlineLabel(c)
			if label == "" || (!all && !doctree.IsSection(c)) {
				continue
			}
			line := strings.Repeat("  ", depth) + label
			if _, err := fmt.Fprintln(w, fit(line, width)); err != nil {
				return err
			}
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(doc, 1)
}

func outlineLabel(n *doctree.Node) string {
	firstLine := func(s string) string {
		s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
		return s
	}
	switch n.Kind {
	case doctree.KindChapter, doctree.KindSection:
		label := firstLine(n.Title)
		if n.Page != "" {
			label += " (p. " + n.Page + ")"
		}
		return label
	case doctree.KindParagraph:
		return "¶ " + firstLine(n.Text)
	case doctree.KindFloat:
		return "▭ " + firstLine(n.Text)
	case doctree.KindFootnote:
		return "† " + firstLine(n.Text)
	}
	return ""
}

func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
