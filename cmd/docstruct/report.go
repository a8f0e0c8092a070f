package main

import (
	"fmt"

	"github.com/dgallion1/docstruct/internal/analysis"
	"github.com/dgallion1/docstruct/internal/tokenize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	flagReportJSON bool
	flagNoColor    bool
)

var reportCmd = &cobra.Command{
	Use:   "report <files...>",
	Short: "Report structure rules and text metrics",
	Long: `Report converts each file and evaluates the structure rules and text metrics
of its language on the whole document and on every chapter.

Examples:
  docstruct report thesis.pdf
  docstruct report notes.md --lang en --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&flagReportJSON, "json", false, "Write the reports as JSON")
	reportCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

func runReport(cmd *cobra.Command, args []string) error {
	reg := analysis.DefaultRegistry()
	colored := !flagNoColor && !color.NoColor
	out := cmd.OutOrStdout()

	for i, path := range args {
		res, err := convertFile(cmd, path)
		if err != nil {
			return fmt.Errorf("convert %s: %w", path, err)
		}
		rep, err := analysis.Analyze(res.Document, reg, analysis.Options{
			Language:  flagLang,
			Tokenizer: tokenize.Sentences{},
		})
		if err != nil {
			return fmt.Errorf("report %s: %w", path, err)
		}

		if flagReportJSON {
			err = rep.WriteJSON(out)
		} else {
			if i > 0 {
				fmt.Fprintln(out)
			}
			err = rep.WriteText(out, colored)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
