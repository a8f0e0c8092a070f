package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/docstruct/internal/codec"
	"github.com/dgallion1/docstruct/internal/doctree"
	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagPretty bool
	flagOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert <files...>",
	Short: "Convert documents into XML or JSON trees",
	Long: `Convert extracts the text blocks of each file and writes the recovered tree.

XML output wraps all documents in a single <documents> element. JSON output
writes one tree per line, or an indented tree per document with --pretty.

Examples:
  docstruct convert thesis.pdf --pretty
  docstruct convert a.md b.docx --format json -o trees.jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&flagFormat, "format", "f", "xml", "Output format: xml or json")
	convertCmd.Flags().BoolVar(&flagPretty, "pretty", false, "Indent the output")
	convertCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default: stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if flagFormat != "xml" && flagFormat != "json" {
		return fmt.Errorf("unsupported format %q (want xml or json)", flagFormat)
	}

	docs := make([]*doctree.Node, 0, len(args))
	for _, path := range args {
		res, err := convertFile(cmd, path)
		if err != nil {
			return fmt.Errorf("convert %s: %w", path, err)
		}
		docs = append(docs, res.Document)
	}

	out := cmd.OutOrStdout()
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	bw := bufio.NewWriter(out)
	if err := writeTrees(bw, docs, flagFormat, flagPretty); err != nil {
		return err
	}
	return bw.Flush()
}

func writeTrees(w io.Writer, docs []*doctree.Node, format string, pretty bool) error {
	if format == "xml" {
		return codec.EncodeXML(w, docs, pretty)
	}
	for _, d := range docs {
		if err := codec.EncodeJSON(w, d, pretty); err != nil {
			return err
		}
	}
	return nil
}
