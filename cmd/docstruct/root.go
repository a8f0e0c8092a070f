package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/docstruct/internal/heuristics"
	"github.com/dgallion1/docstruct/internal/pipeline"
	"github.com/spf13/cobra"
)

// Persistent flag variables.
var (
	flagLang    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docstruct",
	Short: "Recover the section structure of documents",
	Long: `docstruct reads PDF, DOCX, HTML, Markdown and plain text files, classifies
their text blocks and folds them into a tree of chapters, sections,
paragraphs, floats and footnotes.

Usage:
  docstruct convert <files...> [flags]
  docstruct report <files...> [flags]
  docstruct validate <json files...>
  docstruct outline <file> [flags]`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "Document language (default: de, or DOCUMENT_LANGUAGE)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log conversion details to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logger writes text logs to the command's error stream.
func logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// language resolves --lang, then DOCUMENT_LANGUAGE, then German.
func language() string {
	if flagLang != "" {
		return flagLang
	}
	if v := os.Getenv("DOCUMENT_LANGUAGE"); v != "" {
		return v
	}
	return "de"
}

// convertFile reads and converts a single file.
func convertFile(cmd *cobra.Command, path string) (*heuristics.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	conv := pipeline.NewConverter(language(), 0, logger(cmd).With("file", path))
	res, _, err := conv.Convert(context.Background(), data, path, "", "")
	if err != nil {
		return nil, err
	}
	return res, nil
}
