package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgallion1/docstruct/internal/codec"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <json files...>",
	Short: "Validate JSON trees against the bundled schema",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		if err := validateFile(path); err != nil {
			failed++
			var ve *codec.ValidationError
			if errors.As(err, &ve) {
				fmt.Fprintf(out, "%s: invalid\n", path)
				for _, p := range ve.Problems {
					fmt.Fprintf(out, "  %s: %s\n", p.Path, p.Message)
				}
				continue
			}
			fmt.Fprintf(out, "%s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
	}
	return nil
}

func validateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return codec.ValidateJSON(f)
}
