// =============================================================================
// Pricing Data Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks an existing pricing
// document without regenerating it. Useful after hand edits, or to check a
// document produced by an older release.
//
// COMMAND USAGE:
//   pricegen validate pricing_data.json [--strict]
//
// EXIT STATUS:
//   0 when the document has no error findings (warnings are printed),
//   1 otherwise. With --strict, warnings also fail the document.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pricing-data-generator/internal/validation"
)

// strict treats warnings as errors.
var strict bool

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an existing pricing document",
	Long: `Validate checks a pricing document against the document schema, then checks
that every price key refers to option fields and values listed in the same
product's categories.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0], strict, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(
		&strict,
		"strict",
		false,
		"Treat warnings as errors",
	)
}

// runValidate validates the document at path and prints the findings.
func runValidate(path string, strict bool, out io.Writer) error {
	v := validation.NewValidatorWithOptions(validation.ValidationOptions{TreatWarningsAsErrors: strict})

	result, err := v.ValidateFile(path)
	if err != nil {
		return err
	}

	logger.Debug("validated document",
		"file", path,
		"products", result.ProductsValidated,
		"price_keys", result.PriceKeysValidated)

	fmt.Fprint(out, validation.FormatErrors(result.Errors))
	if len(result.Errors) == 0 {
		fmt.Fprintln(out)
	}

	if !result.IsValid {
		return fmt.Errorf("%s is not a valid pricing document (%d error(s), %d warning(s))",
			path, result.ErrorCount, result.WarningCount)
	}

	fmt.Fprintf(out, "%s: OK (%d product(s), %d price key(s))\n",
		path, result.ProductsValidated, result.PriceKeysValidated)
	return nil
}
