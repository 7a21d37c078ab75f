package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	infra "github.com/ecsworkshop/frontend-infra"
	"github.com/ecsworkshop/frontend-infra/internal/validation"
)

// newValidateCmd creates the "validate" subcommand for linting the synthesized template.
func newValidateCmd(opts *globalOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Lint the synthesized template with cfn-lint",
		Long: `Validate synthesizes the selected strategy to a temporary file and runs
cfn-lint-go against it.

Lint errors fail validation. Warnings and informational findings are reported.

Examples:
    frontend-infra validate
    frontend-infra validate --strategy mesh --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), opts, outputFormat, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runValidate(ctx context.Context, opts *globalOptions, format string, w io.Writer) error {
	result, err := synthesize(ctx, opts)
	if err != nil {
		return err
	}

	lint, err := validation.LintTemplate(result.template)
	if err != nil {
		return err
	}

	validateResult := infra.ValidateResult{
		Success:   lint.Passed,
		Resources: len(result.template.Resources),
		Errors:    lint.Errors,
		Warnings:  lint.Warnings,
	}

	if err := outputValidateResult(validateResult, format, w); err != nil {
		return err
	}
	if !validateResult.Success {
		return fmt.Errorf("validation failed: %d errors", len(validateResult.Errors))
	}
	return nil
}

func outputValidateResult(result infra.ValidateResult, format string, w io.Writer) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if result.Success {
			fmt.Fprintf(w, "Validation passed: %d resources OK\n", result.Resources)
			for _, warnMsg := range result.Warnings {
				fmt.Fprintf(w, "  WARNING: %s\n", warnMsg)
			}
			return nil
		}

		fmt.Fprintln(w, "Validation FAILED:")
		for _, errMsg := range result.Errors {
			fmt.Fprintf(w, "  ERROR: %s\n", errMsg)
		}
		for _, warnMsg := range result.Warnings {
			fmt.Fprintf(w, "  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
