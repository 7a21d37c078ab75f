package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	infra "github.com/ecsworkshop/frontend-infra"
	"github.com/ecsworkshop/frontend-infra/internal/differ"
)

func newDiffCmd(opts *globalOptions) *cobra.Command {
	var (
		outputFormat string
		ignoreOrder  bool
		exitCode     bool
	)

	cmd := &cobra.Command{
		Use:   "diff <template-file>",
		Short: "Compare the synthesized stack with an existing template",
		Long: `Diff synthesizes the selected strategy and compares it, resource by resource,
with a template on disk (JSON or YAML), such as the last deployed one.

Examples:
    frontend-infra diff deployed.json
    frontend-infra diff deployed.yaml --ignore-order
    frontend-infra diff deployed.json --exit-code`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), opts, args[0], diffOptions{
				format:      outputFormat,
				ignoreOrder: ignoreOrder,
				exitCode:    exitCode,
			}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&ignoreOrder, "ignore-order", false, "Ignore array element order")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Fail when the templates differ")

	return cmd
}

type diffOptions struct {
	format      string
	ignoreOrder bool
	exitCode    bool
}

func runDiff(ctx context.Context, opts *globalOptions, path string, dopts diffOptions, w io.Writer) error {
	existing, err := differ.LoadTemplate(path)
	if err != nil {
		return err
	}

	result, err := synthesize(ctx, opts)
	if err != nil {
		return err
	}

	diff, err := differ.Compare(existing, result.template, differ.Options{IgnoreOrder: dopts.ignoreOrder})
	if err != nil {
		return err
	}

	if err := outputDiffResult(diff, dopts.format, w); err != nil {
		return err
	}

	if dopts.exitCode && diff.Summary.Total > 0 {
		return fmt.Errorf("templates differ: %d changes", diff.Summary.Total)
	}
	return nil
}

func outputDiffResult(result *differ.Result, format string, w io.Writer) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(struct {
			Diff    infra.TemplateDiff `json:"diff"`
			Summary infra.DiffSummary  `json:"summary"`
		}{result.Diff, result.Summary}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if result.Summary.Total == 0 {
			fmt.Fprintln(w, "No differences.")
			return nil
		}

		for _, e := range result.Diff.Added {
			fmt.Fprintf(w, "+ %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Removed {
			fmt.Fprintf(w, "- %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Modified {
			fmt.Fprintf(w, "~ %s (%s)\n", e.Resource, e.Type)
			for _, c := range e.Changes {
				fmt.Fprintf(w, "    %s\n", c)
			}
		}

		fmt.Fprintf(w, "\n%d added, %d removed, %d modified\n",
			result.Summary.Added, result.Summary.Removed, result.Summary.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
