package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	infra "github.com/ecsworkshop/frontend-infra"
	"github.com/ecsworkshop/frontend-infra/internal/stack"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List synthesized resources in construction order",
		Long: `List synthesizes the selected strategy and displays every resource in the
order it was constructed, with the resources it references.

Examples:
    frontend-infra list
    frontend-infra list --strategy mesh --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), opts, outputFormat, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(ctx context.Context, opts *globalOptions, format string, w io.Writer) error {
	result, err := synthesize(ctx, opts)
	if err != nil {
		return err
	}

	return outputListResult(listResult(result.stack), format, w)
}

func listResult(s *stack.Stack) infra.ListResult {
	entries := s.Resources()
	result := infra.ListResult{
		StackName: s.Name,
		Resources: make([]infra.ListResource, 0, len(entries)),
	}

	for _, e := range entries {
		result.Resources = append(result.Resources, infra.ListResource{
			Name:       e.LogicalID,
			Type:       e.Resource.ResourceType(),
			Path:       e.Path,
			References: e.References,
		})
	}

	return result
}

func outputListResult(result infra.ListResult, format string, w io.Writer) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if len(result.Resources) == 0 {
			fmt.Fprintln(w, "No resources found.")
			return nil
		}

		fmt.Fprintf(w, "%s (%d resources):\n\n", result.StackName, len(result.Resources))
		for _, res := range result.Resources {
			fmt.Fprintf(w, "  %s: %s\n", res.Name, res.Type)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
