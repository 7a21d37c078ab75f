package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ecsworkshop/frontend-infra/internal/graph"
)

func newGraphCmd(opts *globalOptions) *cobra.Command {
	var (
		outputFormat   string
		includeImports bool
		clusterByType  bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing resource dependencies.

The output can be rendered with Graphviz:
    frontend-infra graph | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    frontend-infra graph -f mermaid

Examples:
    frontend-infra graph
    frontend-infra graph -i                  # include imported exports
    frontend-infra graph -c                  # cluster by service
    frontend-infra graph --strategy mesh -f mermaid`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.Context(), opts, outputFormat, includeImports, clusterByType, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&includeImports, "include-imports", "i", false, "Include imported base platform exports")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "c", false, "Cluster resources by AWS service type")

	return cmd
}

func runGraph(ctx context.Context, opts *globalOptions, format string, includeImports, cluster bool, w io.Writer) error {
	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	result, err := synthesize(ctx, opts)
	if err != nil {
		return err
	}

	gen := &graph.Generator{
		Format:         graphFormat,
		IncludeImports: includeImports,
		ClusterByType:  cluster,
	}

	return gen.Generate(result.stack, w)
}
