package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"

	infra "github.com/ecsworkshop/frontend-infra"
	"github.com/ecsworkshop/frontend-infra/internal/config"
	"github.com/ecsworkshop/frontend-infra/internal/frontend"
	"github.com/ecsworkshop/frontend-infra/internal/lookup"
	"github.com/ecsworkshop/frontend-infra/internal/platform"
	"github.com/ecsworkshop/frontend-infra/internal/stack"
	"github.com/ecsworkshop/frontend-infra/internal/template"
)

func newSynthCmd(opts *globalOptions) *cobra.Command {
	var (
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the frontend CloudFormation template",
		Long: `Synth resolves the base platform and writes the frontend stack template.

The VPC lookup is cached in the context file (lookup.context.json by default)
so later runs, and runs with --offline, do not call AWS.

Examples:
    frontend-infra synth
    frontend-infra synth --strategy mesh -o frontend.json
    frontend-infra synth --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(cmd.Context(), opts, outputFormat, outputFile, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// synthesis is the outcome of one lookup and build pass.
type synthesis struct {
	cfg      *config.Config
	stack    *stack.Stack
	template *infra.Template
}

func runSynth(ctx context.Context, opts *globalOptions, format, outputFile string, w io.Writer) error {
	result, err := synthesize(ctx, opts)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	return outputResult(result.buildResult(), format, outputFile, w)
}

// loadConfig reads the configuration and applies the --strategy override.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.strategy != "" {
		cfg.Strategy = config.Strategy(opts.strategy)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// synthesize runs the whole pass: configuration, base platform lookup,
// strategy build and template assembly.
func synthesize(ctx context.Context, opts *globalOptions) (*synthesis, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	provider, err := newProvider(ctx, cfg, opts.offline)
	if err != nil {
		return nil, err
	}

	p, err := platform.Lookup(ctx, provider, cfg)
	if err != nil {
		return nil, err
	}

	s, err := frontend.Synthesize(p, cfg)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.NewBuilder(s).Build()
	if err != nil {
		return nil, fmt.Errorf("building template: %w", err)
	}

	return &synthesis{cfg: cfg, stack: s, template: tmpl}, nil
}

// newProvider returns the VPC provider backed by the context file. Offline
// providers answer from the file only. Live providers resolve the account and
// region first so that cache keys match the ones written by earlier runs.
func newProvider(ctx context.Context, cfg *config.Config, offline bool) (lookup.Provider, error) {
	store, err := lookup.OpenStore(cfg.ContextFile)
	if err != nil {
		return nil, err
	}

	if offline {
		return lookup.NewCachedProvider(store, nil), nil
	}

	awsCfg, err := lookup.LoadAWSConfig(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}
	if cfg.Region == "" {
		cfg.Region = awsCfg.Region
	}

	account, err := lookup.ResolveAccount(ctx, sts.NewFromConfig(awsCfg), cfg.Account)
	if err != nil {
		return nil, err
	}
	cfg.Account = account

	return lookup.NewCachedProvider(store, lookup.NewEC2Provider(ec2.NewFromConfig(awsCfg))), nil
}

func (s *synthesis) buildResult() infra.BuildResult {
	entries := s.stack.Resources()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.LogicalID)
	}

	return infra.BuildResult{
		Success:   true,
		StackName: s.stack.Name,
		Strategy:  string(s.cfg.Strategy),
		Template:  *s.template,
		Resources: names,
	}
}

func outputResult(result infra.BuildResult, format, outputFile string, w io.Writer) error {
	data, err := encodeTemplate(&result.Template, format)
	if err != nil {
		return err
	}

	if outputFile == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}

func encodeTemplate(t *infra.Template, format string) ([]byte, error) {
	switch format {
	case "json":
		return template.ToJSON(t)
	case "yaml":
		return template.ToYAML(t)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
