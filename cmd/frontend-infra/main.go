// Command frontend-infra synthesizes the CloudFormation template for the
// ecsworkshop frontend service.
//
// Usage:
//
//	frontend-infra synth                  Write the template to stdout
//	frontend-infra synth --strategy mesh  Synthesize the App Mesh variant
//	frontend-infra validate               Run cfn-lint on the template
//	frontend-infra version                Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configFile string
	strategy   string
	verbose    bool
	offline    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "frontend-infra",
		Short: "Synthesize the ecsdemo-frontend CloudFormation stack",
		Long: `frontend-infra resolves the ecsworkshop base platform and synthesizes the
frontend service stack as a CloudFormation template.

Two strategies are available:

    direct   public load balancer in front of a Fargate service
    mesh     Fargate service behind an App Mesh Envoy sidecar

Then write the template:

    frontend-infra synth --strategy mesh -o frontend.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	flags.StringVar(&opts.strategy, "strategy", "", "Strategy override: direct or mesh")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&opts.offline, "offline", false, "Use only the lookup context file, never call AWS")

	rootCmd.AddCommand(
		newSynthCmd(opts),
		newListCmd(opts),
		newGraphCmd(opts),
		newDiffCmd(opts),
		newValidateCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// setupLogging installs the global zap logger. Logs go to stderr so that
// templates written to stdout stay clean.
func setupLogging(verbose bool) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("frontend-infra %s\n", getVersion())
		},
	}
}
