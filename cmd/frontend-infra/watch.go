package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newWatchCmd creates the "watch" subcommand for re-synthesizing on input changes.
func newWatchCmd(opts *globalOptions) *cobra.Command {
	var (
		debounce     time.Duration
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-synthesize when the configuration or lookup context changes",
		Long: `Watch monitors the configuration file and the lookup context file and
re-synthesizes the stack whenever either changes.

Rapid changes are debounced so an editor save triggers a single run.

Examples:
    frontend-infra watch --config frontend.yaml
    frontend-infra watch --config frontend.yaml -o frontend.json
    frontend-infra watch --debounce 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), opts, watchOptions{
				debounce:     debounce,
				outputFormat: outputFormat,
				outputFile:   outputFile,
			}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

type watchOptions struct {
	debounce     time.Duration
	outputFormat string
	outputFile   string
}

// runWatch watches the synthesis inputs and re-runs synth on changes.
func runWatch(ctx context.Context, opts *globalOptions, wopts watchOptions, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	targets, err := watchTargets(opts.configFile, cfg.ContextFile)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("nothing to watch: no config file and no context file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Editors replace files on save, so watch the parent directories
	for _, dir := range watchDirs(targets) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	for path := range targets {
		fmt.Fprintf(os.Stderr, "Watching: %s\n", path)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	fmt.Fprintln(os.Stderr, "Running initial synthesis...")
	runWatchSynth(ctx, opts, wopts, w)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Fprintln(os.Stderr, "\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isWatched(targets, event) {
				continue
			}

			zap.L().Debug("input changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(wopts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Fprintf(os.Stderr, "\n[%s] Change detected, re-synthesizing...\n", time.Now().Format("15:04:05"))
			runWatchSynth(ctx, opts, wopts, w)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-ctx.Done():
			return nil

		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nStopping watch...")
			return nil
		}
	}
}

// watchTargets returns the absolute paths of the non-empty inputs.
func watchTargets(paths ...string) (map[string]bool, error) {
	targets := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		targets[abs] = true
	}
	return targets, nil
}

// watchDirs returns the sorted, de-duplicated parent directories of targets.
func watchDirs(targets map[string]bool) []string {
	seen := make(map[string]bool)
	var dirs []string
	for path := range targets {
		dir := filepath.Dir(path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

// isWatched reports whether event changes the content of one of targets.
func isWatched(targets map[string]bool, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return targets[abs]
}

// runWatchSynth runs one synthesis and reports failures without stopping the watch.
func runWatchSynth(ctx context.Context, opts *globalOptions, wopts watchOptions, w io.Writer) {
	result, err := synthesize(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Synthesis error: %v\n", err)
		return
	}

	if wopts.outputFile == "" {
		if err := outputResult(result.buildResult(), wopts.outputFormat, "", w); err != nil {
			fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		}
		return
	}

	if err := outputResult(result.buildResult(), wopts.outputFormat, wopts.outputFile, w); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Synthesized %d resources, wrote %s\n", result.stack.Len(), wopts.outputFile)
}
