// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command migrate rewrites Angular, React, or Vue sources into Lumen
// idioms, preserving the original formatting of everything it does not
// touch.
//
// Usage:
//
//	migrate run --framework angular --source ./src --out ./migrated
//	migrate run --framework react --source ./src --out ./migrated --dry-run
//	migrate run --framework vue --source ./src --out ./migrated \
//	  --custom-transform rules/renames.yaml
//
// Watch mode re-runs the migration whenever the source tree changes:
//
//	migrate watch --framework angular --source ./src --out ./migrated
//
// A YAML config file can carry any of the flags; flags win on conflict:
//
//	migrate run --config migrate.yaml
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/lumen-migrate/services/migration/manager"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
	"github.com/AleutianAI/lumen-migrate/services/migration/transforms/angular"
	"github.com/AleutianAI/lumen-migrate/services/migration/transforms/react"
	"github.com/AleutianAI/lumen-migrate/services/migration/transforms/vue"
)

// flagOpts collects flag values; merged with the config file per run.
var (
	flagFramework  string
	flagSource     string
	flagOutput     string
	flagConfig     string
	flagDryRun     bool
	flagVerbose    bool
	flagCustom     []string
	flagNoTemplate bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Migrate Angular, React, or Vue sources to Lumen",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flagFramework, "framework", "", "source framework: angular, react, or vue")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "source project root")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "out", "", "output directory for the migrated tree")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "report and diff without writing output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "per-file debug logging")
	rootCmd.PersistentFlags().StringArrayVar(&flagCustom, "custom-transform", nil, "custom YAML rule file (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&flagNoTemplate, "no-templates", false, "skip template/style rewriting")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the migration once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, logger, err := buildOptions()
			if err != nil {
				return err
			}
			result, err := runOnce(cmd.Context(), opts, logger)
			if err != nil {
				return err
			}
			printSummary(opts, result)
			if !result.Success {
				os.Exit(1)
			}
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Re-run the migration whenever the source tree changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, logger, err := buildOptions()
			if err != nil {
				return err
			}
			return watch(cmd.Context(), opts, logger)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

// buildOptions merges flags with the config file, validates, and sets up
// logging. Config problems are fatal here: running with half a config
// would silently migrate the wrong thing.
func buildOptions() (*manager.Options, *slog.Logger, error) {
	flags := manager.DefaultOptions()
	flags.Framework = flagFramework
	flags.SourcePath = flagSource
	flags.OutputPath = flagOutput
	flags.DryRun = flagDryRun
	flags.Verbose = flagVerbose
	flags.CustomTransforms = flagCustom
	if flagNoTemplate {
		flags.TransformTemplates = false
	}

	opts, err := manager.LoadOptions(flagConfig, flags)
	if err != nil {
		return nil, nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return &opts, logger, nil
}

// buildRegistry registers the transform set for the source framework.
func buildRegistry(framework string) *registry.Registry {
	r := registry.New()
	switch framework {
	case manager.FrameworkAngular:
		angular.RegisterAll(r)
	case manager.FrameworkReact:
		react.RegisterAll(r)
	case manager.FrameworkVue:
		vue.RegisterAll(r)
	}
	return r
}

func runOnce(ctx context.Context, opts *manager.Options, logger *slog.Logger) (*manager.MigrationResult, error) {
	m := manager.New(opts, buildRegistry(opts.Framework), logger)
	return m.Run(ctx)
}

// watch re-runs the migration on filesystem changes, debounced so a save
// burst from an editor triggers one run.
func watch(ctx context.Context, opts *manager.Options, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(opts.SourcePath, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		switch d.Name() {
		case "node_modules", "dist", "build", ".git":
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watching source tree: %w", err)
	}

	run := func() {
		result, err := runOnce(ctx, opts, logger)
		if err != nil {
			color.Red("error: %v", err)
			return
		}
		printSummary(opts, result)
	}

	color.Cyan("watching %s (ctrl-c to stop)", opts.SourcePath)
	run()

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("change detected", slog.String("file", event.Name))
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(300*time.Millisecond, run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

// printSummary renders the run outcome: counts, duration, diagnostics,
// dry-run diffs, and the post-migration checklist.
func printSummary(opts *manager.Options, result *manager.MigrationResult) {
	bold := color.New(color.Bold)

	fmt.Println()
	if result.Success {
		color.Green("✓ %s", result.Message)
	} else {
		color.Red("✗ %s", result.Message)
	}
	bold.Printf("  run %s in %s\n\n", result.RunID, result.Duration.Round(time.Millisecond))

	fmt.Printf("  processed:   %d\n", result.Files.Processed)
	fmt.Printf("  transformed: %d\n", result.Files.Transformed)
	if result.Files.Failed > 0 {
		color.Red("  failed:      %d", result.Files.Failed)
	} else {
		fmt.Printf("  failed:      %d\n", result.Files.Failed)
	}
	fmt.Printf("  skipped:     %d\n", result.Files.Skipped)

	if len(result.Errors) > 0 {
		fmt.Println()
		bold.Println("  errors:")
		for _, e := range result.Errors {
			color.Red("    %s", e)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Println()
		bold.Println("  warnings:")
		for _, w := range result.Warnings {
			color.Yellow("    %s", w)
		}
	}

	if opts.DryRun && len(result.Diffs) > 0 {
		paths := make([]string, 0, len(result.Diffs))
		for p := range result.Diffs {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		fmt.Println()
		bold.Println("  dry-run preview:")
		for _, p := range paths {
			fmt.Println(indent(result.Diffs[p], "    "))
		}
	}

	fmt.Println()
	bold.Println("  next steps:")
	fmt.Println("    1. Review warnings above; flagged constructs need manual conversion.")
	fmt.Println("    2. Run your test suite against the migrated tree.")
	fmt.Println("    3. Check template bindings render as expected.")
	fmt.Println("    4. Remove the source framework from your dependencies.")
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
