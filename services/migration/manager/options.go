// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package manager orchestrates a migration run: load options, enumerate
// and parse the project, execute the registered transforms over every
// source file, rewrite non-script assets, and aggregate the results.
package manager

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Frameworks supported as migration sources.
const (
	FrameworkAngular = "angular"
	FrameworkReact   = "react"
	FrameworkVue     = "vue"
)

// Options configures one migration run.
//
// Description:
//
//	Built from CLI flags, optionally merged with a YAML config file
//	(flags win over file values). Validate before use.
//
// Thread Safety: Safe for concurrent reads after Validate.
type Options struct {
	// Framework is the source framework: "angular", "react", or "vue".
	Framework string `yaml:"framework"`

	// SourcePath is the root directory of the project to migrate.
	SourcePath string `yaml:"source"`

	// OutputPath receives the migrated tree, mirroring the source layout.
	OutputPath string `yaml:"output"`

	// DryRun executes and reports transforms without writing any output.
	DryRun bool `yaml:"dry_run"`

	// CustomTransforms lists YAML rule files registered after the
	// built-in set. A file that fails to load is skipped with a warning.
	CustomTransforms []string `yaml:"custom_transforms"`

	// TransformTemplates enables template/style rewriting of non-script
	// assets and inlined component templates.
	TransformTemplates bool `yaml:"transform_templates"`

	// TransformHooks enables the React hooks rewrites.
	TransformHooks bool `yaml:"transform_hooks"`

	// TransformStores enables the Vuex store rewrite.
	TransformStores bool `yaml:"transform_stores"`

	// Verbose enables per-file debug logging.
	Verbose bool `yaml:"verbose"`
}

// DefaultOptions returns the zero-config defaults: all rewrite families
// enabled, dry run off.
func DefaultOptions() Options {
	return Options{
		TransformTemplates: true,
		TransformHooks:     true,
		TransformStores:    true,
	}
}

// LoadOptions reads a YAML config file and overlays the given flag-derived
// options on top of it.
//
// Description:
//
//	File values fill in fields the flags left at their zero value; a flag
//	that was set wins. An empty configPath returns flags unchanged. A
//	configPath that cannot be read or parsed is an error; the caller
//	treats it as fatal.
//
// Inputs:
//
//	configPath - Path to the YAML config file. May be empty.
//	flags - Options built from CLI flags.
//
// Outputs:
//
//	Options - The merged options.
//	error - Non-nil when configPath is set but unreadable or malformed.
func LoadOptions(configPath string, flags Options) (Options, error) {
	if configPath == "" {
		return flags, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Options{}, fmt.Errorf("reading config %s: %w", configPath, err)
	}

	merged := DefaultOptions()
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return Options{}, fmt.Errorf("parsing config %s: %w", configPath, err)
	}

	if flags.Framework != "" {
		merged.Framework = flags.Framework
	}
	if flags.SourcePath != "" {
		merged.SourcePath = flags.SourcePath
	}
	if flags.OutputPath != "" {
		merged.OutputPath = flags.OutputPath
	}
	if flags.DryRun {
		merged.DryRun = true
	}
	if flags.Verbose {
		merged.Verbose = true
	}
	merged.CustomTransforms = append(merged.CustomTransforms, flags.CustomTransforms...)
	return merged, nil
}

// Validate checks the options for a runnable configuration.
func (o *Options) Validate() error {
	switch o.Framework {
	case FrameworkAngular, FrameworkReact, FrameworkVue:
	case "":
		return fmt.Errorf("framework is required (angular, react, or vue)")
	default:
		return fmt.Errorf("unsupported framework %q (want angular, react, or vue)", o.Framework)
	}
	if o.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}
	if o.OutputPath == "" && !o.DryRun {
		return fmt.Errorf("output path is required unless --dry-run is set")
	}
	return nil
}

// Option exposes the boolean toggles to transforms by name. Unknown names
// are false.
func (o *Options) Option(name string) bool {
	switch name {
	case "transformTemplates":
		return o.TransformTemplates
	case "transformHooks":
		return o.TransformHooks
	case "transformStores":
		return o.TransformStores
	}
	return false
}
