// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package registry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
)

// MaxRuleFileSize bounds custom rule files (1MB is far beyond any sane
// rule catalog).
const MaxRuleFileSize = 1 * 1024 * 1024

// RuleFile is the on-disk schema of a custom transform plugin: a named set
// of regex rewrite rules applied to matching files' source text.
//
// Custom transforms are declarative rather than loaded code: Go has no
// portable dynamic code loading for a distributable CLI, and text rules
// cover the long tail of project-specific renames custom plugins exist for.
type RuleFile struct {
	// Name registers the transform; required, must be unique.
	Name string `yaml:"name"`

	// Languages restricts the files the rules run on ("typescript",
	// "tsx", "javascript", "vue"). Empty means all script files.
	Languages []string `yaml:"languages"`

	// Rules are applied in order, each to the whole file text.
	Rules []RewriteRule `yaml:"rules"`
}

// RewriteRule is one regex substitution.
type RewriteRule struct {
	// Pattern is a Go (RE2) regular expression.
	Pattern string `yaml:"pattern"`

	// Replace is the replacement text; $1-style group references apply.
	Replace string `yaml:"replace"`
}

// LoadRuleFile parses and compiles a custom rule file into a registrable
// Descriptor.
//
// Outputs:
//   - Descriptor: the compiled transform.
//   - error: non-nil when the file is unreadable, malformed, or a pattern
//     does not compile. Callers report this as a warning and skip the
//     plugin; a broken plugin never aborts the run.
func LoadRuleFile(path string) (Descriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("custom transform %s: %w", path, err)
	}
	if info.Size() > MaxRuleFileSize {
		return Descriptor{}, fmt.Errorf("custom transform %s: exceeds maximum size (%d > %d)", path, info.Size(), MaxRuleFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("custom transform %s: %w", path, err)
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return Descriptor{}, fmt.Errorf("custom transform %s: parsing YAML: %w", path, err)
	}
	if rf.Name == "" {
		rf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(rf.Rules) == 0 {
		return Descriptor{}, fmt.Errorf("custom transform %s: no rules", path)
	}

	type compiled struct {
		re      *regexp.Regexp
		replace string
	}
	rules := make([]compiled, 0, len(rf.Rules))
	for i, rule := range rf.Rules {
		if rule.Pattern == "" {
			return Descriptor{}, fmt.Errorf("custom transform %s: rule[%d]: pattern must not be empty", path, i)
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return Descriptor{}, fmt.Errorf("custom transform %s: rule[%d]: %w", path, i, err)
		}
		rules = append(rules, compiled{re: re, replace: rule.Replace})
	}

	langs := make(map[ast.Language]bool, len(rf.Languages))
	for _, l := range rf.Languages {
		langs[ast.Language(l)] = true
	}

	name := rf.Name
	fn := func(ctx context.Context, sf *ast.SourceFile, _ Project) Result {
		return Guard(name, func() Result {
			if len(langs) > 0 && !langs[sf.Language()] {
				return Result{}
			}
			text := string(sf.Content())
			next := text
			for _, rule := range rules {
				next = rule.re.ReplaceAllString(next, rule.replace)
			}
			if next == text {
				return Result{}
			}
			if err := sf.SetContent(ctx, []byte(next)); err != nil {
				return Result{Errors: []string{fmt.Sprintf("%s: %v", name, err)}}
			}
			slog.Debug("custom transform applied",
				slog.String("transform", name),
				slog.String("file", sf.Path()))
			return Result{Transformed: true}
		})
	}

	return Descriptor{Name: name, Apply: fn}, nil
}
