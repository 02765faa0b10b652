// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package manager

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
	"github.com/AleutianAI/lumen-migrate/services/migration/rewrite"
)

const instrumentationName = "lumen.migrate.manager"

// Manager runs one migration: project initialization, transform
// execution, asset rewriting, and output.
//
// Thread Safety: Not safe for concurrent use; create one per run.
type Manager struct {
	opts   *Options
	reg    *registry.Registry
	logger *slog.Logger
}

// New builds a Manager over validated options and a populated registry.
func New(opts *Options, reg *registry.Registry, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{opts: opts, reg: reg, logger: logger}
}

// Run executes the full migration.
//
// Description:
//
//	Initializes the project, registers custom rule transforms, executes
//	every registered transform against every script file in registration
//	order, rewrites template/style assets, and writes (or, in dry-run
//	mode, diffs) the output tree.
//
// Outputs:
//
//	*MigrationResult - Aggregate counts, warnings and diagnostics. Always
//	non-nil when error is nil.
//	error - Non-nil only for run-level failures (unreadable source root).
func (m *Manager) Run(ctx context.Context) (*MigrationResult, error) {
	start := time.Now()
	result := newResult()

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "manager.Run",
		oteltrace.WithAttributes(
			attribute.String("framework", m.opts.Framework),
			attribute.String("run_id", result.RunID),
			attribute.Bool("dry_run", m.opts.DryRun),
		))
	defer span.End()

	m.loadCustomTransforms(result)

	project, err := InitializeProject(ctx, m.opts, m.logger)
	if err != nil {
		return nil, err
	}
	defer project.Close()

	m.logger.Info("project initialized",
		slog.String("run_id", result.RunID),
		slog.String("framework", m.opts.Framework),
		slog.Int("files", len(project.Files())),
		slog.Int("transforms", m.reg.Len()),
	)

	for _, file := range project.Files() {
		m.processFile(ctx, project, file, result)
	}

	result.Duration = time.Since(start)
	result.Success = true
	result.Message = fmt.Sprintf("migrated %d of %d files", result.Files.Transformed, result.Files.Processed)
	if result.Files.Processed == 0 {
		result.Success = false
		result.Message = "no migratable files found under " + project.Root()
	}
	return result, nil
}

// loadCustomTransforms compiles and registers each rule file. A plugin
// that fails to load or collides with an existing name is skipped with a
// warning, never aborting the run.
func (m *Manager) loadCustomTransforms(result *MigrationResult) {
	for _, path := range m.opts.CustomTransforms {
		desc, err := registry.LoadRuleFile(path)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			m.logger.Warn("custom transform skipped", slog.String("error", err.Error()))
			continue
		}
		if err := m.reg.Register(desc.Name, desc.Apply); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			m.logger.Warn("custom transform skipped", slog.String("error", err.Error()))
		}
	}
}

// processFile runs one file through its pipeline and updates the counts.
// A panic escaping the per-transform guards marks the file failed.
func (m *Manager) processFile(ctx context.Context, project *Project, file *ProjectFile, result *MigrationResult) {
	result.Files.Processed++

	defer func() {
		if rec := recover(); rec != nil {
			result.Files.Failed++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: processing panicked: %v", file.RelPath, rec))
		}
	}()

	switch {
	case file.ParseErr != nil:
		result.Files.Failed++
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: %v", file.RelPath, file.ParseErr))
		if err := m.writeOutput(file.RelPath, file.Raw); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", file.RelPath, err))
		}

	case file.Kind == KindScript:
		m.processScript(ctx, project, file, result)

	case file.Kind == KindTemplate && m.opts.TransformTemplates:
		m.processAsset(file, result, rewrite.Template)

	case file.Kind == KindStyle && m.opts.TransformTemplates:
		m.processAsset(file, result, rewrite.Style)

	default:
		if err := m.writeOutput(file.RelPath, file.Raw); err != nil {
			m.failWrite(file.RelPath, err, result)
			return
		}
		result.Files.Skipped++
	}
}

// failWrite records an output write failure as a file-level failure.
func (m *Manager) failWrite(relPath string, err error, result *MigrationResult) {
	result.Files.Failed++
	result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", relPath, err))
	m.logger.Warn("output write failed",
		slog.String("file", relPath),
		slog.String("error", err.Error()),
	)
}

// processScript executes every registered transform, in order, against one
// parsed file, then rewrites embedded SFC template/style blocks.
func (m *Manager) processScript(ctx context.Context, project *Project, file *ProjectFile, result *MigrationResult) {
	sf := file.Source
	original := append([]byte(nil), sf.Content()...)

	for _, desc := range m.reg.Transforms() {
		res := desc.Apply(ctx, sf, project)
		for _, msg := range res.Errors {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: %s: %s", file.RelPath, desc.Name, msg))
		}
		if res.Transformed && m.opts.Verbose {
			m.logger.Debug("transform applied",
				slog.String("file", file.RelPath),
				slog.String("transform", desc.Name),
			)
		}
	}

	output := append([]byte(nil), sf.Content()...)
	if m.opts.TransformTemplates {
		output = m.rewriteSFCBlocks(sf, output, file.RelPath, result)
	}

	if err := m.writeOutput(file.RelPath, output); err != nil {
		m.failWrite(file.RelPath, err, result)
		return
	}
	if !bytes.Equal(original, output) {
		result.Files.Transformed++
		if m.opts.DryRun {
			result.Diffs[file.RelPath] = unifiedDiff(file.RelPath, original, output)
		}
	}
}

// processAsset runs a text rewriter over a template or style file.
func (m *Manager) processAsset(file *ProjectFile, result *MigrationResult, fn func(string) (string, []string)) {
	rewritten, warnings := fn(string(file.Raw))
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", file.RelPath, w))
	}

	output := []byte(rewritten)
	if err := m.writeOutput(file.RelPath, output); err != nil {
		m.failWrite(file.RelPath, err, result)
		return
	}
	if !bytes.Equal(file.Raw, output) {
		result.Files.Transformed++
		if m.opts.DryRun {
			result.Diffs[file.RelPath] = unifiedDiff(file.RelPath, file.Raw, output)
		}
	}
}

// rewriteSFCBlocks runs the template rewriter over a .vue file's template
// block and the style rewriter over its style blocks. Block offsets track
// the post-transform content, so splices are applied back to front to keep
// earlier offsets valid.
func (m *Manager) rewriteSFCBlocks(sf *ast.SourceFile, content []byte, relPath string, result *MigrationResult) []byte {
	sfc := sf.SFC()
	if sfc == nil {
		return content
	}

	type splice struct {
		start, end uint32
		text       string
	}
	var splices []splice

	if t := sfc.Template; t != nil {
		rewritten, warnings := rewrite.Template(string(content[t.Start:t.End]))
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", relPath, w))
		}
		splices = append(splices, splice{t.Start, t.End, rewritten})
	}
	for _, s := range sfc.Styles {
		rewritten, warnings := rewrite.Style(string(content[s.Start:s.End]))
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", relPath, w))
		}
		splices = append(splices, splice{s.Start, s.End, rewritten})
	}

	sort.Slice(splices, func(i, j int) bool { return splices[i].start > splices[j].start })
	for _, sp := range splices {
		content = append(append(content[:sp.start:sp.start], sp.text...), content[sp.end:]...)
	}
	return content
}

// unifiedDiff renders a dry-run preview diff for one file.
func unifiedDiff(relPath string, before, after []byte) string {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + relPath,
		ToFile:   "b/" + relPath,
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return text
}

// writeOutput writes one file into the mirrored output tree. Dry-run
// writes nothing. A non-nil error marks the file failed at the caller.
func (m *Manager) writeOutput(relPath string, content []byte) error {
	if m.opts.DryRun || m.opts.OutputPath == "" {
		return nil
	}
	dest := filepath.Join(m.opts.OutputPath, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, content, 0o644)
}
