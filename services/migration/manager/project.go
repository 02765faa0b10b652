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
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
)

// FileKind classifies a project file by the pipeline that handles it.
type FileKind int

const (
	// KindScript files are parsed and run through the AST transforms.
	KindScript FileKind = iota
	// KindTemplate files are rewritten by the template text rules.
	KindTemplate
	// KindStyle files are rewritten by the style text rules.
	KindStyle
	// KindOther files are copied through unchanged.
	KindOther
)

// Directories never descended into during project enumeration.
var ignoredDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".git":         true,
	"coverage":     true,
}

// ProjectFile is one enumerated file of the project.
type ProjectFile struct {
	// RelPath is the path relative to the source root, slash-separated.
	RelPath string
	Kind    FileKind

	// Source is the parsed tree for script files (nil when parsing failed).
	Source *ast.SourceFile
	// Raw is the original content for non-script files.
	Raw []byte

	// ParseErr records a script parse failure; the file counts as failed
	// without blocking the rest of the project.
	ParseErr error
}

// Project is the in-memory model of the tree being migrated: every
// enumerated file plus the run's options. It implements the read-only
// view the transforms receive.
//
// Thread Safety: Safe for concurrent reads after InitializeProject;
// transform execution mutates files sequentially.
type Project struct {
	opts   *Options
	root   string
	files  []*ProjectFile
	logger *slog.Logger
}

// InitializeProject enumerates and parses the source tree.
//
// Description:
//
//	Walks opts.SourcePath, skipping ignored directories and the output
//	path, classifies each file by extension, and parses script files
//	concurrently. A file that fails to parse is kept with ParseErr set;
//	only an unreadable source root is fatal.
//
// Inputs:
//
//	ctx - Cancels enumeration and parsing.
//	opts - Validated run options.
//	logger - Destination for per-file debug logging. Must not be nil.
//
// Outputs:
//
//	*Project - The initialized project.
//	error - Non-nil when the source root cannot be walked.
func InitializeProject(ctx context.Context, opts *Options, logger *slog.Logger) (*Project, error) {
	root, err := filepath.Abs(opts.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("resolving source path: %w", err)
	}
	outAbs := ""
	if opts.OutputPath != "" {
		outAbs, _ = filepath.Abs(opts.OutputPath)
	}

	p := &Project{opts: opts, root: root, logger: logger}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (ignoredDirs[d.Name()] || path == outAbs) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		p.files = append(p.files, &ProjectFile{
			RelPath: filepath.ToSlash(rel),
			Kind:    classify(path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking source tree %s: %w", root, err)
	}

	// Deterministic order regardless of filesystem iteration.
	sort.Slice(p.files, func(i, j int) bool {
		return p.files[i].RelPath < p.files[j].RelPath
	})

	if err := p.loadFiles(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// loadFiles reads every file, parsing scripts concurrently. An individual
// parse failure is recorded on the file, not returned.
func (p *Project) loadFiles(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	// Semaphore to limit parse concurrency.
	sem := make(chan struct{}, runtime.NumCPU())

	for _, f := range p.files {
		file := f
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			content, err := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(file.RelPath)))
			if err != nil {
				file.ParseErr = err
				return nil
			}
			if file.Kind != KindScript {
				file.Raw = content
				return nil
			}

			sf, err := ast.Parse(gctx, content, file.RelPath)
			if err != nil {
				// Individual failure is not fatal. Keep the raw bytes so
				// the output tree still carries the file verbatim.
				file.ParseErr = err
				file.Raw = content
				p.logger.Warn("parse failed",
					slog.String("file", file.RelPath),
					slog.String("error", err.Error()),
				)
				return nil
			}
			file.Source = sf
			return nil
		})
	}
	return g.Wait()
}

// classify maps a file extension to its processing pipeline. .vue files
// are scripts: the parser splits the SFC and the manager rewrites its
// template and style blocks separately.
func classify(path string) FileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx", ".js", ".jsx", ".mjs", ".vue":
		return KindScript
	case ".html", ".htm":
		return KindTemplate
	case ".css", ".scss", ".less", ".sass":
		return KindStyle
	}
	return KindOther
}

// Files returns the enumerated files in deterministic order.
func (p *Project) Files() []*ProjectFile { return p.files }

// Root returns the absolute source root.
func (p *Project) Root() string { return p.root }

// Framework implements the transform-facing project view.
func (p *Project) Framework() string { return p.opts.Framework }

// Option implements the transform-facing project view.
func (p *Project) Option(name string) bool { return p.opts.Option(name) }

// ReadAsset reads a non-script asset by path relative to the directory of
// fromFile. Paths escaping the source root are rejected.
func (p *Project) ReadAsset(fromFile, relPath string) ([]byte, error) {
	dir := filepath.Dir(filepath.FromSlash(fromFile))
	full := filepath.Join(p.root, dir, filepath.FromSlash(relPath))

	resolved, err := filepath.Abs(full)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(resolved, p.root+string(filepath.Separator)) && resolved != p.root {
		return nil, fmt.Errorf("asset %s resolves outside the source root", relPath)
	}
	return os.ReadFile(resolved)
}

// Close releases every parsed tree.
func (p *Project) Close() {
	for _, f := range p.files {
		if f.Source != nil {
			f.Source.Close()
		}
	}
}
