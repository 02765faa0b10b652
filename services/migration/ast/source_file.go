// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ast is the syntax tree access layer of the migration engine.
//
// A SourceFile wraps one parsed input file and exposes structural queries
// (declarations, decorators, call expressions, JSX elements) and mutation
// operations. Mutations are collected as byte-range edits and applied
// atomically with a reparse, so all trivia outside edited ranges is
// preserved byte-for-byte.
package ast

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language identifies the dialect a SourceFile was parsed with.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangJavaScript Language = "javascript"
	LangVue        Language = "vue"
)

// DetectLanguage maps a file path to the Language used to parse it.
// Returns false for non-script assets (templates, styles).
func DetectLanguage(path string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	case ".js", ".mjs", ".cjs", ".jsx":
		return LangJavaScript, true
	case ".vue":
		return LangVue, true
	default:
		return "", false
	}
}

// grammarFor selects the tree-sitter grammar for a Language.
// Vue SFC script blocks are parsed with the TypeScript grammar; plain JS
// is a strict subset so this holds for <script> without lang="ts" too.
func grammarFor(lang Language) *sitter.Language {
	switch lang {
	case LangTSX:
		return tsx.GetLanguage()
	case LangJavaScript:
		return javascript.GetLanguage()
	default:
		return typescript.GetLanguage()
	}
}

// ParserOption configures parsing behavior.
type ParserOption func(*parseConfig)

type parseConfig struct {
	maxFileSize int64
}

// WithMaxFileSize sets the maximum file size the parser will accept.
func WithMaxFileSize(bytes int64) ParserOption {
	return func(c *parseConfig) {
		if bytes > 0 {
			c.maxFileSize = bytes
		}
	}
}

// SourceFile is the owned, mutable structural representation of one input
// file. It is one-to-one with an input file and never shared across
// migrations. A SourceFile is NOT safe for concurrent use; the migration
// pipeline processes one file at a time.
type SourceFile struct {
	path    string
	lang    Language
	content []byte
	tree    *sitter.Tree

	// scriptOffset is non-zero for Vue SFCs: the byte offset of the parsed
	// <script> block within the full file. Node positions are relative to
	// the parsed region; edits translate through this offset.
	scriptOffset uint32
	// sfc holds the split single-file-component blocks for Vue files.
	sfc *SFCBlocks

	edits []edit
}

// Parse parses content into a SourceFile.
//
// Description:
//
//	Validates size and UTF-8, selects the grammar by extension (.tsx uses
//	the TSX grammar, .vue splits the SFC and parses the script block), and
//	parses with a fresh tree-sitter parser instance. The parser is
//	error-tolerant, but a tree whose root carries ERROR nodes is rejected:
//	transforms must only ever see well-formed trees.
//
// Inputs:
//   - ctx: Context for cancellation. Checked before and after parsing.
//   - content: Raw source bytes. Must be valid UTF-8.
//   - path: Path of the file, relative to the project root.
//
// Outputs:
//   - *SourceFile: The parsed file. Never nil on success.
//   - error: ErrFileTooLarge, ErrInvalidContent, ErrParseFailed, or a
//     context error.
func Parse(ctx context.Context, content []byte, path string, opts ...ParserOption) (*SourceFile, error) {
	cfg := parseConfig{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	lang, ok := DetectLanguage(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no script grammar", ErrParseFailed, path)
	}

	ctx, span := startParseSpan(ctx, string(lang), path, len(content))
	defer span.End()
	start := time.Now()

	if err := ctx.Err(); err != nil {
		recordParseMetrics(ctx, string(lang), time.Since(start), false)
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}
	if int64(len(content)) > cfg.maxFileSize {
		recordParseMetrics(ctx, string(lang), time.Since(start), false)
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), cfg.maxFileSize)
	}
	if len(content) > WarnFileSize {
		slog.Warn("parsing large file",
			slog.String("file", path),
			slog.Int("size_bytes", len(content)))
	}
	if !utf8.Valid(content) {
		recordParseMetrics(ctx, string(lang), time.Since(start), false)
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	sf := &SourceFile{
		path:    path,
		lang:    lang,
		content: content,
	}

	region := content
	if lang == LangVue {
		blocks, err := SplitSFC(content)
		if err != nil {
			recordParseMetrics(ctx, string(lang), time.Since(start), false)
			return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
		}
		sf.sfc = blocks
		if blocks.Script == nil {
			// Template-only SFC: no tree, queries return nothing.
			recordParseMetrics(ctx, string(lang), time.Since(start), true)
			return sf, nil
		}
		sf.scriptOffset = blocks.Script.Start
		region = content[blocks.Script.Start:blocks.Script.End]
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammarFor(lang))

	tree, err := parser.ParseCtx(ctx, nil, region)
	if err != nil {
		recordParseMetrics(ctx, string(lang), time.Since(start), false)
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		tree.Close()
		recordParseMetrics(ctx, string(lang), time.Since(start), false)
		return nil, fmt.Errorf("parse canceled after tree-sitter: %w", err)
	}

	root := tree.RootNode()
	if root == nil {
		tree.Close()
		recordParseMetrics(ctx, string(lang), time.Since(start), false)
		return nil, fmt.Errorf("%w: tree-sitter returned nil root node", ErrParseFailed)
	}
	if root.HasError() {
		tree.Close()
		recordParseMetrics(ctx, string(lang), time.Since(start), false)
		return nil, fmt.Errorf("%w: source contains syntax errors", ErrParseFailed)
	}

	sf.tree = tree
	recordParseMetrics(ctx, string(lang), time.Since(start), true)
	return sf, nil
}

// Path returns the file path the SourceFile was parsed from.
func (sf *SourceFile) Path() string { return sf.path }

// Language returns the detected language dialect.
func (sf *SourceFile) Language() Language { return sf.lang }

// Content returns the current source bytes, including any applied edits.
// Callers must not mutate the returned slice.
func (sf *SourceFile) Content() []byte { return sf.content }

// Root returns the root node of the current tree, or nil for a Vue SFC
// without a script block.
func (sf *SourceFile) Root() *sitter.Node {
	if sf.tree == nil {
		return nil
	}
	return sf.tree.RootNode()
}

// SFC returns the split blocks for a Vue single-file component, or nil for
// non-Vue files.
func (sf *SourceFile) SFC() *SFCBlocks { return sf.sfc }

// Text returns the source text of a node.
func (sf *SourceFile) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(sf.region()[n.StartByte():n.EndByte()])
}

// region returns the byte slice the current tree was parsed from.
func (sf *SourceFile) region() []byte {
	if sf.lang == LangVue && sf.sfc != nil && sf.sfc.Script != nil {
		return sf.content[sf.sfc.Script.Start:sf.sfc.Script.End]
	}
	return sf.content
}

// Close releases the underlying tree-sitter tree. The SourceFile must not
// be used afterwards.
func (sf *SourceFile) Close() {
	if sf.tree != nil {
		sf.tree.Close()
		sf.tree = nil
	}
}
