// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import "errors"

const (
	// DefaultMaxFileSize is the default maximum source file size (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	// WarnFileSize is the size above which a warning is logged (1MB).
	WarnFileSize = 1 * 1024 * 1024
)

var (
	// ErrFileTooLarge indicates the source exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidContent indicates the source is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")

	// ErrParseFailed indicates tree-sitter could not produce a usable tree.
	ErrParseFailed = errors.New("parse failed")

	// ErrOverlappingEdits indicates two pending edits touch the same byte range.
	ErrOverlappingEdits = errors.New("overlapping edits")

	// ErrEditOutOfRange indicates an edit references bytes outside the file.
	ErrEditOutOfRange = errors.New("edit out of range")

	// ErrReparseInvalid indicates an applied edit set produced source that no
	// longer parses. The SourceFile is left on its pre-edit tree.
	ErrReparseInvalid = errors.New("edited source no longer parses")
)
