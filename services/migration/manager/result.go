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
	"time"

	"github.com/google/uuid"
)

// FileCounts aggregates per-file outcomes across a run.
type FileCounts struct {
	// Processed counts every file the run looked at, whatever the outcome.
	Processed int `json:"processed"`
	// Transformed counts files at least one transform changed.
	Transformed int `json:"transformed"`
	// Failed counts files that could not be parsed or whose processing
	// panicked.
	Failed int `json:"failed"`
	// Skipped counts files filtered out before any transform ran.
	Skipped int `json:"skipped"`
}

// MigrationResult is the aggregate outcome of one migration run.
//
// Description:
//
//	Success is false only when the run itself failed (unreadable source
//	root, no files). Individual file failures and transform errors are
//	recorded in the counts and Warnings and do not flip Success.
type MigrationResult struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Files    FileCounts    `json:"files"`
	Errors   []string      `json:"errors,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
	Duration time.Duration `json:"duration"`

	// RunID uniquely identifies this run in logs and traces.
	RunID string `json:"run_id"`

	// Diffs holds per-file unified diffs in dry-run mode, keyed by the
	// source-relative path. Empty otherwise.
	Diffs map[string]string `json:"-"`
}

func newResult() *MigrationResult {
	return &MigrationResult{
		RunID: uuid.NewString(),
		Diffs: make(map[string]string),
	}
}
