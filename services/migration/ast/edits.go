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

import (
	"context"
	"fmt"
	"sort"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
)

// edit is one pending byte-range replacement. Offsets are absolute within
// the full file content (Vue script offsets are translated at creation).
type edit struct {
	start uint32
	end   uint32
	text  []byte
}

// ReplaceNode queues replacement of a node's source text.
func (sf *SourceFile) ReplaceNode(n *sitter.Node, newText string) {
	sf.queue(n.StartByte(), n.EndByte(), []byte(newText))
}

// ReplaceRange queues replacement of an arbitrary byte range. Offsets are
// relative to the parsed region, like node offsets.
func (sf *SourceFile) ReplaceRange(start, end uint32, newText string) {
	sf.queue(start, end, []byte(newText))
}

// InsertBefore queues an insertion immediately before a node.
func (sf *SourceFile) InsertBefore(n *sitter.Node, text string) {
	sf.queue(n.StartByte(), n.StartByte(), []byte(text))
}

// InsertAfter queues an insertion immediately after a node.
func (sf *SourceFile) InsertAfter(n *sitter.Node, text string) {
	sf.queue(n.EndByte(), n.EndByte(), []byte(text))
}

// Remove queues removal of a node's source text. Surrounding trivia is
// untouched; callers that need to consume a trailing newline or separator
// should use ReplaceRange with an extended span.
func (sf *SourceFile) Remove(n *sitter.Node) {
	sf.queue(n.StartByte(), n.EndByte(), nil)
}

// RemoveWithTrailingNewline queues removal of a node plus one trailing
// newline (and any spaces between node end and that newline), leaving the
// preceding line's trivia intact. Used for decorator and statement removal
// so the result does not keep a blank line behind.
func (sf *SourceFile) RemoveWithTrailingNewline(n *sitter.Node) {
	region := sf.region()
	end := n.EndByte()
	for end < uint32(len(region)) && (region[end] == ' ' || region[end] == '\t') {
		end++
	}
	if end < uint32(len(region)) && region[end] == '\n' {
		end++
	}
	sf.queue(n.StartByte(), end, nil)
}

// RenameIdentifier queues a rename of a single identifier-like node.
// Only the given node is rewritten; callers decide which references to
// rename (see transforms for call-site propagation).
func (sf *SourceFile) RenameIdentifier(n *sitter.Node, newName string) {
	sf.queue(n.StartByte(), n.EndByte(), []byte(newName))
}

// PendingEdits returns the number of queued, unapplied edits.
func (sf *SourceFile) PendingEdits() int { return len(sf.edits) }

// DiscardEdits drops all queued edits without applying them.
func (sf *SourceFile) DiscardEdits() { sf.edits = nil }

// queue records an edit, translating region-relative offsets to absolute
// file offsets for Vue SFC script blocks.
func (sf *SourceFile) queue(start, end uint32, text []byte) {
	sf.edits = append(sf.edits, edit{
		start: start + sf.scriptOffset,
		end:   end + sf.scriptOffset,
		text:  text,
	})
}

// Apply splices all queued edits into the content and reparses.
//
// Description:
//
//	Edits are applied highest-offset first so earlier offsets stay valid,
//	after an overlap check. The resulting source is reparsed with the same
//	grammar; if it no longer parses cleanly the SourceFile keeps its
//	pre-edit content and tree and ErrReparseInvalid is returned. This
//	enforces the invariant that a SourceFile's tree remains syntactically
//	valid after every individual transform application.
//
// Outputs:
//   - error: ErrOverlappingEdits, ErrEditOutOfRange, ErrReparseInvalid,
//     or a context error. nil when no edits were queued.
func (sf *SourceFile) Apply(ctx context.Context) error {
	return sf.apply(ctx, true)
}

// ApplyLoose is Apply for transforms whose output is target dialect that
// the source grammar cannot express (JSX `@click={f}` attributes). Splice,
// range and overlap checks still run, but a reparse with ERROR nodes keeps
// the new content and its best-effort tree instead of rolling back.
// Structural transforms running after a loose apply see that degraded
// tree, so dialect-producing transforms register last.
func (sf *SourceFile) ApplyLoose(ctx context.Context) error {
	return sf.apply(ctx, false)
}

func (sf *SourceFile) apply(ctx context.Context, strict bool) error {
	if len(sf.edits) == 0 {
		return nil
	}
	ctx, span := startApplySpan(ctx, sf.path, len(sf.edits))
	defer span.End()
	start := time.Now()

	edits := sf.edits
	sf.edits = nil

	// Stable so same-offset insertions keep a deterministic order.
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start > edits[j].start
		}
		return edits[i].end > edits[j].end
	})

	// Overlap and range checks on the sorted (descending) list.
	limit := uint32(len(sf.content))
	for i, e := range edits {
		if e.end < e.start || e.end > limit {
			recordApplyMetrics(ctx, time.Since(start), false)
			return fmt.Errorf("%w: [%d,%d) in %d bytes", ErrEditOutOfRange, e.start, e.end, limit)
		}
		if i > 0 {
			prev := edits[i-1]
			// Pure insertions at the same offset are allowed; overlapping
			// replacements are a transform bug.
			if e.end > prev.start && !(e.start == e.end || prev.start == prev.end) {
				recordApplyMetrics(ctx, time.Since(start), false)
				return fmt.Errorf("%w: [%d,%d) and [%d,%d)", ErrOverlappingEdits, e.start, e.end, prev.start, prev.end)
			}
		}
	}

	// Splice highest-offset first; the three-index slice forces a copy so
	// the original content backing array is never clobbered.
	next := sf.content
	for _, e := range edits {
		next = append(append(next[:e.start:e.start], e.text...), next[e.end:]...)
	}

	if err := sf.reparse(ctx, next, strict); err != nil {
		recordApplyMetrics(ctx, time.Since(start), false)
		return err
	}
	recordApplyMetrics(ctx, time.Since(start), true)
	return nil
}

// SetContent replaces the entire file content and reparses, bypassing the
// edit queue. Queued edits are discarded. Used by whole-text transforms
// (custom rule files); structural transforms should queue edits instead.
func (sf *SourceFile) SetContent(ctx context.Context, newContent []byte) error {
	sf.edits = nil
	return sf.reparse(ctx, newContent, true)
}

// reparse replaces the SourceFile's content with newContent and rebuilds
// the tree (re-splitting SFC blocks for Vue files). In strict mode a tree
// with ERROR nodes is rejected and the old content and tree are kept.
func (sf *SourceFile) reparse(ctx context.Context, newContent []byte, strict bool) error {
	region := newContent
	var blocks *SFCBlocks
	var offset uint32
	if sf.lang == LangVue {
		var err error
		blocks, err = SplitSFC(newContent)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReparseInvalid, err)
		}
		if blocks.Script == nil {
			sf.content = newContent
			sf.sfc = blocks
			sf.scriptOffset = 0
			if sf.tree != nil {
				sf.tree.Close()
				sf.tree = nil
			}
			return nil
		}
		offset = blocks.Script.Start
		region = newContent[blocks.Script.Start:blocks.Script.End]
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammarFor(sf.lang))
	tree, err := parser.ParseCtx(ctx, nil, region)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReparseInvalid, err)
	}
	root := tree.RootNode()
	if root == nil || (strict && root.HasError()) {
		tree.Close()
		return ErrReparseInvalid
	}

	if sf.tree != nil {
		sf.tree.Close()
	}
	sf.tree = tree
	sf.content = newContent
	sf.sfc = blocks
	sf.scriptOffset = offset
	return nil
}
