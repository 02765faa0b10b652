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
	"fmt"
	"regexp"
	"strings"
)

// SFCBlock is one top-level block of a Vue single-file component.
// Start and End are byte offsets of the block *content* (exclusive of the
// wrapping tags) within the full file.
type SFCBlock struct {
	// Tag is "script", "template" or "style".
	Tag string

	// Attrs is the raw attribute string of the opening tag, e.g. `lang="ts" scoped`.
	Attrs string

	// Start is the byte offset of the first content byte.
	Start uint32

	// End is the byte offset one past the last content byte.
	End uint32
}

// Scoped reports whether the block carries a `scoped` attribute (styles).
func (b *SFCBlock) Scoped() bool {
	return scopedAttrRe.MatchString(b.Attrs)
}

// SFCBlocks holds the split blocks of a Vue single-file component.
// At most one script and one template block are kept; multiple style
// blocks are allowed, in source order.
type SFCBlocks struct {
	Script   *SFCBlock
	Template *SFCBlock
	Styles   []*SFCBlock
}

var (
	// sfcOpenRe matches a top-level SFC opening tag at the start of a line.
	// Nested <template> elements inside the template block never start a
	// line at column zero in well-formed SFCs, and the matching close tag
	// is searched at column zero too, so nesting is not misparsed.
	sfcOpenRe    = regexp.MustCompile(`(?m)^<(script|template|style)([^>]*)>`)
	scopedAttrRe = regexp.MustCompile(`(^|\s)scoped(\s|=|$)`)
)

// SplitSFC splits a Vue single-file component into its top-level blocks.
//
// The splitter is line-oriented text processing, not an HTML parse: block
// open tags must start at column zero and the close tag `</tag>` must also
// start at column zero, which matches the universal SFC formatting
// convention. A block with an open tag but no close tag is an error.
func SplitSFC(content []byte) (*SFCBlocks, error) {
	blocks := &SFCBlocks{}
	text := string(content)

	for _, loc := range sfcOpenRe.FindAllStringSubmatchIndex(text, -1) {
		tag := text[loc[2]:loc[3]]
		attrs := strings.TrimSpace(text[loc[4]:loc[5]])
		contentStart := loc[1]

		closeTag := "\n</" + tag + ">"
		rel := strings.Index(text[contentStart:], closeTag)
		if rel < 0 {
			// Close tag on the very first line (empty block) edge case.
			if strings.HasPrefix(text[contentStart:], "</"+tag+">") {
				rel = 0
				closeTag = "</" + tag + ">"
			} else {
				return nil, fmt.Errorf("unterminated <%s> block", tag)
			}
		}
		contentEnd := contentStart + rel
		if closeTag[0] == '\n' {
			contentEnd++ // keep the trailing newline inside the block
		}

		block := &SFCBlock{
			Tag:   tag,
			Attrs: attrs,
			Start: uint32(contentStart),
			End:   uint32(contentEnd),
		}
		switch tag {
		case "script":
			if blocks.Script == nil {
				blocks.Script = block
			}
		case "template":
			if blocks.Template == nil {
				blocks.Template = block
			}
		case "style":
			blocks.Styles = append(blocks.Styles, block)
		}
	}

	return blocks, nil
}
