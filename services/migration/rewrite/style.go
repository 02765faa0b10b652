// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package rewrite

import (
	"regexp"
	"strings"
)

var (
	// Angular deep-selector pseudo-classes, all spellings.
	deepSelectorRe = regexp.MustCompile(`::ng-deep|/deep/|>>>`)

	// :host(...) functional form, then :host-context(...) and the bare
	// :host in one pass so the bare rule cannot eat the :host prefix of
	// :host-context.
	hostFnRe   = regexp.MustCompile(`:host\(([^)]*)\)`)
	hostBareRe = regexp.MustCompile(`:host-context\([^)]*\)|:host\b`)
)

// Style rewrites Angular component stylesheet idioms to the target
// nesting-based syntax:
//
//	::ng-deep, /deep/, >>>  →  :deep
//	:host(.cls)             →  &:is(.cls)
//	:host                   →  &
//	:host-context(...)      →  left as-is, warning
//
// Plain CSS passes through unchanged; this is line-level substitution, not
// a CSS parse.
func Style(text string) (string, []string) {
	var warnings []string
	out := deepSelectorRe.ReplaceAllString(text, ":deep")
	out = hostFnRe.ReplaceAllString(out, `&:is($1)`)
	out = hostBareRe.ReplaceAllStringFunc(out, func(m string) string {
		if strings.HasPrefix(m, ":host-context") {
			warnings = append(warnings,
				":host-context() has no equivalent; restructure the rule around an ancestor class")
			return m
		}
		return "&"
	})
	return out, warnings
}
