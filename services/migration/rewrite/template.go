// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package rewrite holds the pure text-to-text rewriters for HTML-like
// templates and stylesheets.
//
// These are regex substitutions, not a template AST: directive syntax is
// regular enough for attribute-level substitution. Deeply malformed
// templates can be rewritten incorrectly; the migration summary tells
// users to review output.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// [prop]="expr" → :prop="expr"; also banana-box [(ngModel)]="x" → v-model="x",
	// which must run first so the property-binding rule does not eat it.
	bananaBoxRe = regexp.MustCompile(`\[\(ngModel\)\]="([^"]*)"`)
	propBindRe  = regexp.MustCompile(`\[([A-Za-z_][\w.-]*)\]="([^"]*)"`)
	eventBindRe = regexp.MustCompile(`\(([A-Za-z_][\w.-]*)\)="([^"]*)"`)

	ngIfRe = regexp.MustCompile(`\*ngIf="([^"]*)"`)

	// *ngFor="let item of list" with an optional trackBy clause. The
	// clause order in real templates is free-form, but the dominant form
	// is `let x of y; trackBy: fn` and that is what the capture handles.
	ngForTrackByRe = regexp.MustCompile(`\*ngFor="\s*let\s+(\w+)\s+of\s+([^;"]+?)\s*;\s*trackBy:\s*([^;"]+?)\s*"`)
	ngForRe        = regexp.MustCompile(`\*ngFor="\s*let\s+(\w+)\s+of\s+([^;"]+?)\s*"`)

	ngSwitchRe = regexp.MustCompile(`\*ngSwitch(Case|Default)?`)

	// Vue-source normalization: long-form bindings to shorthand.
	vBindLongRe = regexp.MustCompile(`v-bind:([\w.-]+)=`)
	vOnLongRe   = regexp.MustCompile(`v-on:([\w.-]+)=`)
)

// Template rewrites Angular/Vue template binding syntax to the target
// syntax. Returns the rewritten text and any warnings for constructs that
// have no mechanical equivalent.
//
// The substitutions are idempotent: target-syntax bindings (`:x="y"`,
// `@x="y"`, `v-if`, `v-for`) contain none of the source-syntax markers,
// so a second pass is a no-op.
func Template(text string) (string, []string) {
	var warnings []string

	if ngSwitchRe.MatchString(text) {
		warnings = append(warnings,
			"*ngSwitch has no mechanical equivalent; rewrite as v-if/v-else-if chains manually")
	}

	out := bananaBoxRe.ReplaceAllString(text, `v-model="$1"`)
	out = ngIfRe.ReplaceAllString(out, `v-if="$1"`)
	out = ngForTrackByRe.ReplaceAllString(out, `v-for="$1 in $2" :key="$3"`)
	out = ngForRe.ReplaceAllString(out, `v-for="$1 in $2"`)
	out = propBindRe.ReplaceAllString(out, `:$1="$2"`)
	out = eventBindRe.ReplaceAllString(out, `@$1="$2"`)
	out = vBindLongRe.ReplaceAllString(out, `:$1=`)
	out = vOnLongRe.ReplaceAllString(out, `@$1=`)

	return out, warnings
}

// JSXEventName lowers a React onX handler name to the target @x form:
// onClick → @click, onMouseDown → @mousedown.
func JSXEventName(name string) (string, bool) {
	if len(name) < 3 || !strings.HasPrefix(name, "on") {
		return "", false
	}
	rest := name[2:]
	if rest[0] < 'A' || rest[0] > 'Z' {
		return "", false
	}
	return "@" + strings.ToLower(rest), true
}

// KebabCase converts a camelCase CSS property name to kebab-case:
// fontSize → font-size, WebkitTransform → -webkit-transform.
func KebabCase(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			// A leading capital also gets a dash: WebkitTransform is the
			// JS spelling of the -webkit-transform vendor prefix.
			b.WriteByte('-')
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StyleProperty renders one CSS declaration from a JS style-object entry.
func StyleProperty(name, value string) string {
	return fmt.Sprintf("%s: %s", KebabCase(name), value)
}
