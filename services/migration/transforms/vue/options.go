// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package vue

import (
	"context"
	"fmt"
	"strings"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
)

// TransformOptions normalizes Options-API sections at the container level.
// Section values (data bodies, computed getters, watch handlers, method
// implementations) pass through unchanged; only the surrounding shape is
// touched:
//
//   - `data: function() {...}` → `data() {...}` method shorthand
//   - `filters` sections are flagged with a warning; the target has no
//     filter pipeline and call sites need manual conversion
//
// Unrecognized keys are left alone.
func TransformOptions(ctx context.Context, sf *ast.SourceFile, _ registry.Project) registry.Result {
	return registry.Guard("vue/options", func() registry.Result {
		var errs []string
		transformed := false

		for _, obj := range OptionsObjects(sf) {
			for _, prop := range sf.ObjectProperties(obj) {
				if !OptionSections[prop.Key] {
					continue
				}
				if prop.Key == "filters" {
					errs = append(errs, fmt.Sprintf(
						"filters section at line %d has no equivalent; convert filters to computed properties or methods",
						prop.Node.StartPoint().Row+1))
					continue
				}
				if normalizeFunctionValue(sf, prop) {
					transformed = true
				}
			}
		}

		if !transformed {
			return registry.Result{Errors: errs}
		}
		if err := sf.Apply(ctx); err != nil {
			return registry.Result{Errors: append(errs, err.Error())}
		}
		return registry.Result{Transformed: true, Errors: errs}
	})
}

// normalizeFunctionValue rewrites `key: function() {...}` pairs into the
// `key() {...}` method shorthand. Method-shorthand and arrow values are
// already in target shape.
func normalizeFunctionValue(sf *ast.SourceFile, prop ast.Property) bool {
	if prop.Method || prop.Value == nil {
		return false
	}
	// Older grammar revisions name this node plainly "function".
	if t := prop.Value.Type(); t != ast.NodeFunctionExpr && t != "function" {
		return false
	}
	body := strings.TrimPrefix(sf.Text(prop.Value), "function")
	sf.ReplaceNode(prop.Node, prop.Key+strings.TrimLeft(body, " "))
	return true
}
