// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package react

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
)

// TransformLifecycle renames React class lifecycle methods to target hook
// names in component classes (classes extending Component,
// React.Component, or PureComponent variants).
//
// Renames propagate to `this.<method>()` call sites in the same class.
// Idempotent on the recognizer: target names are not in the table.
func TransformLifecycle(ctx context.Context, sf *ast.SourceFile, _ registry.Project) registry.Result {
	return registry.Guard("react/lifecycle", func() registry.Result {
		transformed := false

		for _, class := range sf.Classes() {
			if !isComponentClass(sf, class) {
				continue
			}
			for _, method := range sf.Methods(class) {
				nameNode := sf.MethodNameNode(method)
				if nameNode == nil {
					continue
				}
				target, match := LifecycleRenames[sf.Text(nameNode)]
				if !match {
					continue
				}
				oldName := sf.Text(nameNode)
				sf.RenameIdentifier(nameNode, target)
				renameThisCalls(sf, class, oldName, target)
				transformed = true
			}
		}

		if !transformed {
			return registry.Result{}
		}
		if err := sf.Apply(ctx); err != nil {
			return registry.Result{Errors: []string{err.Error()}}
		}
		return registry.Result{Transformed: true}
	})
}

// isComponentClass reports whether a class extends a React component base.
func isComponentClass(sf *ast.SourceFile, class *sitter.Node) bool {
	ext := sf.ClassExtends(class)
	if i := strings.Index(ext, "<"); i >= 0 {
		ext = ext[:i] // drop generic props/state arguments
	}
	switch ext {
	case "Component", "React.Component", "PureComponent", "React.PureComponent":
		return true
	}
	return false
}

// renameThisCalls queues renames for `this.<oldName>(...)` call sites
// inside the class body.
func renameThisCalls(sf *ast.SourceFile, class *sitter.Node, oldName, newName string) {
	body := sf.ClassBody(class)
	if body == nil {
		return
	}
	calls := sf.CallExpressions(body, func(call *sitter.Node) bool {
		return sf.CalleeName(call) == "this."+oldName
	})
	for _, call := range calls {
		prop := ast.ChildOfType(call.Child(0), ast.NodePropertyIdentifier)
		if prop != nil && sf.Text(prop) == oldName {
			sf.RenameIdentifier(prop, newName)
		}
	}
}
