// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package angular

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
)

// TransformLifecycle renames Angular lifecycle methods to target hook
// names, in every class of the file.
//
// Renames propagate to `this.<method>()` call sites within the same file,
// so a renamed declaration is never orphaned from its callers. Cross-file
// propagation is not attempted: transforms own exactly one SourceFile.
//
// The transform is idempotent on its recognizer: target hook names
// (onMounted etc.) are not in the rename table, so re-running on already
// transformed output matches nothing.
func TransformLifecycle(ctx context.Context, sf *ast.SourceFile, _ registry.Project) registry.Result {
	return renameMethods(ctx, sf, LifecycleRenames, "angular/lifecycle")
}

// renameMethods renames class methods per the given table, declaration and
// same-file `this.x()` call sites both. Shared with the React set.
func renameMethods(ctx context.Context, sf *ast.SourceFile, table map[string]string, name string) registry.Result {
	return registry.Guard(name, func() registry.Result {
		transformed := false

		for _, class := range sf.Classes() {
			for _, method := range sf.Methods(class) {
				nameNode := sf.MethodNameNode(method)
				if nameNode == nil {
					continue
				}
				target, match := table[sf.Text(nameNode)]
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
		member := call.Child(0)
		prop := ast.ChildOfType(member, ast.NodePropertyIdentifier)
		if prop != nil && sf.Text(prop) == oldName && !strings.Contains(newName, ".") {
			sf.RenameIdentifier(prop, newName)
		}
	}
}
