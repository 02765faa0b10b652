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

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
)

// TransformInjectable strips @Injectable decorators from service classes.
// Target services are plain exported classes; the DI metadata has no
// equivalent and consumers construct or provide services explicitly.
func TransformInjectable(ctx context.Context, sf *ast.SourceFile, _ registry.Project) registry.Result {
	return registry.Guard("angular/injectable", func() registry.Result {
		transformed := false
		for _, class := range sf.Classes() {
			for _, dec := range sf.Decorators(class) {
				if dec.Name == "Injectable" {
					sf.RemoveDecorator(&dec)
					transformed = true
				}
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

// TransformRouting rewrites Angular router registration to the target
// route-table form:
//
//	RouterModule.forRoot(routes)   →  defineRoutes(routes)
//	RouterModule.forChild(routes)  →  defineRoutes(routes)
//
// and, inside every route object literal in the file, renames the
// `redirectTo` property to `redirect`. path/component/children properties
// carry over unchanged.
func TransformRouting(ctx context.Context, sf *ast.SourceFile, _ registry.Project) registry.Result {
	return registry.Guard("angular/routing", func() registry.Result {
		transformed := false

		calls := sf.CallExpressions(nil, func(call *sitter.Node) bool {
			callee := sf.CalleeName(call)
			return callee == "RouterModule.forRoot" || callee == "RouterModule.forChild"
		})
		for _, call := range calls {
			sf.ReplaceNode(call.Child(0), "defineRoutes")
			transformed = true
		}

		// redirectTo → redirect in route literals anywhere in the file.
		// Scoping to arrays keeps an unrelated object property named
		// redirectTo (not a route) out of reach.
		for _, key := range redirectKeys(sf) {
			sf.RenameIdentifier(key, "redirect")
			transformed = true
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

// redirectKeys finds `redirectTo` property keys of object literals that
// are direct elements of an array (the route-table shape).
func redirectKeys(sf *ast.SourceFile) []*sitter.Node {
	root := sf.Root()
	if root == nil {
		return nil
	}
	var out []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == ast.NodeObject {
			if parent := n.Parent(); parent != nil && parent.Type() == ast.NodeArray {
				for _, prop := range sf.ObjectProperties(n) {
					if prop.Key == "redirectTo" && prop.KeyNode.Type() == ast.NodePropertyIdentifier {
						out = append(out, prop.KeyNode)
					}
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return out
}
