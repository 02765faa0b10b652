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
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
)

// TransformLifecycle renames Options-API lifecycle hook keys to target
// hook names in every component options object of the file. Source hooks
// that map to the same target (created and mounted both become onMounted)
// are merged into one hook, earlier hook's statements first.
//
// Idempotent on the recognizer: target names are not in the table.
func TransformLifecycle(ctx context.Context, sf *ast.SourceFile, _ registry.Project) registry.Result {
	return registry.Guard("vue/lifecycle", func() registry.Result {
		transformed := false

		for _, obj := range OptionsObjects(sf) {
			byTarget := map[string][]ast.Property{}
			var order []string
			for _, prop := range sf.ObjectProperties(obj) {
				target, match := LifecycleRenames[prop.Key]
				if !match {
					continue
				}
				if _, seen := byTarget[target]; !seen {
					order = append(order, target)
				}
				byTarget[target] = append(byTarget[target], prop)
			}

			for _, target := range order {
				props := byTarget[target]
				sf.RenameIdentifier(props[0].KeyNode, target)
				transformed = true
				for _, extra := range props[1:] {
					if !mergeHookBody(sf, props[0], extra) {
						// No mergeable bodies; a plain rename at least
						// keeps the statements, at the cost of a
						// duplicate key the author must resolve.
						sf.RenameIdentifier(extra.KeyNode, target)
					}
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

// mergeHookBody appends src's statements to the end of dst's body and
// removes src from the options object. Returns false when either hook has
// no statement block to merge.
func mergeHookBody(sf *ast.SourceFile, dst, src ast.Property) bool {
	dstBody := hookBody(dst)
	srcBody := hookBody(src)
	if dstBody == nil || srcBody == nil {
		return false
	}
	inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(sf.Text(srcBody), "{"), "}"))
	if inner != "" {
		sf.ReplaceRange(dstBody.EndByte()-1, dstBody.EndByte()-1, inner+"\n")
	}
	removeObjectEntry(sf, src.Node)
	return true
}

// hookBody returns the statement block of a lifecycle entry, for both the
// method shorthand and the `created: function() {}` form.
func hookBody(prop ast.Property) *sitter.Node {
	if body := ast.ChildOfType(prop.Value, ast.NodeStatementBlock); body != nil {
		return body
	}
	return ast.ChildOfType(prop.Node, ast.NodeStatementBlock)
}

// removeObjectEntry queues removal of an object entry together with its
// trailing comma, when one follows.
func removeObjectEntry(sf *ast.SourceFile, node *sitter.Node) {
	end := node.EndByte()
	if next := node.NextSibling(); next != nil && next.Type() == "," {
		end = next.EndByte()
	}
	sf.ReplaceRange(node.StartByte(), end, "")
}

// OptionsObjects finds the component options objects of a file: the
// default export object (`export default {...}`, the .vue script idiom)
// and object arguments of `new Vue({...})` or `Vue.component(name, {...})`.
func OptionsObjects(sf *ast.SourceFile) []*sitter.Node {
	var objects []*sitter.Node

	for _, export := range sf.Declarations(ast.NodeExportStatement) {
		if obj := ast.ChildOfType(export, ast.NodeObject); obj != nil {
			objects = append(objects, obj)
		}
	}

	calls := sf.CallExpressions(nil, func(call *sitter.Node) bool {
		switch sf.CalleeName(call) {
		case "Vue.component", "defineComponent", "Vue.extend":
			return true
		}
		return false
	})
	for _, call := range calls {
		for _, arg := range ast.ArgumentNodes(sf.CallArguments(call)) {
			if arg.Type() == ast.NodeObject {
				objects = append(objects, arg)
				break
			}
		}
	}

	for _, inst := range newExpressions(sf, "Vue") {
		if obj := firstObjectArgument(sf, inst); obj != nil {
			objects = append(objects, obj)
		}
	}
	return objects
}

// newExpressions collects `new <name>(...)` nodes anywhere in the file.
func newExpressions(sf *ast.SourceFile, name string) []*sitter.Node {
	var out []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == ast.NodeNewExpression {
			if ctor := n.ChildByFieldName("constructor"); ctor != nil && sf.Text(ctor) == name {
				out = append(out, n)
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	if root := sf.Root(); root != nil {
		walk(root)
	}
	return out
}

func firstObjectArgument(sf *ast.SourceFile, call *sitter.Node) *sitter.Node {
	args := ast.ChildOfType(call, ast.NodeArguments)
	for _, arg := range ast.ArgumentNodes(args) {
		if arg.Type() == ast.NodeObject {
			return arg
		}
	}
	return nil
}
