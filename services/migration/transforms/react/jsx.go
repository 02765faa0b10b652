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
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
	"github.com/AleutianAI/lumen-migrate/services/migration/rewrite"
)

// TransformJSX rewrites JSX attributes to the target template dialect:
// className→class, htmlFor→for, onClick→@click (any onX handler), and
// static inline style objects to semicolon-joined kebab-case strings.
//
// Style objects with computed values are left alone and reported as a
// warning; stringifying them would silently drop reactivity.
func TransformJSX(ctx context.Context, sf *ast.SourceFile, project registry.Project) registry.Result {
	return registry.Guard("react/jsx", func() registry.Result {
		var errs []string
		transformed := false

		for _, attr := range jsxAttributes(sf) {
			name := attr.Child(0)
			if name == nil || name.Type() != ast.NodePropertyIdentifier {
				continue
			}
			attrName := sf.Text(name)

			if renamed, ok := AttributeRenames[attrName]; ok {
				sf.ReplaceNode(name, renamed)
				transformed = true
				continue
			}
			if lowered, ok := rewrite.JSXEventName(attrName); ok {
				sf.ReplaceNode(name, lowered)
				transformed = true
				continue
			}
			if attrName == "style" {
				ok, warn := rewriteStyleAttr(sf, attr)
				if warn != "" {
					errs = append(errs, warn)
				}
				transformed = transformed || ok
			}
		}

		if !transformed {
			return registry.Result{Errors: errs}
		}
		// @x attributes are target dialect the TSX grammar cannot parse;
		// a strict apply would roll them back.
		if err := sf.ApplyLoose(ctx); err != nil {
			return registry.Result{Errors: append(errs, err.Error())}
		}
		return registry.Result{Transformed: true, Errors: errs}
	})
}

// jsxAttributes collects every jsx_attribute node in the file.
func jsxAttributes(sf *ast.SourceFile) []*sitter.Node {
	var attrs []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == ast.NodeJSXAttribute {
			attrs = append(attrs, n)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	if root := sf.Root(); root != nil {
		walk(root)
	}
	return attrs
}

// rewriteStyleAttr converts style={{fontSize: '12px', color: 'red'}} into
// style="font-size: 12px; color: red". Returns false plus a warning when
// any value is not a plain string or numeric literal.
func rewriteStyleAttr(sf *ast.SourceFile, attr *sitter.Node) (bool, string) {
	expr := ast.ChildOfType(attr, ast.NodeJSXExpression)
	if expr == nil {
		return false, ""
	}
	obj := ast.ChildOfType(expr, ast.NodeObject)
	if obj == nil {
		return false, ""
	}

	var decls []string
	for _, prop := range sf.ObjectProperties(obj) {
		value, ok := styleValue(sf, prop.Value)
		if !ok {
			return false, fmt.Sprintf(
				"style object at line %d has a computed value for %q; left as-is",
				attr.StartPoint().Row+1, prop.Key)
		}
		decls = append(decls, rewrite.StyleProperty(prop.Key, value))
	}
	if len(decls) == 0 {
		return false, ""
	}
	sf.ReplaceRange(expr.StartByte(), expr.EndByte(),
		fmt.Sprintf("%q", strings.Join(decls, "; ")))
	return true, ""
}

// styleValue extracts a literal CSS value. Numbers keep their text form;
// React's implicit-px shorthand is ambiguous, so bare numbers pass through
// unchanged.
func styleValue(sf *ast.SourceFile, node *sitter.Node) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Type() {
	case ast.NodeString:
		return sf.StringValue(node), true
	case ast.NodeNumber:
		return sf.Text(node), true
	}
	return "", false
}
