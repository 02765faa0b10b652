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
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// NodePredicate filters nodes during structural search.
type NodePredicate func(n *sitter.Node) bool

// Declarations returns all declarations of the given node kind, in source
// order. Declarations wrapped in export statements are unwrapped, so
// `export class Foo` yields the class_declaration node.
func (sf *SourceFile) Declarations(kind string) []*sitter.Node {
	root := sf.Root()
	if root == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() == kind {
			out = append(out, child)
			continue
		}
		if child.Type() == NodeExportStatement {
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				if gc.Type() == kind {
					out = append(out, gc)
				}
			}
		}
	}
	return out
}

// Classes returns all class declarations (including abstract classes and
// default-exported classes), in source order.
func (sf *SourceFile) Classes() []*sitter.Node {
	out := sf.Declarations(NodeClassDeclaration)
	out = append(out, sf.Declarations(NodeAbstractClassDeclaration)...)
	return out
}

// ClassName returns the declared name of a class node, or "".
func (sf *SourceFile) ClassName(class *sitter.Node) string {
	for i := 0; i < int(class.ChildCount()); i++ {
		child := class.Child(i)
		if child.Type() == NodeTypeIdentifier || child.Type() == NodeIdentifier {
			return sf.Text(child)
		}
	}
	return ""
}

// ClassBody returns a class node's class_body, or nil.
func (sf *SourceFile) ClassBody(class *sitter.Node) *sitter.Node {
	return ChildOfType(class, NodeClassBody)
}

// ClassExtends returns the name in a class's extends clause, or "".
func (sf *SourceFile) ClassExtends(class *sitter.Node) string {
	heritage := ChildOfType(class, NodeClassHeritage)
	if heritage == nil {
		return ""
	}
	clause := ChildOfType(heritage, NodeExtendsClause)
	if clause == nil {
		clause = heritage
	}
	for i := 0; i < int(clause.ChildCount()); i++ {
		gc := clause.Child(i)
		switch gc.Type() {
		case NodeIdentifier, NodeTypeIdentifier, NodeMemberExpression, "generic_type":
			return sf.Text(gc)
		}
	}
	return ""
}

// Methods returns the method_definition nodes of a class body, in order.
func (sf *SourceFile) Methods(class *sitter.Node) []*sitter.Node {
	body := sf.ClassBody(class)
	if body == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		if child.Type() == NodeMethodDefinition {
			out = append(out, child)
		}
	}
	return out
}

// MethodName returns a method_definition's name, or "".
func (sf *SourceFile) MethodName(method *sitter.Node) string {
	name := ChildOfType(method, NodePropertyIdentifier)
	if name == nil {
		return ""
	}
	return sf.Text(name)
}

// MethodNameNode returns a method_definition's property_identifier node.
func (sf *SourceFile) MethodNameNode(method *sitter.Node) *sitter.Node {
	return ChildOfType(method, NodePropertyIdentifier)
}

// Fields returns the public_field_definition nodes of a class body.
func (sf *SourceFile) Fields(class *sitter.Node) []*sitter.Node {
	body := sf.ClassBody(class)
	if body == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		if child.Type() == NodePublicFieldDefinition {
			out = append(out, child)
		}
	}
	return out
}

// CallExpressions returns all call_expression nodes under the root (or the
// whole file when scope is nil) matching the predicate, in source order.
func (sf *SourceFile) CallExpressions(scope *sitter.Node, pred NodePredicate) []*sitter.Node {
	if scope == nil {
		scope = sf.Root()
	}
	return collect(scope, NodeCallExpression, pred)
}

// JSXElements returns all JSX element nodes (normal and self-closing)
// under scope matching the predicate.
func (sf *SourceFile) JSXElements(scope *sitter.Node, pred NodePredicate) []*sitter.Node {
	if scope == nil {
		scope = sf.Root()
	}
	out := collect(scope, NodeJSXElement, pred)
	out = append(out, collect(scope, NodeJSXSelfClosingElement, pred)...)
	return out
}

// CalleeName returns the callee of a call expression as source text:
// "useState" for useState(...), "RouterModule.forRoot" for member calls.
func (sf *SourceFile) CalleeName(call *sitter.Node) string {
	if call == nil || int(call.ChildCount()) == 0 {
		return ""
	}
	fn := call.Child(0)
	switch fn.Type() {
	case NodeIdentifier, NodeMemberExpression:
		return sf.Text(fn)
	}
	return ""
}

// CallArguments returns the arguments node of a call expression, or nil.
func (sf *SourceFile) CallArguments(call *sitter.Node) *sitter.Node {
	return ChildOfType(call, NodeArguments)
}

// ArgumentNodes returns the value children of an arguments node, skipping
// punctuation.
func ArgumentNodes(args *sitter.Node) []*sitter.Node {
	if args == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(args.ChildCount()); i++ {
		child := args.Child(i)
		switch child.Type() {
		case "(", ")", ",", "comment":
		default:
			out = append(out, child)
		}
	}
	return out
}

// Property is one key/value entry of an object literal. For shorthand
// methods (`mounted() {...}`), Value is the method_definition node itself
// and KeyNode is its name.
type Property struct {
	Key     string
	KeyNode *sitter.Node
	Value   *sitter.Node
	// Node is the full pair or method_definition node.
	Node *sitter.Node
	// Method is true for object method shorthand entries.
	Method bool
}

// ObjectProperties returns the entries of an object literal, in order.
func (sf *SourceFile) ObjectProperties(object *sitter.Node) []Property {
	if object == nil || object.Type() != NodeObject {
		return nil
	}
	var out []Property
	for i := 0; i < int(object.ChildCount()); i++ {
		child := object.Child(i)
		switch child.Type() {
		case NodePair:
			key := ChildOfType(child, NodePropertyIdentifier)
			if key == nil {
				key = ChildOfType(child, NodeString)
			}
			if key == nil {
				continue
			}
			var value *sitter.Node
			for j := int(child.ChildCount()) - 1; j >= 0; j-- {
				gc := child.Child(j)
				if gc.Type() != ":" && gc.Type() != "comment" && !gc.Equal(key) {
					value = gc
					break
				}
			}
			out = append(out, Property{
				Key:     sf.propertyKeyText(key),
				KeyNode: key,
				Value:   value,
				Node:    child,
			})
		case NodeMethodDefinition:
			key := ChildOfType(child, NodePropertyIdentifier)
			if key == nil {
				continue
			}
			out = append(out, Property{
				Key:     sf.Text(key),
				KeyNode: key,
				Value:   child,
				Node:    child,
				Method:  true,
			})
		case NodeShorthandProperty:
			out = append(out, Property{
				Key:     sf.Text(child),
				KeyNode: child,
				Value:   child,
				Node:    child,
			})
		}
	}
	return out
}

// PropertyByKey returns the object property with the given key, or nil.
func (sf *SourceFile) PropertyByKey(object *sitter.Node, key string) *Property {
	for _, p := range sf.ObjectProperties(object) {
		if p.Key == key {
			prop := p
			return &prop
		}
	}
	return nil
}

// propertyKeyText unquotes string keys so `"selector"` and `selector`
// compare equal.
func (sf *SourceFile) propertyKeyText(key *sitter.Node) string {
	text := sf.Text(key)
	if key.Type() == NodeString {
		return strings.Trim(text, `"'`)
	}
	return text
}

// StringValue returns the unquoted content of a string node, or "" when
// the node is not a string.
func (sf *SourceFile) StringValue(n *sitter.Node) string {
	if n == nil || (n.Type() != NodeString && n.Type() != NodeTemplateString) {
		return ""
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == NodeStringFragment {
			return sf.Text(child)
		}
	}
	return strings.Trim(sf.Text(n), "\"'`")
}

// ChildOfType returns the first direct child of n with the given type.
func ChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// collect walks the subtree rooted at n, returning nodes of nodeType that
// match pred (pred may be nil), in source order.
func collect(n *sitter.Node, nodeType string, pred NodePredicate) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(cur *sitter.Node) {
		if cur.Type() == nodeType && (pred == nil || pred(cur)) {
			out = append(out, cur)
		}
		for i := 0; i < int(cur.ChildCount()); i++ {
			walk(cur.Child(i))
		}
	}
	walk(n)
	return out
}
