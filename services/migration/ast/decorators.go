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
	sitter "github.com/smacker/go-tree-sitter"
)

// Decorator is one recognized decorator attached to a class, method or
// field. It is a transient view into the tree; it does not survive Apply.
type Decorator struct {
	// Node is the full decorator node, including the leading @.
	Node *sitter.Node

	// Name is the decorator identifier: "Component" for @Component({...}).
	// Member-expression decorators keep their full text ("core.Component").
	Name string

	// Call is the decorator's call_expression node, nil for bare
	// decorators like @Injectable without parentheses.
	Call *sitter.Node

	// ObjectArg is the first argument when it is an object literal, which
	// is the decorator-metadata idiom the Angular transforms rewrite.
	ObjectArg *sitter.Node
}

// Decorators returns all decorators attached to a declaration, in source
// order.
//
// Decorators of exported classes hang off the export_statement wrapping
// the declaration, decorators of class members hang off the member node
// itself; both shapes are handled.
func (sf *SourceFile) Decorators(decl *sitter.Node) []Decorator {
	if decl == nil {
		return nil
	}
	var out []Decorator
	appendFrom := func(parent *sitter.Node) {
		for i := 0; i < int(parent.ChildCount()); i++ {
			child := parent.Child(i)
			if child.Type() != NodeDecorator {
				continue
			}
			if dec, ok := sf.decodeDecorator(child); ok {
				out = append(out, dec)
			}
		}
	}
	appendFrom(decl)
	if parent := decl.Parent(); parent != nil && parent.Type() == NodeExportStatement {
		appendFrom(parent)
	}
	return out
}

// DecoratorByName returns the first decorator with the given name, or nil.
func (sf *SourceFile) DecoratorByName(decl *sitter.Node, name string) *Decorator {
	for _, d := range sf.Decorators(decl) {
		if d.Name == name {
			dec := d
			return &dec
		}
	}
	return nil
}

// decodeDecorator extracts the name, call and object argument of a
// decorator node.
func (sf *SourceFile) decodeDecorator(node *sitter.Node) (Decorator, bool) {
	dec := Decorator{Node: node}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case NodeIdentifier, NodeMemberExpression:
			dec.Name = sf.Text(child)
			return dec, true
		case NodeCallExpression:
			dec.Call = child
			dec.Name = sf.CalleeName(child)
			if args := ArgumentNodes(sf.CallArguments(child)); len(args) > 0 && args[0].Type() == NodeObject {
				dec.ObjectArg = args[0]
			}
			return dec, dec.Name != ""
		}
	}
	return dec, false
}

// RemoveDecorator queues removal of a decorator and the line it occupied.
// Removal must not corrupt surrounding trivia: only the decorator's own
// bytes plus its trailing newline are touched, so comments before or after
// the decorator line survive and the result still parses.
func (sf *SourceFile) RemoveDecorator(d *Decorator) {
	sf.RemoveWithTrailingNewline(d.Node)
}

// RemoveDecoratorInline queues removal of a decorator that shares a line
// with its target (the `@Input() title: string;` field idiom), consuming
// trailing spaces but not the newline.
func (sf *SourceFile) RemoveDecoratorInline(d *Decorator) {
	region := sf.region()
	end := d.Node.EndByte()
	for end < uint32(len(region)) && (region[end] == ' ' || region[end] == '\t') {
		end++
	}
	sf.queue(d.Node.StartByte(), end, nil)
}
