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

// Tree-sitter node types used by the migration queries.
//
// The transformers use direct node traversal rather than tree-sitter's query
// language for more precise control over recognition and rewriting.
//
// Reference: https://github.com/tree-sitter/tree-sitter-typescript
const (
	// Top-level nodes
	NodeProgram = "program"

	// Declaration nodes
	NodeFunctionDeclaration      = "function_declaration"
	NodeClassDeclaration         = "class_declaration"
	NodeAbstractClassDeclaration = "abstract_class_declaration"
	NodeInterfaceDeclaration     = "interface_declaration"
	NodeTypeAliasDeclaration     = "type_alias_declaration"
	NodeEnumDeclaration          = "enum_declaration"
	NodeLexicalDeclaration       = "lexical_declaration"
	NodeVariableDeclaration      = "variable_declaration"
	NodeVariableDeclarator       = "variable_declarator"
	NodeExportStatement          = "export_statement"
	NodeImportStatement          = "import_statement"

	// Class-related nodes
	NodeClassBody             = "class_body"
	NodeClassHeritage         = "class_heritage"
	NodeExtendsClause         = "extends_clause"
	NodeMethodDefinition      = "method_definition"
	NodePublicFieldDefinition = "public_field_definition"
	NodeDecorator             = "decorator"
	NodePropertyIdentifier    = "property_identifier"
	NodeTypeIdentifier        = "type_identifier"

	// Expression nodes
	NodeCallExpression    = "call_expression"
	NodeMemberExpression  = "member_expression"
	NodeArguments         = "arguments"
	NodeIdentifier        = "identifier"
	NodeArrowFunction     = "arrow_function"
	NodeFunctionExpr      = "function_expression"
	NodeObject            = "object"
	NodeArray             = "array"
	NodePair              = "pair"
	NodeString            = "string"
	NodeStringFragment    = "string_fragment"
	NodeTemplateString    = "template_string"
	NodeNumber            = "number"
	NodeStatementBlock    = "statement_block"
	NodeReturnStatement   = "return_statement"
	NodeExpressionStmt    = "expression_statement"
	NodeAssignmentExpr    = "assignment_expression"
	NodeNewExpression     = "new_expression"
	NodeArrayPattern      = "array_pattern"
	NodeShorthandProperty = "shorthand_property_identifier"

	// JSX nodes (tsx grammar)
	NodeJSXElement            = "jsx_element"
	NodeJSXSelfClosingElement = "jsx_self_closing_element"
	NodeJSXOpeningElement     = "jsx_opening_element"
	NodeJSXAttribute          = "jsx_attribute"
	NodeJSXExpression         = "jsx_expression"
)
