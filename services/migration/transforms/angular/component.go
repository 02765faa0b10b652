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
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
	"github.com/AleutianAI/lumen-migrate/services/migration/rewrite"
)

// TransformComponent rewrites @Component decorator metadata:
//
//   - selector is kept unchanged
//   - templateUrl is inlined: the referenced file's (template-rewritten)
//     contents become a `template` property
//   - styleUrls becomes `styles`, an array of inlined (style-rewritten)
//     stylesheet contents
//   - inline `template` strings are run through the template rewriter
//   - encapsulation enum values map to target encapsulation strings
//
// A templateUrl or styleUrl that cannot be read is reported as a
// recognizer-level error; the remaining metadata is still rewritten.
func TransformComponent(ctx context.Context, sf *ast.SourceFile, project registry.Project) registry.Result {
	return registry.Guard("angular/component", func() registry.Result {
		var errs []string
		transformed := false

		for _, class := range sf.Classes() {
			dec := sf.DecoratorByName(class, "Component")
			if dec == nil || dec.ObjectArg == nil {
				continue
			}
			if rewriteComponentMetadata(sf, project, dec.ObjectArg, &errs) {
				transformed = true
			}
		}

		if transformed {
			if err := sf.Apply(ctx); err != nil {
				return registry.Result{Errors: append(errs, err.Error())}
			}
		}
		return registry.Result{Transformed: transformed, Errors: errs}
	})
}

// rewriteComponentMetadata queues edits for one @Component metadata
// object. Returns true when any edit was queued.
func rewriteComponentMetadata(sf *ast.SourceFile, project registry.Project, object *sitter.Node, errs *[]string) bool {
	transformed := false
	transformTemplates := project == nil || project.Option("transformTemplates")

	for _, prop := range sf.ObjectProperties(object) {
		switch prop.Key {
		case "templateUrl":
			rel := sf.StringValue(prop.Value)
			if rel == "" {
				continue
			}
			content, err := readAsset(project, sf.Path(), rel)
			if err != nil {
				*errs = append(*errs, fmt.Sprintf("templateUrl %s: %v", rel, err))
				continue
			}
			text := string(content)
			if transformTemplates {
				var warns []string
				text, warns = rewrite.Template(text)
				*errs = append(*errs, warns...)
			}
			sf.ReplaceNode(prop.Node, "template: "+backtick(text))
			transformed = true

		case "template":
			if !transformTemplates {
				continue
			}
			inner := sf.StringValue(prop.Value)
			if inner == "" {
				continue
			}
			text, warns := rewrite.Template(inner)
			*errs = append(*errs, warns...)
			if text != inner {
				sf.ReplaceNode(prop.Value, backtick(text))
				transformed = true
			}

		case "styleUrls":
			if prop.Value == nil || prop.Value.Type() != ast.NodeArray {
				continue
			}
			var sheets []string
			ok := true
			for i := 0; i < int(prop.Value.ChildCount()); i++ {
				el := prop.Value.Child(i)
				if el.Type() != ast.NodeString {
					continue
				}
				rel := sf.StringValue(el)
				content, err := readAsset(project, sf.Path(), rel)
				if err != nil {
					*errs = append(*errs, fmt.Sprintf("styleUrls %s: %v", rel, err))
					ok = false
					break
				}
				text, warns := rewrite.Style(string(content))
				*errs = append(*errs, warns...)
				sheets = append(sheets, backtick(text))
			}
			if !ok || len(sheets) == 0 {
				continue
			}
			sf.ReplaceNode(prop.Node, "styles: ["+strings.Join(sheets, ", ")+"]")
			transformed = true

		case "encapsulation":
			if prop.Value == nil {
				continue
			}
			if target, known := EncapsulationValues[sf.Text(prop.Value)]; known {
				sf.ReplaceNode(prop.Value, "'"+target+"'")
				transformed = true
			}
		}
	}
	return transformed
}

// readAsset resolves an asset read through the project, tolerating a nil
// project in unit tests.
func readAsset(project registry.Project, fromFile, rel string) ([]byte, error) {
	if project == nil {
		return nil, fmt.Errorf("no project asset resolver")
	}
	return project.ReadAsset(fromFile, rel)
}

// backtick renders text as a template literal, escaping embedded backticks
// and interpolation markers.
func backtick(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, "`", "\\`")
	text = strings.ReplaceAll(text, "${", "\\${")
	return "`" + text + "`"
}
