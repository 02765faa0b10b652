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
)

// TransformMembers rewrites @Input() and @Output() decorated class fields
// into props/emits metadata on the component:
//
//	@Input() title: string;            →  title: string;        + props: ['title']
//	@Output() changed = new EventEmitter<T>();  →  emits: ['changed']
//
// The decorators are removed and the collected names are inserted into the
// @Component metadata object. Classes without a @Component decorator are
// left alone (bare @Input on a directive has no metadata object to carry
// the props entry).
func TransformMembers(ctx context.Context, sf *ast.SourceFile, _ registry.Project) registry.Result {
	return registry.Guard("angular/members", func() registry.Result {
		transformed := false

		for _, class := range sf.Classes() {
			dec := sf.DecoratorByName(class, "Component")
			if dec == nil || dec.ObjectArg == nil {
				continue
			}

			var props, emits []string
			for _, field := range sf.Fields(class) {
				for _, fd := range sf.Decorators(field) {
					switch fd.Name {
					case "Input":
						props = append(props, fieldName(sf, field))
						sf.RemoveDecoratorInline(&fd)
					case "Output":
						emits = append(emits, fieldName(sf, field))
						sf.RemoveDecoratorInline(&fd)
					}
				}
			}

			if len(props) > 0 && sf.PropertyByKey(dec.ObjectArg, "props") == nil {
				insertMetadataEntry(sf, dec.ObjectArg, "props", props)
			}
			if len(emits) > 0 && sf.PropertyByKey(dec.ObjectArg, "emits") == nil {
				insertMetadataEntry(sf, dec.ObjectArg, "emits", emits)
			}
			if len(props) > 0 || len(emits) > 0 {
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

// fieldName returns the property name of a class field definition.
func fieldName(sf *ast.SourceFile, field *sitter.Node) string {
	name := ast.ChildOfType(field, ast.NodePropertyIdentifier)
	return sf.Text(name)
}

// insertMetadataEntry queues insertion of `key: ['a', 'b'],` right after
// the metadata object's opening brace.
func insertMetadataEntry(sf *ast.SourceFile, object *sitter.Node, key string, names []string) {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	open := object.Child(0) // "{"
	sf.InsertAfter(open, fmt.Sprintf("\n  %s: [%s],", key, strings.Join(quoted, ", ")))
}
