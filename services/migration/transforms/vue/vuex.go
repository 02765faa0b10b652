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
	"fmt"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
)

// TransformStore rewrites Vuex store construction into the target store
// definition:
//
//	new Vuex.Store({state, mutations, actions, getters})
//	  → defineStore('main', {state, mutations, actions, getters})
//
// The options object passes through unchanged; mutation/action bodies keep
// their semantics in the target store. Module-nested stores are flagged
// for manual splitting.
func TransformStore(ctx context.Context, sf *ast.SourceFile, project registry.Project) registry.Result {
	return registry.Guard("vue/store", func() registry.Result {
		if project != nil && !project.Option("transformStores") {
			return registry.Result{}
		}
		var errs []string
		transformed := false

		for _, inst := range newExpressions(sf, "Vuex.Store") {
			obj := firstObjectArgument(sf, inst)
			if obj == nil {
				continue
			}
			if mods := sf.PropertyByKey(obj, "modules"); mods != nil {
				errs = append(errs, fmt.Sprintf(
					"store at line %d uses nested modules; split each module into its own defineStore",
					inst.StartPoint().Row+1))
			}
			sf.ReplaceRange(inst.StartByte(), obj.StartByte(), "defineStore('main', ")
			sf.ReplaceRange(obj.EndByte(), inst.EndByte(), ")")
			transformed = true
		}

		if !transformed {
			return registry.Result{Errors: errs}
		}
		if err := sf.Apply(ctx); err != nil {
			return registry.Result{Errors: append(errs, err.Error())}
		}
		return registry.Result{Transformed: true, Errors: errs}
	})
}
