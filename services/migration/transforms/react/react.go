// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package react is the React transformer set: recognizers and rewrite
// rules for class lifecycle methods, hooks, and JSX attributes.
package react

import (
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
)

// LifecycleRenames maps React class lifecycle methods to target hook names.
var LifecycleRenames = map[string]string{
	"componentDidMount":       "onMounted",
	"componentWillUnmount":    "onUnmounted",
	"componentDidUpdate":      "onUpdated",
	"shouldComponentUpdate":   "shouldUpdate",
	"componentDidCatch":       "onErrorCaptured",
	"getSnapshotBeforeUpdate": "onBeforeUpdate",
}

// AttributeRenames maps JSX attribute names with direct target
// equivalents. Event handlers (onX) are handled separately because the
// rename is positional, not a table lookup.
var AttributeRenames = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

// RegisterAll registers the React transforms in their documented
// execution order. Hooks run before JSX so `setX(...)` rewrites inside
// handlers are done before attribute values are inspected.
func RegisterAll(r *registry.Registry) {
	r.MustRegister("react/lifecycle", TransformLifecycle)
	r.MustRegister("react/hooks", TransformHooks)
	r.MustRegister("react/jsx", TransformJSX)
}
