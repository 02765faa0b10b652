// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package vue rewrites Vue Options-API sources into target idioms. Vue is
// the closest source framework to the target, so most rewrites are
// container-level: option sections keep their values and only the
// surrounding shape changes.
package vue

import "github.com/AleutianAI/lumen-migrate/services/migration/registry"

// LifecycleRenames maps Vue Options-API lifecycle hooks to target hook
// names. beforeCreate folds into onBeforeMount and created into onMounted;
// the target has no pre-mount instance phase.
var LifecycleRenames = map[string]string{
	"beforeCreate":  "onBeforeMount",
	"created":       "onMounted",
	"beforeMount":   "onBeforeMount",
	"mounted":       "onMounted",
	"beforeUpdate":  "onBeforeUpdate",
	"updated":       "onUpdated",
	"beforeDestroy": "onBeforeUnmount",
	"destroyed":     "onUnmounted",
	"activated":     "onActivated",
	"deactivated":   "onDeactivated",
}

// OptionSections are the Options-API keys recognized for container-level
// normalization. Values pass through unchanged.
var OptionSections = map[string]bool{
	"data":       true,
	"computed":   true,
	"watch":      true,
	"methods":    true,
	"directives": true,
	"filters":    true,
	"mixins":     true,
	"provide":    true,
	"inject":     true,
	"setup":      true,
}

// RegisterAll registers the Vue transform set. Order matters: lifecycle
// renames run before section normalization so the sections pass sees
// target hook names, and the store rewrite runs last.
func RegisterAll(r *registry.Registry) {
	r.MustRegister("vue/lifecycle", TransformLifecycle)
	r.MustRegister("vue/options", TransformOptions)
	r.MustRegister("vue/store", TransformStore)
}
