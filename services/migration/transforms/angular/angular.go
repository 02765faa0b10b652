// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package angular is the Angular transformer set: recognizers and rewrite
// rules for decorator metadata, lifecycle methods, decorated members,
// dependency injection, and routing.
package angular

import (
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
)

// LifecycleRenames maps Angular lifecycle methods to target hook names.
// The table is exhaustive over Angular's class lifecycle interface.
var LifecycleRenames = map[string]string{
	"ngOnInit":              "onMounted",
	"ngOnDestroy":           "onUnmounted",
	"ngOnChanges":           "onUpdated",
	"ngDoCheck":             "onCheck",
	"ngAfterViewInit":       "onViewMounted",
	"ngAfterViewChecked":    "onViewUpdated",
	"ngAfterContentInit":    "onContentMounted",
	"ngAfterContentChecked": "onContentUpdated",
}

// EncapsulationValues maps ViewEncapsulation enum members to target
// encapsulation strings.
var EncapsulationValues = map[string]string{
	"ViewEncapsulation.Emulated":  "scoped",
	"ViewEncapsulation.Native":    "shadow",
	"ViewEncapsulation.ShadowDom": "shadow",
	"ViewEncapsulation.None":      "none",
}

// RegisterAll registers the Angular transforms in their documented
// execution order. Component metadata runs first so later transforms see
// the normalized metadata object; lifecycle renames run before member
// rewrites so call-site propagation is not confused by removed decorators.
func RegisterAll(r *registry.Registry) {
	r.MustRegister("angular/component", TransformComponent)
	r.MustRegister("angular/lifecycle", TransformLifecycle)
	r.MustRegister("angular/members", TransformMembers)
	r.MustRegister("angular/injectable", TransformInjectable)
	r.MustRegister("angular/routing", TransformRouting)
}
