// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package registry holds the named transform catalog of the migration
// engine. Execution order is registration order; that ordering is a
// first-class contract (later transforms observe the tree as mutated by
// earlier ones) and is covered by tests.
package registry

import (
	"context"
	"fmt"
	"runtime"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
)

// Project is the read-only view transforms get of the enclosing migration
// project. It is defined here (and implemented by the manager) so the
// transform packages do not depend on the manager.
type Project interface {
	// Framework is the source framework being migrated ("angular", "react", "vue").
	Framework() string

	// ReadAsset reads a non-script asset (template, stylesheet) by path
	// relative to the directory of the given source file. Used by the
	// Angular component transform to inline templateUrl/styleUrls.
	ReadAsset(fromFile, relPath string) ([]byte, error)

	// Option returns a per-run boolean toggle ("transformTemplates",
	// "transformHooks", "transformVuex", ...). Unknown names are false.
	Option(name string) bool
}

// Result is the outcome of applying one transform to one file.
type Result struct {
	// Transformed is true when the transform queued and applied at least
	// one edit.
	Transformed bool

	// Errors are recognizer-level failures. They do not fail the file;
	// the manager aggregates them as warnings.
	Errors []string
}

// TransformFunc inspects and possibly mutates one source file's tree.
//
// A transform must leave the tree syntactically valid (ast.Apply enforces
// this) and must be idempotent on its recognizer: re-running it on its own
// output must not match again.
type TransformFunc func(ctx context.Context, sf *ast.SourceFile, project Project) Result

// Descriptor is a named transform. Immutable once registered.
type Descriptor struct {
	Name  string
	Apply TransformFunc
}

// Registry is an ordered catalog of transforms. Not safe for concurrent
// mutation; the manager builds it once before executing.
type Registry struct {
	ordered []Descriptor
	byName  map[string]int
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a transform at the end of the execution order.
//
// Duplicate names are an error rather than a silent overwrite: silently
// replacing an earlier registration would also silently move its position
// in the execution order. Plugins that intend to override a built-in must
// use Replace.
func (r *Registry) Register(name string, fn TransformFunc) error {
	if name == "" {
		return fmt.Errorf("register: name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("register %q: fn must not be nil", name)
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("register %q: already registered", name)
	}
	r.byName[name] = len(r.ordered)
	r.ordered = append(r.ordered, Descriptor{Name: name, Apply: fn})
	return nil
}

// MustRegister is Register for package-level transform tables; it panics
// on error.
func (r *Registry) MustRegister(name string, fn TransformFunc) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Replace swaps the implementation of an already-registered transform,
// keeping its position in the execution order. It errors when the name is
// unknown; Replace never extends the catalog.
func (r *Registry) Replace(name string, fn TransformFunc) error {
	idx, exists := r.byName[name]
	if !exists {
		return fmt.Errorf("replace %q: not registered", name)
	}
	if fn == nil {
		return fmt.Errorf("replace %q: fn must not be nil", name)
	}
	r.ordered[idx] = Descriptor{Name: name, Apply: fn}
	return nil
}

// Names returns the transform names in execution order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.ordered))
	for i, d := range r.ordered {
		out[i] = d.Name
	}
	return out
}

// Transforms returns the descriptors in execution order. Callers must not
// mutate the returned slice.
func (r *Registry) Transforms() []Descriptor { return r.ordered }

// Len returns the number of registered transforms.
func (r *Registry) Len() int { return len(r.ordered) }

// Guard wraps a transform body so a panicking recognizer is reported as a
// recognizer-level error instead of failing the file.
//
// Every built-in transform runs its body through Guard; custom rule
// transforms are compiled through it too.
func Guard(name string, body func() Result) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			buf := make([]byte, 2048)
			n := runtime.Stack(buf, false)
			res = Result{Errors: []string{
				fmt.Sprintf("%s: recovered: %v\n%s", name, rec, buf[:n]),
			}}
		}
	}()
	return body()
}
