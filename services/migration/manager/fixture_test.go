// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package manager

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixtureRoot = "../../../test/fixtures/sample-angular-app"

// End-to-end migration of the sample Angular fixture app.
func TestRun_SampleAngularApp(t *testing.T) {
	if _, err := os.Stat(fixtureRoot); err != nil {
		t.Skipf("fixture not available: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out")

	opts := DefaultOptions()
	opts.Framework = FrameworkAngular
	opts.SourcePath = fixtureRoot
	opts.OutputPath = out

	result, err := New(&opts, angularRegistry(), discardLogger()).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success: %+v", result)
	}
	if result.Files.Failed != 0 {
		t.Fatalf("failed files: %d, warnings: %v", result.Files.Failed, result.Warnings)
	}

	component := readOutput(t, out, "src/app/app.component.ts")
	for _, want := range []string{
		"selector: 'app-root'",
		"encapsulation: 'scoped'",
		"props: ['title'],",
		"emits: ['saved'],",
		"onMounted(): void {",
		"onUnmounted(): void {",
		`v-if="title"`,
		`v-for="item in items" :key="trackItem"`,
		"template: `",
		"styles: [`",
		":deep .list-item",
	} {
		if !strings.Contains(component, want) {
			t.Errorf("component output missing %q:\n%s", want, component)
		}
	}
	for _, gone := range []string{"templateUrl", "styleUrls", "@Input", "@Output", "ngOnInit"} {
		if strings.Contains(component, gone) {
			t.Errorf("component output still contains %q:\n%s", gone, component)
		}
	}

	routing := readOutput(t, out, "src/app/app-routing.module.ts")
	if !strings.Contains(routing, "defineRoutes(routes)") {
		t.Errorf("routing not rewritten:\n%s", routing)
	}
	if !strings.Contains(routing, "redirect: '/home'") {
		t.Errorf("redirectTo not renamed:\n%s", routing)
	}

	service := readOutput(t, out, "src/app/data.service.ts")
	if strings.Contains(service, "@Injectable") {
		t.Errorf("service decorator not stripped:\n%s", service)
	}
	if !strings.Contains(service, "export class DataService") {
		t.Errorf("service class lost:\n%s", service)
	}
}

func readOutput(t *testing.T, out, rel string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(content)
}
