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
	"testing"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
)

func mustParse(t *testing.T, source, path string) *ast.SourceFile {
	t.Helper()
	sf, err := ast.Parse(context.Background(), []byte(source), path)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	t.Cleanup(sf.Close)
	return sf
}

// One dedicated test per lifecycle pair; the rename table is exhaustive
// and each entry must hold exactly.
func TestTransformLifecycle_Pairs(t *testing.T) {
	pairs := []struct{ old, new string }{
		{"ngOnInit", "onMounted"},
		{"ngOnDestroy", "onUnmounted"},
		{"ngOnChanges", "onUpdated"},
		{"ngDoCheck", "onCheck"},
		{"ngAfterViewInit", "onViewMounted"},
		{"ngAfterViewChecked", "onViewUpdated"},
		{"ngAfterContentInit", "onContentMounted"},
		{"ngAfterContentChecked", "onContentUpdated"},
	}
	for _, p := range pairs {
		t.Run(p.old, func(t *testing.T) {
			source := fmt.Sprintf("export class C {\n  %s(): void {}\n}\n", p.old)
			sf := mustParse(t, source, "c.ts")

			res := TransformLifecycle(context.Background(), sf, nil)
			if !res.Transformed || len(res.Errors) != 0 {
				t.Fatalf("unexpected result: %+v", res)
			}
			got := string(sf.Content())
			if !strings.Contains(got, p.new+"(): void {}") {
				t.Errorf("expected %s, got:\n%s", p.new, got)
			}
			if strings.Contains(got, p.old) {
				t.Errorf("old name %s still present:\n%s", p.old, got)
			}
		})
	}
}

func TestTransformLifecycle_PropagatesThisCalls(t *testing.T) {
	source := `export class C {
  ngOnInit(): void {}
  restart(): void {
    this.ngOnInit();
  }
}
`
	sf := mustParse(t, source, "c.ts")

	res := TransformLifecycle(context.Background(), sf, nil)
	if !res.Transformed {
		t.Fatalf("unexpected result: %+v", res)
	}
	got := string(sf.Content())
	if !strings.Contains(got, "this.onMounted();") {
		t.Errorf("call site not renamed:\n%s", got)
	}
	if strings.Contains(got, "ngOnInit") {
		t.Errorf("old name still present:\n%s", got)
	}
}

func TestTransformLifecycle_Idempotent(t *testing.T) {
	sf := mustParse(t, "export class C {\n  ngOnDestroy(): void {}\n}\n", "c.ts")

	if res := TransformLifecycle(context.Background(), sf, nil); !res.Transformed {
		t.Fatalf("first run: %+v", res)
	}
	first := string(sf.Content())
	if res := TransformLifecycle(context.Background(), sf, nil); res.Transformed {
		t.Fatalf("second run must be a no-op: %+v", res)
	}
	if got := string(sf.Content()); got != first {
		t.Errorf("second run changed output:\n%s", got)
	}
}

func TestTransformLifecycle_NoLifecycleMethods(t *testing.T) {
	sf := mustParse(t, "export class C {\n  load(): void {}\n}\n", "c.ts")
	if res := TransformLifecycle(context.Background(), sf, nil); res.Transformed {
		t.Errorf("nothing to rename, got %+v", res)
	}
}
