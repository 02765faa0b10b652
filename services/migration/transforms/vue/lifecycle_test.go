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

// One dedicated test per lifecycle pair.
func TestTransformLifecycle_Pairs(t *testing.T) {
	pairs := []struct{ old, new string }{
		{"beforeCreate", "onBeforeMount"},
		{"created", "onMounted"},
		{"beforeMount", "onBeforeMount"},
		{"mounted", "onMounted"},
		{"beforeUpdate", "onBeforeUpdate"},
		{"updated", "onUpdated"},
		{"beforeDestroy", "onBeforeUnmount"},
		{"destroyed", "onUnmounted"},
		{"activated", "onActivated"},
		{"deactivated", "onDeactivated"},
	}
	for _, p := range pairs {
		t.Run(p.old, func(t *testing.T) {
			source := fmt.Sprintf("export default {\n  %s() {}\n}\n", p.old)
			sf := mustParse(t, source, "c.ts")

			res := TransformLifecycle(context.Background(), sf, nil)
			if !res.Transformed || len(res.Errors) != 0 {
				t.Fatalf("unexpected result: %+v", res)
			}
			got := string(sf.Content())
			if !strings.Contains(got, p.new+"() {}") {
				t.Errorf("expected %s, got:\n%s", p.new, got)
			}
		})
	}
}

func TestTransformLifecycle_InsideSFC(t *testing.T) {
	source := `<template>
  <div>{{ n }}</div>
</template>

<script>
export default {
  mounted() {
    this.n = 1
  }
}
</script>
`
	sf := mustParse(t, source, "C.vue")

	res := TransformLifecycle(context.Background(), sf, nil)
	if !res.Transformed {
		t.Fatalf("unexpected result: %+v", res)
	}
	got := string(sf.Content())
	if !strings.Contains(got, "onMounted() {") {
		t.Errorf("hook not renamed inside SFC:\n%s", got)
	}
	if !strings.HasPrefix(got, "<template>") {
		t.Errorf("template block disturbed:\n%s", got)
	}
}

// created and mounted both map to onMounted; their bodies merge into one
// hook, created's statements first.
func TestTransformLifecycle_CreatedAndMountedMerge(t *testing.T) {
	source := `export default {
  created() {
    this.setup()
  },
  mounted() {
    this.fetch()
  }
}
`
	sf := mustParse(t, source, "c.ts")

	res := TransformLifecycle(context.Background(), sf, nil)
	if !res.Transformed || len(res.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	got := string(sf.Content())
	if strings.Count(got, "onMounted(") != 1 {
		t.Fatalf("expected a single merged onMounted hook:\n%s", got)
	}
	setup := strings.Index(got, "this.setup()")
	fetch := strings.Index(got, "this.fetch()")
	if setup == -1 || fetch == -1 {
		t.Fatalf("merged hook lost a statement:\n%s", got)
	}
	if setup > fetch {
		t.Errorf("created statements must precede mounted statements:\n%s", got)
	}
	if strings.Contains(got, "created()") || strings.Contains(got, " mounted()") {
		t.Errorf("source hook entries not removed:\n%s", got)
	}
}

func TestTransformLifecycle_NewVueArgument(t *testing.T) {
	source := "new Vue({\n  created() {}\n});\n"
	sf := mustParse(t, source, "main.ts")

	res := TransformLifecycle(context.Background(), sf, nil)
	if !res.Transformed {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := string(sf.Content()); !strings.Contains(got, "onMounted() {}") {
		t.Errorf("created not renamed:\n%s", got)
	}
}

func TestTransformLifecycle_Idempotent(t *testing.T) {
	sf := mustParse(t, "export default {\n  destroyed() {}\n}\n", "c.ts")

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
