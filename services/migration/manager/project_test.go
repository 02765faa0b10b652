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

func TestClassify(t *testing.T) {
	cases := map[string]FileKind{
		"app.ts":      KindScript,
		"App.tsx":     KindScript,
		"index.js":    KindScript,
		"Counter.vue": KindScript,
		"app.html":    KindTemplate,
		"app.scss":    KindStyle,
		"app.less":    KindStyle,
		"logo.svg":    KindOther,
	}
	for path, want := range cases {
		if got := classify(path); got != want {
			t.Errorf("classify(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestInitializeProject_DeterministicOrderAndParsing(t *testing.T) {
	source := writeTree(t, map[string]string{
		"b.ts": "const b = 2;\n",
		"a.ts": "const a = 1;\n",
	})

	opts := DefaultOptions()
	opts.Framework = FrameworkVue
	opts.SourcePath = source
	opts.DryRun = true

	project, err := InitializeProject(context.Background(), &opts, discardLogger())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	defer project.Close()

	files := project.Files()
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].RelPath != "a.ts" || files[1].RelPath != "b.ts" {
		t.Errorf("files not in path order: %s, %s", files[0].RelPath, files[1].RelPath)
	}
	for _, f := range files {
		if f.Source == nil || f.ParseErr != nil {
			t.Errorf("%s: not parsed: %v", f.RelPath, f.ParseErr)
		}
	}
}

func TestInitializeProject_MissingRootIsError(t *testing.T) {
	opts := DefaultOptions()
	opts.Framework = FrameworkVue
	opts.SourcePath = filepath.Join(t.TempDir(), "absent")
	opts.DryRun = true

	if _, err := InitializeProject(context.Background(), &opts, discardLogger()); err == nil {
		t.Fatal("expected error for unreadable source root")
	}
}

func TestProject_ReadAsset(t *testing.T) {
	source := writeTree(t, map[string]string{
		"src/app.component.ts": "export class App {}\n",
		"src/app.html":         "<div>x</div>",
	})

	opts := DefaultOptions()
	opts.Framework = FrameworkAngular
	opts.SourcePath = source
	opts.DryRun = true

	project, err := InitializeProject(context.Background(), &opts, discardLogger())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	defer project.Close()

	content, err := project.ReadAsset("src/app.component.ts", "./app.html")
	if err != nil {
		t.Fatalf("read asset: %v", err)
	}
	if string(content) != "<div>x</div>" {
		t.Errorf("unexpected asset content: %q", content)
	}

	if _, err := project.ReadAsset("src/app.component.ts", "../../../../etc/passwd"); err == nil {
		t.Error("expected rejection of a path escaping the source root")
	}
}

func TestRun_VueSFCTemplateAndStyleBlocksRewritten(t *testing.T) {
	source := writeTree(t, map[string]string{
		"C.vue": `<template>
  <a v-bind:href="url" v-on:click="go">x</a>
</template>

<script>
export default {
  mounted() {}
}
</script>

<style scoped>
.x { color: red; }
</style>
`,
	})
	out := filepath.Join(t.TempDir(), "out")

	opts := DefaultOptions()
	opts.Framework = FrameworkVue
	opts.SourcePath = source
	opts.OutputPath = out

	result, err := New(&opts, vueRegistry(), discardLogger()).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Files.Transformed != 1 {
		t.Fatalf("transformed = %d, want 1; warnings: %v", result.Files.Transformed, result.Warnings)
	}

	got, err := os.ReadFile(filepath.Join(out, "C.vue"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(got)
	if !strings.Contains(text, `<a :href="url" @click="go">x</a>`) {
		t.Errorf("template block not normalized:\n%s", text)
	}
	if !strings.Contains(text, "onMounted() {}") {
		t.Errorf("script block not transformed:\n%s", text)
	}
	if !strings.Contains(text, ".x { color: red; }") {
		t.Errorf("style block changed unexpectedly:\n%s", text)
	}
}
