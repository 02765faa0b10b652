// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		path string
		want Language
	}{
		{"app.component.ts", LangTypeScript},
		{"App.tsx", LangTSX},
		{"index.js", LangJavaScript},
		{"index.jsx", LangJavaScript},
		{"util.mjs", LangJavaScript},
		{"Counter.vue", LangVue},
	}
	for _, tc := range cases {
		got, ok := DetectLanguage(tc.path)
		if !ok || got != tc.want {
			t.Errorf("DetectLanguage(%q) = %q, %v; want %q", tc.path, got, ok, tc.want)
		}
	}
	if _, ok := DetectLanguage("styles.css"); ok {
		t.Error("expected .css to be rejected as a script language")
	}
}

func TestParse_TypeScript(t *testing.T) {
	source := `export class AppComponent {
  title = 'app';
  ngOnInit(): void {}
}
`
	sf, err := Parse(context.Background(), []byte(source), "app.component.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sf.Close()

	if sf.Language() != LangTypeScript {
		t.Errorf("expected language %q, got %q", LangTypeScript, sf.Language())
	}
	if sf.Path() != "app.component.ts" {
		t.Errorf("expected path 'app.component.ts', got %q", sf.Path())
	}
	if sf.Root() == nil {
		t.Fatal("expected non-nil root")
	}
	if got := string(sf.Content()); got != source {
		t.Errorf("content round-trip mismatch:\n%s", got)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), []byte("class {{{"), "broken.ts")
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("expected ErrParseFailed, got %v", err)
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse(context.Background(), []byte{0xff, 0xfe, 0x00}, "bad.ts")
	if !errors.Is(err, ErrInvalidContent) {
		t.Fatalf("expected ErrInvalidContent, got %v", err)
	}
}

func TestParse_FileTooLarge(t *testing.T) {
	big := strings.Repeat("a", 64)
	_, err := Parse(context.Background(), []byte(big), "big.ts", WithMaxFileSize(32))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestParse_VueSFC(t *testing.T) {
	source := `<template>
  <div>{{ count }}</div>
</template>

<script>
export default {
  data() {
    return { count: 0 }
  }
}
</script>

<style scoped>
.counter { color: red; }
</style>
`
	sf, err := Parse(context.Background(), []byte(source), "Counter.vue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sf.Close()

	sfc := sf.SFC()
	if sfc == nil {
		t.Fatal("expected SFC blocks for a .vue file")
	}
	if sfc.Script == nil || sfc.Template == nil {
		t.Fatal("expected both script and template blocks")
	}
	if len(sfc.Styles) != 1 {
		t.Fatalf("expected 1 style block, got %d", len(sfc.Styles))
	}
	if !sfc.Styles[0].Scoped() {
		t.Error("expected style block to be scoped")
	}
	if sf.Root() == nil {
		t.Fatal("expected parsed script block")
	}
	if len(sf.Classes()) != 0 {
		t.Error("options object should not register as a class")
	}
}

func TestSplitSFC_MissingCloseTag(t *testing.T) {
	_, err := SplitSFC([]byte("<script>\nexport default {}\n"))
	if err == nil {
		t.Fatal("expected error for unterminated block")
	}
}

func TestSplitSFC_NestedTemplateNotMisparsed(t *testing.T) {
	source := `<template>
  <div>
    <template v-if="ok">inner</template>
  </div>
</template>
`
	blocks, err := SplitSFC([]byte(source))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner := source[blocks.Template.Start:blocks.Template.End]
	if !strings.Contains(inner, `<template v-if="ok">inner</template>`) {
		t.Errorf("nested template lost from block content:\n%s", inner)
	}
}
