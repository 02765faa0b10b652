// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
)

func writeRuleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rule file: %v", err)
	}
	return path
}

func TestLoadRuleFile_AppliesRulesInOrder(t *testing.T) {
	path := writeRuleFile(t, `
name: legacy-renames
rules:
  - pattern: oldService
    replace: newService
  - pattern: newService\.init
    replace: newService.setup
`)
	desc, err := LoadRuleFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if desc.Name != "legacy-renames" {
		t.Errorf("unexpected name %q", desc.Name)
	}

	sf, err := ast.Parse(context.Background(), []byte("oldService.init();\n"), "a.ts")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer sf.Close()

	res := desc.Apply(context.Background(), sf, nil)
	if !res.Transformed || len(res.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := string(sf.Content()); got != "newService.setup();\n" {
		t.Errorf("unexpected content: %s", got)
	}
}

func TestLoadRuleFile_LanguageFilter(t *testing.T) {
	path := writeRuleFile(t, `
name: vue-only
languages: [vue]
rules:
  - pattern: foo
    replace: bar
`)
	desc, err := LoadRuleFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	sf, err := ast.Parse(context.Background(), []byte("foo();\n"), "a.ts")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer sf.Close()

	res := desc.Apply(context.Background(), sf, nil)
	if res.Transformed {
		t.Error("rule restricted to vue must not touch a .ts file")
	}
	if got := string(sf.Content()); got != "foo();\n" {
		t.Errorf("content changed: %s", got)
	}
}

func TestLoadRuleFile_NoMatchIsNotTransformed(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  - pattern: absent
    replace: x
`)
	desc, err := LoadRuleFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if desc.Name != "rules" {
		t.Errorf("expected name derived from filename, got %q", desc.Name)
	}

	sf, err := ast.Parse(context.Background(), []byte("const a = 1;\n"), "a.ts")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer sf.Close()

	if res := desc.Apply(context.Background(), sf, nil); res.Transformed {
		t.Error("no-op rule reported transformed")
	}
}

func TestLoadRuleFile_BadPatternIsError(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  - pattern: "(["
    replace: x
`)
	if _, err := LoadRuleFile(path); err == nil || !strings.Contains(err.Error(), "rule[0]") {
		t.Fatalf("expected compile error naming the rule, got %v", err)
	}
}

func TestLoadRuleFile_MissingFileIsError(t *testing.T) {
	if _, err := LoadRuleFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRuleFile_RewriteBreakingSyntaxIsRejected(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  - pattern: "const"
    replace: "cons t"
`)
	desc, err := LoadRuleFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	sf, err := ast.Parse(context.Background(), []byte("const a = 1;\n"), "a.ts")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer sf.Close()

	res := desc.Apply(context.Background(), sf, nil)
	if res.Transformed {
		t.Error("syntax-breaking rewrite must not report transformed")
	}
	if len(res.Errors) == 0 {
		t.Error("expected a reparse error")
	}
	if got := string(sf.Content()); got != "const a = 1;\n" {
		t.Errorf("content not rolled back: %s", got)
	}
}
