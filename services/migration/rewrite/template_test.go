// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package rewrite

import (
	"strings"
	"testing"
)

func TestTemplate_PropertyBinding(t *testing.T) {
	got, _ := Template(`<img [src]="url">`)
	if got != `<img :src="url">` {
		t.Errorf("got %s", got)
	}
}

func TestTemplate_EventBinding(t *testing.T) {
	got, _ := Template(`<button (click)="save()">Save</button>`)
	if got != `<button @click="save()">Save</button>` {
		t.Errorf("got %s", got)
	}
}

func TestTemplate_BananaBox(t *testing.T) {
	got, _ := Template(`<input [(ngModel)]="name">`)
	if got != `<input v-model="name">` {
		t.Errorf("got %s", got)
	}
}

func TestTemplate_NgIf(t *testing.T) {
	got, _ := Template(`<div *ngIf="visible">x</div>`)
	if got != `<div v-if="visible">x</div>` {
		t.Errorf("got %s", got)
	}
}

func TestTemplate_NgForPlain(t *testing.T) {
	got, _ := Template(`<li *ngFor="let item of items">{{item}}</li>`)
	if got != `<li v-for="item in items">{{item}}</li>` {
		t.Errorf("got %s", got)
	}
}

func TestTemplate_NgForTrackBy(t *testing.T) {
	got, _ := Template(`<li *ngFor="let user of users; trackBy: trackById">{{user.name}}</li>`)
	want := `<li v-for="user in users" :key="trackById">{{user.name}}</li>`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestTemplate_NgSwitchWarnsAndLeavesText(t *testing.T) {
	in := `<div [ngSwitch]="mode"><p *ngSwitchCase="'a'">A</p></div>`
	got, warnings := Template(in)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if !strings.Contains(got, "*ngSwitchCase") {
		t.Errorf("switch cases must be left for manual rewrite: %s", got)
	}
}

func TestTemplate_VueLongFormNormalization(t *testing.T) {
	got, _ := Template(`<a v-bind:href="url" v-on:click="go">x</a>`)
	if got != `<a :href="url" @click="go">x</a>` {
		t.Errorf("got %s", got)
	}
}

func TestTemplate_Idempotent(t *testing.T) {
	in := `<li *ngFor="let u of users"><input [(ngModel)]="u.name" (blur)="save(u)"></li>`
	once, _ := Template(in)
	twice, _ := Template(once)
	if once != twice {
		t.Errorf("second pass changed output:\n%s\n%s", once, twice)
	}
}

func TestJSXEventName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"onClick", "@click", true},
		{"onMouseDown", "@mousedown", true},
		{"onDoubleClick", "@doubleclick", true},
		{"once", "", false},
		{"on", "", false},
		{"className", "", false},
	}
	for _, tc := range cases {
		got, ok := JSXEventName(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("JSXEventName(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestKebabCase(t *testing.T) {
	cases := map[string]string{
		"fontSize":        "font-size",
		"backgroundColor": "background-color",
		"color":           "color",
		"WebkitTransform": "-webkit-transform",
	}
	for in, want := range cases {
		if got := KebabCase(in); got != want {
			t.Errorf("KebabCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStyleProperty(t *testing.T) {
	if got := StyleProperty("fontSize", "12px"); got != "font-size: 12px" {
		t.Errorf("got %q", got)
	}
}
