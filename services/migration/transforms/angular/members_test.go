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
	"strings"
	"testing"
)

func TestTransformMembers_InputsAndOutputs(t *testing.T) {
	source := `@Component({
  selector: 'app-card',
})
export class CardComponent {
  @Input() title: string;
  @Input() subtitle: string;
  @Output() closed = new EventEmitter<void>();
}
`
	sf := mustParse(t, source, "card.ts")

	res := TransformMembers(context.Background(), sf, nil)
	if !res.Transformed || len(res.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	got := string(sf.Content())
	if !strings.Contains(got, "props: ['title', 'subtitle'],") {
		t.Errorf("props entry missing:\n%s", got)
	}
	if !strings.Contains(got, "emits: ['closed'],") {
		t.Errorf("emits entry missing:\n%s", got)
	}
	if strings.Contains(got, "@Input") || strings.Contains(got, "@Output") {
		t.Errorf("member decorators still present:\n%s", got)
	}
	if !strings.Contains(got, "title: string;") {
		t.Errorf("field declaration lost:\n%s", got)
	}
	if !strings.Contains(got, "closed = new EventEmitter<void>();") {
		t.Errorf("output field initializer lost:\n%s", got)
	}
}

func TestTransformMembers_NoComponentMetadata(t *testing.T) {
	source := "export class Directive {\n  @Input() value: string;\n}\n"
	sf := mustParse(t, source, "d.ts")

	if res := TransformMembers(context.Background(), sf, nil); res.Transformed {
		t.Errorf("class without @Component metadata must be untouched: %+v", res)
	}
	if got := string(sf.Content()); !strings.Contains(got, "@Input() value") {
		t.Errorf("decorator must survive:\n%s", got)
	}
}

func TestTransformMembers_Idempotent(t *testing.T) {
	source := `@Component({
  selector: 'x',
})
export class X {
  @Input() a: string;
}
`
	sf := mustParse(t, source, "x.ts")

	if res := TransformMembers(context.Background(), sf, nil); !res.Transformed {
		t.Fatalf("first run: %+v", res)
	}
	first := string(sf.Content())
	if res := TransformMembers(context.Background(), sf, nil); res.Transformed {
		t.Fatalf("second run must be a no-op: %+v", res)
	}
	if got := string(sf.Content()); got != first {
		t.Errorf("second run changed output:\n%s", got)
	}
}
