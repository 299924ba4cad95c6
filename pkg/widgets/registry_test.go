package widgets

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	props := model.Props{"widget": "custom-switch"}

	if got, ok := reg.Resolve(model.KindSwitch, props); !ok || got.Name != "custom-switch" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got.Name, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		kind   model.ValueKind
		expect string
	}{
		{"", WidgetText},
		{model.KindText, WidgetText},
		{model.KindTextArea, WidgetTextArea},
		{model.KindDateRange, WidgetDateRange},
		{model.KindTreeSelect, WidgetTreeSelect},
		{model.KindUploadButton, WidgetUploadButton},
		{model.KindFeeRate, WidgetFeeRate},
	}
	for _, tc := range cases {
		got, ok := reg.Resolve(tc.kind, nil)
		if !ok {
			t.Fatalf("%q: expected kind to resolve", tc.kind)
		}
		if got.Name != tc.expect || got.Fallback {
			t.Fatalf("%q: expected %q, got %+v", tc.kind, tc.expect, got)
		}
	}
}

func TestResolve_UnknownFallsBackToText(t *testing.T) {
	reg := NewRegistry()
	got, ok := reg.Resolve("colorPicker", nil)
	if ok {
		t.Fatalf("expected unknown kind to report ok=false")
	}
	if got.Name != WidgetText || !got.Fallback || got.Kind != "colorPicker" {
		t.Fatalf("unexpected fallback %+v", got)
	}
}

func TestResolve_PriorityOrdering(t *testing.T) {
	reg := NewRegistry()
	reg.Register("rich-text", 10, func(kind model.ValueKind, props model.Props) bool {
		return kind == model.KindTextArea && props["rich"] == true
	})

	if got, _ := reg.Resolve(model.KindTextArea, model.Props{"rich": true}); got.Name != "rich-text" {
		t.Fatalf("expected higher priority matcher, got %q", got.Name)
	}
	if got, _ := reg.Resolve(model.KindTextArea, nil); got.Name != WidgetTextArea {
		t.Fatalf("expected builtin when matcher declines, got %q", got.Name)
	}
}

func TestRegisterKindAndSuggest(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterKind("color", "color-picker", 0)

	if got, ok := reg.Resolve("color", nil); !ok || got.Name != "color-picker" {
		t.Fatalf("expected custom kind, got %+v (%v)", got, ok)
	}
	if got, ok := reg.Suggest("selcet"); !ok || got != model.KindSelect {
		t.Fatalf("expected select suggestion, got %q (%v)", got, ok)
	}
	if _, ok := reg.Suggest("zzzzzzzzzzzz"); ok {
		t.Fatalf("expected no suggestion for distant input")
	}
}
