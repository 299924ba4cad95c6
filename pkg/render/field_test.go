package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/values"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

var ruleCmp = cmpopts.IgnoreFields(model.Rule{}, "Check")

func created() *model.PageContext { return &model.PageContext{Created: true} }
func updated() *model.PageContext { return &model.PageContext{Updated: true} }

func TestRenderFieldHiddenOnCreate(t *testing.T) {
	node := model.FieldNode{Name: model.Path{"id"}, Label: "编号", CreateHidden: true}

	if _, ok := RenderField(node, 0, Options{Page: created()}); ok {
		t.Fatalf("expected node to be suppressed on create")
	}
	if _, ok := RenderField(node, 0, Options{}); ok {
		t.Fatalf("expected nil page to behave as a create page")
	}
	el, ok := RenderField(node, 0, Options{Page: updated()})
	if !ok || el.Kind != model.ElementField {
		t.Fatalf("expected element on update page, got %+v (%v)", el, ok)
	}
}

func TestRenderFieldDisabledOnUpdate(t *testing.T) {
	node := model.FieldNode{Name: model.Path{"code"}, EditDisabled: true}

	el, _ := RenderField(node, 0, Options{Page: updated()})
	if !el.Disabled {
		t.Fatalf("expected disabled on update page")
	}
	el, _ = RenderField(node, 0, Options{Page: created()})
	if el.Disabled {
		t.Fatalf("expected enabled on create page")
	}
}

func TestRenderFieldRuleDerivation(t *testing.T) {
	caller := model.Rule{Kind: model.RuleCustom, Validator: "phone"}

	cases := []struct {
		name string
		node model.FieldNode
		want []model.Rule
	}{
		{
			name: "required digit",
			node: model.FieldNode{Name: model.Path{"age"}, Label: "年龄", ValueKind: model.KindDigit, Required: true},
			want: []model.Rule{{Kind: model.RuleRequired, Message: "年龄 是必填字段"}},
		},
		{
			name: "required text keeps caller rules first",
			node: model.FieldNode{Name: model.Path{"name"}, Label: "名称", ValueKind: model.KindText, Required: true, Rules: []model.Rule{caller}},
			want: []model.Rule{
				caller,
				{Kind: model.RuleRequired, Message: "名称 是必填字段"},
				{Kind: model.RuleWhitespace},
			},
		},
		{
			name: "whitespace disabled",
			node: model.FieldNode{Name: model.Path{"memo"}, ValueKind: model.KindTextArea, Whitespace: new(bool)},
			want: []model.Rule{},
		},
		{
			name: "optional textarea",
			node: model.FieldNode{Name: model.Path{"memo"}, ValueKind: model.KindTextArea},
			want: []model.Rule{{Kind: model.RuleWhitespace}},
		},
		{
			name: "label derived from name",
			node: model.FieldNode{Name: model.Path{"merchant_name"}, ValueKind: model.KindSelect, Required: true},
			want: []model.Rule{{Kind: model.RuleRequired, Message: "Merchant Name 是必填字段"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el, ok := RenderField(tc.node, 0, Options{})
			if !ok {
				t.Fatalf("expected element")
			}
			if diff := cmp.Diff(tc.want, el.Rules, ruleCmp, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("rules mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderFieldDoesNotMutateNode(t *testing.T) {
	rules := []model.Rule{{Kind: model.RuleCustom, Validator: "x"}}
	node := model.FieldNode{Name: model.Path{"a"}, Required: true, Rules: rules[:1:1]}
	RenderField(node, 0, Options{})
	if len(node.Rules) != 1 || node.Width != "" {
		t.Fatalf("node was mutated: %+v", node)
	}
}

func TestRenderFieldLayoutDefaults(t *testing.T) {
	node := model.FieldNode{Name: model.Path{"a"}}

	el, _ := RenderField(node, 0, Options{})
	if el.Width != model.WidthMD {
		t.Fatalf("expected md width, got %q", el.Width)
	}
	el, _ = RenderField(model.FieldNode{Name: model.Path{"a"}, Width: model.WidthXL}, 0, Options{DefaultWidth: model.WidthSM})
	if el.Width != model.WidthXL {
		t.Fatalf("expected node width to win, got %q", el.Width)
	}

	el, _ = RenderField(model.FieldNode{Name: model.Path{"a"}, ColProps: model.Props{"offset": 1}}, 0, Options{Grid: true})
	wantCol := model.Props{"span": 8, "offset": 1}
	if diff := cmp.Diff(wantCol, el.ColProps); diff != "" {
		t.Fatalf("col props mismatch (-want +got):\n%s", diff)
	}
	wantField := model.Props{"style": map[string]any{"width": "100%"}}
	if diff := cmp.Diff(wantField, el.FieldProps); diff != "" {
		t.Fatalf("field props mismatch (-want +got):\n%s", diff)
	}
	if el.Width != "" {
		t.Fatalf("grid mode must not inject a width, got %q", el.Width)
	}

	el, _ = RenderField(model.FieldNode{Name: model.Path{"a"}, FieldProps: model.Props{"style": map[string]any{"width": "50%"}}}, 0, Options{Grid: true, DefaultColProps: model.Props{"span": 12}})
	if el.FieldProps["style"].(map[string]any)["width"] != "50%" || el.ColProps["span"] != 12 {
		t.Fatalf("expected node overrides, got %+v / %+v", el.FieldProps, el.ColProps)
	}
}

func TestRenderFieldCustomRendererWins(t *testing.T) {
	var seen model.FieldNode
	node := model.FieldNode{
		Name:      model.Path{"x"},
		ValueKind: model.KindDigit,
		Required:  true,
		SubGroups: []model.FieldGroup{
			{Fields: []model.FieldNode{{Name: model.Path{"y"}}}},
		},
		RenderCustom: func(n model.FieldNode, ctx model.RenderContext) model.Element {
			seen = n
			return model.Element{Custom: "banner"}
		},
	}

	el, ok := RenderField(node, 3, Options{Page: updated()})
	if !ok || el.Kind != model.ElementCustom || el.Custom != "banner" || el.Key != "x" {
		t.Fatalf("unexpected custom element %+v", el)
	}
	if len(seen.Rules) != 1 || seen.Width != model.WidthMD {
		t.Fatalf("custom renderer should receive the decorated node, got %+v", seen)
	}
}

func TestRenderFieldDependency(t *testing.T) {
	store := values.NewStore(map[string]any{"type": "cap", "other": 1})
	var calls int
	node := model.FieldNode{
		Name:            model.Path{"fee"},
		DependencyNames: []model.Path{{"type"}},
		RenderDependency: func(n model.FieldNode, deps map[string]any, ctx model.RenderContext) model.Element {
			calls++
			return model.Element{Kind: model.ElementField, Label: deps["type"].(string), Custom: len(deps)}
		},
	}

	el, _ := RenderField(node, 0, Options{Values: store})
	if el.Kind != model.ElementDependency || len(el.Children) != 1 {
		t.Fatalf("unexpected dependency element %+v", el)
	}
	if el.Children[0].Label != "cap" || el.Children[0].Custom != 1 {
		t.Fatalf("renderer should see exactly the dependency values, got %+v", el.Children[0])
	}

	if err := store.Set("type", "percentage"); err != nil {
		t.Fatalf("set: %v", err)
	}
	refreshed := Refresh([]model.Element{el}, store)
	if refreshed[0].Children[0].Label != "percentage" || calls != 2 {
		t.Fatalf("expected re-evaluation, got %+v after %d calls", refreshed[0].Children[0], calls)
	}
}

func TestRenderFieldUnknownKindFallsBack(t *testing.T) {
	var rec diag.Recorder
	el, _ := RenderField(model.FieldNode{Name: model.Path{"c"}, ValueKind: "selcet"}, 0, Options{Diagnostics: &rec})
	if el.Widget != widgets.WidgetText {
		t.Fatalf("expected text fallback, got %q", el.Widget)
	}
	events := rec.Events()
	if len(events) != 1 || events[0].Code != "widgets.unknown_kind" {
		t.Fatalf("expected one unknown kind diagnostic, got %+v", events)
	}
	if events[0].Fields["suggestion"] != "select" {
		t.Fatalf("expected suggestion, got %v", events[0].Fields)
	}

	el, _ = RenderField(model.FieldNode{Name: model.Path{"f"}, ValueKind: model.KindFeeRate}, 0, Options{Diagnostics: &rec})
	if el.Widget != widgets.WidgetFeeRate || len(rec.Events()) != 1 {
		t.Fatalf("expected fee-rate widget without diagnostics, got %q", el.Widget)
	}
}
