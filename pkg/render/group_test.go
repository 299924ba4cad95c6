package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/values"
)

func fieldKeys(el model.Element) []string {
	var out []string
	for _, child := range el.Children {
		out = append(out, child.Key)
	}
	return out
}

func TestRenderFieldGroupOrderAndSuppression(t *testing.T) {
	group := model.FieldGroup{
		Title: "基本信息",
		Fields: []model.FieldNode{
			{Name: model.Path{"id"}, CreateHidden: true},
			{Name: model.Path{"name"}},
			{Name: model.Path{"fee"}, ValueKind: model.KindFeeRate},
		},
	}

	el := RenderFieldGroup(group, 0, GroupOptions{Page: created()})
	if diff := cmp.Diff([]string{"name", "fee"}, fieldKeys(el)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if el.Title != "基本信息" || el.Kind != model.ElementGroup {
		t.Fatalf("unexpected group %+v", el)
	}

	el = RenderFieldGroup(group, 0, GroupOptions{Page: updated()})
	if diff := cmp.Diff([]string{"id", "name", "fee"}, fieldKeys(el)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFieldGroupDefaultsPrecedence(t *testing.T) {
	group := model.FieldGroup{
		DefaultWidth:    model.WidthLG,
		DefaultColProps: model.Props{"span": 4},
		Fields:          []model.FieldNode{{Name: model.Path{"a"}}},
	}

	el := RenderFieldGroup(group, 0, GroupOptions{})
	if el.Children[0].Width != model.WidthLG {
		t.Fatalf("expected group width, got %q", el.Children[0].Width)
	}
	el = RenderFieldGroup(group, 0, GroupOptions{DefaultWidth: model.WidthSM})
	if el.Children[0].Width != model.WidthSM {
		t.Fatalf("expected option width to win, got %q", el.Children[0].Width)
	}
	el = RenderFieldGroup(group, 0, GroupOptions{Grid: true})
	if el.Children[0].ColProps["span"] != 4 {
		t.Fatalf("expected group col props, got %v", el.Children[0].ColProps)
	}
}

func TestRenderFieldGroupTitleRender(t *testing.T) {
	group := model.FieldGroup{
		Title: "费率",
		TitleRender: func(title string, g model.FieldGroup, ctx model.RenderContext) string {
			if ctx.Page.Updated {
				return title + " (编辑)"
			}
			return title
		},
	}
	el := RenderFieldGroup(group, 0, GroupOptions{Page: updated()})
	if el.Title != "费率 (编辑)" {
		t.Fatalf("unexpected title %q", el.Title)
	}
}

func TestRenderGroupsRepeatableList(t *testing.T) {
	store := values.NewStore(map[string]any{
		"contacts": []any{
			map[string]any{"phone": "1"},
			map[string]any{"phone": "2"},
			map[string]any{"phone": "3"},
		},
	})
	lists := NewLists(store)
	groups := []model.FieldGroup{{
		Fields: []model.FieldNode{{
			Name:      model.Path{"contacts"},
			Label:     "联系人",
			SubGroups: []model.FieldGroup{{Fields: []model.FieldNode{{Name: model.Path{"phone"}, Required: true}}}},
		}},
	}}

	out := RenderGroups(groups, GroupOptions{Values: store, Actions: lists.Handle})
	list := out[0].Children[0]
	if list.Kind != model.ElementList || len(list.Children) != 3 {
		t.Fatalf("expected one item per entry, got %+v", list)
	}

	var handle ActionHandle
	seenKeys := map[string]bool{}
	for i, item := range list.Children {
		if item.Kind != model.ElementListItem || item.List.Index != i || item.List.Count != 3 {
			t.Fatalf("item %d has wrong list context %+v", i, item.List)
		}
		if handle == nil {
			handle = item.List.Actions
		} else if item.List.Actions != handle {
			t.Fatalf("item %d does not share the action handle", i)
		}
		seenKeys[item.Key] = true
		field := item.Children[0].Children[0]
		if field.Path.String() != "contacts."+string(rune('0'+i))+".phone" {
			t.Fatalf("unexpected nested path %q", field.Path)
		}
	}
	if len(seenKeys) != 3 {
		t.Fatalf("expected distinct item keys, got %v", seenKeys)
	}

	if err := handle.Add(map[string]any{"phone": "4"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	out = RenderGroups(groups, GroupOptions{Values: store, Actions: lists.Handle})
	if got := len(out[0].Children[0].Children); got != 4 {
		t.Fatalf("expected 4 items after add, got %d", got)
	}
}

func TestRenderListDefaults(t *testing.T) {
	node := model.FieldNode{SubGroups: []model.FieldGroup{{Fields: []model.FieldNode{{Name: model.Path{"x"}}}}}}

	el, _ := RenderField(node, 0, Options{})
	if el.Name.String() != DefaultListName || len(el.Children) != 0 {
		t.Fatalf("expected empty list named %q, got %+v", DefaultListName, el)
	}

	store := values.NewStore(map[string]any{"list": []any{map[string]any{}}})
	el, _ = RenderField(node, 0, Options{Values: store})
	if len(el.Children) != 1 || el.Children[0].List.Actions != nil {
		t.Fatalf("expected one item without actions, got %+v", el.Children)
	}
	if el.Children[0].Key == "" {
		t.Fatalf("expected derived item key")
	}
}
