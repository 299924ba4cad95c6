package gotemplate

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	files := fstest.MapFS{
		"field.tpl":  {Data: []byte(`<label style="width:{{ width|px }}">{{ label|trim }}</label>`)},
		"global.tpl": {Data: []byte(`{{ site.name }}`)},
	}
	engine, err := New(append([]Option{WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestRenderTemplate(t *testing.T) {
	engine := newEngine(t)
	var buf bytes.Buffer
	got, err := engine.RenderTemplate("field", map[string]any{"label": " 名称 ", "width": "md"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<label style="width:328px">名称</label>`
	if got != want || buf.String() != want {
		t.Fatalf("expected %q, got %q (writer %q)", want, got, buf.String())
	}
}

func TestRenderTemplateMissing(t *testing.T) {
	if _, err := newEngine(t).RenderTemplate("nope", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestGlobalContext(t *testing.T) {
	engine := newEngine(t, WithGlobalData(map[string]any{"site": map[string]any{"name": "formkit"}}))
	got, err := engine.RenderTemplate("global.tpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "formkit" {
		t.Fatalf("expected global value, got %q", got)
	}
}

func TestRenderStringFilters(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString(`{{ a|colspan }} {{ b|colspan }} {{ c|colspan }} {{ w|px }}|`, map[string]any{
		"a": 8, "b": 12, "c": 0, "w": "wide",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "33.3333% 50% 100% |"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderStringStruct(t *testing.T) {
	type view struct {
		Title string `json:"title"`
	}
	got, err := newEngine(t).RenderString(`{{ title }}`, view{Title: "费率"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "费率" {
		t.Fatalf("expected struct fields by json name, got %q", got)
	}
}

func TestRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	shout := func(input any, _ any) (any, error) {
		return strings.ToUpper(input.(string)) + "!", nil
	}
	if err := engine.RegisterFilter("formkit_shout", shout); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.RegisterFilter("formkit_shout", shout); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
	got, err := engine.RenderString(`{{ name|formkit_shout }}`, map[string]any{"name": "ada"})
	if err != nil || got != "ADA!" {
		t.Fatalf("expected ADA!, got %q (%v)", got, err)
	}

	boom := errors.New("boom")
	_ = engine.RegisterFilter("formkit_fail", func(any, any) (any, error) { return nil, boom })
	if _, err := engine.RenderString(`{{ name|formkit_fail }}`, map[string]any{"name": "x"}); err == nil {
		t.Fatalf("expected filter error")
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
