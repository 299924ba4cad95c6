package orchestrator_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

type stubRenderer struct {
	last render.Document
}

func (r *stubRenderer) Name() string        { return "stub" }
func (r *stubRenderer) ContentType() string { return "text/plain" }
func (r *stubRenderer) Render(_ context.Context, doc render.Document, _ render.RenderOptions) ([]byte, error) {
	r.last = doc
	return []byte(doc.Name), nil
}

func newStubOrchestrator(t *testing.T, renderer *stubRenderer, options ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	forms, err := definition.NewSet(definition.Form{Name: "merchant", Title: "商户", Groups: testsupport.MerchantGroups()})
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	base := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithForms(forms),
	}
	return orchestrator.New(append(base, options...)...)
}

func TestOrchestrator_RendersDefinition(t *testing.T) {
	renderer := &stubRenderer{}
	orch := newStubOrchestrator(t, renderer)

	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Form:   "merchant",
		Page:   model.PageContext{Updated: true},
		Values: testsupport.MerchantValues(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "merchant" {
		t.Fatalf("unexpected output %q", out)
	}
	if !renderer.last.Page.Updated || len(renderer.last.Elements) != 2 {
		t.Fatalf("unexpected document %+v", renderer.last)
	}
	if renderer.last.Values["name"] != "一号商户" {
		t.Fatalf("values not forwarded: %v", renderer.last.Values)
	}
}

func TestOrchestrator_DefaultsToCreatePage(t *testing.T) {
	renderer := &stubRenderer{}
	orch := newStubOrchestrator(t, renderer)
	if _, err := orch.Generate(context.Background(), orchestrator.Request{Form: "merchant"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !renderer.last.Page.Created {
		t.Fatalf("expected a create page")
	}
	if got := len(renderer.last.Elements[0].Children); got != 3 {
		t.Fatalf("expected the id field to be hidden, got %d fields", got)
	}
}

func TestOrchestrator_AppliesTransformer(t *testing.T) {
	renderer := &stubRenderer{}
	transformCalled := false
	orch := newStubOrchestrator(t, renderer, orchestrator.WithTransformer(
		orchestrator.TransformerFunc(func(_ context.Context, form *definition.Form) error {
			transformCalled = true
			form.Title = "patched"
			return nil
		}),
	))

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Form: "merchant"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !transformCalled || renderer.last.Title != "patched" {
		t.Fatalf("transformer mutation missing: %q", renderer.last.Title)
	}
}

func TestOrchestrator_TransformerErrorAborts(t *testing.T) {
	orch := newStubOrchestrator(t, &stubRenderer{}, orchestrator.WithTransformer(
		orchestrator.TransformerFunc(func(context.Context, *definition.Form) error {
			return errors.New("boom")
		}),
	))
	_, err := orch.Generate(context.Background(), orchestrator.Request{Form: "merchant"})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected transformer error, got %v", err)
	}
}

func TestOrchestrator_RequestErrors(t *testing.T) {
	orch := newStubOrchestrator(t, &stubRenderer{})
	ctx := context.Background()

	if _, err := orch.Generate(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected an error without form or source")
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{Form: "missing"}); !errors.Is(err, definition.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{Form: "merchant", Renderer: "pdf"}); err == nil {
		t.Fatalf("expected an unknown renderer error")
	}
	src := pkgopenapi.SourceFromFile(filepath.Join("testdata", "petstore.yaml"))
	if _, err := orch.Generate(ctx, orchestrator.Request{Source: src}); err == nil {
		t.Fatalf("expected an error without operation id")
	}
}

func TestOrchestrator_OpenAPIWithDefaultRenderer(t *testing.T) {
	orch := orchestrator.New()
	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Source:      pkgopenapi.SourceFromFile(filepath.Join("testdata", "petstore.yaml")),
		OperationID: "createPet",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{"<form", "新增宠物", `name="name"`, `value="dog"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}
