// Package formkit is the convenience entry point: load definitions, render
// them to HTML or prompt them in a terminal.
package formkit

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
)

// RenderOptions describes per-request data output renderers can use, such as
// server-side validation errors.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// LoadDefinitions reads every JSON and YAML definition file in fsys.
func LoadDefinitions(fsys fs.FS, options ...definition.Option) (*definition.Set, error) {
	return definition.Load(fsys, options...)
}

// NewLoader builds an OpenAPI document loader.
func NewLoader(options ...pkgopenapi.LoaderOption) *pkgopenapi.Loader {
	return pkgopenapi.NewLoader(options...)
}

// GenerateHTML renders a named definition from forms as an HTML fragment.
func GenerateHTML(ctx context.Context, forms *definition.Set, name string, page model.PageContext, values map[string]any, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithForms(forms)}, options...)...)
	return gen.Generate(ctx, orchestrator.Request{
		Form:     name,
		Renderer: html.Name,
		Page:     page,
		Values:   values,
	})
}

// GenerateHTMLFromOpenAPI renders the request body of an OpenAPI operation
// as an HTML fragment.
func GenerateHTMLFromOpenAPI(ctx context.Context, source pkgopenapi.Source, operationID string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
		Renderer:    html.Name,
	})
}

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
