// Package html renders element trees to an HTML fragment for previews. It
// reproduces structure and values, not a design system: every element gets
// a predictable class and data-key so hosts can style or script it.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "html"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS  fs.FS
	templates   rendertemplate.TemplateRenderer
	policy      *bluemonday.Policy
	diagnostics diag.Sink
}

// WithTemplatesFS replaces the embedded templates.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithTitlePolicy sets the sanitiser applied to group titles. Titles come
// from title renderers and may carry markup.
func WithTitlePolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithDiagnostics sets the sink for values the renderer cannot display.
func WithDiagnostics(sink diag.Sink) Option {
	return func(cfg *config) {
		cfg.diagnostics = sink
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	policy      *bluemonday.Policy
	diagnostics diag.Sink
}

var _ render.Renderer = (*Renderer)(nil)

// New builds the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.UGCPolicy()
	}

	templates := cfg.templates
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure templates: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:   templates,
		policy:      cfg.policy,
		diagnostics: diag.OrNop(cfg.diagnostics),
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the document as a <form> fragment.
func (r *Renderer) Render(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	w := &writer{renderer: r, doc: doc, options: options}
	body, err := w.elements(ctx, doc.Elements)
	if err != nil {
		return nil, err
	}

	submit := options.SubmitText
	if submit == "" {
		submit = "提交"
	}
	out, err := r.templates.RenderTemplate("form", map[string]any{
		"name":        doc.Name,
		"title":       doc.Title,
		"subtitle":    doc.Subtitle,
		"page":        map[string]any{"created": doc.Page.Created, "updated": doc.Page.Updated},
		"action":      options.Action,
		"submit_text": submit,
		"body":        body,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render form: %w", err)
	}
	return []byte(strings.TrimSpace(out) + "\n"), nil
}
