package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI document loader.
func WithLoader(loader *pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithForms registers the named definitions requests can refer to.
func WithForms(forms *definition.Set) Option {
	return func(o *Orchestrator) {
		o.forms = forms
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithRenderOptions sets the layout defaults, widget resolver and
// diagnostics sink used for every request.
func WithRenderOptions(opts render.Options) Option {
	return func(o *Orchestrator) {
		o.base = opts
	}
}

// WithTransformer registers a Transformer that can mutate forms after they
// are resolved but before they are rendered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithOpenAPIOptions configures the OpenAPI to field-group conversion.
func WithOpenAPIOptions(opts ...pkgopenapi.Option) Option {
	return func(o *Orchestrator) {
		o.openapiOptions = append(o.openapiOptions, opts...)
	}
}

// Orchestrator coordinates resolving a form and rendering it. It defaults to
// the HTML renderer while remaining open to dependency injection.
type Orchestrator struct {
	loader          *pkgopenapi.Loader
	forms           *definition.Set
	registry        *render.Registry
	defaultRenderer string
	base            render.Options
	transformer     Transformer
	openapiOptions  []pkgopenapi.Option
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes which form to render and how. Exactly one of Form or
// Source must be set.
type Request struct {
	// Form names a definition registered through WithForms.
	Form string

	// Source and OperationID select an OpenAPI operation whose request body
	// becomes the form.
	Source      pkgopenapi.Source
	OperationID string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Page is the screen mode. The zero value renders a create page.
	Page model.PageContext

	// Values prefill the form.
	Values map[string]any

	// RenderOptions carries per-request instructions such as the submit
	// target or server-side errors that renderers can surface.
	RenderOptions render.RenderOptions
}

// Generate resolves the requested form, renders its field tree and returns
// the output renderer's bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := o.applyTransformer(ctx, &form); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	page := req.Page
	if !page.Created && !page.Updated {
		page.Created = true
	}
	doc := form.Document(page, req.Values, o.base)

	output, err := renderer.Render(ctx, doc, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveForm(ctx context.Context, req Request) (definition.Form, error) {
	switch {
	case req.Form != "" && req.Source != nil:
		return definition.Form{}, errors.New("orchestrator: form and source are mutually exclusive")
	case req.Form != "":
		if o.forms == nil {
			return definition.Form{}, errors.New("orchestrator: no definitions registered")
		}
		form, err := o.forms.Form(req.Form)
		if err != nil {
			return definition.Form{}, fmt.Errorf("orchestrator: %w", err)
		}
		return form, nil
	case req.Source != nil:
		if req.OperationID == "" {
			return definition.Form{}, errors.New("orchestrator: operation id is required")
		}
		data, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return definition.Form{}, fmt.Errorf("orchestrator: load document: %w", err)
		}
		groups, err := pkgopenapi.GroupsFromOperation(ctx, data, req.OperationID, o.openapiOptions...)
		if err != nil {
			return definition.Form{}, fmt.Errorf("orchestrator: build groups: %w", err)
		}
		return definition.Form{
			Name:   req.OperationID,
			Groups: groups,
			Source: req.Source.Location(),
		}, nil
	default:
		return definition.Form{}, errors.New("orchestrator: form or source is required")
	}
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *definition.Form) error {
	if o.transformer == nil || form == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = pkgopenapi.NewLoader()
	}
	if o.registry == nil {
		renderer, err := html.New(html.WithDiagnostics(o.base.Diagnostics))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry, o.initialiseErr = render.NewRegistry(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
