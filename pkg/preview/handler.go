// Package preview serves rendered form definitions over HTTP.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
)

// ValuesFunc supplies the values an update preview is rendered with.
type ValuesFunc func(ctx context.Context, form string) (map[string]any, error)

// Option configures the handler.
type Option func(*handler)

// WithRenderOptions sets the layout defaults forms fall back to.
func WithRenderOptions(opts render.Options) Option {
	return func(h *handler) {
		h.base = opts
	}
}

// WithValues supplies update-page values.
func WithValues(fn ValuesFunc) Option {
	return func(h *handler) {
		h.values = fn
	}
}

// WithDiagnostics receives render diagnostics and request failures.
func WithDiagnostics(sink diag.Sink) Option {
	return func(h *handler) {
		h.diagnostics = sink
	}
}

type handler struct {
	forms       *definition.Set
	renderer    render.Renderer
	base        render.Options
	values      ValuesFunc
	diagnostics diag.Sink
}

// NewHandler routes:
//
//	GET /forms                          names of the loaded forms
//	GET /forms/{name}?mode=create|update rendered form
func NewHandler(forms *definition.Set, renderer render.Renderer, opts ...Option) http.Handler {
	h := &handler{forms: forms, renderer: renderer}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.diagnostics = diag.OrNop(h.diagnostics)
	if h.base.Diagnostics == nil {
		h.base.Diagnostics = h.diagnostics
	}

	r := chi.NewRouter()
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{name}", h.show)
	})
	return r
}

func (h *handler) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"forms": h.forms.Names()})
}

func (h *handler) show(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	form, err := h.forms.Form(name)
	if err != nil {
		if errors.Is(err, definition.ErrNotFound) {
			writeError(w, http.StatusNotFound, "FORM_NOT_FOUND", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "FORM_LOOKUP", err.Error())
		return
	}

	var page model.PageContext
	switch mode := r.URL.Query().Get("mode"); mode {
	case "", "create":
		page.Created = true
	case "update":
		page.Updated = true
	default:
		writeError(w, http.StatusBadRequest, "INVALID_MODE", "mode must be create or update, got "+mode)
		return
	}

	var vals map[string]any
	if page.Updated && h.values != nil {
		vals, err = h.values(r.Context(), name)
		if err != nil {
			diag.Warn(h.diagnostics, "preview.values_failed", err.Error(), map[string]any{"form": name})
			writeError(w, http.StatusBadGateway, "VALUES_FAILED", err.Error())
			return
		}
	}

	doc := form.Document(page, vals, h.base)
	out, err := h.renderer.Render(r.Context(), doc, render.RenderOptions{})
	if err != nil {
		diag.Warn(h.diagnostics, "preview.render_failed", err.Error(), map[string]any{"form": name})
		writeError(w, http.StatusInternalServerError, "RENDER_FAILED", err.Error())
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}
