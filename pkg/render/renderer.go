package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Document is a rendered element tree plus the data an output renderer needs
// to present it.
type Document struct {
	Name     string
	Title    string
	Subtitle string
	Page     model.PageContext
	Elements []model.Element
	Values   map[string]any
}

// Renderer converts a Document into a byte representation (HTML, collected
// JSON values, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc Document, options RenderOptions) ([]byte, error)
}
