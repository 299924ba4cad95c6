package render

import "context"

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, Document, RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}
