package definition

import (
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/values"
)

// Document renders the form's groups for page over vals. The form's own
// layout settings win over base; base supplies widgets, diagnostics and the
// fallback layout.
func (f Form) Document(page model.PageContext, vals map[string]any, base render.Options) render.Document {
	store := values.NewStore(vals)

	opts := base
	opts.Page = &page
	opts.Values = store
	opts.Actions = render.NewLists(store).Handle
	if f.Grid {
		opts.Grid = true
	}
	if f.DefaultWidth != "" {
		opts.DefaultWidth = f.DefaultWidth
	}
	if f.DefaultColProps != nil {
		opts.DefaultColProps = f.DefaultColProps
	}

	return render.Document{
		Name:     f.Name,
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Page:     page,
		Elements: render.RenderGroups(f.Groups, opts),
		Values:   store.Snapshot(),
	}
}
