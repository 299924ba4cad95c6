package render

import (
	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const (
	// DefaultWidth applies to fields outside grid mode that set no width.
	DefaultWidth = model.WidthMD
	// DefaultSpan is the column span of fields in grid mode.
	DefaultSpan = 8
	// DefaultListName names repeatable groups whose node has no name.
	DefaultListName = "list"
)

// ActionHandle operates on the items of a repeatable group.
type ActionHandle = model.ActionHandle

// ActionFactory returns the shared handle of the repeatable group at path.
type ActionFactory func(path model.Path) ActionHandle

// Options configure RenderField and RenderFieldGroup. The zero value renders
// a create page in sizing-token mode.
type Options struct {
	// Page is the screen mode. Nil means a create page.
	Page *model.PageContext
	Grid bool
	// DefaultWidth and DefaultColProps left empty are filled by the group
	// being rendered, then by DefaultWidth and DefaultSpan.
	DefaultWidth    model.Width
	DefaultColProps model.Props
	Values          model.ValueReader
	Widgets         widgets.Resolver
	Diagnostics     diag.Sink
	// List is set while rendering the items of a repeatable group.
	List *model.ListContext
	// ListPath prefixes every field path inside a repeatable group item.
	ListPath model.Path
	Actions  ActionFactory
}

// GroupOptions configure RenderFieldGroup.
type GroupOptions = Options

var defaultWidgets = widgets.NewRegistry()

// DefaultWidgets returns the resolver used when Options.Widgets is nil.
func DefaultWidgets() *widgets.Registry {
	return defaultWidgets
}

func (o Options) page() model.PageContext {
	if o.Page == nil {
		return model.PageContext{Created: true}
	}
	return *o.Page
}

func (o Options) width() model.Width {
	if o.DefaultWidth != "" {
		return o.DefaultWidth
	}
	return DefaultWidth
}

func (o Options) colProps() model.Props {
	if o.DefaultColProps != nil {
		return o.DefaultColProps
	}
	return model.Props{"span": DefaultSpan}
}

func (o Options) widgets() widgets.Resolver {
	if o.Widgets != nil {
		return o.Widgets
	}
	return defaultWidgets
}

func (o Options) context() model.RenderContext {
	return model.RenderContext{
		Page:            o.page(),
		Grid:            o.Grid,
		DefaultWidth:    o.width(),
		DefaultColProps: o.colProps(),
		List:            o.List,
		Values:          o.Values,
	}
}

// RenderOptions describe per-request data that output renderers can use to
// customise their output without touching the element tree.
type RenderOptions struct {
	// Errors surfaces validation feedback keyed by dotted field path.
	Errors map[string][]string
	// Action is the form submission target used by HTML output.
	Action string
	// SubmitText labels the submit control.
	SubmitText string
}
