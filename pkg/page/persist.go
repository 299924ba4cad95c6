package page

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/values"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// ErrMissingContext is returned when a screen is reached without the data it
// needs, e.g. an update page without a selected record. The navigator has
// already been asked to go back when it is returned.
var ErrMissingContext = errors.New("page: missing required context")

// FormType selects a single form or a stepped form.
type FormType int

const (
	FormDefault FormType = iota
	FormSteps
)

// Step is one stage of a stepped form.
type Step struct {
	Title  string
	Groups []model.FieldGroup
	Meta   model.Props
}

// InitialValuesFunc computes the initial form values from navigator params.
type InitialValuesFunc func(params map[string]any, page model.PageContext) map[string]any

// FinishFunc persists the merged submission.
type FinishFunc func(ctx context.Context, values map[string]any, page model.PageContext) error

// Titles holds the per-mode screen titles.
type Titles struct {
	Create    string
	CreateSub string
	Edit      string
	EditSub   string
}

// PersistOption configures a Persist screen.
type PersistOption func(*Persist)

// WithTitles sets the screen titles.
func WithTitles(titles Titles) PersistOption {
	return func(p *Persist) { p.titles = titles }
}

// WithRemoveIDOnCreate controls whether "id" is dropped from initial values
// on create pages. Enabled by default.
func WithRemoveIDOnCreate(remove bool) PersistOption {
	return func(p *Persist) { p.removeID = remove }
}

// WithGroups sets the field groups of a single form.
func WithGroups(groups ...model.FieldGroup) PersistOption {
	return func(p *Persist) {
		p.formType = FormDefault
		p.groups = groups
	}
}

// WithSteps switches to a stepped form.
func WithSteps(steps ...Step) PersistOption {
	return func(p *Persist) {
		p.formType = FormSteps
		p.steps = steps
	}
}

// WithGrid enables grid layout.
func WithGrid(grid bool) PersistOption {
	return func(p *Persist) { p.grid = grid }
}

// WithDefaultWidth sets the default sizing token.
func WithDefaultWidth(width model.Width) PersistOption {
	return func(p *Persist) { p.defaultWidth = width }
}

// WithDefaultColProps sets the default column props for grid layout.
func WithDefaultColProps(props model.Props) PersistOption {
	return func(p *Persist) { p.defaultColProps = props }
}

// WithInitialValues replaces the params-based initial values lookup.
func WithInitialValues(fn InitialValuesFunc) PersistOption {
	return func(p *Persist) { p.initialValues = fn }
}

// WithOnFinish sets the persistence callback.
func WithOnFinish(fn FinishFunc) PersistOption {
	return func(p *Persist) { p.onFinish = fn }
}

// WithDiagnostics sets the diagnostic sink.
func WithDiagnostics(sink diag.Sink) PersistOption {
	return func(p *Persist) { p.diagnostics = sink }
}

// WithWidgets sets the widget resolver passed to the renderer.
func WithWidgets(resolver widgets.Resolver) PersistOption {
	return func(p *Persist) { p.widgets = resolver }
}

// Persist is the create/edit screen.
type Persist struct {
	nav             Navigator
	titles          Titles
	removeID        bool
	formType        FormType
	groups          []model.FieldGroup
	steps           []Step
	grid            bool
	defaultWidth    model.Width
	defaultColProps model.Props
	initialValues   InitialValuesFunc
	onFinish        FinishFunc
	diagnostics     diag.Sink
	widgets         widgets.Resolver
}

// NewPersist builds the screen around nav.
func NewPersist(nav Navigator, opts ...PersistOption) *Persist {
	p := &Persist{nav: nav, removeID: true}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// StepScreen is a rendered step.
type StepScreen struct {
	Title    string
	Meta     model.Props
	Elements []model.Element
}

// Screen is a prepared persist screen.
type Screen struct {
	Page          model.PageContext
	Title         string
	Subtitle      string
	FormType      FormType
	InitialValues map[string]any
	Values        *values.Store
	Elements      []model.Element
	Steps         []StepScreen

	nav      Navigator
	onFinish FinishFunc
}

// Prepare derives the page context, resolves initial values and renders the
// field groups. An update page without params warns, navigates back and
// returns ErrMissingContext.
func (p *Persist) Prepare() (*Screen, error) {
	if p.nav == nil {
		return nil, fmt.Errorf("page: navigator is required")
	}
	page := DeriveContext(p.nav.Pathname())
	params := p.nav.Params()

	if page.Updated && params == nil {
		diag.Warn(p.diagnostics, "page.missing_context", "进入更新页面,但是没有发现需要编辑的数据.自动返回上一页", map[string]any{
			"pathname": p.nav.Pathname(),
		})
		p.nav.GoBack()
		return nil, ErrMissingContext
	}

	initial := p.resolveInitialValues(params, page)
	if page.Created && p.removeID {
		diag.Info(p.diagnostics, "page.id_removed", "新增页面,移除初始化数据中的ID字段", nil)
		delete(initial, "id")
	}

	store := values.NewStore(initial)
	opts := render.Options{
		Page:            &page,
		Grid:            p.grid,
		DefaultWidth:    p.defaultWidth,
		DefaultColProps: p.defaultColProps,
		Values:          store,
		Widgets:         p.widgets,
		Diagnostics:     p.diagnostics,
		Actions:         render.NewLists(store).Handle,
	}

	screen := &Screen{
		Page:          page,
		FormType:      p.formType,
		InitialValues: initial,
		Values:        store,
		nav:           p.nav,
		onFinish:      p.onFinish,
	}
	if page.Created {
		screen.Title, screen.Subtitle = p.titles.Create, p.titles.CreateSub
	} else {
		screen.Title, screen.Subtitle = p.titles.Edit, p.titles.EditSub
	}

	switch p.formType {
	case FormSteps:
		screen.Steps = make([]StepScreen, len(p.steps))
		for i, step := range p.steps {
			screen.Steps[i] = StepScreen{
				Title:    step.Title,
				Meta:     step.Meta.Clone(),
				Elements: render.RenderGroups(step.Groups, opts),
			}
		}
	default:
		screen.Elements = render.RenderGroups(p.groups, opts)
	}
	return screen, nil
}

func (p *Persist) resolveInitialValues(params map[string]any, page model.PageContext) map[string]any {
	var initial map[string]any
	switch {
	case p.initialValues != nil:
		if params == nil {
			params = map[string]any{}
		}
		initial = p.initialValues(params, page)
	default:
		if row, ok := SelectedRow(params); ok {
			initial = row
		} else {
			initial = params
		}
	}
	return values.Clone(initial)
}

// Finish deep-merges the submitted values over the initial values and hands
// the result to the finish callback.
func (s *Screen) Finish(ctx context.Context, submitted map[string]any) (map[string]any, error) {
	merged := values.DeepMerge(s.InitialValues, submitted)
	if s.onFinish == nil {
		return merged, nil
	}
	if err := s.onFinish(ctx, merged, s.Page); err != nil {
		return merged, fmt.Errorf("page: finish: %w", err)
	}
	return merged, nil
}

// Back asks the navigator to return to the previous screen.
func (s *Screen) Back() {
	if s.nav != nil {
		s.nav.GoBack()
	}
}
