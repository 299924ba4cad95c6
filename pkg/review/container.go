package review

import (
	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Button is an action bar entry.
type Button struct {
	Text        string
	Primary     bool
	Danger      bool
	Disabled    bool
	Authorities Authorities
	OnClick     func()
}

// Option configures a Container or a Detail screen.
type Option func(*settings)

type settings struct {
	title       string
	authorities Authorities
	authorizer  Authorizer
	extra       func(r *Review) []Button
	fieldGroups FieldGroupsFunc
	onReview    SubmitFunc
	widgets     widgets.Resolver
	diagnostics diag.Sink
	review      *Review
	fromQuery   bool
	panes       func(r Review) []Pane
}

// WithTitle prefixes the dialog title of a review list.
func WithTitle(title string) Option {
	return func(s *settings) { s.title = title }
}

// WithAuthorities gates the review actions.
func WithAuthorities(a Authorities) Option {
	return func(s *settings) { s.authorities = a }
}

// WithAuthorizer supplies the current user's authorities.
func WithAuthorizer(auth Authorizer) Option {
	return func(s *settings) { s.authorizer = auth }
}

// WithExtraActions adds caller buttons ahead of approve and reject.
func WithExtraActions(fn func(r *Review) []Button) Option {
	return func(s *settings) { s.extra = fn }
}

// WithFieldGroups replaces the default dialog fields.
func WithFieldGroups(fn FieldGroupsFunc) Option {
	return func(s *settings) { s.fieldGroups = fn }
}

// WithOnReview sets the submit callback.
func WithOnReview(fn SubmitFunc) Option {
	return func(s *settings) { s.onReview = fn }
}

// WithWidgets sets the widget resolver of the dialog form.
func WithWidgets(resolver widgets.Resolver) Option {
	return func(s *settings) { s.widgets = resolver }
}

// WithDiagnostics sets the diagnostic sink.
func WithDiagnostics(sink diag.Sink) Option {
	return func(s *settings) { s.diagnostics = sink }
}

func apply(opts []Option) settings {
	s := settings{fromQuery: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

func (s settings) dialog(prefix string, withReview bool) *Dialog {
	d := newDialog(prefix, withReview)
	d.fieldGroups = s.fieldGroups
	d.onReview = s.onReview
	d.widgets = s.widgets
	d.diagnostics = s.diagnostics
	return d
}

// Container is the review list screen logic.
type Container struct {
	settings
	dialog *Dialog
}

// NewContainer builds the list screen.
func NewContainer(opts ...Option) *Container {
	s := apply(opts)
	prefix := ""
	if s.title != "" {
		prefix = s.title + " -"
	}
	return &Container{settings: s, dialog: s.dialog(prefix, true)}
}

// Dialog returns the approve/reject dialog.
func (c *Container) Dialog() *Dialog {
	return c.dialog
}

// Actions builds the action bar for the selected rows: caller buttons
// followed by approve and reject. Approve and reject are disabled without a
// selection or when the first selected review is finished. Buttons the
// current user may not use are dropped.
func (c *Container) Actions(selected []Review) []Button {
	var first *Review
	if len(selected) > 0 {
		first = &selected[0]
	}
	disabled := first == nil || first.Status == Finish

	var buttons []Button
	if c.extra != nil {
		buttons = append(buttons, c.extra(first)...)
	}
	buttons = append(buttons,
		Button{
			Text:        Resolve.Text(),
			Primary:     true,
			Disabled:    disabled,
			Authorities: c.authorities,
			OnClick:     func() { c.dialog.Open(Resolve, first) },
		},
		Button{
			Text:        Rejected.Text(),
			Primary:     true,
			Danger:      true,
			Disabled:    disabled,
			Authorities: c.authorities,
			OnClick:     func() { c.dialog.Open(Rejected, first) },
		},
	)
	return permitted(buttons, c.authorizer)
}

func permitted(buttons []Button, auth Authorizer) []Button {
	out := buttons[:0]
	for _, button := range buttons {
		if button.Authorities.Permit(auth) {
			out = append(out, button)
		}
	}
	return out
}
