package review

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/page"
)

// Column is one described attribute of the changed resource.
type Column struct {
	Title     string
	DataIndex string
}

// Side tells a custom section which half of the comparison it renders.
type Side string

const (
	SideBefore Side = "before"
	SideAfter  Side = "after"
)

// Section is a block of described attributes. Render replaces the default
// attribute list.
type Section struct {
	Title   string
	Columns []Column
	Render  func(side Side, r Review) any
}

// Pane is one tab of the detail screen.
type Pane struct {
	Key      string
	Title    string
	Sections []Section
}

// Item is one rendered attribute.
type Item struct {
	Label string
	Value any
}

// SectionView is a rendered section.
type SectionView struct {
	Title  string
	Items  []Item
	Custom any
}

// SideView is the before or after half of a pane.
type SideView struct {
	Title    string
	Columns  int
	Span     int
	Sections []SectionView
}

// PaneView is a rendered tab.
type PaneView struct {
	Key    string
	Title  string
	Before *SideView
	After  SideView
}

// WithReview supplies the review directly instead of reading navigator
// params.
func WithReview(r *Review) Option {
	return func(s *settings) {
		s.review = r
		s.fromQuery = false
	}
}

// WithPanes configures the detail tabs.
func WithPanes(fn func(r Review) []Pane) Option {
	return func(s *settings) { s.panes = fn }
}

// Detail is the review detail screen.
type Detail struct {
	settings
	nav page.Navigator
}

// NewDetail builds the detail screen around nav.
func NewDetail(nav page.Navigator, opts ...Option) *Detail {
	return &Detail{settings: apply(opts), nav: nav}
}

// DetailScreen is a prepared detail screen.
type DetailScreen struct {
	Review   Review
	Subtitle string
	Timeline []TimelineStep
	Actions  []Button
	Panes    []PaneView
	Dialog   *Dialog
}

// Prepare resolves the review and lays out the screen. A missing review
// warns, navigates back and returns page.ErrMissingContext.
func (d *Detail) Prepare() (*DetailScreen, error) {
	r, err := d.resolve()
	if err != nil {
		return nil, err
	}
	if r == nil {
		diag.Warn(d.diagnostics, "review.missing_context", "没有发现详情数据.自动返回上一页", nil)
		if d.nav != nil {
			d.nav.GoBack()
		}
		return nil, page.ErrMissingContext
	}

	dialog := d.dialog("执行审核 - ", false)
	screen := &DetailScreen{
		Review:   *r,
		Subtitle: r.Describe,
		Timeline: Timeline(*r),
		Dialog:   dialog,
	}
	if d.authorities.Permit(d.authorizer) && r.Status != Finish {
		screen.Actions = []Button{
			{Text: Rejected.Text(), Primary: true, Danger: true, OnClick: func() { dialog.Open(Rejected, r) }},
			{Text: Resolve.Text(), Primary: true, OnClick: func() { dialog.Open(Resolve, r) }},
		}
	}
	if d.panes != nil {
		for _, pane := range d.panes(*r) {
			screen.Panes = append(screen.Panes, layoutPane(pane, *r))
		}
	}
	return screen, nil
}

func (d *Detail) resolve() (*Review, error) {
	if !d.fromQuery {
		return d.review, nil
	}
	if d.nav == nil {
		return nil, errors.New("review: navigator is required")
	}
	row, ok := page.SelectedRow(d.nav.Params())
	if !ok || len(row) == 0 {
		if rows, isReviews := d.nav.Params()["selectedRows"].([]Review); isReviews && len(rows) > 0 {
			return &rows[0], nil
		}
		return nil, nil
	}
	r, err := FromAny(row)
	if err != nil {
		return nil, fmt.Errorf("review: selected row: %w", err)
	}
	return r, nil
}

func layoutPane(pane Pane, r Review) PaneView {
	view := PaneView{Key: pane.Key, Title: pane.Title}
	if r.Before != nil {
		view.Before = &SideView{
			Title:    "变更前",
			Columns:  2,
			Span:     12,
			Sections: layoutSections(pane.Sections, SideBefore, r, r.Before),
		}
	}
	view.After = SideView{Title: "变更后", Columns: 4, Span: 24}
	if r.Before != nil {
		view.After.Columns, view.After.Span = 2, 12
	}
	if r.After != nil {
		view.After.Sections = layoutSections(pane.Sections, SideAfter, r, r.After)
	}
	return view
}

func layoutSections(sections []Section, side Side, r Review, data map[string]any) []SectionView {
	out := make([]SectionView, 0, len(sections))
	for _, section := range sections {
		view := SectionView{Title: section.Title}
		if section.Render != nil {
			view.Custom = section.Render(side, r)
			out = append(out, view)
			continue
		}
		for _, column := range section.Columns {
			view.Items = append(view.Items, Item{Label: column.Title, Value: data[column.DataIndex]})
		}
		out = append(out, view)
	}
	return out
}
