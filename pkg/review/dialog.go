package review

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

// ErrDialogClosed is returned by Submit when the dialog is not open.
var ErrDialogClosed = errors.New("review: dialog is not open")

// DefaultFields are the fields of the review dialog when no groups are
// configured.
func DefaultFields() []model.FieldNode {
	return []model.FieldNode{{
		Label:    "审核结果说明",
		Name:     model.Path{"resultDescribe"},
		Required: true,
	}}
}

// FieldGroupsFunc builds the dialog form for a review and result. It
// receives DefaultFields so it can extend them.
type FieldGroupsFunc func(r *Review, result Result, defaults []model.FieldNode) []model.FieldGroup

// SubmitFunc receives the dialog payload.
type SubmitFunc func(ctx context.Context, payload map[string]any) error

// Dialog is the approve/reject form. It starts closed with a rejected
// result.
type Dialog struct {
	titlePrefix string
	withReview  bool
	fieldGroups FieldGroupsFunc
	onReview    SubmitFunc
	widgets     widgets.Resolver
	diagnostics diag.Sink

	open   bool
	result Result
	id     string
	review *Review
}

func newDialog(prefix string, withReview bool) *Dialog {
	return &Dialog{titlePrefix: prefix, withReview: withReview, result: Rejected}
}

// Open shows the dialog for the given outcome.
func (d *Dialog) Open(result Result, r *Review) {
	d.open = true
	d.result = result
	d.review = r
	d.id = ""
	if r != nil {
		d.id = r.ID
	}
}

// Cancel hides the dialog and keeps the selection.
func (d *Dialog) Cancel() {
	d.open = false
}

// Visible reports whether the dialog is shown.
func (d *Dialog) Visible() bool {
	return d.open
}

// Result returns the outcome the dialog submits.
func (d *Dialog) Result() Result {
	return d.result
}

// Review returns the review being decided.
func (d *Dialog) Review() *Review {
	return d.review
}

// Title is the dialog heading.
func (d *Dialog) Title() string {
	return d.titlePrefix + d.result.Text()
}

// SubmitText labels the submit control.
func (d *Dialog) SubmitText() string {
	return d.result.Text()
}

// ResetText labels the dismiss control.
func (d *Dialog) ResetText() string {
	return "取消"
}

// Fields renders the dialog form on a create page.
func (d *Dialog) Fields() []model.Element {
	opts := render.Options{
		Page:        &model.PageContext{Created: true},
		Widgets:     d.widgets,
		Diagnostics: d.diagnostics,
	}
	if d.fieldGroups != nil {
		return render.RenderGroups(d.fieldGroups(d.review, d.result, DefaultFields()), opts)
	}
	var out []model.Element
	for idx, node := range DefaultFields() {
		if el, ok := render.RenderField(node, idx, opts); ok {
			out = append(out, el)
		}
	}
	return out
}

// Submit merges the form data with the dialog state and calls the review
// callback. The dialog resets on success and stays open on failure.
func (d *Dialog) Submit(ctx context.Context, formData map[string]any) error {
	if !d.open {
		return ErrDialogClosed
	}
	state := map[string]any{
		"id":     d.id,
		"result": string(d.result),
	}
	if d.withReview {
		state["review"] = d.review
	}
	payload := values.Clone(formData)
	for key, value := range state {
		payload[key] = value
	}

	if d.onReview != nil {
		if err := d.onReview(ctx, payload); err != nil {
			diag.Info(d.diagnostics, "review.submit_failed", "审核出现异常", map[string]any{"id": d.id, "error": err.Error()})
			return fmt.Errorf("review: submit: %w", err)
		}
	}
	d.reset()
	return nil
}

func (d *Dialog) reset() {
	d.open = false
	d.id = ""
	d.result = Rejected
	d.review = nil
}
