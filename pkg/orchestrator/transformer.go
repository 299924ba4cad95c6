package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/model"
)

// Transformer mutates a resolved form before it is rendered. Implementations
// can relabel fields, toggle flags or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, form *definition.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *definition.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *definition.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// Field keys are dotted paths; fields inside repeatable groups are addressed
// through the list name:
//
//	{
//	  "title": "Custom",
//	  "fields": {
//	    "name": {"label": "名称", "required": true},
//	    "contacts.phone": {"placeholder": "手机号"}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Title    string                    `json:"title"`
	Subtitle string                    `json:"subtitle"`
	Fields   map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Label        string          `json:"label"`
	Tooltip      string          `json:"tooltip"`
	Placeholder  string          `json:"placeholder"`
	ValueKind    model.ValueKind `json:"valueKind"`
	Width        model.Width     `json:"width"`
	Required     *bool           `json:"required"`
	CreateHidden *bool           `json:"createHidden"`
	EditDisabled *bool           `json:"editDisabled"`
	FieldProps   model.Props     `json:"fieldProps"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied form. The
// form's groups are copied before patching so definitions shared through a
// definition.Set are left untouched.
func (t *JSONPresetTransformer) Transform(ctx context.Context, form *definition.Form) error {
	if form == nil {
		return errors.New("json preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Title != "" {
		form.Title = t.document.Title
	}
	if t.document.Subtitle != "" {
		form.Subtitle = t.document.Subtitle
	}

	form.Groups = cloneGroups(form.Groups)
	for path, patch := range t.document.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		field := findField(form.Groups, path)
		if field == nil {
			return fmt.Errorf("json preset transformer: field %q not found", path)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *model.FieldNode, patch jsonFieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Tooltip != "" {
		field.Tooltip = patch.Tooltip
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.ValueKind != "" {
		field.ValueKind = patch.ValueKind
	}
	if patch.Width != "" {
		field.Width = patch.Width
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.CreateHidden != nil {
		field.CreateHidden = *patch.CreateHidden
	}
	if patch.EditDisabled != nil {
		field.EditDisabled = *patch.EditDisabled
	}
	if len(patch.FieldProps) > 0 {
		field.FieldProps = model.Overlay(field.FieldProps, patch.FieldProps)
	}
}

// findField resolves a dotted path. A node whose own name spans several
// segments ("address.city") matches them all at once.
func findField(groups []model.FieldGroup, path string) *model.FieldNode {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	for gi := range groups {
		fields := groups[gi].Fields
		for fi := range fields {
			name := fields[fi].Name.String()
			if name == path {
				return &fields[fi]
			}
			if rest, ok := strings.CutPrefix(path, name+"."); ok {
				if found := findField(fields[fi].SubGroups, rest); found != nil {
					return found
				}
			}
		}
	}
	return nil
}

func cloneGroups(groups []model.FieldGroup) []model.FieldGroup {
	if groups == nil {
		return nil
	}
	out := make([]model.FieldGroup, len(groups))
	for gi, group := range groups {
		fields := make([]model.FieldNode, len(group.Fields))
		for fi, field := range group.Fields {
			field.SubGroups = cloneGroups(field.SubGroups)
			fields[fi] = field
		}
		group.Fields = fields
		out[gi] = group
	}
	return out
}
