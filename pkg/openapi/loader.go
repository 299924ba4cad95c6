package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/model"
)

// ExtensionKey is the vendor extension read from schema properties.
const ExtensionKey = "x-formkit"

var (
	// ErrOperationNotFound is returned when no operation has the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned for operations without a JSON object body.
	ErrNoRequestBody = errors.New("openapi: operation has no JSON request body")
)

// Option configures GroupsFromOperation.
type Option func(*options)

type options struct {
	validate bool
	title    string
}

// WithValidation validates the document before converting it.
func WithValidation(enabled bool) Option {
	return func(o *options) { o.validate = enabled }
}

// WithTitle sets the group title. The operation summary is used otherwise.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// Operation is the summary of one operation in a document.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Operations lists every operation with an operationId, sorted by id.
func Operations(ctx context.Context, data []byte) ([]Operation, error) {
	doc, err := load(ctx, data, false)
	if err != nil {
		return nil, err
	}
	var out []Operation
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID == "" {
				continue
			}
			out = append(out, Operation{ID: op.OperationID, Method: method, Path: path, Summary: op.Summary})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GroupsFromOperation converts the JSON request body of operationID into a
// single field group. Properties are sorted by name; nested objects become
// dotted paths and arrays of objects become repeatable sub-groups.
func GroupsFromOperation(ctx context.Context, data []byte, operationID string, opts ...Option) ([]model.FieldGroup, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc, err := load(ctx, data, cfg.validate)
	if err != nil {
		return nil, err
	}
	op := findOperation(doc, operationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(op)
	if schema == nil || len(schema.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	title := cfg.title
	if title == "" {
		title = op.Summary
	}
	return []model.FieldGroup{{
		Title:  title,
		Fields: convertObject(schema, nil),
	}}, nil
}

func load(ctx context.Context, data []byte, validate bool) (*openapi3.T, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	if doc.Paths == nil {
		doc.Paths = openapi3.NewPaths()
	}
	return doc, nil
}

func findOperation(doc *openapi3.T, id string) *openapi3.Operation {
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == id {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	mt := op.RequestBody.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil {
		return nil
	}
	return mt.Schema.Value
}

func convertObject(schema *openapi3.Schema, prefix model.Path) []model.FieldNode {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var fields []model.FieldNode
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		path := prefix.Join(name)

		if isType(prop, openapi3.TypeObject) && len(prop.Properties) > 0 && extensionKind(prop) == "" {
			fields = append(fields, convertObject(prop, path)...)
			continue
		}
		fields = append(fields, convertProperty(prop, path, required[name]))
	}
	return fields
}

func convertProperty(prop *openapi3.Schema, path model.Path, required bool) model.FieldNode {
	node := model.FieldNode{
		Name:      path,
		Label:     prop.Title,
		ValueKind: valueKind(prop),
		Required:  required,
		Tooltip:   prop.Description,
	}
	if len(prop.Enum) > 0 {
		node.Options = enumOptions(prop.Enum)
	}

	if isType(prop, openapi3.TypeArray) && prop.Items != nil && prop.Items.Value != nil {
		items := prop.Items.Value
		switch {
		case isType(items, openapi3.TypeObject) && len(items.Properties) > 0:
			node.ValueKind = ""
			node.SubGroups = []model.FieldGroup{{Fields: convertObject(items, nil)}}
		case len(items.Enum) > 0:
			node.ValueKind = model.KindCheckbox
			node.Options = enumOptions(items.Enum)
		default:
			node.FieldProps = model.Props{"mode": "tags"}
		}
	}

	applyExtension(&node, prop.Extensions[ExtensionKey])
	return node
}

func valueKind(prop *openapi3.Schema) model.ValueKind {
	if len(prop.Enum) > 0 {
		return model.KindSelect
	}
	switch {
	case isType(prop, openapi3.TypeString):
		switch prop.Format {
		case "date":
			return model.KindDate
		case "date-time":
			return model.KindDateTime
		case "time":
			return model.KindTime
		case "password":
			return model.KindPassword
		case "binary":
			return model.KindUploadButton
		}
		if prop.MaxLength != nil && *prop.MaxLength > 255 {
			return model.KindTextArea
		}
		return model.KindText
	case isType(prop, openapi3.TypeInteger), isType(prop, openapi3.TypeNumber):
		if prop.Format == "money" || prop.Format == "currency" {
			return model.KindMoney
		}
		return model.KindDigit
	case isType(prop, openapi3.TypeBoolean):
		return model.KindSwitch
	case isType(prop, openapi3.TypeArray):
		return model.KindSelect
	}
	return model.KindText
}

func enumOptions(values []any) []model.Option {
	out := make([]model.Option, len(values))
	for i, value := range values {
		out[i] = model.Option{Label: fmt.Sprint(value), Value: value}
	}
	return out
}

func extensionKind(prop *openapi3.Schema) string {
	ext, _ := prop.Extensions[ExtensionKey].(map[string]any)
	kind, _ := ext["valueKind"].(string)
	return strings.TrimSpace(kind)
}

func applyExtension(node *model.FieldNode, raw any) {
	ext, ok := raw.(map[string]any)
	if !ok {
		return
	}
	if kind, ok := ext["valueKind"].(string); ok && strings.TrimSpace(kind) != "" {
		node.ValueKind = model.ValueKind(kind)
	}
	if label, ok := ext["label"].(string); ok && label != "" {
		node.Label = label
	}
	if hidden, ok := ext["createHidden"].(bool); ok {
		node.CreateHidden = hidden
	}
	if disabled, ok := ext["editDisabled"].(bool); ok {
		node.EditDisabled = disabled
	}
	if placeholder, ok := ext["placeholder"].(string); ok {
		node.Placeholder = placeholder
	}
	if width, ok := ext["width"].(string); ok {
		node.Width = model.Width(width)
	}
}

func isType(schema *openapi3.Schema, typ string) bool {
	return schema.Type != nil && schema.Type.Is(typ)
}
