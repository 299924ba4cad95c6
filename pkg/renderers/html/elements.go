package html

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/feerate"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/values"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

type writer struct {
	renderer *Renderer
	doc      render.Document
	options  render.RenderOptions
}

func (w *writer) elements(ctx context.Context, elements []model.Element) (string, error) {
	var b strings.Builder
	for _, el := range elements {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err := w.element(ctx, el)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func (w *writer) element(ctx context.Context, el model.Element) (string, error) {
	switch el.Kind {
	case model.ElementGroup:
		body, err := w.elements(ctx, el.Children)
		if err != nil {
			return "", err
		}
		return w.template("group", map[string]any{
			"key":   el.Key,
			"title": w.renderer.policy.Sanitize(el.Title),
			"body":  body,
		})
	case model.ElementList:
		return w.list(ctx, el)
	case model.ElementListItem:
		return w.elements(ctx, el.Children)
	case model.ElementDependency:
		body, err := w.elements(ctx, el.Children)
		if err != nil {
			return "", err
		}
		deps := make([]string, len(el.Dependencies))
		for i, dep := range el.Dependencies {
			deps[i] = dep.String()
		}
		return w.template("dependency", map[string]any{"key": el.Key, "dependencies": deps, "body": body})
	case model.ElementCustom:
		body, err := w.elements(ctx, el.Children)
		if err != nil {
			return "", err
		}
		content := ""
		if el.Custom != nil {
			content = fmt.Sprint(el.Custom)
		}
		return w.template("custom", map[string]any{"key": el.Key, "content": content, "body": body})
	default:
		return w.field(el)
	}
}

func (w *writer) list(ctx context.Context, el model.Element) (string, error) {
	items := make([]map[string]any, 0, len(el.Children))
	for i, item := range el.Children {
		body, err := w.element(ctx, item)
		if err != nil {
			return "", err
		}
		items = append(items, map[string]any{"key": item.Key, "index": i, "body": body})
	}
	return w.template("list", map[string]any{
		"key":   el.Key,
		"name":  el.Path.String(),
		"label": el.Label,
		"count": len(items),
		"items": items,
	})
}

func (w *writer) field(el model.Element) (string, error) {
	name := el.Path.String()
	value, _ := values.Get(w.doc.Values, name)
	data := map[string]any{
		"key":         el.Key,
		"id":          controlID(el),
		"name":        name,
		"label":       el.Label,
		"widget":      el.Widget,
		"required":    el.Required,
		"disabled":    el.Disabled,
		"placeholder": el.Placeholder,
		"tooltip":     el.Tooltip,
		"errors":      w.options.Errors[name],
		"style":       fieldStyle(el),
	}

	var (
		control string
		err     error
	)
	if el.Widget == widgets.WidgetFeeRate {
		control, err = w.feeRate(el, value, data)
	} else {
		control, err = w.control(el, value, data)
	}
	if err != nil {
		return "", err
	}
	data["control"] = control
	return w.template("field", data)
}

func (w *writer) control(el model.Element, value any, data map[string]any) (string, error) {
	controlData := make(map[string]any, len(data)+6)
	for key, v := range data {
		controlData[key] = v
	}
	choice := choiceKind(el.Widget)
	controlData["choice"] = choice
	controlData["input_type"] = inputType(el.Widget)
	controlData["value"] = textValue(value)
	controlData["checked"] = truthy(value)
	controlData["multiple"] = el.Widget == widgets.WidgetTransfer || el.FieldProps["mode"] == "multiple" || el.FieldProps["mode"] == "tags"
	if choice != "" {
		controlData["options"] = optionViews(el.Options, value)
	}
	return w.template("control", controlData)
}

func (w *writer) feeRate(el model.Element, raw any, data map[string]any) (string, error) {
	value, err := feerate.FromAny(raw)
	if err != nil {
		diag.Warn(w.renderer.diagnostics, "html.invalid_fee_rate", "fee rate value cannot be displayed", map[string]any{
			"path":  el.Path.String(),
			"error": err.Error(),
		})
		value = feerate.DefaultValue()
	}
	input := feerate.New(feerate.WithMode(feerate.Controlled), feerate.WithValue(value))

	base := el.Path.String()
	parts := make([]map[string]any, 0, 4)
	for _, view := range input.Views() {
		part := map[string]any{
			"field":       string(view.Field),
			"name":        base + "." + string(view.Field),
			"width":       view.Width,
			"placeholder": view.Placeholder,
			"text":        view.Text,
			"tip":         view.Tip,
		}
		if view.Field == feerate.FieldKind {
			part["options"] = optionViews(view.Options, string(view.Kind))
		} else {
			part["min"] = view.Number.Format(view.Number.Min)
			part["max"] = view.Number.Format(view.Number.Max)
			if view.Number.Precision > 0 {
				part["step"] = "0." + strings.Repeat("0", int(view.Number.Precision)-1) + "1"
			}
		}
		parts = append(parts, part)
	}
	return w.template("feerate", map[string]any{
		"id":       data["id"],
		"disabled": el.Disabled,
		"parts":    parts,
	})
}

func (w *writer) template(name string, data map[string]any) (string, error) {
	out, err := w.renderer.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("html renderer: render %s: %w", name, err)
	}
	return out, nil
}
