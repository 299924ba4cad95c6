package render

import (
	"strconv"

	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/values"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// RenderField converts one node into an element. It returns false when the
// node is hidden on a create page.
//
// Resolution order: dependency renderer, custom renderer, sub-groups, then
// the widget mapping. Caller rules come first, followed by the derived
// required and whitespace rules.
func RenderField(node model.FieldNode, index int, opts Options) (model.Element, bool) {
	page := opts.page()
	if node.CreateHidden && page.Created {
		return model.Element{}, false
	}

	decorated := decorate(node, page, opts)
	path := opts.ListPath.Join(node.Name...)
	key := elementKey(opts.ListPath, node.Name, index)

	if node.RenderDependency != nil {
		return dependencyElement(decorated, path, key, opts), true
	}
	if node.RenderCustom != nil {
		el := node.RenderCustom(decorated, opts.context())
		if el.Kind == "" {
			el.Kind = model.ElementCustom
		}
		if el.Key == "" {
			el.Key = key
		}
		if el.Path == nil {
			el.Path = path
		}
		return el, true
	}
	if len(node.SubGroups) > 0 {
		return listElement(decorated, key, opts), true
	}
	return fieldElement(decorated, path, key, opts), true
}

// DeriveRules returns the caller rules followed by the required and
// whitespace rules the node implies.
func DeriveRules(node model.FieldNode) []model.Rule {
	rules := make([]model.Rule, 0, len(node.Rules)+2)
	rules = append(rules, node.Rules...)
	if node.Required {
		rules = append(rules, model.Rule{
			Kind:    model.RuleRequired,
			Message: node.DisplayLabel() + " 是必填字段",
		})
	}
	if node.WhitespaceEnabled() && textual(node.ValueKind) {
		rules = append(rules, model.Rule{Kind: model.RuleWhitespace})
	}
	return rules
}

func textual(kind model.ValueKind) bool {
	return kind == "" || kind.Textual()
}

func decorate(node model.FieldNode, page model.PageContext, opts Options) model.FieldNode {
	node.Rules = DeriveRules(node)
	node.Disabled = node.Disabled || (page.Updated && node.EditDisabled)
	if opts.Grid {
		node.FieldProps = model.Overlay(model.Props{"style": map[string]any{"width": "100%"}}, node.FieldProps)
		node.ColProps = model.Overlay(opts.colProps(), node.ColProps)
	} else if node.Width == "" {
		node.Width = opts.width()
	}
	return node
}

func fieldElement(node model.FieldNode, path model.Path, key string, opts Options) model.Element {
	props := model.Overlay(node.FieldProps, node.Extra)
	widget, ok := opts.widgets().Resolve(node.ValueKind, props)
	if !ok {
		fields := map[string]any{"kind": string(node.ValueKind), "path": path.String(), "widget": widget.Name}
		if suggester, canSuggest := opts.widgets().(widgets.Suggester); canSuggest {
			if suggestion, found := suggester.Suggest(node.ValueKind); found {
				fields["suggestion"] = string(suggestion)
			}
		}
		diag.Warn(opts.Diagnostics, "widgets.unknown_kind", "unknown value kind, using text widget", fields)
	}

	return model.Element{
		Kind:        model.ElementField,
		Key:         key,
		Name:        node.Name,
		Path:        path,
		Label:       node.DisplayLabel(),
		ValueKind:   node.ValueKind,
		Widget:      widget.Name,
		Disabled:    node.Disabled,
		Required:    node.Required,
		Rules:       node.Rules,
		Placeholder: node.Placeholder,
		Tooltip:     node.Tooltip,
		Width:       node.Width,
		ColProps:    node.ColProps.Clone(),
		FieldProps:  node.FieldProps.Clone(),
		Options:     node.Options,
		Extra:       node.Extra.Clone(),
		List:        opts.List,
	}
}

func dependencyElement(node model.FieldNode, path model.Path, key string, opts Options) model.Element {
	deps := make([]model.Path, len(node.DependencyNames))
	for i, dep := range node.DependencyNames {
		deps[i] = opts.ListPath.Join(dep...)
	}

	observe := func(reader model.ValueReader) []model.Element {
		current := make(map[string]any, len(deps))
		for i, dep := range deps {
			picked := values.Pick(reader, []string{dep.String()})
			current[node.DependencyNames[i].String()] = picked[dep.String()]
		}
		scoped := opts
		scoped.Values = reader
		el := node.RenderDependency(node, current, scoped.context())
		if el.Kind == "" {
			el.Kind = model.ElementCustom
		}
		if el.Key == "" {
			el.Key = key + "/0"
		}
		return []model.Element{el}
	}

	return model.Element{
		Kind:         model.ElementDependency,
		Key:          key,
		Name:         node.Name,
		Path:         path,
		Label:        node.DisplayLabel(),
		ValueKind:    node.ValueKind,
		Dependencies: deps,
		Children:     observe(opts.Values),
		List:         opts.List,
		Observe:      observe,
	}
}

// Refresh re-evaluates every dependency element in the tree against values.
func Refresh(elements []model.Element, reader model.ValueReader) []model.Element {
	out := make([]model.Element, len(elements))
	for i, el := range elements {
		if el.Kind == model.ElementDependency {
			out[i] = el.Refresh(reader)
			continue
		}
		if len(el.Children) > 0 {
			el.Children = Refresh(el.Children, reader)
		}
		out[i] = el
	}
	return out
}

func elementKey(prefix, name model.Path, index int) string {
	if !name.Empty() {
		return prefix.Join(name...).String()
	}
	if prefix.Empty() {
		return "#" + strconv.Itoa(index)
	}
	return prefix.String() + "#" + strconv.Itoa(index)
}
