package render

import (
	"strconv"

	"github.com/goliatone/go-formkit/pkg/model"
)

// RenderFieldGroup renders the group's fields in declaration order. The
// group's DefaultWidth and DefaultColProps apply only when opts carries none.
func RenderFieldGroup(group model.FieldGroup, index int, opts GroupOptions) model.Element {
	scoped := opts
	if scoped.DefaultWidth == "" {
		scoped.DefaultWidth = group.DefaultWidth
	}
	if scoped.DefaultColProps == nil {
		scoped.DefaultColProps = group.DefaultColProps
	}

	title := group.Title
	if group.TitleRender != nil {
		title = group.TitleRender(title, group, scoped.context())
	}

	children := make([]model.Element, 0, len(group.Fields))
	for idx, node := range group.Fields {
		if el, ok := RenderField(node, idx, scoped); ok {
			children = append(children, el)
		}
	}

	colProps := model.Props{"span": 6}
	if meta, ok := group.Meta["colProps"].(map[string]any); ok {
		colProps = model.Overlay(colProps, meta)
	}

	return model.Element{
		Kind:     model.ElementGroup,
		Key:      groupKey(opts.ListPath, index),
		Path:     opts.ListPath,
		Title:    title,
		ColProps: colProps,
		Children: children,
		Extra:    group.Meta.Clone(),
		List:     opts.List,
	}
}

// RenderGroups renders a sequence of groups.
func RenderGroups(groups []model.FieldGroup, opts GroupOptions) []model.Element {
	out := make([]model.Element, 0, len(groups))
	for idx, group := range groups {
		out = append(out, RenderFieldGroup(group, idx, opts))
	}
	return out
}

func groupKey(prefix model.Path, index int) string {
	key := "group:" + strconv.Itoa(index)
	if prefix.Empty() {
		return key
	}
	return prefix.String() + "/" + key
}
