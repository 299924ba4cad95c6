package model

import (
	"strconv"
	"strings"
)

// ValueKind tags which widget and validation behaviour a field uses.
type ValueKind string

const (
	KindText          ValueKind = "text"
	KindPassword      ValueKind = "password"
	KindCaptcha       ValueKind = "captcha"
	KindTextArea      ValueKind = "textarea"
	KindDigit         ValueKind = "digit"
	KindMoney         ValueKind = "money"
	KindDate          ValueKind = "date"
	KindDateTime      ValueKind = "dateTime"
	KindDateRange     ValueKind = "dateRange"
	KindDateTimeRange ValueKind = "dateTimeRange"
	KindTime          ValueKind = "time"
	KindTimeRange     ValueKind = "timeRange"
	KindSelect        ValueKind = "select"
	KindTreeSelect    ValueKind = "treeSelect"
	KindCascader      ValueKind = "cascader"
	KindCheckbox      ValueKind = "checkbox"
	KindRadio         ValueKind = "radio"
	KindSwitch        ValueKind = "switch"
	KindRate          ValueKind = "rate"
	KindSlider        ValueKind = "slider"
	KindSegmented     ValueKind = "segmented"
	KindUploadDragger ValueKind = "uploadDragger"
	KindUploadButton  ValueKind = "uploadButton"
	KindAutoComplete  ValueKind = "autoComplete"
	KindTransfer      ValueKind = "transfer"
	KindFeeRate       ValueKind = "feeRate"
)

// Textual reports whether the kind holds free text, which is what the
// whitespace rule applies to.
func (k ValueKind) Textual() bool {
	return k == KindText || k == KindTextArea
}

// Width is a sizing token (xs, sm, md, lg, xl) or a raw pixel value.
type Width string

const (
	WidthXS Width = "xs"
	WidthSM Width = "sm"
	WidthMD Width = "md"
	WidthLG Width = "lg"
	WidthXL Width = "xl"
)

var widthPixels = map[Width]int{
	WidthXS: 104,
	WidthSM: 216,
	WidthMD: 328,
	WidthLG: 440,
	WidthXL: 552,
}

// Pixels resolves a sizing token or a raw pixel value. It reports false for
// empty or unparseable widths.
func (w Width) Pixels() (int, bool) {
	if px, ok := widthPixels[w]; ok {
		return px, true
	}
	raw := strings.TrimSuffix(strings.TrimSpace(string(w)), "px")
	px, err := strconv.Atoi(raw)
	if err != nil || px <= 0 {
		return 0, false
	}
	return px, true
}

// Props is an ordered-agnostic bag of widget options.
type Props map[string]any

// Clone returns a shallow copy, or nil for an empty map.
func (p Props) Clone() Props {
	if len(p) == 0 {
		return nil
	}
	out := make(Props, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// Overlay returns base with every key from overlay applied on top. Neither
// input is modified.
func Overlay(base, overlay Props) Props {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	out := make(Props, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}

// Path addresses a value inside the form data. Segments are either object
// keys or decimal array indices.
type Path []string

// ParsePath splits a dotted path ("items.0.name") into segments.
func ParsePath(raw string) Path {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ".")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String joins the segments with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Empty reports whether the path has no segments.
func (p Path) Empty() bool {
	return len(p) == 0
}

// Last returns the final segment.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Join appends segments to a copy of the path.
func (p Path) Join(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	out = append(out, segments...)
	return out
}

// Index appends an array index segment.
func (p Path) Index(i int) Path {
	return p.Join(strconv.Itoa(i))
}

// PageContext describes which mode the enclosing screen is in. It is derived
// by the host and only read by the renderer.
type PageContext struct {
	Created bool `json:"created"`
	Updated bool `json:"updated"`
}

// RuleKind enumerates the validation rules the renderer can derive or
// callers can attach.
type RuleKind string

const (
	RuleRequired   RuleKind = "required"
	RuleWhitespace RuleKind = "whitespace"
	RuleCustom     RuleKind = "custom"
)

// Rule is a single validation constraint attached to a field. Custom rules
// either name a registered validator or carry a Check function.
type Rule struct {
	Kind      RuleKind          `json:"kind"`
	Message   string            `json:"message,omitempty"`
	Validator string            `json:"validator,omitempty"`
	Check     func(any) error   `json:"-"`
	Params    map[string]string `json:"params,omitempty"`
}

// ValueReader exposes the current form values to dependency renderers and
// repeatable lists.
type ValueReader interface {
	Get(path string) (any, bool)
}

// ActionHandle operates on the items of a repeatable group. The same handle
// is shared by every item of a list.
type ActionHandle interface {
	Add(defaults map[string]any) error
	Remove(index int) error
	Move(from, to int) error
	Count() int
}

// ListContext is threaded into the nested render of a repeatable group item.
type ListContext struct {
	Name    Path         `json:"name"`
	Index   int          `json:"index"`
	Count   int          `json:"count"`
	Key     string       `json:"key,omitempty"`
	Meta    Props        `json:"meta,omitempty"`
	Actions ActionHandle `json:"-"`
}

// RenderContext is what custom and dependency renderers see of the current
// render call.
type RenderContext struct {
	Page            PageContext
	Grid            bool
	DefaultWidth    Width
	DefaultColProps Props
	List            *ListContext
	Values          ValueReader
}

// CustomRenderFunc replaces the default rendering of a node. It receives the
// node after rule and layout defaults were applied.
type CustomRenderFunc func(node FieldNode, ctx RenderContext) Element

// DependencyRenderFunc renders a node from the current values of its
// declared dependency paths, keyed by dotted path.
type DependencyRenderFunc func(node FieldNode, deps map[string]any, ctx RenderContext) Element

// TitleRenderFunc transforms a group title. The result may contain markup;
// HTML renderers sanitise it.
type TitleRenderFunc func(title string, group FieldGroup, ctx RenderContext) string

// FieldNode is one configured field.
type FieldNode struct {
	Name         Path      `json:"name"`
	Label        string    `json:"label,omitempty"`
	ValueKind    ValueKind `json:"valueKind,omitempty"`
	Required     bool      `json:"required,omitempty"`
	CreateHidden bool      `json:"createHidden,omitempty"`
	EditDisabled bool      `json:"editDisabled,omitempty"`
	// Disabled forces the field read-only. The renderer also sets it on
	// update pages for EditDisabled nodes.
	Disabled bool `json:"disabled,omitempty"`
	// Whitespace enables the pure-whitespace rejection rule for textual kinds.
	// Nil means enabled.
	Whitespace  *bool    `json:"whitespace,omitempty"`
	Rules       []Rule   `json:"rules,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Tooltip     string   `json:"tooltip,omitempty"`
	Width       Width    `json:"width,omitempty"`
	ColProps    Props    `json:"colProps,omitempty"`
	FieldProps  Props    `json:"fieldProps,omitempty"`
	Options     []Option `json:"options,omitempty"`

	SubGroups   []FieldGroup `json:"subGroups,omitempty"`
	ListOptions Props        `json:"listOptions,omitempty"`

	DependencyNames  []Path               `json:"dependencyNames,omitempty"`
	RenderDependency DependencyRenderFunc `json:"-"`
	RenderCustom     CustomRenderFunc     `json:"-"`

	Extra Props `json:"extra,omitempty"`
}

// WhitespaceEnabled resolves the whitespace flag default.
func (n FieldNode) WhitespaceEnabled() bool {
	return n.Whitespace == nil || *n.Whitespace
}

// DisplayLabel returns the label, deriving one from the field name when the
// configuration leaves it empty.
func (n FieldNode) DisplayLabel() string {
	if label := strings.TrimSpace(n.Label); label != "" {
		return label
	}
	return PathLabel(n.Name)
}

// Option is a selectable choice for enumerated kinds.
type Option struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// FieldGroup is an ordered collection of fields rendered under one visual
// grouping.
type FieldGroup struct {
	Title           string          `json:"title,omitempty"`
	Fields          []FieldNode     `json:"fields"`
	DefaultWidth    Width           `json:"defaultWidth,omitempty"`
	DefaultColProps Props           `json:"defaultColProps,omitempty"`
	TitleRender     TitleRenderFunc `json:"-"`
	Meta            Props           `json:"meta,omitempty"`
}

// ElementKind distinguishes the descriptors produced by the renderer.
type ElementKind string

const (
	ElementField      ElementKind = "field"
	ElementGroup      ElementKind = "group"
	ElementList       ElementKind = "list"
	ElementListItem   ElementKind = "list-item"
	ElementDependency ElementKind = "dependency"
	ElementCustom     ElementKind = "custom"
)

// DependencyObserver re-renders a dependency element from fresh values.
type DependencyObserver func(values ValueReader) []Element

// Element is the renderer-neutral descriptor of one rendered node.
type Element struct {
	Kind         ElementKind  `json:"kind"`
	Key          string       `json:"key"`
	Name         Path         `json:"name,omitempty"`
	Path         Path         `json:"path,omitempty"`
	Label        string       `json:"label,omitempty"`
	ValueKind    ValueKind    `json:"valueKind,omitempty"`
	Widget       string       `json:"widget,omitempty"`
	Disabled     bool         `json:"disabled,omitempty"`
	Required     bool         `json:"required,omitempty"`
	Rules        []Rule       `json:"rules,omitempty"`
	Placeholder  string       `json:"placeholder,omitempty"`
	Tooltip      string       `json:"tooltip,omitempty"`
	Width        Width        `json:"width,omitempty"`
	ColProps     Props        `json:"colProps,omitempty"`
	FieldProps   Props        `json:"fieldProps,omitempty"`
	Options      []Option     `json:"options,omitempty"`
	Title        string       `json:"title,omitempty"`
	Children     []Element    `json:"children,omitempty"`
	List         *ListContext `json:"list,omitempty"`
	Dependencies []Path       `json:"dependencies,omitempty"`
	Extra        Props        `json:"extra,omitempty"`
	Custom       any          `json:"custom,omitempty"`

	Observe DependencyObserver `json:"-"`
	// ItemAt renders the item a list would show at index. Set on list
	// elements only.
	ItemAt func(index int) Element `json:"-"`
}

// Refresh re-evaluates a dependency element against the supplied values.
// Other elements are returned unchanged.
func (e Element) Refresh(values ValueReader) Element {
	if e.Kind != ElementDependency || e.Observe == nil {
		return e
	}
	e.Children = e.Observe(values)
	return e
}

// Walk visits the element and its descendants depth first. Returning false
// from fn skips the element's children.
func (e Element) Walk(fn func(Element) bool) {
	if !fn(e) {
		return
	}
	for _, child := range e.Children {
		child.Walk(fn)
	}
}
