package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText          = "text"
	WidgetPassword      = "password"
	WidgetCaptcha       = "captcha"
	WidgetTextArea      = "textarea"
	WidgetDigit         = "digit"
	WidgetMoney         = "money"
	WidgetDate          = "date-picker"
	WidgetDateTime      = "datetime-picker"
	WidgetDateRange     = "date-range-picker"
	WidgetDateTimeRange = "datetime-range-picker"
	WidgetTime          = "time-picker"
	WidgetTimeRange     = "time-range-picker"
	WidgetSelect        = "select"
	WidgetTreeSelect    = "tree-select"
	WidgetCascader      = "cascader"
	WidgetCheckbox      = "checkbox"
	WidgetRadio         = "radio"
	WidgetSwitch        = "switch"
	WidgetRate          = "rate"
	WidgetSlider        = "slider"
	WidgetSegmented     = "segmented"
	WidgetUploadDragger = "upload-dragger"
	WidgetUploadButton  = "upload-button"
	WidgetAutoComplete  = "auto-complete"
	WidgetTransfer      = "transfer"
	WidgetFeeRate       = "fee-rate"
)

// Widget is the resolved component for a field.
type Widget struct {
	Name string
	Kind model.ValueKind
	// Fallback is set when the kind was unknown and Name is the text widget.
	Fallback bool
}

// Resolver maps a value kind and its field props to a widget.
type Resolver interface {
	Resolve(kind model.ValueKind, props model.Props) (Widget, bool)
}

// Suggester is implemented by resolvers that can name the closest known kind
// for an unknown one.
type Suggester interface {
	Suggest(kind model.ValueKind) (model.ValueKind, bool)
}

// Matcher decides whether a widget should handle the supplied kind.
type Matcher func(kind model.ValueKind, props model.Props) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for value kinds based on an explicit "widget" prop
// or registered matchers. Higher priority wins; ties fall back to
// registration order. Unknown kinds resolve to the text widget with ok=false.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
	kinds map[model.ValueKind]struct{}
}

// NewRegistry constructs a registry with the built-in kinds registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// RegisterKind binds a value kind to a widget and records the kind as known.
func (r *Registry) RegisterKind(kind model.ValueKind, name string, priority int) {
	if r == nil || kind == "" {
		return
	}
	r.Register(name, priority, func(candidate model.ValueKind, _ model.Props) bool {
		return candidate == kind
	})
	r.mu.Lock()
	if r.kinds == nil {
		r.kinds = make(map[model.ValueKind]struct{})
	}
	r.kinds[kind] = struct{}{}
	r.mu.Unlock()
}

// Resolve returns the widget for kind. An empty kind is treated as text.
func (r *Registry) Resolve(kind model.ValueKind, props model.Props) (Widget, bool) {
	if kind == "" {
		kind = model.KindText
	}
	if explicit := explicitWidget(props); explicit != "" {
		return Widget{Name: explicit, Kind: kind}, true
	}
	if r == nil {
		return fallback(kind), false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(kind, props) {
			return Widget{Name: entry.name, Kind: kind}, true
		}
	}
	return fallback(kind), false
}

// Kinds lists the known value kinds sorted alphabetically.
func (r *Registry) Kinds() []model.ValueKind {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.ValueKind, 0, len(r.kinds))
	for kind := range r.kinds {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Suggest returns the known kind with the smallest edit distance to kind.
// Candidates further than half the input length are not suggested.
func (r *Registry) Suggest(kind model.ValueKind) (model.ValueKind, bool) {
	input := strings.ToLower(string(kind))
	if input == "" {
		return "", false
	}
	best, bestDistance := model.ValueKind(""), -1
	for _, candidate := range r.Kinds() {
		distance := levenshtein.ComputeDistance(input, strings.ToLower(string(candidate)))
		if bestDistance < 0 || distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	limit := len(input) / 2
	if limit < 1 {
		limit = 1
	}
	if bestDistance < 0 || bestDistance > limit {
		return "", false
	}
	return best, true
}

func fallback(kind model.ValueKind) Widget {
	return Widget{Name: WidgetText, Kind: kind, Fallback: true}
}

func explicitWidget(props model.Props) string {
	if props == nil {
		return ""
	}
	if widget, ok := props["widget"].(string); ok {
		return strings.TrimSpace(widget)
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	builtins := []struct {
		kind   model.ValueKind
		widget string
	}{
		{model.KindText, WidgetText},
		{model.KindPassword, WidgetPassword},
		{model.KindCaptcha, WidgetCaptcha},
		{model.KindTextArea, WidgetTextArea},
		{model.KindDigit, WidgetDigit},
		{model.KindMoney, WidgetMoney},
		{model.KindDate, WidgetDate},
		{model.KindDateTime, WidgetDateTime},
		{model.KindDateRange, WidgetDateRange},
		{model.KindDateTimeRange, WidgetDateTimeRange},
		{model.KindTime, WidgetTime},
		{model.KindTimeRange, WidgetTimeRange},
		{model.KindSelect, WidgetSelect},
		{model.KindTreeSelect, WidgetTreeSelect},
		{model.KindCascader, WidgetCascader},
		{model.KindCheckbox, WidgetCheckbox},
		{model.KindRadio, WidgetRadio},
		{model.KindSwitch, WidgetSwitch},
		{model.KindRate, WidgetRate},
		{model.KindSlider, WidgetSlider},
		{model.KindSegmented, WidgetSegmented},
		{model.KindUploadDragger, WidgetUploadDragger},
		{model.KindUploadButton, WidgetUploadButton},
		{model.KindAutoComplete, WidgetAutoComplete},
		{model.KindTransfer, WidgetTransfer},
		{model.KindFeeRate, WidgetFeeRate},
	}
	for _, entry := range builtins {
		r.RegisterKind(entry.kind, entry.widget, 0)
	}
}
