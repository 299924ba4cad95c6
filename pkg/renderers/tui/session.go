package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/feerate"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/values"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

var subFieldLabels = map[feerate.SubField]string{
	feerate.FieldKind:   "收费方式",
	feerate.FieldAmount: "费率",
	feerate.FieldMin:    "最低收费",
	feerate.FieldMax:    "最高收费",
}

// Session walks a rendered element tree and prompts for every editable
// field, writing answers into a values.Store.
type Session struct {
	settings
}

// NewSession constructs a session. Without WithPromptDriver it prompts on
// the process terminal.
func NewSession(options ...Option) *Session {
	return &Session{settings: newSettings(options)}
}

// Run prompts for elements in order. Answers that fail an element's rules
// are reported and asked again.
func (s *Session) Run(ctx context.Context, elements []model.Element, store *values.Store) error {
	if s.driver == nil {
		return ErrNoDriver
	}
	if store == nil {
		return errors.New("tui: store is nil")
	}
	return s.elements(ctx, elements, store)
}

func (s *Session) elements(ctx context.Context, elements []model.Element, store *values.Store) error {
	for _, el := range elements {
		if err := s.element(ctx, el, store); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) element(ctx context.Context, el model.Element, store *values.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch el.Kind {
	case model.ElementGroup:
		if el.Title != "" {
			if err := s.driver.Info(ctx, s.theme.Title.Render(el.Title)); err != nil {
				return err
			}
		}
		return s.elements(ctx, el.Children, store)
	case model.ElementListItem:
		return s.elements(ctx, el.Children, store)
	case model.ElementList:
		return s.list(ctx, el, store)
	case model.ElementDependency:
		children := el.Refresh(store).Children
		for i := range children {
			if children[i].Path.Empty() {
				children[i].Path = el.Path
			}
		}
		return s.elements(ctx, children, store)
	case model.ElementCustom:
		if el.Custom == nil {
			return nil
		}
		return s.driver.Info(ctx, s.line(el.Label, fmt.Sprint(el.Custom)))
	default:
		return s.field(ctx, el, store)
	}
}

func (s *Session) list(ctx context.Context, el model.Element, store *values.Store) error {
	path := el.Path.String()
	for _, item := range el.Children {
		if err := s.item(ctx, el, item, store); err != nil {
			return err
		}
	}
	if el.Disabled || el.ItemAt == nil {
		return nil
	}

	limit := maxItems(el.Extra)
	actions := render.NewListActions(store, el.Path)
	for {
		count := store.Len(path)
		if limit > 0 && count >= limit {
			return nil
		}
		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "添加" + el.Label + "?"})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := actions.Add(nil); err != nil {
			return err
		}
		if err := s.item(ctx, el, el.ItemAt(count), store); err != nil {
			return err
		}
	}
}

func (s *Session) item(ctx context.Context, list, item model.Element, store *values.Store) error {
	index := 0
	if item.List != nil {
		index = item.List.Index
	}
	heading := fmt.Sprintf("%s #%d", list.Label, index+1)
	if err := s.driver.Info(ctx, s.theme.Title.Render(heading)); err != nil {
		return err
	}
	return s.element(ctx, item, store)
}

func (s *Session) field(ctx context.Context, el model.Element, store *values.Store) error {
	path := el.Path.String()
	current, _ := store.Get(path)
	if el.Disabled {
		return s.driver.Info(ctx, s.line(el.Label, display(current)))
	}
	if el.Widget == widgets.WidgetFeeRate || el.ValueKind == model.KindFeeRate {
		return s.feeRate(ctx, el, store, current)
	}

	for {
		answer, err := s.ask(ctx, el, current)
		if err != nil {
			return err
		}
		ok, err := s.check(ctx, el, answer)
		if err != nil {
			return err
		}
		if ok {
			return save(store, path, answer)
		}
		current = answer
	}
}

// check reports rule failures to the user. A rule that cannot be evaluated
// aborts the session.
func (s *Session) check(ctx context.Context, el model.Element, answer any) (bool, error) {
	errs := s.validators.ValidateAll(el.Rules, answer)
	for _, err := range errs {
		var verr *validation.Error
		if !errors.As(err, &verr) {
			return false, fmt.Errorf("tui: validate %s: %w", el.Path, err)
		}
		if err := s.driver.Info(ctx, s.theme.Error.Render(verr.Reason)); err != nil {
			return false, err
		}
	}
	return len(errs) == 0, nil
}

func (s *Session) ask(ctx context.Context, el model.Element, current any) (any, error) {
	cfg := InputConfig{
		Message:     el.Label,
		Default:     display(current),
		Help:        el.Tooltip,
		Placeholder: el.Placeholder,
	}

	switch el.Widget {
	case widgets.WidgetPassword:
		cfg.Default = ""
		return nonEmpty(s.driver.Password(ctx, cfg))
	case widgets.WidgetTextArea:
		return nonEmpty(s.driver.TextArea(ctx, TextAreaConfig{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}))
	case widgets.WidgetSwitch:
		return s.driver.Confirm(ctx, ConfirmConfig{Message: cfg.Message, Default: truthy(current), Help: cfg.Help})
	case widgets.WidgetSelect, widgets.WidgetRadio, widgets.WidgetSegmented,
		widgets.WidgetTreeSelect, widgets.WidgetCascader:
		if len(el.Options) > 0 {
			return s.choose(ctx, el, current)
		}
	case widgets.WidgetCheckbox, widgets.WidgetTransfer:
		if len(el.Options) > 0 {
			return s.chooseMany(ctx, el, current)
		}
	case widgets.WidgetDigit, widgets.WidgetMoney, widgets.WidgetRate, widgets.WidgetSlider:
		return s.number(ctx, cfg)
	case widgets.WidgetAutoComplete:
		cfg.Suggestions = optionLabels(el.Options)
	}
	return nonEmpty(s.driver.Input(ctx, cfg))
}

func (s *Session) choose(ctx context.Context, el model.Element, current any) (any, error) {
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      el.Label,
		Options:      optionLabels(el.Options),
		DefaultIndex: optionIndex(el.Options, current),
		Help:         el.Tooltip,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(el.Options) {
		return nil, nil
	}
	return el.Options[idx].Value, nil
}

func (s *Session) chooseMany(ctx context.Context, el model.Element, current any) (any, error) {
	var defaults []int
	if selected, ok := current.([]any); ok {
		for _, value := range selected {
			if idx := optionIndex(el.Options, value); idx >= 0 {
				defaults = append(defaults, idx)
			}
		}
	}
	indices, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  el.Label,
		Options:  optionLabels(el.Options),
		Defaults: defaults,
		Help:     el.Tooltip,
	})
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(el.Options) {
			out = append(out, el.Options[idx].Value)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// number re-prompts until the answer is blank or parses as a decimal.
func (s *Session) number(ctx context.Context, cfg InputConfig) (any, error) {
	for {
		raw, err := s.driver.Input(ctx, cfg)
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(raw)
		if err == nil {
			return json.Number(d.String()), nil
		}
		if err := s.driver.Info(ctx, s.theme.Error.Render(cfg.Message+": 请输入数字")); err != nil {
			return nil, err
		}
		cfg.Default = raw
	}
}

func (s *Session) feeRate(ctx context.Context, el model.Element, store *values.Store, current any) error {
	seed, err := feerate.FromAny(current)
	if err != nil {
		diag.Warn(s.diagnostics, "tui.invalid_fee_rate", err.Error(), map[string]any{"path": el.Path.String()})
		seed = feerate.Value{}
	}
	input := feerate.New(feerate.WithValue(seed))

	for {
		if err := s.feeRateKind(ctx, el, input); err != nil {
			return err
		}
		for _, view := range input.Views() {
			if view.Field == feerate.FieldKind {
				continue
			}
			if err := s.feeRateNumber(ctx, el, input, view); err != nil {
				return err
			}
		}
		answer := input.Value().ToMap()
		ok, err := s.check(ctx, el, answer)
		if err != nil {
			return err
		}
		if ok {
			return store.Set(el.Path.String(), answer)
		}
	}
}

func (s *Session) feeRateKind(ctx context.Context, el model.Element, input *feerate.Input) error {
	options := feerate.KindOptions()
	labels := optionLabels(options)
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      el.Label + " " + subFieldLabels[feerate.FieldKind],
		Options:      labels,
		DefaultIndex: optionIndex(options, string(input.Value().Kind)),
		Help:         el.Tooltip,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return nil
	}
	return input.Edit(feerate.FieldKind, labels[idx])
}

func (s *Session) feeRateNumber(ctx context.Context, el model.Element, input *feerate.Input, view feerate.FieldView) error {
	cfg := InputConfig{
		Message:     el.Label + " " + subFieldLabels[view.Field],
		Default:     view.Text,
		Help:        view.Tip,
		Placeholder: view.Placeholder,
	}
	for {
		raw, err := s.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		err = input.Edit(view.Field, raw)
		if err == nil {
			return nil
		}
		if err := s.driver.Info(ctx, s.theme.Error.Render(err.Error())); err != nil {
			return err
		}
		cfg.Default = raw
	}
}

func (s *Session) line(label, text string) string {
	if label == "" {
		return s.theme.Info.Render(text)
	}
	return s.theme.Key.Render(label) + ": " + s.theme.Info.Render(text)
}

func save(store *values.Store, path string, answer any) error {
	if answer == nil {
		store.Delete(path)
		return nil
	}
	return store.Set(path, answer)
}

func nonEmpty(text string, err error) (any, error) {
	if err != nil || text == "" {
		return nil, err
	}
	return text, nil
}

func maxItems(extra model.Props) int {
	switch typed := extra["max"].(type) {
	case int:
		return typed
	case float64:
		return int(typed)
	case string:
		n, _ := strconv.Atoi(typed)
		return n
	}
	return 0
}

func optionLabels(options []model.Option) []string {
	out := make([]string, len(options))
	for i, option := range options {
		out[i] = option.Label
	}
	return out
}

func optionIndex(options []model.Option, value any) int {
	if value == nil {
		return -1
	}
	want := fmt.Sprint(value)
	for i, option := range options {
		if fmt.Sprint(option.Value) == want {
			return i
		}
	}
	return -1
}

func truthy(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		b, _ := strconv.ParseBool(typed)
		return b
	}
	return false
}

func display(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case map[string]any, []any:
		raw, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}
		return string(raw)
	}
	return fmt.Sprint(value)
}
