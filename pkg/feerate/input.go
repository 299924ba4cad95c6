package feerate

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-formkit/pkg/model"
)

// ErrUncontrolled is returned by SetValue on an uncontrolled input.
var ErrUncontrolled = errors.New("feerate: SetValue requires a controlled input")

// Mode fixes who owns the displayed value.
type Mode int

const (
	// Uncontrolled inputs apply edits to their own state.
	Uncontrolled Mode = iota
	// Controlled inputs display only values pushed through SetValue.
	Controlled
)

func (m Mode) String() string {
	if m == Controlled {
		return "controlled"
	}
	return "uncontrolled"
}

// FieldOptions overrides the rendering of one sub-field.
type FieldOptions struct {
	Placeholder string
	// Tip replaces the default tooltip text. TipFunc wins when both are set.
	Tip     string
	TipFunc func(value decimal.NullDecimal, kind Kind) string
	Number  *NumberOptions
	Props   model.Props
}

// Option configures an Input.
type Option func(*Input)

// WithMode selects controlled or uncontrolled operation.
func WithMode(mode Mode) Option {
	return func(in *Input) {
		in.mode = mode
	}
}

// WithValue seeds the state. Missing min and max default to zero.
func WithValue(v Value) Option {
	return func(in *Input) {
		in.state = v.WithDefaults()
		in.seeded = true
	}
}

// WithOnChange registers the change callback.
func WithOnChange(fn func(Value)) Option {
	return func(in *Input) {
		in.onChange = fn
	}
}

// WithFieldOptions overrides the rendering of a sub-field.
func WithFieldOptions(field SubField, opts FieldOptions) Option {
	return func(in *Input) {
		if in.fields == nil {
			in.fields = make(map[SubField]FieldOptions)
		}
		in.fields[field] = opts
	}
}

// Input is the composite fee-rate input.
type Input struct {
	mode     Mode
	state    Value
	seeded   bool
	onChange func(Value)
	fields   map[SubField]FieldOptions
}

// New constructs an input. Without WithValue the state starts as a
// percentage with an absent amount and zero bounds.
func New(opts ...Option) *Input {
	in := &Input{}
	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}
	if !in.seeded {
		in.state = DefaultValue()
	}
	return in
}

// Mode reports the operating mode.
func (in *Input) Mode() Mode {
	return in.mode
}

// Value returns the displayed state.
func (in *Input) Value() Value {
	return in.state
}

// SetValue replaces the displayed state with an externally owned value.
func (in *Input) SetValue(v Value) error {
	if in.mode != Controlled {
		return ErrUncontrolled
	}
	in.state = v.WithDefaults()
	return nil
}

// SetKind switches the rate kind. Sibling values are kept.
func (in *Input) SetKind(kind Kind) {
	next := in.state
	next.Kind = kind
	in.commit(next)
}

// SetAmount edits the amount.
func (in *Input) SetAmount(amount decimal.NullDecimal) {
	next := in.state
	next.Amount = amount
	in.commit(next)
}

// SetMin edits the minimum.
func (in *Input) SetMin(min decimal.NullDecimal) {
	next := in.state
	next.Min = min
	in.commit(next)
}

// SetMax edits the maximum.
func (in *Input) SetMax(max decimal.NullDecimal) {
	next := in.state
	next.Max = max
	in.commit(next)
}

func (in *Input) commit(next Value) {
	if in.mode == Uncontrolled {
		in.state = next
	}
	if in.onChange != nil {
		in.onChange(next)
	}
}

// Edit parses raw text for a sub-field and applies it through the matching
// setter. Numeric text is clamped and rounded by the sub-field's number
// options. Unparseable text leaves the state untouched.
func (in *Input) Edit(field SubField, raw string) error {
	if field == FieldKind {
		kind, ok := ParseKind(raw)
		if !ok {
			return fmt.Errorf("feerate: unknown kind %q", raw)
		}
		in.SetKind(kind)
		return nil
	}
	value, err := in.numberOptions(field).Parse(raw)
	if err != nil {
		return err
	}
	switch field {
	case FieldAmount:
		in.SetAmount(value)
	case FieldMin:
		in.SetMin(value)
	case FieldMax:
		in.SetMax(value)
	default:
		return fmt.Errorf("feerate: unknown sub-field %q", field)
	}
	return nil
}

// Layout returns the visible sub-fields for the current kind.
func (in *Input) Layout() Layout {
	return LayoutFor(in.state.Kind)
}

// FieldView is the render-ready description of one visible sub-field.
type FieldView struct {
	Field       SubField
	Width       string
	Placeholder string
	Tip         string
	Text        string
	Kind        Kind
	Options     []model.Option
	Value       decimal.NullDecimal
	Number      NumberOptions
	Props       model.Props
}

// Views describes the visible sub-fields in display order.
func (in *Input) Views() []FieldView {
	layout := in.Layout()
	width := layout.ColumnWidth()
	out := make([]FieldView, 0, len(layout.Fields))
	for _, field := range layout.Fields {
		opts := in.fields[field]
		view := FieldView{
			Field:       field,
			Width:       width,
			Placeholder: opts.Placeholder,
			Props:       opts.Props.Clone(),
		}
		if field == FieldKind {
			view.Kind = in.state.Kind
			view.Options = KindOptions()
			view.Text = in.state.Kind.Label()
			out = append(out, view)
			continue
		}
		view.Number = in.numberOptions(field)
		view.Value = in.value(field)
		view.Text = view.Number.Format(view.Value)
		if field == FieldAmount && view.Placeholder == "" {
			view.Placeholder = ReasonAmountRequired
		}
		view.Tip = in.tip(field, opts, view.Value)
		out = append(out, view)
	}
	return out
}

func (in *Input) value(field SubField) decimal.NullDecimal {
	switch field {
	case FieldAmount:
		return in.state.Amount
	case FieldMin:
		return in.state.Min
	case FieldMax:
		return in.state.Max
	}
	return decimal.NullDecimal{}
}

func (in *Input) numberOptions(field SubField) NumberOptions {
	if opts, ok := in.fields[field]; ok && opts.Number != nil {
		return *opts.Number
	}
	return CurrencyNumber()
}

func (in *Input) tip(field SubField, opts FieldOptions, value decimal.NullDecimal) string {
	if opts.TipFunc != nil {
		return opts.TipFunc(value, in.state.Kind)
	}
	text := ""
	if value.Valid {
		text = value.Decimal.String()
	}
	if opts.Tip != "" {
		return opts.Tip + ": " + text
	}
	switch field {
	case FieldAmount:
		if text == "" {
			text = "0"
		}
		return "每笔收费: " + text + in.state.Kind.Unit()
	case FieldMin:
		return "每笔最低收费: " + text
	case FieldMax:
		return "每笔最高收费: " + text
	}
	return ""
}
