package feerate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidNumber is returned when a sub-field receives text that is not a
// decimal number.
var ErrInvalidNumber = errors.New("feerate: invalid number")

// NumberType selects the constraints of a numeric sub-input.
type NumberType string

const (
	NumberPlain    NumberType = "number"
	NumberCurrency NumberType = "currency"
)

// currencyMax is the largest amount a currency input accepts.
var currencyMax = decimal.RequireFromString("99999999999.99")

// NumberOptions bounds a numeric sub-input. A negative Precision leaves the
// scale untouched.
type NumberOptions struct {
	Type      NumberType
	Min       decimal.NullDecimal
	Max       decimal.NullDecimal
	Precision int32
}

// CurrencyNumber returns the constraints every fee-rate sub-input starts with.
func CurrencyNumber() NumberOptions {
	return NumberOptions{
		Type:      NumberCurrency,
		Min:       decimal.NewNullDecimal(decimal.Zero),
		Max:       decimal.NewNullDecimal(currencyMax),
		Precision: 2,
	}
}

// PlainNumber returns unconstrained options.
func PlainNumber() NumberOptions {
	return NumberOptions{Type: NumberPlain, Precision: -1}
}

// Parse converts user text into a decimal. Blank text is absent.
func (o NumberOptions) Parse(raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return o.Normalize(decimal.NewNullDecimal(d)), nil
}

// Normalize clamps d into [Min, Max] and rounds it to Precision.
func (o NumberOptions) Normalize(d decimal.NullDecimal) decimal.NullDecimal {
	if !d.Valid {
		return d
	}
	value := d.Decimal
	if o.Min.Valid && value.LessThan(o.Min.Decimal) {
		value = o.Min.Decimal
	}
	if o.Max.Valid && value.GreaterThan(o.Max.Decimal) {
		value = o.Max.Decimal
	}
	if o.Precision >= 0 {
		value = value.Round(o.Precision)
	}
	return decimal.NewNullDecimal(value)
}

// Format renders d for display, using the fixed precision when one is set.
func (o NumberOptions) Format(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	if o.Precision >= 0 {
		return d.Decimal.StringFixed(o.Precision)
	}
	return d.Decimal.String()
}
