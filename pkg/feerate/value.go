package feerate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is the composite fee rate. An invalid NullDecimal is an absent
// amount; Min and Max default to zero.
type Value struct {
	Kind   Kind
	Amount decimal.NullDecimal
	Min    decimal.NullDecimal
	Max    decimal.NullDecimal
}

// DefaultValue is the state of an input mounted without a value.
func DefaultValue() Value {
	return Value{
		Kind: Percentage,
		Min:  decimal.NewNullDecimal(decimal.Zero),
		Max:  decimal.NewNullDecimal(decimal.Zero),
	}
}

// WithDefaults fills an empty Kind with Percentage and absent Min and Max
// with zero. Amount stays absent.
func (v Value) WithDefaults() Value {
	if v.Kind == "" {
		v.Kind = Percentage
	}
	if !v.Min.Valid {
		v.Min = decimal.NewNullDecimal(decimal.Zero)
	}
	if !v.Max.Valid {
		v.Max = decimal.NewNullDecimal(decimal.Zero)
	}
	return v
}

// Equal compares kinds and decimal values numerically.
func (v Value) Equal(other Value) bool {
	return v.Kind == other.Kind &&
		nullEqual(v.Amount, other.Amount) &&
		nullEqual(v.Min, other.Min) &&
		nullEqual(v.Max, other.Max)
}

func nullEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

// Amt is a convenience constructor for a present decimal.
func Amt(raw string) decimal.NullDecimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ToMap converts the value to the map layout stored in form data. Absent
// amounts are stored as an empty string.
func (v Value) ToMap() map[string]any {
	return map[string]any{
		"type":  string(v.Kind),
		"value": nullString(v.Amount),
		"min":   nullString(v.Min),
		"max":   nullString(v.Max),
	}
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// FromAny converts form data into a Value. It accepts Value, *Value and the
// map layout produced by ToMap.
func FromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return typed, nil
	case *Value:
		if typed == nil {
			return Value{}, nil
		}
		return *typed, nil
	case map[string]any:
		return fromMap(typed)
	default:
		return Value{}, fmt.Errorf("feerate: unsupported value type %T", raw)
	}
}

func fromMap(src map[string]any) (Value, error) {
	var out Value
	if kind, ok := src["type"].(string); ok {
		out.Kind = Kind(kind)
	}
	var err error
	if out.Amount, err = toNullDecimal(src["value"]); err != nil {
		return Value{}, fmt.Errorf("feerate: value: %w", err)
	}
	if out.Min, err = toNullDecimal(src["min"]); err != nil {
		return Value{}, fmt.Errorf("feerate: min: %w", err)
	}
	if out.Max, err = toNullDecimal(src["max"]); err != nil {
		return Value{}, fmt.Errorf("feerate: max: %w", err)
	}
	return out, nil
}

func toNullDecimal(raw any) (decimal.NullDecimal, error) {
	switch typed := raw.(type) {
	case nil:
		return decimal.NullDecimal{}, nil
	case decimal.NullDecimal:
		return typed, nil
	case decimal.Decimal:
		return decimal.NewNullDecimal(typed), nil
	case string:
		typed = strings.TrimSpace(typed)
		if typed == "" {
			return decimal.NullDecimal{}, nil
		}
		d, err := decimal.NewFromString(typed)
		if err != nil {
			return decimal.NullDecimal{}, fmt.Errorf("%w: %q", ErrInvalidNumber, typed)
		}
		return decimal.NewNullDecimal(d), nil
	case json.Number:
		return toNullDecimal(typed.String())
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(typed)), nil
	case float32:
		return decimal.NewNullDecimal(decimal.NewFromFloat32(typed)), nil
	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(typed))), nil
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(typed)), nil
	default:
		return decimal.NullDecimal{}, fmt.Errorf("%w: %T", ErrInvalidNumber, raw)
	}
}

type wireValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
	Min   json.RawMessage `json:"min"`
	Max   json.RawMessage `json:"max"`
}

// MarshalJSON writes the wire layout; absent decimals become null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireValue{
		Type:  string(v.Kind),
		Value: rawDecimal(v.Amount),
		Min:   rawDecimal(v.Min),
		Max:   rawDecimal(v.Max),
	})
}

func rawDecimal(d decimal.NullDecimal) json.RawMessage {
	if !d.Valid {
		return json.RawMessage("null")
	}
	return json.RawMessage(d.Decimal.String())
}

// UnmarshalJSON accepts numbers, numeric strings, empty strings and null.
func (v *Value) UnmarshalJSON(data []byte) error {
	var wire wireValue
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("feerate: decode: %w", err)
	}
	out := Value{Kind: Kind(wire.Type)}
	var err error
	if out.Amount, err = decodeDecimal(wire.Value); err != nil {
		return fmt.Errorf("feerate: value: %w", err)
	}
	if out.Min, err = decodeDecimal(wire.Min); err != nil {
		return fmt.Errorf("feerate: min: %w", err)
	}
	if out.Max, err = decodeDecimal(wire.Max); err != nil {
		return fmt.Errorf("feerate: max: %w", err)
	}
	*v = out
	return nil
}

func decodeDecimal(raw json.RawMessage) (decimal.NullDecimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.NullDecimal{}, nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.NullDecimal{}, err
		}
		return toNullDecimal(text)
	}
	return toNullDecimal(string(raw))
}
