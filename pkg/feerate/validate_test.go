package feerate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/goliatone/go-formkit/pkg/validation"
)

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	return verr.Reason
}

func TestValidate(t *testing.T) {
	if got := reasonOf(t, Validate(Value{Kind: Flat})); got != ReasonAmountRequired {
		t.Fatalf("unexpected reason %q", got)
	}
	if err := Validate(Value{Kind: Flat, Amount: Amt("5")}); err != nil {
		t.Fatalf("expected flat amount to pass, got %v", err)
	}
	if err := Validate(Value{Kind: Flat, Amount: Amt("0")}); err != nil {
		t.Fatalf("zero is a present amount, got %v", err)
	}

	capped := Value{Kind: CappedPercentage, Amount: Amt("1"), Min: Amt("10"), Max: Amt("5")}
	if got := reasonOf(t, Validate(capped)); got != ReasonMinNotBelowMax {
		t.Fatalf("unexpected reason %q", got)
	}
	capped.Min, capped.Max = Amt("5"), Amt("10")
	if err := Validate(capped); err != nil {
		t.Fatalf("expected min < max to pass, got %v", err)
	}
	capped.Max = Amt("5")
	if got := reasonOf(t, Validate(capped)); got != ReasonMinNotBelowMax {
		t.Fatalf("equal bounds must fail, got %q", got)
	}
}

func TestRegisteredValidator(t *testing.T) {
	err := validation.Validate(Rule(), map[string]any{"type": "cap", "value": ""})
	if got := reasonOf(t, err); got != ReasonAmountRequired {
		t.Fatalf("unexpected reason %q", got)
	}
	if err := validation.Validate(Rule(), Value{Kind: Flat, Amount: Amt("3")}); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestValueJSON(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"type":"capPercentage","value":"","min":1,"max":"2.5"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := Value{Kind: CappedPercentage, Min: Amt("1"), Max: Amt("2.5")}
	if !v.Equal(want) {
		t.Fatalf("unexpected value %+v", v)
	}

	raw, err := json.Marshal(Value{Kind: Flat, Amount: Amt("3")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"type":"cap","value":3,"min":null,"max":null}` {
		t.Fatalf("unexpected json %s", raw)
	}

	if err := json.Unmarshal([]byte(`{"type":"cap","value":"x"}`), &v); !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("expected ErrInvalidNumber, got %v", err)
	}
}

func TestFromAnyMapRoundTrip(t *testing.T) {
	original := Value{Kind: Percentage, Amount: Amt("0.6"), Min: Amt("1"), Max: Amt("0")}
	got, err := FromAny(original.ToMap())
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if !got.Equal(original) {
		t.Fatalf("expected %+v, got %+v", original, got)
	}
}
