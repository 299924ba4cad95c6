package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-formkit/pkg/model"
)

func TestValidateRequired(t *testing.T) {
	rule := Rule{Kind: model.RuleRequired, Message: "名称 是必填字段"}
	cases := []struct {
		name  string
		value any
		fail  bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"empty slice", []any{}, true},
		{"absent decimal", decimal.NullDecimal{}, true},
		{"text", "a", false},
		{"zero", 0, false},
		{"false", false, false},
		{"decimal", decimal.NewNullDecimal(decimal.Zero), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(rule, tc.value)
			if !tc.fail {
				if err != nil {
					t.Fatalf("expected pass, got %v", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if verr.Reason != "名称 是必填字段" || verr.Rule != model.RuleRequired {
				t.Fatalf("unexpected error %+v", verr)
			}
		})
	}
}

func TestValidateWhitespace(t *testing.T) {
	rule := Rule{Kind: model.RuleWhitespace}
	if err := Validate(rule, "   "); err == nil {
		t.Fatalf("expected whitespace-only value to fail")
	}
	if err := Validate(rule, ""); err != nil {
		t.Fatalf("empty value belongs to the required rule, got %v", err)
	}
	if err := Validate(rule, " a "); err != nil {
		t.Fatalf("expected padded text to pass, got %v", err)
	}
	if err := Validate(rule, 3); err != nil {
		t.Fatalf("non-strings pass, got %v", err)
	}
}

func TestValidateCustom(t *testing.T) {
	reg := NewRegistry()
	reg.Register("positive", func(value any) error {
		if n, ok := value.(int); ok && n > 0 {
			return nil
		}
		return errors.New("must be positive")
	})

	if err := reg.Validate(Rule{Kind: model.RuleCustom, Validator: "positive"}, 2); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	err := reg.Validate(Rule{Kind: model.RuleCustom, Validator: "positive"}, -1)
	var verr *Error
	if !errors.As(err, &verr) || verr.Reason != "must be positive" {
		t.Fatalf("expected wrapped reason, got %v", err)
	}

	err = reg.Validate(Rule{Kind: model.RuleCustom, Validator: "missing"}, 1)
	if !errors.Is(err, ErrUnknownValidator) {
		t.Fatalf("expected ErrUnknownValidator, got %v", err)
	}

	check := Rule{Kind: model.RuleCustom, Check: func(any) error { return Failed("nope") }}
	if err := reg.Validate(check, nil); err == nil || err.Error() != "nope" {
		t.Fatalf("expected inline check failure, got %v", err)
	}
}

func TestValidateAllKeepsOrder(t *testing.T) {
	rules := []Rule{
		{Kind: model.RuleCustom, Check: func(any) error { return Failed("first") }},
		{Kind: model.RuleRequired, Message: "second"},
		{Kind: model.RuleWhitespace},
	}
	errs := ValidateAll(rules, "")
	if len(errs) != 2 {
		t.Fatalf("expected two failures, got %v", errs)
	}
	if errs[0].Error() != "first" || errs[1].Error() != "second" {
		t.Fatalf("unexpected order %v", errs)
	}
}
