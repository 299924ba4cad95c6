package feerate

import (
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// ValidatorName is the name Validate is registered under.
const ValidatorName = "feeRate"

const (
	ReasonAmountRequired = "请输入每笔收费费率"
	ReasonMinNotBelowMax = "每笔最高收费必须大于每笔最低收费"
)

func init() {
	validation.Register(ValidatorName, Check)
}

// Validate rejects an absent amount, and a capped percentage whose minimum
// is not below its maximum. Failures are *validation.Error.
func Validate(v Value) error {
	if !v.Amount.Valid {
		return &validation.Error{Rule: model.RuleCustom, Reason: ReasonAmountRequired}
	}
	if v.Kind == CappedPercentage && v.Min.Decimal.GreaterThanOrEqual(v.Max.Decimal) {
		return &validation.Error{Rule: model.RuleCustom, Reason: ReasonMinNotBelowMax}
	}
	return nil
}

// Check adapts Validate to validation.Func. Values that cannot be decoded
// fail with the decode error as reason.
func Check(raw any) error {
	value, err := FromAny(raw)
	if err != nil {
		return validation.Failed(err.Error())
	}
	return Validate(value)
}

// Rule returns a custom rule bound to the registered validator.
func Rule() model.Rule {
	return model.Rule{Kind: model.RuleCustom, Validator: ValidatorName}
}
