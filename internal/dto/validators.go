package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidators installs the decimal binding validators on the
// given engine (gin's binding.Validator.Engine() in practice).
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("decimalpositive", decimalPositive); err != nil {
		return err
	}
	return v.RegisterValidation("decimalnonneg", decimalNonNegative)
}

func decimalPositive(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.IsPositive()
}

func decimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative()
}
