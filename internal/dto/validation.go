package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidations installs the binding tags used by the request
// DTOs on gin's validator engine. Call once at startup before serving.
//
// "dgt0" passes when a decimal.Decimal field is strictly greater than zero.
// The stock "required" tag cannot express this for decimals because a zero
// decimal is a valid struct value.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("dgt0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return d.GreaterThan(decimal.Zero)
	})
}
