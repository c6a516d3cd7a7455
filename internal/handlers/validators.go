package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validVNDAmount accepts whole positive VND amounts. The dong has no minor
// unit, so fractional values are rejected at the boundary.
func validVNDAmount(fl validator.FieldLevel) bool {
	amount, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return amount.IsPositive() && amount.IsInteger()
}

func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("vndamount", validVNDAmount)
	}
}
