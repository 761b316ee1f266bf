// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("bill_frequency", validateBillFrequency)
		_ = v.RegisterValidation("bill_status", validateBillStatus)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateBillFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "biweekly", "monthly", "quarterly", "yearly", "one_time":
		return true
	}
	return false
}

func validateBillStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "paid":
		return true
	}
	return false
}
