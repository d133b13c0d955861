// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("granularity", validateGranularity)
		_ = v.RegisterValidation("frequency", validateFrequency)
		_ = v.RegisterValidation("transaction_kind", validateTransactionKind)
		_ = v.RegisterValidation("category_kind", validateCategoryKind)
		_ = v.RegisterValidation("asset_type", validateAssetType)
		_ = v.RegisterValidation("transaction_source", validateTransactionSource)
	}
}

func validateGranularity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "week", "month", "year":
		return true
	}
	return false
}

func validateFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "fortnightly", "monthly", "yearly", "once":
		return true
	}
	return false
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateCategoryKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateAssetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "savings", "investment", "property", "other":
		return true
	}
	return false
}

func validateTransactionSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "manual", "imported", "recurring-generated":
		return true
	}
	return false
}
