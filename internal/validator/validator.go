// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var monthYearRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("bill_priority", validateBillPriority)
		_ = v.RegisterValidation("income_kind", validateIncomeKind)
		_ = v.RegisterValidation("recurrence_unit", validateRecurrenceUnit)
		_ = v.RegisterValidation("weekday", validateWeekday)
		_ = v.RegisterValidation("month_year", validateMonthYear)
	}
}

func validateBillPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "low", "medium", "high":
		return true
	}
	return false
}

func validateIncomeKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "paycheck", "deposit":
		return true
	}
	return false
}

func validateRecurrenceUnit(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "week", "month":
		return true
	}
	return false
}

// validateWeekday accepts 0 (Sunday) through 6 (Saturday).
func validateWeekday(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 0 && d <= 6
}

func validateMonthYear(fl validator.FieldLevel) bool {
	return monthYearRegex.MatchString(fl.Field().String())
}
