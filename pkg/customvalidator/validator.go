package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

// RegisterCustomValidations регистрирует правила проекта в переданном валидаторе.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("currency_code", isCurrencyCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// isCurrencyCode - три заглавные латинские буквы (ISO 4217).
func isCurrencyCode(fl validator.FieldLevel) bool {
	return currencyRegex.MatchString(fl.Field().String())
}
