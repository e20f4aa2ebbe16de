package utils

import (
	"strings"
	"time"

	"erp-system/pkg/constants"
	apperrors "erp-system/pkg/errors"
)

// ParseDate разбирает дату в формате YYYY-MM-DD (UTC).
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperrors.NewInvalidInputError("неверный формат даты '%s', ожидается ГГГГ-ММ-ДД", value)
	}
	return t, nil
}

// ParseOptionalDate возвращает nil для пустой строки.
func ParseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}

func FormatDateTime(t time.Time) string {
	return t.Local().Format(constants.DateTimeLayout)
}
