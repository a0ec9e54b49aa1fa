// internal/pkg/phone/phone.go
package phone

import (
	"strings"

	xerrors "bizcare-service/internal/pkg/errors"
)

const (
	minDigits = 10
	maxDigits = 11
)

// Normalize strips every non-digit character from the input.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks that an already normalized number has 10 or 11 digits.
func Validate(normalized string) error {
	if len(normalized) < minDigits || len(normalized) > maxDigits {
		return xerrors.PhoneFormat("phone number must contain 10 or 11 digits")
	}
	return nil
}

// NormalizeAndValidate normalizes raw and validates the result.
func NormalizeAndValidate(raw string) (string, error) {
	normalized := Normalize(raw)
	if err := Validate(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
