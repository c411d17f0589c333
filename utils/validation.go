// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	phonePattern    = regexp.MustCompile(`^\+?\d{7,15}$`)
	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// NormalizePhone removes spaces, dashes and parentheses from a phone number.
func NormalizePhone(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}

// ValidatePhone checks that a phone number has 7 to 15 digits, optionally
// prefixed with +, once normalized.
// Local numbers with a leading 0 ("0212 555 55 55") are accepted.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}
