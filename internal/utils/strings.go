package utils

import (
	"regexp"
	"strings"
)

// NormalizeString trims whitespace and normalizes string input
func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail normalizes email addresses (lowercase and trim)
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeCode uppercases a confirmation code as guests may type it in any case.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks the local@domain.tld shape only.
func IsValidEmail(email string) bool {
	return emailShape.MatchString(strings.TrimSpace(email))
}
