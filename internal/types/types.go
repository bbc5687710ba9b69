package types

import (
	"regexp"
)

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsNumeric checks if a string is a base-10 unsigned integer literal
func IsNumeric(s string) bool {
	regex := regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
	return regex.MatchString(s)
}
