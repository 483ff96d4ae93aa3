// Package sanitizer normalizes user input before it is validated or used as a key.
package sanitizer

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the address so
// the same mailbox always maps to the same store key and account row.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}
