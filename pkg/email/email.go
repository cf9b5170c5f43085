// Package email holds small helpers for working with email addresses.
package email

import (
	"strings"
	"unicode"
)

// DeriveName builds a human-readable display name from the local part of an
// email address. "fatima.begum@example.com" becomes "Fatima Begum". Used when
// a registration arrives without a name.
func DeriveName(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "User"
	}

	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
