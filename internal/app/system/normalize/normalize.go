// Package normalize canonicalizes user-supplied strings before they are
// validated or stored.
package normalize

import "strings"

// Email trims surrounding whitespace and lowercases the address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Text trims surrounding whitespace from free-form article fields.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims surrounding whitespace from a query string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
