// Package validation holds small field-level validators shared by the
// service layer.
package validation

import (
	"net/mail"
	"net/url"
	"strings"
)

// NonEmpty reports whether s contains anything besides whitespace.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// WebURL reports whether s parses as an absolute http or https URL.
// Empty input is accepted; optional fields pass it through.
func WebURL(s string) bool {
	if s == "" {
		return true
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Email reports whether s parses as an RFC 5322 address.
func Email(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}
