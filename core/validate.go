package core

import (
	"regexp"
	"strings"
)

// Request validation contract. Validation runs before any side effect;
// each function returns the first violated rule's error so handlers can
// surface a single field message.

const (
	emailMinLen       = 6
	emailMaxLen       = 60
	passwordMinLen    = 8
	titleMaxLen       = 80
	descriptionMaxLen = 2000
)

var (
	emailShapeRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-zA-Z]{2,}$`)

	// Go's regexp has no lookahead, so the complexity policy is a set of
	// independent character-class checks rather than one pattern.
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)

	codeRegex = regexp.MustCompile(`^\d{6}$`)
)

// allowedTLDs restricts registrations to .com and .net addresses.
var allowedTLDs = map[string]bool{
	"com": true,
	"net": true,
}

// NormalizeEmail lowercases and trims an address before validation or
// storage so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks shape, length and the TLD allow-list. The input is
// expected to be normalized already.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) < emailMinLen || len(email) > emailMaxLen {
		return ErrEmailLength
	}
	if !emailShapeRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	tld := email[strings.LastIndex(email, ".")+1:]
	if !allowedTLDs[strings.ToLower(tld)] {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the complexity policy: at least 8 characters
// containing an uppercase letter, a lowercase letter and a digit.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < passwordMinLen {
		return ErrPasswordTooShort
	}
	if !uppercaseRegex.MatchString(password) ||
		!lowercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) {
		return ErrPasswordWeak
	}
	return nil
}

// ValidateCode checks the one-time code shape.
func ValidateCode(code string) error {
	if code == "" {
		return ErrCodeRequired
	}
	if !codeRegex.MatchString(code) {
		return ErrInvalidCodeFormat
	}
	return nil
}

// ValidatePost checks the post fields after trimming. Returns the
// trimmed values so callers store exactly what was validated.
func ValidatePost(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return "", "", ErrTitleRequired
	}
	if len(title) > titleMaxLen {
		return "", "", ErrTitleTooLong
	}
	if description == "" {
		return "", "", ErrDescriptionRequired
	}
	if len(description) > descriptionMaxLen {
		return "", "", ErrDescriptionTooLong
	}
	return title, description, nil
}
