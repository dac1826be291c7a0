package auth

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	passwordMinLength = 4
	passwordMaxLength = 16
)

// ValidEmail reports whether email is non-empty and matches the standard
// address syntax accepted at registration.
func ValidEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

// ValidPassword reports whether password satisfies the registration policy:
// 4-16 characters with at least one digit, one lowercase letter, and one
// uppercase letter.
func ValidPassword(password string) bool {
	length := utf8.RuneCountInString(password)
	if length < passwordMinLength || length > passwordMaxLength {
		return false
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	return hasUpper && hasLower && hasNumber
}
