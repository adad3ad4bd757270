package account

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/samdev/lexibase/pkg/fail"
)

const minPasswordLength = 8

// normalizeEmail lower-cases, trims, and syntax-checks an address.
func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", fail.InvalidEmail()
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fail.InvalidEmail()
	}
	return email, nil
}

// validatePassword enforces the registration password policy. It runs
// before hashing or any write so no side effect precedes a rejection.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fail.InvalidPassword("must be at least 8 characters")
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasLetter {
		return fail.InvalidPassword("must contain a letter")
	}
	if !hasDigit {
		return fail.InvalidPassword("must contain a digit")
	}
	if !hasSymbol {
		return fail.InvalidPassword("must contain a symbol")
	}
	return nil
}
