// Package identity owns credential verification, password policy and
// session issuance. Handlers call into it and branch on the outcome; they
// never touch password hashes or session rows directly.
package identity

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidatePolicy checks a candidate password against the account policy and
// returns one message per violated rule. An empty slice means the password
// is acceptable. Messages are shown to the user verbatim.
func ValidatePolicy(plain string) []string {
	var msgs []string
	if len(plain) < 8 {
		msgs = append(msgs, "password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(plain, unicode.IsDigit) {
		msgs = append(msgs, "password must contain at least one digit")
	}
	if !strings.ContainsFunc(plain, unicode.IsUpper) {
		msgs = append(msgs, "password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(plain, unicode.IsLower) {
		msgs = append(msgs, "password must contain at least one lowercase letter")
	}
	return msgs
}
