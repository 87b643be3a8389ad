package util

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword takes a plain-text password and returns a bcrypt hash.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var commonPatterns = []string{"password", "123456", "qwerty", "welcome", "admin"}

// ValidatePassword checks a password against the strength rules and returns
// every rule it breaks, in a stable order. A nil result means the password is
// acceptable.
func ValidatePassword(password string, personal ...string) []error {
	var problems []error

	if n := len([]rune(password)); n < 8 || n > 128 {
		problems = append(problems, errors.New("password must be between 8 and 128 characters"))
	}
	if !strings.ContainsFunc(password, unicode.IsLetter) {
		problems = append(problems, errors.New("password must contain at least one letter"))
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		problems = append(problems, errors.New("password must contain at least one digit"))
	}
	if strings.ContainsFunc(password, unicode.IsSpace) {
		problems = append(problems, errors.New("password must not contain spaces"))
	}

	lower := strings.ToLower(password)
	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			problems = append(problems, errors.New("password is too common"))
			break
		}
	}
	// Personal data such as the username or email must not be reused.
	for _, p := range personal {
		p = strings.ToLower(strings.TrimSpace(p))
		if len(p) >= 3 && strings.Contains(lower, p) {
			problems = append(problems, errors.New("password is too similar to your personal data"))
			break
		}
	}
	return problems
}
