package auth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Field limits in characters, applied after trimming whitespace
const (
	UsernameMinLength = 4
	UsernameMaxLength = 20

	PasswordMinLength = 12
	PasswordMaxLength = 20
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const passwordSpecials = "@#$%^&*!"

// HashPassword hashes a password salted with the owning user's id, so two
// users with the same password store different hashes even before bcrypt's
// own salt is applied.
func HashPassword(userID, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(userID+password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a candidate password against a stored hash using
// bcrypt's constant-time comparison
func CheckPassword(userID, password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(userID+password)) == nil
}

// ValidUsername reports whether a username meets the length requirements
// after trimming whitespace
func ValidUsername(username string) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(username))
	return UsernameMinLength <= length && length < UsernameMaxLength
}

// ValidPassword reports whether a password meets the policy: 12-19
// characters after trimming, at least one uppercase letter, one lowercase
// letter, one digit and one of @#$%^&*!, drawn only from those classes.
func ValidPassword(password string) bool {
	trimmed := strings.TrimSpace(password)
	length := utf8.RuneCountInString(trimmed)
	if length < PasswordMinLength || length >= PasswordMaxLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range trimmed {
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, c):
			hasSpecial = true
		default:
			// character outside the allowed classes
			return false
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}

// ValidEmail reports whether a string looks like an email address
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
