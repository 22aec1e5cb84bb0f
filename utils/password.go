package utils

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// commonPasswords is a short deny-list of the passwords seen most often in
// breach corpora. Matching is case-insensitive.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {},
	"12345678": {}, "123456789": {}, "1234567890": {}, "qwerty123": {},
	"qwertyuiop": {}, "letmein1": {}, "iloveyou": {}, "welcome1": {},
	"admin123": {}, "sunshine": {}, "princess": {}, "football": {},
	"baseball": {}, "superman": {}, "trustno1": {}, "dragon123": {},
	"monkey123": {}, "shadow123": {}, "master123": {}, "abc12345": {},
	"11111111": {}, "00000000": {}, "aaaaaaaa": {}, "motdepasse": {},
}

// HashPassword returns a bcrypt hash of the plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword applies the registration password policy and returns every
// violation message. userAttrs are identity values (username, email, names)
// the password must not resemble.
func ValidatePassword(password string, userAttrs ...string) []string {
	var msgs []string

	if len(password) < minPasswordLength {
		msgs = append(msgs, fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}

	lower := strings.ToLower(password)
	for _, attr := range userAttrs {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if len(attr) < 4 {
			continue
		}
		// Also compare against the local part of email addresses.
		if at := strings.IndexByte(attr, '@'); at > 0 {
			attr = attr[:at]
		}
		if strings.Contains(lower, attr) || strings.Contains(attr, lower) {
			msgs = append(msgs, "password is too similar to your personal information")
			break
		}
	}

	if _, found := commonPasswords[lower]; found {
		msgs = append(msgs, "password is too common")
	}

	if password != "" && isAllDigits(password) {
		msgs = append(msgs, "password cannot be entirely numeric")
	}

	return msgs
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
