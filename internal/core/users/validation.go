package users

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxUsernameLength = 150
	maxEmailLength    = 254
	maxBioLength      = 500
	maxAvatarLength   = 255
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

// Letters, digits and @/./+/-/_ only
var usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// Short list of passwords rejected outright
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "qwerty123": {}, "qwertyuiop": {}, "iloveyou": {},
	"sunshine": {}, "princess": {}, "football": {}, "baseball": {}, "welcome1": {},
	"letmein1": {}, "abc12345": {}, "admin123": {}, "trustno1": {}, "superman": {},
	"starwars": {}, "whatever": {}, "michael1": {}, "1q2w3e4r": {}, "zaq12wsx": {},
	"qwerty12": {}, "11111111": {}, "00000000": {}, "87654321": {}, "asdfghjk": {},
	"dragon12": {}, "monkey12": {}, "shadow12": {}, "master12": {}, "changeme": {},
}

func validateUsername(username string) error {
	if username == "" {
		return NewValidationError("username", "This field is required.")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return NewValidationError("username", "Ensure this field has no more than 150 characters.")
	}
	if !usernameRegex.MatchString(username) {
		return NewValidationError("username",
			"Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "This field is required.")
	}
	if strings.ContainsRune(email, 0) {
		return NewValidationError("email", "Null characters are not allowed.")
	}
	if len(email) > maxEmailLength {
		return NewValidationError("email", "Ensure this field has no more than 254 characters.")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return NewValidationError("email", "Enter a valid email address.")
	}
	return nil
}

// validatePassword applies the strength rules: minimum length, not common,
// not entirely numeric, and not derived from the username or email.
func validatePassword(password, username, email string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return NewValidationError("password", "This password is too short. It must contain at least 8 characters.")
	}
	if len(password) > maxPasswordBytes {
		return NewValidationError("password", "This password is too long.")
	}

	lower := strings.ToLower(password)
	if _, ok := commonPasswords[lower]; ok {
		return NewValidationError("password", "This password is too common.")
	}
	if isNumeric(password) {
		return NewValidationError("password", "This password is entirely numeric.")
	}

	if tooSimilar(lower, strings.ToLower(username)) {
		return NewValidationError("password", "The password is too similar to the username.")
	}
	local, _, _ := strings.Cut(strings.ToLower(email), "@")
	if tooSimilar(lower, local) {
		return NewValidationError("password", "The password is too similar to the email address.")
	}
	return nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// tooSimilar reports whether one string contains the other; attributes under 3 chars are ignored
func tooSimilar(password, attr string) bool {
	if utf8.RuneCountInString(attr) < 3 {
		return false
	}
	return strings.Contains(password, attr) || strings.Contains(attr, password)
}
