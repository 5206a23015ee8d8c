package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// nigerianPhoneRegex matches a mobile number in local (0...) or international (234..., +234...) form
var nigerianPhoneRegex = regexp.MustCompile(`^(\+234|234|0)[789][01]\d{8}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidatePassword checks the minimum length
func ValidatePassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// ValidateNigerianPhone validates a phone number, ignoring whitespace
func ValidateNigerianPhone(phone string) bool {
	return nigerianPhoneRegex.MatchString(StripWhitespace(phone))
}

// StripWhitespace removes every whitespace rune from s
func StripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// SanitizeEmail sanitizes an email address
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
