package validators

import (
	"errors"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
var phoneRegex = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{10}$`)

func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

// ValidateNewPassword runs the reset-form checks in order: both fields
// non-empty, then matching, then minimum length 8. The first failing
// check short-circuits; callers must not submit on error.
func ValidateNewPassword(password, confirm string) error {
	if password == "" || confirm == "" {
		return errors.New("both password fields are required")
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) > 15 {
		return errors.New("phone number exceeds maximum length of 15 characters")
	}
	if !phoneRegex.MatchString(phone) {
		return errors.New("invalid phone format")
	}
	return nil
}
