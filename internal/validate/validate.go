// Package validate implements the client-side form checks that run before a
// request is spent: required fields, minimum lengths, email shape, password
// confirmation, and avatar file constraints. Server-side validation remains
// authoritative; these only catch the obvious cases early.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

const minLength = 3

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps form field names to their first validation failure.
type FieldErrors map[string]string

// OK reports whether the form passed.
func (e FieldErrors) OK() bool { return len(e) == 0 }

// Email checks a strict email field.
func Email(email string) string {
	switch {
	case strings.TrimSpace(email) == "":
		return "Email is required"
	case len(email) < minLength:
		return fmt.Sprintf("Email must be at least %d characters", minLength)
	case !emailRe.MatchString(email):
		return "Please enter a valid email address"
	}
	return ""
}

// EmailOrUsername checks the sign-in identifier, which accepts either form.
func EmailOrUsername(value string) string {
	switch {
	case strings.TrimSpace(value) == "":
		return "Email or username is required"
	case len(value) < minLength:
		return fmt.Sprintf("Must be at least %d characters", minLength)
	}
	return ""
}

// Password checks a password field.
func Password(password string) string {
	switch {
	case strings.TrimSpace(password) == "":
		return "Password is required"
	case len(password) < minLength:
		return fmt.Sprintf("Password must be at least %d characters", minLength)
	}
	return ""
}

// Username checks a username field.
func Username(username string) string {
	switch {
	case strings.TrimSpace(username) == "":
		return "Username is required"
	case len(username) < minLength:
		return fmt.Sprintf("Username must be at least %d characters", minLength)
	}
	return ""
}

// ConfirmPassword checks the confirmation field against the password.
func ConfirmPassword(password, confirm string) string {
	switch {
	case strings.TrimSpace(confirm) == "":
		return "Please confirm your password"
	case password != confirm:
		return "Passwords do not match"
	}
	return ""
}

// SignIn validates the login form.
func SignIn(email, password string) FieldErrors {
	errs := FieldErrors{}
	if msg := EmailOrUsername(email); msg != "" {
		errs["email"] = msg
	}
	if msg := Password(password); msg != "" {
		errs["password"] = msg
	}
	return errs
}

// SignUp validates the registration form.
func SignUp(username, email, password, confirm string) FieldErrors {
	errs := FieldErrors{}
	if msg := Username(username); msg != "" {
		errs["username"] = msg
	}
	if msg := Email(email); msg != "" {
		errs["email"] = msg
	}
	if msg := Password(password); msg != "" {
		errs["password"] = msg
	}
	if msg := ConfirmPassword(password, confirm); msg != "" {
		errs["confirmPassword"] = msg
	}
	return errs
}
