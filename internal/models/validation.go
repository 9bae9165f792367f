package models

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxNameLength is the maximum number of characters in a user's name.
	MaxNameLength = 50
	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest password bcrypt can hash.
	MaxPasswordBytes = 72
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// FieldError is a validation failure for a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is a list of field-level validation failures.
// A nil or empty FieldErrors means the input is valid.
type FieldErrors []FieldError

// Error joins the individual messages with ", ".
func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, ", ")
}

// Err returns e as an error, or nil when there are no failures.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e *FieldErrors) add(field, msg string) {
	*e = append(*e, FieldError{Field: field, Message: msg})
}

// TrimField normalizes free-text input.
func TrimField(s string) string {
	return strings.TrimSpace(s)
}

// ValidateTask checks already-trimmed task fields.
func ValidateTask(title, description string) FieldErrors {
	var errs FieldErrors
	switch {
	case title == "":
		errs.add("title", "Title is required")
	case utf8.RuneCountInString(title) > MaxTitleLength:
		errs.add("title", fmt.Sprintf("Title cannot exceed %d characters", MaxTitleLength))
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		errs.add("description", fmt.Sprintf("Description cannot exceed %d characters", MaxDescriptionLength))
	}
	return errs
}

// ValidateRegistration checks the fields of a registration request.
// name and email are expected to be trimmed; the password is checked as given.
func ValidateRegistration(name, email, password string) FieldErrors {
	var errs FieldErrors
	switch {
	case name == "":
		errs.add("name", "Name is required")
	case utf8.RuneCountInString(name) > MaxNameLength:
		errs.add("name", fmt.Sprintf("Name cannot exceed %d characters", MaxNameLength))
	}
	switch {
	case email == "":
		errs.add("email", "Email is required")
	case !emailPattern.MatchString(email):
		errs.add("email", "Please enter a valid email")
	}
	switch {
	case password == "":
		errs.add("password", "Password is required")
	case utf8.RuneCountInString(password) < MinPasswordLength:
		errs.add("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	case len(password) > MaxPasswordBytes:
		errs.add("password", fmt.Sprintf("Password cannot exceed %d bytes", MaxPasswordBytes))
	}
	return errs
}
