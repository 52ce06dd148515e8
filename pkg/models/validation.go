package models

import (
	"net/mail"
	"strings"
	"unicode"
)

// FieldError is a single field-level validation failure, rendered in the
// 422 response body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the registration payload and returns every failure,
// not just the first one.
func (r *RegisterRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, FieldError{Field: "firstName", Message: "First name is required"})
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, FieldError{Field: "lastName", Message: "Last name is required"})
	}

	errs = append(errs, validateEmail(r.Email)...)

	switch {
	case r.Password == "":
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	case len(r.Password) < 6:
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters long"})
	case !isStrongPassword(r.Password):
		errs = append(errs, FieldError{
			Field:   "password",
			Message: "Password must contain at least one uppercase letter, one lowercase letter, one number and one special character",
		})
	}

	return errs
}

// Validate checks the login payload. Password strength is not re-checked
// here; a wrong password is an authentication failure, not a validation one.
func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError
	errs = append(errs, validateEmail(r.Email)...)
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}

// Validate checks the create-organisation payload.
func (r *CreateOrganisationRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	return errs
}

// Validate checks the add-member payload.
func (r *AddMemberRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, FieldError{Field: "userId", Message: "User ID is required"})
	}
	return errs
}

func validateEmail(email string) []FieldError {
	if strings.TrimSpace(email) == "" {
		return []FieldError{{Field: "email", Message: "Email is required"}}
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return []FieldError{{Field: "email", Message: "Please enter a valid email address"}}
	}
	return nil
}

func isStrongPassword(password string) bool {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
