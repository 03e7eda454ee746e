package service

import (
	"fmt"
	"sort"
	"strings"

	apperrors "todohub/internal/platform/errors"
)

const MinPasswordLength = 6

// FieldErrors maps a form field to its validation message. It satisfies error
// and unwraps to apperrors.ErrInvalidInput so callers can branch on the class
// while views render per-field text.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, f[field]))
	}
	return strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// Validator performs the client-side checks that block a remote call.
type Validator struct{}

func (Validator) ValidateLogin(email, password string) error {
	errs := FieldErrors{}
	validateEmail(errs, email)
	validatePassword(errs, password)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (Validator) ValidateRegistration(username, email, password string) error {
	errs := FieldErrors{}
	if strings.TrimSpace(username) == "" {
		errs["username"] = "username is required"
	}
	validateEmail(errs, email)
	validatePassword(errs, password)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (Validator) ValidateGoogleToken(idToken string) error {
	if strings.TrimSpace(idToken) == "" {
		return FieldErrors{"idToken": "identity token is required"}
	}
	return nil
}

func validateEmail(errs FieldErrors, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs["email"] = "email is required"
		return
	}
	at := strings.Index(email, "@")
	dot := strings.LastIndex(email, ".")
	if at < 1 || dot < at+2 || dot == len(email)-1 || strings.ContainsAny(email, " \t") {
		errs["email"] = "email is not valid"
	}
}

func validatePassword(errs FieldErrors, password string) {
	if password == "" {
		errs["password"] = "password is required"
		return
	}
	if len(password) < MinPasswordLength {
		errs["password"] = fmt.Sprintf("password must be at least %d characters", MinPasswordLength)
	}
}
