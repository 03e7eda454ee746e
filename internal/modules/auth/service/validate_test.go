package service_test

import (
	"errors"
	"strings"
	"testing"

	"todohub/internal/modules/auth/service"
	apperrors "todohub/internal/platform/errors"
)

func TestValidateLogin(t *testing.T) {
	t.Parallel()
	var v service.Validator

	cases := []struct {
		name     string
		email    string
		password string
		wantErrs []string
	}{
		{name: "valid", email: "ada@example.com", password: "hunter22"},
		{name: "missing email", email: "", password: "hunter22", wantErrs: []string{"email"}},
		{name: "missing domain dot", email: "ada@example", password: "hunter22", wantErrs: []string{"email"}},
		{name: "no local part", email: "@example.com", password: "hunter22", wantErrs: []string{"email"}},
		{name: "trailing dot", email: "ada@example.", password: "hunter22", wantErrs: []string{"email"}},
		{name: "short password", email: "ada@example.com", password: "abc", wantErrs: []string{"password"}},
		{name: "empty password", email: "ada@example.com", password: "", wantErrs: []string{"password"}},
		{name: "both invalid", email: "nope", password: "", wantErrs: []string{"email", "password"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := v.ValidateLogin(tc.email, tc.password)
			if len(tc.wantErrs) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var fields service.FieldErrors
			if !errors.As(err, &fields) {
				t.Fatalf("expected FieldErrors, got %T", err)
			}
			if len(fields) != len(tc.wantErrs) {
				t.Fatalf("expected %d field errors, got %v", len(tc.wantErrs), fields)
			}
			for _, field := range tc.wantErrs {
				if fields[field] == "" {
					t.Errorf("expected an error for field %q, got %v", field, fields)
				}
			}
		})
	}
}

func TestValidateRegistrationRequiresUsername(t *testing.T) {
	t.Parallel()
	var v service.Validator

	err := v.ValidateRegistration("  ", "ada@example.com", "hunter22")
	var fields service.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	if fields["username"] == "" {
		t.Fatalf("expected a username error, got %v", fields)
	}

	if err := v.ValidateRegistration("ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("expected valid registration, got %v", err)
	}
}

func TestValidateGoogleToken(t *testing.T) {
	t.Parallel()
	var v service.Validator

	if err := v.ValidateGoogleToken("tok"); err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if err := v.ValidateGoogleToken(" "); err == nil {
		t.Fatal("expected an error for a blank token")
	}
}

func TestFieldErrorsUnwrapToInvalidInput(t *testing.T) {
	t.Parallel()
	err := service.FieldErrors{"email": "email is required", "password": "password is required"}
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatal("expected FieldErrors to unwrap to ErrInvalidInput")
	}
	msg := err.Error()
	if !strings.Contains(msg, "email:") || !strings.Contains(msg, "password:") {
		t.Fatalf("unexpected message: %q", msg)
	}
	if strings.Index(msg, "email:") > strings.Index(msg, "password:") {
		t.Fatalf("expected fields sorted in message: %q", msg)
	}
}
