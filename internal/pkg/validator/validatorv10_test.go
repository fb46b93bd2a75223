package validator

import (
	"errors"
	"testing"
)

type verifyInput struct {
	Email     string `validate:"required,email"`
	Code      string `validate:"required,otp"`
	FirstName string `validate:"omitempty,max=5"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	tests := []struct {
		name       string
		in         verifyInput
		wantFields []string
	}{
		{name: "valid", in: verifyInput{Email: "ada@example.com", Code: "012345"}},
		{name: "bad email", in: verifyInput{Email: "nope", Code: "012345"}, wantFields: []string{"email"}},
		{name: "short code", in: verifyInput{Email: "ada@example.com", Code: "123"}, wantFields: []string{"code"}},
		{name: "letters in code", in: verifyInput{Email: "ada@example.com", Code: "12a456"}, wantFields: []string{"code"}},
		{name: "snake case keys", in: verifyInput{Email: "ada@example.com", Code: "123456", FirstName: "Augusta"}, wantFields: []string{"first_name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}

			var verr V10ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected V10ValidationError, got %T (%v)", err, err)
			}
			for _, f := range tt.wantFields {
				if verr.Values()[f] == "" {
					t.Fatalf("missing field %q in %v", f, verr)
				}
			}
		})
	}
}

func TestV10Validator_OTPMessage(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	err = v.Validate(verifyInput{Email: "ada@example.com", Code: "1"})

	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected V10ValidationError, got %T", err)
	}
	if got := verr["code"]; got != "Code must be a 6-digit code" {
		t.Fatalf("code message = %q", got)
	}
}
