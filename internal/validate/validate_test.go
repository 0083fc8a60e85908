package validate

import (
	"testing"

	pkgerrors "github.com/angelmondragon/storefront-sync/pkg/errors"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,account_password"`
	Phone    string `json:"phone" validate:"required,mobile_phone"`
}

func TestStructAcceptsValidPayload(t *testing.T) {
	err := Struct(sample{Email: "a@b.com", Password: "Abcde1", Phone: "01012345678"})
	if err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestStructReportsFieldDetails(t *testing.T) {
	err := Struct(sample{Email: "not-an-email", Password: "lowercase", Phone: "12345"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	for _, field := range []string{"email", "password", "phone"} {
		if details[field] == "" {
			t.Fatalf("expected detail for %s, got %v", field, details)
		}
	}
}

func TestMobilePhoneRule(t *testing.T) {
	valid := []string{"01012345678", "01112345678", "01212345678", "01512345678"}
	invalid := []string{"", "01312345678", "0101234567", "010123456789", "21012345678"}

	type phoneOnly struct {
		Phone string `json:"phone" validate:"mobile_phone"`
	}
	for _, number := range valid {
		if err := Struct(phoneOnly{Phone: number}); err != nil {
			t.Fatalf("expected %q to validate, got %v", number, err)
		}
	}
	for _, number := range invalid {
		if err := Struct(phoneOnly{Phone: number}); err == nil {
			t.Fatalf("expected %q to be rejected", number)
		}
	}
}
