// Package validate checks outbound payloads before they reach the
// collaborator, so obvious mistakes fail locally with field-level details.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront-sync/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var (
	// The collaborator serves an Egyptian storefront; shipping phones are
	// local mobile numbers.
	mobilePhonePattern = regexp.MustCompile(`^01[0125][0-9]{8}$`)
	// Account passwords start with a capital letter, 5-11 word characters.
	accountPasswordPattern = regexp.MustCompile(`^[A-Z]\w{4,10}`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	v.RegisterValidation("mobile_phone", func(fl validator.FieldLevel) bool {
		return mobilePhonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("account_password", func(fl validator.FieldLevel) bool {
		return accountPasswordPattern.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates dest and returns a VALIDATION_ERROR with per-field
// details on failure.
func Struct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	case "mobile_phone":
		return "must be a valid mobile number"
	case "account_password":
		return "must start with a capital letter and be 5-11 characters"
	}
	return "is invalid"
}
