package session

import (
	"fmt"
	"regexp"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/go-playground/validator/v10"
)

// phonePattern matches local phone numbers like 050-1234567.
var phonePattern = regexp.MustCompile(`^0\d{1,2}-?\d{7}$`)

// NewValidator returns validator knowing phone and role rules used by registration forms.
// It panics if the rules can't be registered.
func NewValidator() *validator.Validate {
	v := validator.New()

	rules := map[string]validator.Func{
		"phone": func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		},
		"role": func(fl validator.FieldLevel) bool {
			return models.Role(fl.Field().String()).Valid()
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("session: can't register %q validation: %s", tag, err))
		}
	}

	return v
}

// ValidateRegistration checks registration form. Returned error wraps ErrValidation.
func ValidateRegistration(v *validator.Validate, registration models.Registration) error {
	return validate(v, registration)
}

func validate(v *validator.Validate, form any) error {
	if err := v.Struct(form); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
