// Package fields normalizes and checks user-supplied values before they
// reach the store.
package fields

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"bookrental/util/apperr"
)

var validate = validator.New()

// Required trims v and fails with a validation error when nothing is left
// or it exceeds max characters.
func Required(name, v string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apperr.Validation("%s is required", name)
	}
	if max > 0 && len([]rune(v)) > max {
		return "", apperr.Validation("%s must be at most %d characters", name, max)
	}
	return v, nil
}

// Email lower-cases and validates an address.
func Email(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if err := validate.Var(v, "required,email,max=120"); err != nil {
		return "", apperr.Validation("a valid email is required")
	}
	return v, nil
}
