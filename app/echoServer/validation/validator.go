package validation

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts a shared validator.Validate to echo's Validator interface.
type Validator struct {
	v *validator.Validate
}

func New(v *validator.Validate) *Validator {
	if v == nil {
		v = validator.New()
	}
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

func (v *Validator) Engine() *validator.Validate { return v.v }
