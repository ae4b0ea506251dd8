package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// "required" on a uuid.UUID never fires (the zero UUID is a non-zero
	// struct), so ledger foreign keys carry this rule instead.
	v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})
	return v
}

// Struct checks data against its validate tags and reports the first
// violation as a single error, ready for a 400 response body.
func Struct(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	first := verrs[0]
	return fmt.Errorf("validation failed: field '%s' failed on rule '%s'",
		strings.ToLower(first.Field()), first.Tag())
}
