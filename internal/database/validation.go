package database

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/nullable"

	"github.com/mrlokans/readtrack/internal/entities"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their JSON names, which is what callers send
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the `validate` tags of a patch.
func Validate(patch any) error {
	err := validate.Struct(patch)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Reason: describeRule(fe.Tag(), fe.Param())}
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// CheckNullable validates the value carried by a nullable patch field against
// a validator tag. Unspecified and null fields pass.
func CheckNullable[T any](field string, f nullable.Nullable[T], tag string) error {
	v := entities.ValueOf(f)
	if v == nil {
		return nil
	}

	err := validate.Var(*v, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{Field: field, Reason: describeRule(fieldErrs[0].Tag(), fieldErrs[0].Param())}
	}
	return &ValidationError{Field: field, Reason: err.Error()}
}

func describeRule(tag, param string) string {
	switch tag {
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "isbn":
		return "must be a valid ISBN-10 or ISBN-13"
	}
	if param != "" {
		return fmt.Sprintf("failed rule %s=%s", tag, param)
	}
	return "failed rule " + tag
}
