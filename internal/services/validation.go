package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"job-tracker-api/internal/models"

	"github.com/go-playground/validator/v10"
)

var partialDateLayouts = []string{"2006-01", "2006-01-02", time.RFC3339}

// NewValidator returns a validator that reports json field names and knows
// the domain enums.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("qualification", func(fl validator.FieldLevel) bool {
		return models.Qualification(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("partialdate", func(fl validator.FieldLevel) bool {
		return validPartialDate(fl.Field().String())
	})

	return v
}

func validPartialDate(s string) bool {
	for _, layout := range partialDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// validateStruct runs v over s and converts the first failure into a
// *ValidationError.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return newValidationError("", "%v", err)
	}

	fe := fieldErrs[0]
	return &ValidationError{Field: fieldPath(fe), Message: describeFieldError(fe)}
}

// fieldPath drops the root struct name from the namespace,
// e.g. "workExperience[0].startDate".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "qualification":
		return fmt.Sprintf("must be one of %s", joinQuoted(qualificationNames()))
	case "application_status":
		return fmt.Sprintf("must be one of %s", joinQuoted(statusNames()))
	case "partialdate":
		return "must be a date formatted YYYY-MM or YYYY-MM-DD"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}

func qualificationNames() []string {
	return []string{
		string(models.QualificationHighSchool),
		string(models.QualificationAssociate),
		string(models.QualificationBachelor),
		string(models.QualificationMaster),
		string(models.QualificationPhD),
		string(models.QualificationOther),
	}
}

func statusNames() []string {
	names := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		names[i] = string(s)
	}
	return names
}

func joinQuoted(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
