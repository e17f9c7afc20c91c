package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/templui/goalnote/internal/patch"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// FieldError describes one failed rule on one payload field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
}

// Errors is a collection of field errors
type Errors []FieldError

func (v Errors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages match the payload keys
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validateNotBlank)

	// PATCH payloads: tag patch fields with "omitnil" so only present keys
	// are checked
	v.RegisterCustomTypeFunc(patchValue,
		patch.Field[string]{},
		patch.Field[bool]{},
		patch.Field[int64]{},
		patch.Field[*string]{},
	)

	return &Validator{validate: v}
}

// Validate checks a struct against its validate tags. It returns Errors on
// rule failures and nil otherwise.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var errs Errors
	for _, fe := range fieldErrs {
		errs = append(errs, FieldError{
			Field:   fe.Field(),
			Message: msgForTag(fe),
			Tag:     fe.Tag(),
		})
	}

	return errs
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

type validationValuer interface {
	ValidationValue() any
}

func patchValue(field reflect.Value) any {
	if f, ok := field.Interface().(validationValuer); ok {
		return f.ValidationValue()
	}
	return nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
