// Package validate wraps go-playground/validator with the wardrobe's own tags.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/erazemk/garderoba/internal/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// category: one of the four wardrobe categories.
	validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.Category(fl.Field().String()).IsValid()
	})

	// itemname: non-blank after trimming and within the length limit.
	validate.RegisterValidation("itemname", func(fl validator.FieldLevel) bool {
		_, err := model.NormalizeItemName(fl.Field().String())
		return err == nil
	})
}

// Struct runs struct-level validation using go-playground/validator tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// FormatErrors converts validator.ValidationErrors into a map of
// field name → human-readable message.
func FormatErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

// Summary joins the formatted errors into one line, in field order.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, e.Field()+": "+formatFieldError(e))
	}
	return strings.Join(parts, "; ")
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "category":
		return fmt.Sprintf("must be one of %s", categoryList())
	case "itemname":
		return fmt.Sprintf("must be non-blank and at most %d bytes", model.MaxItemNameLength)
	case "min":
		return fmt.Sprintf("minimum is %s", e.Param())
	case "max":
		return fmt.Sprintf("maximum is %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	default:
		return fmt.Sprintf("validation failed on '%s'", e.Tag())
	}
}

func categoryList() string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
