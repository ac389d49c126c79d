package preorder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"aurex-showroom/internal/catalog"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("variant", func(fl validator.FieldLevel) bool {
			return catalog.IsVariant(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// Validate normalizes in and checks it. The first failing field is reported
// as a *ValidationError.
func Validate(in Input) (Input, error) {
	in = in.Normalized()
	err := validatorInstance().Struct(in)
	if err == nil {
		return in, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return in, fmt.Errorf("validate preorder: %w", err)
	}
	fe := verrs[0]
	return in, &ValidationError{Field: fe.Field(), Message: fieldMessage(fe)}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		if fe.Tag() == "required" {
			return "Name is required"
		}
		return "Name is too long"
	case "email":
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Invalid email address"
	case "variant":
		if fe.Tag() == "required" {
			return "Variant is required"
		}
		return fmt.Sprintf("Unknown variant %q", fe.Value())
	}
	return fmt.Sprintf("Invalid %s", fe.Field())
}
