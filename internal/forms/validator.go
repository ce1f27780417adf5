package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var roleNameRe = regexp.MustCompile(`^[a-z_]+$`)

// Errors maps a form field name to the message shown next to it.
type Errors map[string]string

func (e Errors) Any() bool              { return len(e) > 0 }
func (e Errors) Get(field string) string { return e[field] }

// Validator wraps go-playground validator with the help desk's rules and
// English messages keyed by the form field name.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("role_name", func(fl validator.FieldLevel) bool {
		return roleNameRe.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Check validates a struct and returns nil when it is valid.
func (v *Validator) Check(s any) Errors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"_": err.Error()}
	}
	out := Errors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must not exceed %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return "The password confirmation does not match"
	case "role_name":
		return fmt.Sprintf("The %s field may only contain lowercase letters and underscores", field)
	case "gte":
		return fmt.Sprintf("The %s field must be %s or more", field, fe.Param())
	}
	return fmt.Sprintf("The %s field is invalid", field)
}
