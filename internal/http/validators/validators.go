package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct checks the validate tags of v and reports the first failure as a
// validation exception.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return exceptions.Validation(err.Error())
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return exceptions.InvalidFields(message(fieldErrs[0]), fields)
}

// messages overrides the generic wording for a field and tag pair.
var messages = map[string]string{
	"confirmPassword.required": "Please confirm your password",
	"confirmPassword.eqfield":  "Passwords do not match",
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	label := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s does not match", label)
	}
	return fmt.Sprintf("%s is invalid", label)
}

func label(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

func ValidateTaskRequest(in *model.TaskInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return Struct(in)
}

func ValidateRegisterRequest(r *model.RegisterRequest) error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	return Struct(r)
}

// ValidateRegisterForm checks the web sign-up form, which also asks for the
// password twice.
func ValidateRegisterForm(f *model.RegisterForm) error {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	return Struct(f)
}

func ValidateLoginRequest(r *model.LoginRequest) error {
	r.Email = strings.TrimSpace(r.Email)
	return Struct(r)
}
