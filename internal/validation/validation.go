package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"rapidreads/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Messages maps a failed rule to the message returned to the client.
// Keys are "Field.tag", or "*.tag" to match the tag on any field.
type Messages map[string]string

// Validator checks request structs and turns the first failure into an
// InvalidInput error.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New()
	// Registration can only fail for an empty tag name or a nil func.
	_ = v.RegisterValidation("trimmedmin", trimmedMin)
	_ = v.RegisterValidation("simpleemail", simpleEmail)
	_ = v.RegisterValidation("intstring", intString)
	return &Validator{validate: v}
}

// Validate runs the struct rules of s. A missing required field is reported
// ahead of any other failure; otherwise the first failing field wins.
func (v *Validator) Validate(s any, msgs Messages) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.Internal("Internal server error", err)
	}

	failed := validationErrors[0]
	for _, fe := range validationErrors {
		if fe.Tag() == "required" {
			failed = fe
			break
		}
	}
	return apperrors.InvalidInput(msgs.lookup(failed))
}

func (m Messages) lookup(fe validator.FieldError) string {
	if msg, ok := m[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := m["*."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
}

// trimmedMin checks the rune length of the value after trimming whitespace.
func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

func simpleEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

func intString(fl validator.FieldLevel) bool {
	_, err := strconv.Atoi(fl.Field().String())
	return err == nil
}
