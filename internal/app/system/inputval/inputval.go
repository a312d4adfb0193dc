// Package inputval validates request and document fields.
//
// Validate runs struct-tag rules (go-playground/validator) and turns the
// failures into a Result of human-readable FieldErrors keyed by the
// field's JSON name. Result.Err converts a failed Result into an
// apperr validation error for the centralized responder.
package inputval

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// emailRe is the address pattern users must match: something@something.tld
// with no whitespace and a single @.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s (trimmed) looks like an email address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return emailRe.MatchString(s)
}

// IsValidObjectID reports whether s (trimmed) is a 24-character hex ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// FieldError is a single failed rule.
type FieldError = apperr.FieldError

// Result collects the failures of one validation pass.
type Result struct {
	Errors []FieldError
}

// Add records a failure for field.
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first failure message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every failure message with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Err returns nil when validation passed, otherwise an apperr validation error.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return apperr.Validation(r.Errors...)
}

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "basicemail", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		mustRegister(v, "objectid", func(fl validator.FieldLevel) bool {
			return IsValidObjectID(fl.Field().String())
		})
	})
	return v
}

// mustRegister adds a custom rule and panics if the validator refuses it.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("inputval: register rule %q: %v", tag, err))
	}
}

// Validate checks s against its `validate` struct tags. Messages use the
// `label` tag when present and the JSON field name otherwise.
func Validate(s any) *Result {
	res := &Result{}
	err := engine().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Add("", err.Error())
		return res
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range verrs {
		label := fe.Field()
		if sf, found := t.FieldByName(fe.StructField()); found {
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}
		res.Add(fe.Field(), message(fe, label))
	}
	return res
}

func message(fe validator.FieldError, label string) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "basicemail", "email":
		return "A valid email address is required."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "objectid":
		return fmt.Sprintf("%s must be a valid id.", label)
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
