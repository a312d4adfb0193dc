// Package apperr classifies the errors that handlers report to clients.
//
// Stores and handlers return *Error for failures the caller caused
// (missing records, bad input, foreign ownership). Anything else is an
// unexpected failure and is reported as an internal error by the
// centralized responder in features/errors.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the semantic class of an error, shared by every transport.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindPermission Kind = "permission_denied"
)

// FieldError describes one violated constraint on an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(parts, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFound reports a missing user or article.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// PermissionDenied reports a mutation attempted by someone other than the owner.
func PermissionDenied(msg string) *Error {
	return &Error{Kind: KindPermission, Message: msg}
}

// Validation reports one or more violated input constraints.
func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// InvalidRequest wraps a request decoding failure as a validation error.
func InvalidRequest(err error) *Error {
	return &Error{Kind: KindValidation, Message: "invalid request body", Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
