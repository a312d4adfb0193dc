// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/go-chi/render"
)

// ErrResponse is the JSON body of every error response.
type ErrResponse struct {
	Err            error `json:"-"` // low-level error, logged but never sent
	HTTPStatusCode int   `json:"-"`

	Message string              `json:"error"`
	Fields  []apperr.FieldError `json:"fields,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrNotFound builds a 404 response.
func ErrNotFound(msg string) *ErrResponse {
	return &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: msg}
}

// ErrForbidden builds a 403 response.
func ErrForbidden(msg string) *ErrResponse {
	return &ErrResponse{HTTPStatusCode: http.StatusForbidden, Message: msg}
}

// ErrInvalidRequest builds a 400 response for a body that could not be decoded.
func ErrInvalidRequest(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Message: "Invalid request body."}
}

// ErrInternal builds a 500 response. err is never exposed to the client.
func ErrInternal(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusInternalServerError, Message: "Internal server error."}
}

// FromError maps a classified error to its response. Anything that is not
// an *apperr.Error becomes a 500.
func FromError(err error) *ErrResponse {
	e, ok := apperr.As(err)
	if !ok {
		return ErrInternal(err)
	}
	switch e.Kind {
	case apperr.KindNotFound:
		return ErrNotFound(e.Message)
	case apperr.KindPermission:
		return ErrForbidden(e.Message)
	case apperr.KindValidation:
		if e.Err != nil && len(e.Fields) == 0 {
			return ErrInvalidRequest(e.Err)
		}
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusBadRequest,
			Message:        "Validation failed.",
			Fields:         e.Fields,
		}
	default:
		return ErrInternal(err)
	}
}
