// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/articlehub/internal/app/system/reqlog"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// ErrorLogger writes error responses and logs the ones the server caused.
// It is shared by every feature handler.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger. A nil logger logs nothing.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

// Respond renders err. Classified errors keep their status; everything
// else is logged and answered with a 500.
func (l *ErrorLogger) Respond(w http.ResponseWriter, r *http.Request, err error) {
	l.render(w, r, FromError(err))
}

func (l *ErrorLogger) render(w http.ResponseWriter, r *http.Request, resp *ErrResponse) {
	log := reqlog.Logger(r.Context(), l.Log)
	switch {
	case resp.HTTPStatusCode >= http.StatusInternalServerError:
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(resp.Err))
	case resp.Err != nil:
		log.Debug("request rejected",
			zap.Int("status", resp.HTTPStatusCode),
			zap.Error(resp.Err))
	}
	if err := render.Render(w, r, resp); err != nil {
		log.Error("render error response failed", zap.Error(err))
	}
}

// NotFound answers unknown routes.
func (l *ErrorLogger) NotFound(w http.ResponseWriter, r *http.Request) {
	l.render(w, r, ErrNotFound("Resource not found."))
}

// MethodNotAllowed answers known routes called with the wrong method.
func (l *ErrorLogger) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	l.render(w, r, &ErrResponse{HTTPStatusCode: http.StatusMethodNotAllowed, Message: "Method not allowed."})
}
