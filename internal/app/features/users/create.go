// internal/app/features/users/create.go
package users

import (
	"net/http"

	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// HandleCreate creates a user. The full name is derived and the article
// counter starts at zero.
//
// Route: POST /users
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := render.Bind(r, &req); err != nil {
		h.ErrLog.Respond(w, r, apperr.InvalidRequest(err))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create user")
	defer cancel()

	u, err := h.Users.Create(ctx, req.user())
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	h.Log.Info("user created", zap.String("user_id", u.ID.Hex()))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, u)
}
