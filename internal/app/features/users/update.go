// internal/app/features/users/update.go
package users

import (
	"errors"
	"io"
	"net/http"

	userstore "github.com/dalemusser/articlehub/internal/app/store/users"
	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/go-chi/render"
)

// HandleUpdate changes a user's first name, last name or age. Empty or zero
// values are ignored; the full name is recomputed. A missing body is an
// empty change set.
//
// Route: PUT /users/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update user")
	defer cancel()

	exists, err := h.Users.Exists(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}
	if !exists {
		h.ErrLog.Respond(w, r, errUserNotFound)
		return
	}

	var req updateRequest
	if err := render.Bind(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.ErrLog.Respond(w, r, apperr.InvalidRequest(err))
		return
	}

	u, err := h.Users.Update(ctx, id, userstore.Changes{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
	})
	if err != nil {
		h.ErrLog.Respond(w, r, notFound(err))
		return
	}
	render.JSON(w, r, u)
}
