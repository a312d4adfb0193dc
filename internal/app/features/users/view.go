// internal/app/features/users/view.go
package users

import (
	"net/http"

	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/go-chi/render"
)

// ServeView returns one user with the title, subtitle and creation date of
// each article it owns.
//
// Route: GET /users/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view user")
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, notFound(err))
		return
	}
	articles, err := h.Articles.ListByOwner(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	render.JSON(w, r, detailResponse{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Age:      u.Age,
		Articles: articles,
	})
}
