// internal/app/features/users/list.go
package users

import (
	"net/http"

	"github.com/dalemusser/articlehub/internal/app/system/normalize"
	"github.com/dalemusser/articlehub/internal/app/system/paging"
	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/render"
)

// ServeList returns every user as {id, fullName, email, age}.
//
// Query: sortBy (default "age"), sortOrder (-1 descending, otherwise ascending).
//
// Route: GET /users
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	sortBy := normalize.QueryParam(query.Get(r, "sortBy"))
	if sortBy == "" {
		sortBy = "age"
	}
	order := paging.SortOrder(query.Get(r, "sortOrder"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	out, err := h.Users.List(ctx, sortBy, order)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}
	render.JSON(w, r, out)
}
