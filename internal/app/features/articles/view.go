// internal/app/features/articles/view.go
package articles

import (
	"net/http"

	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/go-chi/render"
)

// ServeView returns one article. The owner is returned as its id.
//
// Route: GET /articles/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view article")
	defer cancel()

	a, err := h.Articles.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, orNotFound(err, errArticleNotFound))
		return
	}
	render.JSON(w, r, a)
}
