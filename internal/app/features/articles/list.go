// internal/app/features/articles/list.go
package articles

import (
	"net/http"

	articlestore "github.com/dalemusser/articlehub/internal/app/store/articles"
	"github.com/dalemusser/articlehub/internal/app/system/paging"
	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/render"
)

// ServeList returns one page of articles, newest first, each with its
// owner's {id, fullName, email, age}.
//
// Query: title (case-insensitive substring), page (default 1), limit
// (default Opts.DefaultPageLimit, capped at Opts.MaxPageLimit).
//
// Route: GET /articles
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter := articlestore.ListFilter{
		Title: query.Get(r, "title"),
		Page:  paging.Parse(r, h.Opts.DefaultPageLimit, h.Opts.MaxPageLimit),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list articles")
	defer cancel()

	arts, err := h.Articles.List(ctx, filter)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}
	owners, err := h.Users.Summaries(ctx, articlestore.OwnerIDs(arts))
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	render.JSON(w, r, withOwners(arts, owners))
}
