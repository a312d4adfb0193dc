// internal/app/features/articles/update.go
package articles

import (
	"errors"
	"io"
	"net/http"

	articlestore "github.com/dalemusser/articlehub/internal/app/store/articles"
	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/go-chi/render"
)

// HandleUpdate changes an article's title, subtitle, description or
// category. Only the owner may update; empty fields are ignored.
//
// Route: PUT /articles/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update article")
	defer cancel()

	a, err := h.Articles.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, orNotFound(err, errArticleNotFound))
		return
	}
	exists, err := h.Users.Exists(ctx, a.Owner)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}
	if !exists {
		h.ErrLog.Respond(w, r, errOwnerNotFound)
		return
	}
	if !IsOwner(h.caller(r), a.Owner) {
		h.ErrLog.Respond(w, r, apperr.PermissionDenied("Permission denied. Only the owner can update the article."))
		return
	}

	// A missing body is an empty change set.
	var req updateRequest
	if err := render.Bind(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.ErrLog.Respond(w, r, apperr.InvalidRequest(err))
		return
	}

	articlestore.Changes{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Category:    req.Category,
	}.Apply(&a)

	updated, err := h.Articles.Update(ctx, a)
	if err != nil {
		h.ErrLog.Respond(w, r, orNotFound(err, errArticleNotFound))
		return
	}
	render.JSON(w, r, updated)
}
