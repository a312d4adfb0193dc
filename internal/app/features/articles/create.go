// internal/app/features/articles/create.go
package articles

import (
	"net/http"
	"strings"

	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/dalemusser/articlehub/internal/domain/models"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate creates an article for an existing owner and adds one to
// the owner's article counter. The two writes are not atomic: if the
// counter update fails the article stays and the error is reported.
//
// Route: POST /articles
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := render.Bind(r, &req); err != nil {
		h.ErrLog.Respond(w, r, apperr.InvalidRequest(err))
		return
	}

	owner, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.Owner))
	if err != nil {
		h.ErrLog.Respond(w, r, errOwnerNotFound)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create article")
	defer cancel()

	exists, err := h.Users.Exists(ctx, owner)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}
	if !exists {
		h.ErrLog.Respond(w, r, errOwnerNotFound)
		return
	}

	a, err := h.Articles.Create(ctx, models.Article{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Category:    req.Category,
		Owner:       owner,
	})
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	if err := h.Users.AdjustArticleCount(ctx, owner, 1); err != nil {
		h.Log.Error("article created but owner counter not incremented",
			zap.String("article_id", a.ID.Hex()),
			zap.String("owner_id", owner.Hex()),
			zap.Error(err))
		h.ErrLog.Respond(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, a)
}
