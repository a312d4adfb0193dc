// internal/app/features/articles/delete.go
package articles

import (
	"net/http"

	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// HandleDelete deletes an article and subtracts one from its owner's
// counter. Only the owner may delete. The counter is decremented first.
//
// Route: DELETE /articles/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete article")
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
		h.ErrLog.Respond(w, r, apperr.PermissionDenied("Permission denied. Only the owner can delete the article."))
		return
	}

	if err := h.Users.AdjustArticleCount(ctx, a.Owner, -1); err != nil {
		h.ErrLog.Respond(w, r, orNotFound(err, errOwnerNotFound))
		return
	}
	if _, err := h.Articles.Delete(ctx, id); err != nil {
		h.Log.Error("owner counter decremented but article not deleted",
			zap.String("article_id", id.Hex()),
			zap.String("owner_id", a.Owner.Hex()),
			zap.Error(err))
		h.ErrLog.Respond(w, r, err)
		return
	}

	render.JSON(w, r, messageResponse{Message: "Article deleted successfully."})
}
