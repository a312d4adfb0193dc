// internal/app/features/users/delete.go
package users

import (
	"net/http"

	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// HandleDelete deletes a user and every article it owns.
//
// Route: DELETE /users/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete user")
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

	removed, err := h.Articles.DeleteByOwner(ctx, id)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}
	if _, err := h.Users.Delete(ctx, id); err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	h.Log.Info("user deleted",
		zap.String("user_id", id.Hex()),
		zap.Int64("articles_deleted", removed))
	render.JSON(w, r, messageResponse{Message: "User and associated articles deleted successfully."})
}
