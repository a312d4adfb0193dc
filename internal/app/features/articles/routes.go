// internal/app/features/articles/routes.go
package articles

import "github.com/go-chi/chi/v5"

// Routes mounts all Article routes under the base path
// (typically "/articles" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeView)

	// Owner only; identity comes from Opts.IdentityHeader.
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
