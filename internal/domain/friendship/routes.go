package friendship

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns friendship router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Read operations
	r.Get("/", h.GetByUsers)
	r.Get("/exists", h.Exists)
	r.Get("/mutual_friends", h.MutualFriends)
	r.Get("/user/{userId}", h.ListForUser)

	// Mutations require authentication
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Patch("/{id}/block_by/{userId}", h.ToggleBlock)
		r.Delete("/", h.Delete)
	})

	return r
}
