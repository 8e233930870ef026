package friendrequest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns friend request router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Read operations
	r.Get("/", h.Get)
	r.Get("/exists", h.Exists)
	r.Get("/sender/{senderId}", h.ListBySender)
	r.Get("/receiver/{receiverId}", h.ListByReceiver)

	// Mutations require authentication
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Send)
		r.Post("/accept", h.Accept)
		r.Post("/reject", h.Reject)
	})

	return r
}
