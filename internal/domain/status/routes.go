package status

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns relationship status router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/status", h.Get)

	return r
}
