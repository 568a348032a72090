package sendquery

import "github.com/go-chi/chi/v5"

// Routes registers the contact-query endpoint on the API router.
func Routes(r chi.Router, h *Handler) {
	r.Post("/send-query", h.Send)
}
