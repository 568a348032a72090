package login

import "github.com/go-chi/chi/v5"

// Routes registers the auth endpoints on the API router.
func Routes(r chi.Router, h *Handler) {
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
}
