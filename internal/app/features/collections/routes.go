package collections

import (
	"github.com/go-chi/chi/v5"

	"github.com/pixelit-club/clubhub/internal/app/system/auth"
)

// Routes registers the generic collection endpoints on the API router.
// Listing is public; create/update/delete require an admin bearer token.
func Routes(r chi.Router, h *Handler, tokens *auth.Tokens) {
	r.Get("/{collection}", h.List)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAdmin)
		pr.Post("/{collection}", h.Create)
		pr.Put("/{collection}/{id}", h.Update)
		pr.Delete("/{collection}/{id}", h.Delete)
	})
}
