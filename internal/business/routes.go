package business

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the directory routes. Read, search and create
// stay open; update and export require an admin token, delete is gated
// by the shared static password inside the handler.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/businesses", h.List)
	r.Post("/businesses", h.Create)
	r.Post("/businesses/search", h.Search)
	r.Get("/businesses/{id}", h.Get)
	r.Delete("/businesses/{id}", h.Delete)

	r.Group(func(r chi.Router) {
		r.Use(h.admin)
		r.Get("/businesses/export", h.Export)
		r.Put("/businesses/{id}", h.Update)
	})
}
