package documents

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the document transaction routes. Creating and
// reading the hand-off history is open; deleting requires an admin
// token.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/businesses/{businessId}/documents", h.Create)
	r.Get("/businesses/{businessId}/documents", h.ListByBusiness)

	r.Group(func(r chi.Router) {
		r.Use(h.admin)
		r.Delete("/documents/{id}", h.Delete)
	})
}
