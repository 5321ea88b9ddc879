package polyeval

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the polynomial endpoints onto the given router under
// the /polynomial prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/polynomial", func(r chi.Router) {
		r.Post("/non-reactive", h.EvaluateNonReactive)
		r.Post("/reactive", h.EvaluateReactive)
	})
}
