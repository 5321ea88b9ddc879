package arithseq

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all arithmetic sequence endpoints onto the given
// router under the /arithmetic-sequence prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/arithmetic-sequence", func(r chi.Router) {
		r.Get("/non-reactive/detail", h.DetailNonReactive)
		r.Get("/non-reactive/summary", h.SummaryNonReactive)
		r.Get("/reactive/detail", h.DetailReactive)
		r.Get("/reactive/summary", h.SummaryReactive)
	})
}
