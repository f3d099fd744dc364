package batch

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers batch and agent status routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/batches", func(r chi.Router) {
		r.Post("/", h.CreateBatch)
		r.Get("/", h.ListBatches)

		r.Route("/{batch_id}", func(r chi.Router) {
			r.Get("/", h.GetBatch)
			r.Delete("/", h.DeleteBatch)
			r.Post("/process", h.ProcessBatch)
			r.Get("/report", h.BatchReport)
		})
	})

	r.Get("/agents/status", h.AgentStatus)
}
