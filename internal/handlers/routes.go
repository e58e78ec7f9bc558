package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mount registers the API routes on r. metrics may be nil.
func Mount(r chi.Router, h *Handler, calc *CalculatorHandler, metrics http.Handler) {
	r.Get("/health", h.HealthCheck)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/odds", h.GetOdds)
		r.Get("/arbitrage", h.GetArbitrage)
		r.Get("/positive-ev", h.GetPositiveEV)

		r.Route("/calculators", func(r chi.Router) {
			r.Post("/stake-distribution", calc.StakeDistribution)
			r.Post("/kelly", calc.Kelly)
			r.Post("/expected-value", calc.ExpectedValue)
			r.Post("/convert", calc.Convert)
			r.Post("/roi", calc.ROI)
		})
	})
}
