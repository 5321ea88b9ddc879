package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"chi-reactor-workshop/internal/arithseq"
	"chi-reactor-workshop/internal/config"
	"chi-reactor-workshop/internal/handlers"
	"chi-reactor-workshop/internal/observability"
	"chi-reactor-workshop/internal/polyeval"
)

func NewRouter(cfg config.Config) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", observability.RequestIDHeader},
		ExposedHeaders: []string{observability.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	arithseq.RegisterRoutes(r, arithseq.NewHandler(cfg.MaxArithmeticSequenceCount))
	polyeval.RegisterRoutes(r, polyeval.NewHandler(polyeval.Limits{
		MaxDegree:        cfg.MaxPolynomialDegree,
		MaxTreeDepth:     cfg.MaxPolynomialTreeDepth,
		MaxCount:         cfg.MaxPolynomialCount,
		MaxReducedDegree: cfg.MaxReducedPolynomialDegree,
	}))

	return r
}
