package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/techo/internal/http/budget"
	"github.com/MrJamesThe3rd/techo/internal/http/importcsv"
)

type Options struct {
	Timeout        time.Duration
	AllowedOrigins []string
}

func New(
	budgetV1 *budget.Handler,
	importV1 *importcsv.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/admissions", func(r chi.Router) {
			r.With(middleware.AllowContentType("application/json")).Group(budgetV1.AdmissionRoutes)
			r.Route("/import", importV1.Routes)
		})

		r.Route("/contracts", budgetV1.ContractRoutes)
		r.Route("/alerts", budgetV1.AlertRoutes)
		r.Route("/records", budgetV1.RecordRoutes)
	})

	return router
}
