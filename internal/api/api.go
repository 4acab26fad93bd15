package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/samber/do/v2"
	"github.com/willie68/go_globetiler/internal/journal"
	"github.com/willie68/go_globetiler/internal/utils/measurement"
)

const (
	// APIVersion the actual implemented api version
	APIVersion = "1"
	baseURL    = "/api/v" + APIVersion
)

// APIRoutes configures all routes of the service
func APIRoutes(inj do.Injector) (*chi.Mux, error) {
	ph, err := NewPlanHandler(inj)
	if err != nil {
		return nil, err
	}
	ms, err := do.Invoke[*measurement.Service](inj)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(
		middleware.Recoverer,
		render.SetContentType(render.ContentTypeJSON),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}),
	)
	router.Route(baseURL, func(r chi.Router) {
		ph.Register(r)
		r.Mount("/metrics", ms.Routes())
		if j, err := do.Invoke[*journal.Journal](inj); err == nil {
			r.Mount("/journal", NewJournalHandler(j).Routes())
		}
	})
	router.Get("/health", health)
	return router, nil
}

func health(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}
