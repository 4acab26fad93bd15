package measurement

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Routes the metrics endpoints of the service
func (s *Service) Routes() *chi.Mux {
	router := chi.NewRouter()
	router.Get("/", s.getMetrics)
	router.Post("/reset", s.resetMetrics)
	router.Post("/reset/{name}", s.resetPoint)
	return router
}

func (s *Service) getMetrics(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, s.Datas())
}

func (s *Service) resetMetrics(w http.ResponseWriter, r *http.Request) {
	s.Reset()
	render.NoContent(w, r)
}

func (s *Service) resetPoint(w http.ResponseWriter, r *http.Request) {
	s.Point(chi.URLParam(r, "name")).Reset()
	render.NoContent(w, r)
}
