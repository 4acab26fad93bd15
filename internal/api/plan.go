package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/samber/do/v2"
	"github.com/willie68/go_globetiler/internal/generator"
	"github.com/willie68/go_globetiler/internal/logging"
	"github.com/willie68/go_globetiler/internal/model"
	"github.com/willie68/go_globetiler/internal/tiling"
)

type planGenerator interface {
	Generate(w io.Writer, zooms ...int) (generator.Stats, error)
	Command(tile model.Tile, b model.Bounds) string
}

// DefaultMaxPlanZoom the highest zoom level served as plan, if not configured. 4^10 lines are about 130 MB.
const DefaultMaxPlanZoom = 10

type planConfig interface {
	PlanZoomLimit() int
}

// PlanHandler serves the render commands and the bounds of tiles
type PlanHandler struct {
	log     *slog.Logger
	gen     planGenerator
	maxZoom int
}

// NewPlanHandler serving plans never touches the journal, a GET must not change the state of the service
func NewPlanHandler(inj do.Injector) (*PlanHandler, error) {
	gen, err := do.Invoke[*generator.Generator](inj)
	if err != nil {
		return nil, err
	}
	maxZoom := DefaultMaxPlanZoom
	if pc, err := do.InvokeAs[planConfig](inj); err == nil && pc.PlanZoomLimit() > 0 {
		maxZoom = pc.PlanZoomLimit()
	}
	return &PlanHandler{
		log:     logging.New("api"),
		gen:     gen.Stateless(),
		maxZoom: maxZoom,
	}, nil
}

// Register adds the plan routes to the router
func (h *PlanHandler) Register(router chi.Router) {
	router.Get("/plan/{z}", h.GetPlan)
	router.Get("/bounds/{z}/{x}/{y}", h.GetBounds)
	router.Get("/command/{z}/{x}/{y}", h.GetCommand)
}

// GetPlan writes all commands of the zoom level as text
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	z, err := strconv.Atoi(chi.URLParam(r, "z"))
	if err == nil {
		err = model.ValidateZoom(z)
	}
	if err == nil && z > h.maxZoom {
		err = fmt.Errorf("plans are served up to zoom %d", h.maxZoom)
	}
	if err != nil {
		badRequest(h.log, w, r, fmt.Errorf("error in zoom level: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	st, err := h.gen.Generate(&ctxWriter{ctx: r.Context(), w: w}, z)
	if err != nil {
		// the header is already written, nothing more to tell the client
		h.log.Error("error generating plan", "zoom", z, "error", err)
		return
	}
	h.log.Info("plan served", "zoom", z, "emitted", st.Emitted, "skipped", st.Skipped)
}

// GetBounds the bounds of a single tile as json
func (h *PlanHandler) GetBounds(w http.ResponseWriter, r *http.Request) {
	tile, err := tileParameter(r)
	if err != nil {
		badRequest(h.log, w, r, err)
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, model.NewBoundsData(tile, tiling.Bounds(tile)))
}

// GetCommand the command of a single tile as text
func (h *PlanHandler) GetCommand(w http.ResponseWriter, r *http.Request) {
	tile, err := tileParameter(r)
	if err != nil {
		badRequest(h.log, w, r, err)
		return
	}
	render.PlainText(w, r, h.gen.Command(tile, tiling.Bounds(tile))+"\n")
}

// tileParameter the tile of the path parameters z, x and y, y may carry a .png suffix
func tileParameter(r *http.Request) (tile model.Tile, err error) {
	tile.Z, err = strconv.Atoi(chi.URLParam(r, "z"))
	if err != nil {
		return tile, errors.New("error in zoom level")
	}
	tile.X, err = strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		return tile, errors.New("error in x axis")
	}
	ys := chi.URLParam(r, "y")
	ys = strings.TrimSuffix(ys, filepath.Ext(ys))
	tile.Y, err = strconv.Atoi(ys)
	if err != nil {
		return tile, errors.New("error in y axis")
	}
	return tile, tile.Validate()
}

func badRequest(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	log.Debug("bad request", "path", r.URL.Path, "error", err)
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}

// ctxWriter stops writing as soon as the client is gone
type ctxWriter struct {
	ctx context.Context
	w   io.Writer
}

func (c *ctxWriter) Write(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.w.Write(p)
}
