package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/willie68/go_globetiler/internal/logging"
	"github.com/willie68/go_globetiler/internal/model"
)

type tileJournal interface {
	IsActive() bool
	Count() int
	Bounds(tile model.Tile) (model.BoundsData, bool)
	Reset() error
}

// JournalHandler shows and resets the tiles already emitted by the command line runs
type JournalHandler struct {
	log     *slog.Logger
	journal tileJournal
}

func NewJournalHandler(j tileJournal) *JournalHandler {
	return &JournalHandler{
		log:     logging.New("api"),
		journal: j,
	}
}

type journalState struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

func (h *JournalHandler) Routes() *chi.Mux {
	router := chi.NewRouter()
	router.Get("/", h.GetState)
	router.Get("/{z}/{x}/{y}", h.GetTile)
	router.Post("/reset", h.PostReset)
	return router
}

func (h *JournalHandler) GetState(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, journalState{Active: h.journal.IsActive(), Count: h.journal.Count()})
}

// GetTile the recorded bounds of the tile, 404 if not emitted yet
func (h *JournalHandler) GetTile(w http.ResponseWriter, r *http.Request) {
	tile, err := tileParameter(r)
	if err != nil {
		badRequest(h.log, w, r, err)
		return
	}
	bd, ok := h.journal.Bounds(tile)
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "tile not in journal: " + tile.Key()})
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, bd)
}

func (h *JournalHandler) PostReset(w http.ResponseWriter, r *http.Request) {
	if err := h.journal.Reset(); err != nil {
		h.log.Error("error resetting journal", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}
	h.log.Info("journal reset")
	render.NoContent(w, r)
}
