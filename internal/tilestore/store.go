package tilestore

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samber/do/v2"
	"github.com/willie68/go_globetiler/internal/logging"
	"github.com/willie68/go_globetiler/internal/model"
)

type Config struct {
	Path   string
	Active bool
}

// Store is the folder the renderer writes the tiles into, laid out as
// {path}/{z}/{x}/{y}.png
type Store struct {
	log    *slog.Logger
	path   string
	active bool
}

func Init(inj do.Injector) {
	cfg := do.MustInvoke[*Config](inj)
	do.ProvideValue(inj, New(*cfg))
}

func New(cfg Config) *Store {
	return &Store{
		log:    logging.New("tilestore"),
		path:   cfg.Path,
		active: cfg.Active,
	}
}

func (s *Store) IsActive() bool {
	return s.active
}

// Has checks if the image of the tile is already rendered. An inactive store never has a tile.
func (s *Store) Has(tile model.Tile) bool {
	if !s.active {
		return false
	}
	fi, err := os.Stat(s.Filename(tile))
	if err != nil {
		return false
	}
	// the renderer creates the file before writing, an empty file is an aborted render
	if fi.Size() == 0 {
		s.log.Debug("empty tile image", "tile", tile.Key())
		return false
	}
	return fi.Mode().IsRegular()
}

// Filename the file of the tile image
func (s *Store) Filename(tile model.Tile) string {
	return filepath.Join(s.path, strconv.Itoa(tile.Z), strconv.Itoa(tile.X), fmt.Sprintf("%d.png", tile.Y))
}
