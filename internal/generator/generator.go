package generator

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/do/v2"
	"github.com/willie68/go_globetiler/internal/logging"
	"github.com/willie68/go_globetiler/internal/model"
	"github.com/willie68/go_globetiler/internal/tiling"
	"github.com/willie68/go_globetiler/internal/utils/measurement"
	"github.com/willie68/go_globetiler/pkg/extstrgutils"
)

// Config of the command generation
type Config struct {
	Zoom         string `yaml:"zoom"`     // csv if more than one needed
	Renderer     string `yaml:"renderer"` // path of the globe binary
	Input        string `yaml:"input"`    // merged elevation data
	Output       string `yaml:"output"`   // root folder of the tiles
	Timed        bool   `yaml:"timed"`
	SkipExisting bool   `yaml:"skipexisting"`
}

// DefaultConfig renders into the working directory with ./globe and ./globe.bin
func DefaultConfig() Config {
	return Config{
		Zoom:     "4",
		Renderer: "./globe",
		Input:    "./globe.bin",
		Output:   ".",
	}
}

type tileStore interface {
	Has(tile model.Tile) bool
	Filename(tile model.Tile) string
}

type tileJournal interface {
	Has(tile model.Tile) bool
	Mark(tile model.Tile, b model.Bounds) error
}

type injectedJournal interface {
	tileJournal
	IsActive() bool
}

// Stats of one generation run
type Stats struct {
	Emitted int `json:"emitted"`
	Skipped int `json:"skipped"`
}

type Generator struct {
	log     *slog.Logger
	cfg     Config
	store   tileStore
	journal tileJournal
	metrics *measurement.Service
}

type Option func(g *Generator)

// WithStore skips tiles already rendered into the store
func WithStore(s tileStore) Option {
	return func(g *Generator) {
		g.store = s
	}
}

// WithJournal skips tiles already emitted and marks every emitted tile
func WithJournal(j tileJournal) Option {
	return func(g *Generator) {
		g.journal = j
	}
}

func WithMetrics(m *measurement.Service) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

func New(cfg Config, opts ...Option) *Generator {
	def := DefaultConfig()
	if cfg.Renderer == "" {
		cfg.Renderer = def.Renderer
	}
	if cfg.Input == "" {
		cfg.Input = def.Input
	}
	if cfg.Output == "" {
		cfg.Output = def.Output
	}
	g := &Generator{
		log:     logging.New("generator"),
		cfg:     cfg,
		metrics: measurement.New(false),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Zooms the configured zoom levels
func (g *Generator) Zooms() ([]int, error) {
	return ParseZooms(g.cfg.Zoom)
}

// markBatch the number of emitted tiles written out before they are marked in the journal
const markBatch = 1024

type emitted struct {
	tile model.Tile
	b    model.Bounds
}

// run is one generation, tiles are only marked in the journal after their
// commands reached the writer
type run struct {
	g       *Generator
	bw      *bufio.Writer
	pending []emitted
}

// Generate writes the commands of all tiles of the zoom levels to w, one line per tile.
func (g *Generator) Generate(w io.Writer, zooms ...int) (Stats, error) {
	var st Stats
	for _, z := range zooms {
		if err := model.ValidateZoom(z); err != nil {
			return st, err
		}
	}
	m := g.metrics.Start("generate")
	defer m.Stop()

	r := &run{
		g:       g,
		bw:      bufio.NewWriter(w),
		pending: make([]emitted, 0, markBatch),
	}
	for _, z := range zooms {
		zm := g.metrics.Start(fmt.Sprintf("generate:%d", z))
		zst, err := r.zoom(z)
		if err == nil {
			err = r.commit()
		}
		zm.Stop()
		st.Emitted += zst.Emitted
		st.Skipped += zst.Skipped
		if err != nil {
			m.SetError()
			return st, err
		}
		g.log.Debug("zoom level generated", "zoom", z, "emitted", zst.Emitted, "skipped", zst.Skipped)
	}
	return st, nil
}

func (r *run) zoom(z int) (Stats, error) {
	var st Stats
	for tile := range tiling.Tiles(z) {
		if r.g.skip(tile) {
			st.Skipped++
			continue
		}
		b := tiling.Bounds(tile)
		if _, err := r.bw.WriteString(r.g.Command(tile, b) + "\n"); err != nil {
			return st, errors.Wrapf(err, "can't write command of tile %s", tile.Key())
		}
		st.Emitted++
		if r.g.journal == nil {
			continue
		}
		r.pending = append(r.pending, emitted{tile: tile, b: b})
		if len(r.pending) >= markBatch {
			if err := r.commit(); err != nil {
				return st, err
			}
		}
	}
	return st, nil
}

// commit flushes the written commands, than marks their tiles
func (r *run) commit() error {
	if err := r.bw.Flush(); err != nil {
		return errors.Wrap(err, "can't write commands")
	}
	for _, e := range r.pending {
		if err := r.g.journal.Mark(e.tile, e.b); err != nil {
			return err
		}
	}
	r.pending = r.pending[:0]
	return nil
}

// Stateless a copy of the generator which neither reads nor writes the journal
func (g *Generator) Stateless() *Generator {
	c := *g
	c.journal = nil
	return &c
}

func (g *Generator) skip(tile model.Tile) bool {
	if g.cfg.SkipExisting && g.store != nil && g.store.Has(tile) {
		return true
	}
	return g.journal != nil && g.journal.Has(tile)
}

// Command builds the shell command, creating the column folder and rendering the tile into it.
func (g *Generator) Command(tile model.Tile, b model.Bounds) string {
	dir := fmt.Sprintf("%s/%d/%d", strings.TrimSuffix(g.cfg.Output, "/"), tile.Z, tile.X)
	var sb strings.Builder
	fmt.Fprintf(&sb, "mkdir -p %s; ", dir)
	if g.cfg.Timed {
		sb.WriteString("time ")
	}
	fmt.Fprintf(&sb, "%s render -i %s -o %s/%d.png", g.cfg.Renderer, g.cfg.Input, dir, tile.Y)
	fmt.Fprintf(&sb, " --minlon=%s --minlat=%s --maxlon=%s --maxlat=%s;",
		formatDegree(b.MinLon()), formatDegree(b.MinLat()), formatDegree(b.MaxLon()), formatDegree(b.MaxLat()))
	return sb.String()
}

// ParseZooms parses a list of zoom levels separated by space, comma or semicolon
func ParseZooms(s string) ([]int, error) {
	parts := extstrgutils.SplitMultiValueParam(s)
	if len(parts) == 0 {
		return nil, errors.Wrap(model.ErrInvalidZoom, "no zoom level given")
	}
	zooms := make([]int, 0, len(parts))
	for _, p := range parts {
		z, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.Wrapf(model.ErrInvalidZoom, "can't parse zoom %q", p)
		}
		if err := model.ValidateZoom(z); err != nil {
			return nil, err
		}
		zooms = append(zooms, z)
	}
	return zooms, nil
}

// formatDegree shortest representation, without trailing zeros. Like a
// javascript number, below 1e-6 (and from 1e21 on) the exponent form is used, e.g. 6.7e-7.
func formatDegree(v float64) string {
	if v == 0 {
		return "0"
	}
	if a := math.Abs(v); a >= 1e-6 && a < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	mant, exp := s[:i], s[i+1:]
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + exp
}

func Init(inj do.Injector) {
	cfg := do.MustInvoke[*Config](inj)
	opts := []Option{
		WithMetrics(do.MustInvoke[*measurement.Service](inj)),
	}
	if st, err := do.InvokeAs[tileStore](inj); err == nil {
		opts = append(opts, WithStore(st))
	}
	if j, err := do.InvokeAs[injectedJournal](inj); err == nil && j.IsActive() {
		opts = append(opts, WithJournal(j))
	}
	do.ProvideValue(inj, New(*cfg, opts...))
}
