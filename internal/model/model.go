package model

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// MaxZoom is the highest supported zoom level, 2^30 still fits the grid into an int
const MaxZoom = 30

var (
	ErrInvalidZoom = errors.New("invalid zoom level")
	ErrInvalidTile = errors.New("invalid tile coordinates")
)

// Tile is one image of the quadtree, the grid of zoom Z has 2^Z x 2^Z tiles.
// X counts from the west, Y from the north.
type Tile struct {
	Z int
	X int
	Y int
}

func (t Tile) String() string {
	return fmt.Sprintf("Z:%d, X:%d, Y:%d", t.Z, t.X, t.Y)
}

// Key is the tile address z/x/y
func (t Tile) Key() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Path is the relative path of the tile image
func (t Tile) Path() string {
	return t.Key() + ".png"
}

// Validate checks the zoom and the coordinates against the grid of the zoom
func (t Tile) Validate() error {
	if err := ValidateZoom(t.Z); err != nil {
		return err
	}
	n := 1 << t.Z
	if t.X < 0 || t.X >= n || t.Y < 0 || t.Y >= n {
		return fmt.Errorf("%w: %s", ErrInvalidTile, t.Key())
	}
	return nil
}

// ValidateZoom checks 0 <= z <= MaxZoom
func ValidateZoom(z int) error {
	if z < 0 || z > MaxZoom {
		return fmt.Errorf("%w: %d", ErrInvalidZoom, z)
	}
	return nil
}

// Bounds is the geographic extent of a tile in degrees
type Bounds struct {
	orb.Bound
}

// NewBounds creates the bounds from the four edges
func NewBounds(minlon, minlat, maxlon, maxlat float64) Bounds {
	return Bounds{orb.Bound{
		Min: orb.Point{minlon, minlat},
		Max: orb.Point{maxlon, maxlat},
	}}
}

func (b Bounds) MinLon() float64 { return b.Min.Lon() }
func (b Bounds) MinLat() float64 { return b.Min.Lat() }
func (b Bounds) MaxLon() float64 { return b.Max.Lon() }
func (b Bounds) MaxLat() float64 { return b.Max.Lat() }

// BoundsData is the json representation of tile bounds
type BoundsData struct {
	Z      int     `json:"z"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	MinLon float64 `json:"minlon"`
	MinLat float64 `json:"minlat"`
	MaxLon float64 `json:"maxlon"`
	MaxLat float64 `json:"maxlat"`
}

func NewBoundsData(t Tile, b Bounds) BoundsData {
	return BoundsData{
		Z:      t.Z,
		X:      t.X,
		Y:      t.Y,
		MinLon: b.MinLon(),
		MinLat: b.MinLat(),
		MaxLon: b.MaxLon(),
		MaxLat: b.MaxLat(),
	}
}
