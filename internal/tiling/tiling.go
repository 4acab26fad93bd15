// Package tiling maps quadtree tiles to their geographic bounding boxes in an
// equirectangular world map. Zoom z splits the world into 2^z x 2^z tiles, so a
// tile is twice as wide (in degrees) as it is high.
package tiling

import (
	"iter"

	"github.com/willie68/go_globetiler/internal/model"
)

const (
	worldWidth  = 360.0
	worldHeight = 180.0
)

// GridSize the number of tiles in one row or column of the zoom level
func GridSize(z int) int {
	return 1 << z
}

// LonSize the width of a tile in degrees
func LonSize(z int) float64 {
	return worldWidth / float64(GridSize(z))
}

// LatSize the height of a tile in degrees
func LatSize(z int) float64 {
	return worldHeight / float64(GridSize(z))
}

// Bounds computes the bounding box of the tile. Row 0 starts at the north pole.
// All values are exact, the sizes are binary fractions of 45 degrees.
func Bounds(t model.Tile) model.Bounds {
	n := GridSize(t.Z)
	lonsize := LonSize(t.Z)
	latsize := LatSize(t.Z)

	minlon := float64(t.X)*lonsize - 180
	maxlat := -float64(t.Y-n)*latsize - 90
	minlat := maxlat - latsize
	maxlon := minlon + lonsize
	return model.NewBounds(minlon, minlat, maxlon, maxlat)
}

// Tiles iterates all tiles of the zoom level, row by row from north to south
// and west to east inside a row.
func Tiles(z int) iter.Seq[model.Tile] {
	return func(yield func(model.Tile) bool) {
		n := GridSize(z)
		for y := range n {
			for x := range n {
				if !yield(model.Tile{Z: z, X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// Count the number of tiles of the zoom level
func Count(z int) int {
	n := GridSize(z)
	return n * n
}
