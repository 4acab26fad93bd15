package tiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/willie68/go_globetiler/internal/model"
)

func TestSizes(t *testing.T) {
	ast := assert.New(t)
	tt := []struct {
		z       int
		n       int
		lonsize float64
		latsize float64
	}{
		{0, 1, 360, 180},
		{1, 2, 180, 90},
		{4, 16, 22.5, 11.25},
		{10, 1024, 0.3515625, 0.17578125},
	}
	for _, tc := range tt {
		ast.Equal(tc.n, GridSize(tc.z))
		ast.Equal(tc.lonsize, LonSize(tc.z))
		ast.Equal(tc.latsize, LatSize(tc.z))
		ast.Equal(tc.n*tc.n, Count(tc.z))
	}
}

func TestBounds(t *testing.T) {
	ast := assert.New(t)
	tt := []struct {
		name   string
		tile   model.Tile
		minlon float64
		minlat float64
		maxlon float64
		maxlat float64
	}{
		{"world", model.Tile{Z: 0, X: 0, Y: 0}, -180, -90, 180, 90},
		{"north west", model.Tile{Z: 4, X: 0, Y: 0}, -180, 78.75, -157.5, 90},
		{"south east", model.Tile{Z: 4, X: 15, Y: 15}, 157.5, -90, 180, -78.75},
		{"center", model.Tile{Z: 1, X: 1, Y: 0}, 0, 0, 180, 90},
		{"z2", model.Tile{Z: 2, X: 1, Y: 2}, -90, -45, 0, 0},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			b := Bounds(tc.tile)
			ast.Equal(tc.minlon, b.MinLon())
			ast.Equal(tc.minlat, b.MinLat())
			ast.Equal(tc.maxlon, b.MaxLon())
			ast.Equal(tc.maxlat, b.MaxLat())
		})
	}
}

func TestExactSizes(t *testing.T) {
	ast := assert.New(t)
	for z := range 8 {
		lonsize := LonSize(z)
		latsize := LatSize(z)
		for tile := range Tiles(z) {
			b := Bounds(tile)
			if b.MaxLon()-b.MinLon() != lonsize || b.MaxLat()-b.MinLat() != latsize {
				ast.Failf("inexact tile size", "tile %s: %v", tile.Key(), b)
				return
			}
		}
	}
}

func TestTilesCoverWorld(t *testing.T) {
	ast := assert.New(t)
	z := 3
	n := GridSize(z)
	var first, last model.Bounds
	seen := make(map[string]bool)
	i := 0
	for tile := range Tiles(z) {
		ast.NoError(tile.Validate())
		ast.False(seen[tile.Path()], "duplicate tile %s", tile.Path())
		seen[tile.Path()] = true
		if i == 0 {
			first = Bounds(tile)
		}
		last = Bounds(tile)
		i++
	}
	ast.Equal(n*n, i)
	ast.Equal(-180.0, first.MinLon())
	ast.Equal(90.0, first.MaxLat())
	ast.Equal(180.0, last.MaxLon())
	ast.Equal(-90.0, last.MinLat())
}

func TestTilesOrder(t *testing.T) {
	ast := assert.New(t)
	tiles := make([]model.Tile, 0)
	for tile := range Tiles(1) {
		tiles = append(tiles, tile)
	}
	ast.Equal([]model.Tile{
		{Z: 1, X: 0, Y: 0},
		{Z: 1, X: 1, Y: 0},
		{Z: 1, X: 0, Y: 1},
		{Z: 1, X: 1, Y: 1},
	}, tiles)

	cnt := 0
	for range Tiles(2) {
		cnt++
		if cnt == 3 {
			break
		}
	}
	ast.Equal(3, cnt)
}
