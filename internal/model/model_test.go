package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTileValidate(t *testing.T) {
	ast := assert.New(t)
	tt := []struct {
		name string
		tile Tile
		err  error
	}{
		{"root", Tile{Z: 0, X: 0, Y: 0}, nil},
		{"last", Tile{Z: 4, X: 15, Y: 15}, nil},
		{"x out", Tile{Z: 4, X: 16, Y: 0}, ErrInvalidTile},
		{"y negative", Tile{Z: 2, X: 0, Y: -1}, ErrInvalidTile},
		{"zoom negative", Tile{Z: -1}, ErrInvalidZoom},
		{"zoom too high", Tile{Z: MaxZoom + 1}, ErrInvalidZoom},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tile.Validate()
			if tc.err == nil {
				ast.NoError(err)
			} else {
				ast.True(errors.Is(err, tc.err), "%v", err)
			}
		})
	}
}

func TestTilePath(t *testing.T) {
	ast := assert.New(t)
	tile := Tile{Z: 4, X: 3, Y: 7}
	ast.Equal("4/3/7", tile.Key())
	ast.Equal("4/3/7.png", tile.Path())
	ast.Equal("Z:4, X:3, Y:7", tile.String())
}

func TestBounds(t *testing.T) {
	ast := assert.New(t)
	b := NewBounds(-180, 78.75, -157.5, 90)
	ast.Equal(-180.0, b.MinLon())
	ast.Equal(78.75, b.MinLat())
	ast.Equal(-157.5, b.MaxLon())
	ast.Equal(90.0, b.MaxLat())

	d := NewBoundsData(Tile{Z: 4}, b)
	ast.Equal(4, d.Z)
	ast.Equal(-157.5, d.MaxLon)
}
