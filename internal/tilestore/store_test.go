package tilestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/willie68/go_globetiler/internal/model"
)

func TestHas(t *testing.T) {
	ast := assert.New(t)
	dir := t.TempDir()
	s := New(Config{Path: dir, Active: true})
	ast.True(s.IsActive())

	tile := model.Tile{Z: 2, X: 1, Y: 3}
	ast.Equal(filepath.Join(dir, "2", "1", "3.png"), s.Filename(tile))
	ast.False(s.Has(tile))

	ast.NoError(os.MkdirAll(filepath.Dir(s.Filename(tile)), 0o755))
	ast.NoError(os.WriteFile(s.Filename(tile), []byte{}, 0o644))
	ast.False(s.Has(tile))

	ast.NoError(os.WriteFile(s.Filename(tile), []byte("png"), 0o644))
	ast.True(s.Has(tile))
	ast.False(s.Has(model.Tile{Z: 2, X: 1, Y: 2}))
}

func TestInactive(t *testing.T) {
	ast := assert.New(t)
	dir := t.TempDir()
	tile := model.Tile{Z: 0, X: 0, Y: 0}
	ast.NoError(os.MkdirAll(filepath.Join(dir, "0", "0"), 0o755))
	ast.NoError(os.WriteFile(filepath.Join(dir, "0", "0", "0.png"), []byte("png"), 0o644))

	s := New(Config{Path: dir, Active: false})
	ast.False(s.IsActive())
	ast.False(s.Has(tile))
}
