package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileLogging(t *testing.T) {
	ast := assert.New(t)
	fn := filepath.Join(t.TempDir(), "globetiler.log")

	log := New("test")
	err := Setup(Config{Level: "debug", Filename: fn, MaxSize: 1})
	ast.NoError(err)

	log.Debug("tile emitted", "z", 4)
	log.With("x", 1).WithGroup("tile").Info("grouped", "y", 2)
	ast.NoError(Close())

	data, err := os.ReadFile(fn)
	ast.NoError(err)
	s := string(data)
	ast.Contains(s, "msg=\"tile emitted\"")
	ast.Contains(s, "component=test")
	ast.Contains(s, "z=4")
	ast.Contains(s, "x=1")
	ast.Contains(s, "tile.y=2")
	level.Set(slog.LevelInfo)
}

func TestLevel(t *testing.T) {
	ast := assert.New(t)

	ast.NoError(Setup(Config{Level: "warn"}))
	ast.False(New("test").Enabled(t.Context(), slog.LevelInfo))
	ast.True(New("test").Enabled(t.Context(), slog.LevelError))

	ast.Error(Setup(Config{Level: "chatty"}))

	level.Set(slog.LevelInfo)
	ast.NoError(Close())
}
