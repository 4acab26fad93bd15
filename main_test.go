package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/willie68/go_globetiler/internal/generator"
)

type closeFailer struct {
	bytes.Buffer
}

func (c *closeFailer) Close() error {
	return errors.New("quota exceeded")
}

func TestWriteCommands(t *testing.T) {
	ast := assert.New(t)
	fn := filepath.Join(t.TempDir(), "render.sh")
	gen := generator.New(generator.DefaultConfig())

	st, err := writeCommands(gen, []int{2}, fn)
	ast.NoError(err)
	ast.Equal(16, st.Emitted)
	data, err := os.ReadFile(fn)
	ast.NoError(err)
	ast.Equal(16, strings.Count(string(data), "\n"))
}

func TestWriteCommandsCloseError(t *testing.T) {
	ast := assert.New(t)
	cf := &closeFailer{}
	old := createOutput
	createOutput = func(string) (io.WriteCloser, error) { return cf, nil }
	defer func() { createOutput = old }()

	_, err := writeCommands(generator.New(generator.DefaultConfig()), []int{1}, "render.sh")
	ast.ErrorContains(err, "quota exceeded")
	ast.Equal(4, strings.Count(cf.String(), "\n"))
}

func TestValidateOutput(t *testing.T) {
	ast := assert.New(t)
	dir := t.TempDir()
	fn := filepath.Join(dir, "tiles")

	cfg := generator.DefaultConfig()
	cfg.Output = fn
	cfg.SkipExisting = true
	// not rendered yet
	ast.NoError(validateOutput(cfg))

	ast.NoError(os.WriteFile(fn, []byte("x"), 0o644))
	ast.ErrorContains(validateOutput(cfg), "not a folder")

	cfg.SkipExisting = false
	ast.NoError(validateOutput(cfg))

	cfg.SkipExisting = true
	cfg.Output = dir
	ast.NoError(validateOutput(cfg))
}
