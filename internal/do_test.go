package internal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/willie68/go_globetiler/internal/config"
	"github.com/willie68/go_globetiler/internal/generator"
	"github.com/willie68/go_globetiler/internal/journal"
	"github.com/willie68/go_globetiler/internal/utils/measurement"
)

func TestInit(t *testing.T) {
	ast := assert.New(t)
	ast.NoError(config.LoadDefault())

	inj := do.New()
	Init(inj)
	defer Stop(inj)

	gen := do.MustInvoke[*generator.Generator](inj)
	zooms, err := gen.Zooms()
	ast.NoError(err)
	ast.Equal([]int{4}, zooms)

	var buf bytes.Buffer
	st, err := gen.Generate(&buf, zooms...)
	ast.NoError(err)
	ast.Equal(256, st.Emitted)
	ast.True(strings.HasPrefix(buf.String(), "mkdir -p ./4/0; ./globe render"))

	ms := do.MustInvoke[*measurement.Service](inj)
	ast.Equal(1, ms.Point("generate").Data().Count)

	j := do.MustInvoke[*journal.Journal](inj)
	ast.False(j.IsActive())
}

func TestInitJournal(t *testing.T) {
	ast := assert.New(t)
	ast.NoError(config.LoadDefault())
	config.Get().Journal = journal.Config{Active: true, Path: t.TempDir()}
	config.SetParameter(config.WithZoom("2"))

	inj := do.New()
	Init(inj)
	defer Stop(inj)

	gen := do.MustInvoke[*generator.Generator](inj)
	var buf bytes.Buffer
	st, err := gen.Generate(&buf, 2)
	ast.NoError(err)
	ast.Equal(16, st.Emitted)

	buf.Reset()
	st, err = gen.Generate(&buf, 2, 3)
	ast.NoError(err)
	ast.Equal(64, st.Emitted)
	ast.Equal(16, st.Skipped)
	ast.Equal(80, do.MustInvoke[*journal.Journal](inj).Count())
}
