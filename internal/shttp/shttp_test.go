package shttp

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartShutdown(t *testing.T) {
	ast := assert.New(t)
	s := New(0)
	s.StartServer(http.NotFoundHandler())
	time.Sleep(50 * time.Millisecond)
	s.ShutdownServer()

	select {
	case err := <-s.Done():
		ast.ErrorIs(err, http.ErrServerClosed)
	case <-time.After(5 * time.Second):
		ast.Fail("server not stopped")
	}
}
