package shttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/willie68/go_globetiler/internal/logging"
)

// SHttp runs the http server of the serve mode
type SHttp struct {
	log  *slog.Logger
	port int
	srv  *http.Server
	done chan error
}

func New(port int) *SHttp {
	return &SHttp{
		log:  logging.New("shttp"),
		port: port,
	}
}

// StartServer starts serving the handler in the background
func (s *SHttp) StartServer(handler http.Handler) {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.done = make(chan error, 1)
	go func() {
		s.log.Info("starting http server", "addr", s.srv.Addr)
		err := s.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error on listen and serve", "error", err)
		}
		s.done <- err
	}()
}

// Done receives the result of the server, e.g. if the port is in use
func (s *SHttp) Done() <-chan error {
	return s.done
}

// ShutdownServer stops the server, waiting at most 10 seconds for open requests
func (s *SHttp) ShutdownServer() {
	if s.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.log.Error("error on shutdown", "error", err)
	}
}
