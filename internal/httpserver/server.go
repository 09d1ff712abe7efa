package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/mw"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/routes"
	"github.com/MrSnakeDoc/docnav/internal/logger"
)

// requestTimeout bounds every handler; all of them answer from memory
// except /status, which pings Redis.
const requestTimeout = 5 * time.Second

// NewRouter returns the API handler: global middlewares, then every
// registered route group.
func NewRouter(d deps.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.GetHead,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(requestTimeout),
		mw.Log(d.Logger),
	)
	routes.RegisterAll(r, d)
	return r
}

// Server serves the sidebar API.
type Server struct {
	srv    *http.Server
	logger logger.Logger
}

func New(addr string, d deps.Deps) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(d),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      requestTimeout + 5*time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		logger: d.Logger,
	}
}

// Start listens and serves until Stop. A clean shutdown returns nil.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("HTTP server listening", logger.String("addr", ln.Addr().String()))

	if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.srv.Shutdown(ctx)
}
