// Package web provides the plumbing for the chaptersafe HTTP API.
package web

import (
	"context"
	"errors"
	"expvar"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/chaptersafe/chaptersafe/pkg/config"
	"github.com/chaptersafe/chaptersafe/pkg/stringutil"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

var (
	// ExpRequestsTotal counts HTTP requests routed to a handler.
	ExpRequestsTotal = new(expvar.Int)
)

func init() {
	m := expvar.NewMap("http")
	m.Set("RequestsTotal", ExpRequestsTotal)
}

// Server defines an instance of the web server.
type Server struct {
	// Router sends incoming requests to the correct handler function.
	Router *mux.Router

	config   config.Web
	server   *http.Server
	listener net.Listener
	addr     string
	addrMu   sync.RWMutex
	notify   chan error    // Notify on fatal error.
	done     chan struct{} // Closed when Start returns.
}

// NewServer sets up the router and middleware for the HTTP API, routes are added by the caller.
func NewServer(conf *config.Root) *Server {
	prefix := stringutil.MakePathPrefixer(conf.Web.BasePath)
	log.Info().Str("module", "web").Str("phase", "startup").Str("path", prefix("/")).
		Msg("Base path configured")

	router := mux.NewRouter()
	router.Use(requestLoggingWrapper)
	router.Use(configWrapper(conf))
	router.Path(prefix("/debug/vars")).Handler(expvar.Handler()).Methods("GET")
	router.NotFoundHandler = noMatchHandler(http.StatusNotFound, "No route matches URI path")
	router.MethodNotAllowedHandler = noMatchHandler(http.StatusMethodNotAllowed,
		"No route matches request method")

	return &Server{
		Router: router,
		config: conf.Web,
		server: &http.Server{
			Addr:         conf.Web.Addr,
			Handler:      router,
			ReadTimeout:  conf.Web.ReadTimeout,
			WriteTimeout: conf.Web.WriteTimeout,
		},
		notify: make(chan error, 1),
		done:   make(chan struct{}),
	}
}

// Start begins listening for HTTP requests, blocking until ctx is done.
func (s *Server) Start(ctx context.Context, readyFunc func()) {
	defer close(s.done)
	slog := log.With().Str("module", "web").Str("phase", "startup").Logger()
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		slog.Error().Err(err).Msg("HTTP failed to start TCP listener")
		s.notify <- err
		close(s.notify)
		return
	}
	s.listener = listener
	s.addrMu.Lock()
	s.addr = listener.Addr().String()
	s.addrMu.Unlock()
	slog.Info().Str("addr", listener.Addr().String()).Msg("HTTP listening on tcp")

	// Listener go routine.
	go s.serve(ctx)
	readyFunc()

	// Wait for shutdown.
	<-ctx.Done()
	slog = log.With().Str("module", "web").Str("phase", "shutdown").Logger()
	slog.Debug().Msg("HTTP server shutting down on request")

	// Shutdown closes the listener, causing serve() to exit once requests complete.
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(sctx); err != nil {
		slog.Error().Err(err).Msg("HTTP server shutdown error")
	}
}

// Drain causes the caller to block until Start has returned and in-flight requests completed.
func (s *Server) Drain() {
	<-s.done
	log.Debug().Str("module", "web").Str("phase", "shutdown").Msg("HTTP connections have drained")
}

// Addr returns the address the server is listening on, or "" until the listener is open.
func (s *Server) Addr() string {
	s.addrMu.RLock()
	defer s.addrMu.RUnlock()
	return s.addr
}

// serve begins serving HTTP requests.
func (s *Server) serve(ctx context.Context) {
	// server.Serve blocks until we close the listener.
	err := s.server.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return
	}
	select {
	case <-ctx.Done():
		// Nop
	default:
		log.Error().Str("module", "web").Err(err).Msg("HTTP server failed")
		s.notify <- err
		close(s.notify)
	}
}

// Notify allows the running HTTP server to be monitored for a fatal error.
func (s *Server) Notify() <-chan error {
	return s.notify
}
