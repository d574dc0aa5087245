package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/chaptersafe/chaptersafe/pkg/config"
	"github.com/chaptersafe/chaptersafe/pkg/rest"
	"github.com/chaptersafe/chaptersafe/pkg/server/web"
	"github.com/chaptersafe/chaptersafe/pkg/stringutil"
)

// Services holds the configured services.
type Services struct {
	WebServer *web.Server
}

// FullAssembly wires up a complete chaptersafe environment with the routes of every API.
func FullAssembly(conf *config.Root) (*Services, error) {
	if err := validate(conf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure routes.
	webServer := web.NewServer(conf)
	prefix := stringutil.MakePathPrefixer(conf.Web.BasePath)
	rest.SetupRoutes(webServer.Router.PathPrefix(prefix("/api/")).Subrouter())

	return &Services{WebServer: webServer}, nil
}

// Start all services, calling readyFunc once they accept requests.
func (s *Services) Start(ctx context.Context, readyFunc func()) {
	go s.WebServer.Start(ctx, readyFunc)
}

// Drain blocks until all started services have shut down.
func (s *Services) Drain() {
	s.WebServer.Drain()
}

// Notify allows the running services to be monitored for a fatal error.
func (s *Services) Notify() <-chan error {
	return s.WebServer.Notify()
}

func validate(conf *config.Root) error {
	if conf.Web.MaxBodyBytes <= 0 {
		return errors.New("web max body bytes must be positive")
	}
	if conf.Text.ChunkSize < 0 {
		return errors.New("text chunk size must not be negative")
	}
	if conf.Text.ExcerptLimit < 0 {
		return errors.New("text excerpt limit must not be negative")
	}
	return nil
}
