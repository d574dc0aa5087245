package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/chaptersafe/chaptersafe/pkg/config"
	"github.com/rs/zerolog/log"
)

// Handler is a function type that handles an HTTP request in chaptersafe.
type Handler func(http.ResponseWriter, *http.Request, *Context) error

// ServeHTTP builds the context and passes onto the real handler.
func (h Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ExpRequestsTotal.Add(1)

	// Create the context.
	ctx, err := NewContext(req)
	if err != nil {
		log.Error().Str("module", "web").Err(err).Msg("HTTP failed to create context")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer ctx.Close()

	// Run the handler, grab the error, and report it.
	err = h(w, req, ctx)
	if err == nil {
		return
	}
	var rerr *RequestError
	if errors.As(err, &rerr) {
		log.Debug().Str("module", "web").Str("path", req.RequestURI).Int("status", rerr.Status).
			Err(err).Msg("Rejected request")
		http.Error(w, rerr.Error(), rerr.Status)
		return
	}
	log.Error().Str("module", "web").Str("path", req.RequestURI).Err(err).
		Msg("Error handling request")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

type configKey struct{}

// configWrapper returns middleware that makes conf available to NewContext.
func configWrapper(conf *config.Root) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), configKey{}, conf)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// noMatchHandler creates a handler to log requests that Gorilla mux is unable to route,
// returning specified statusCode to the client.
func noMatchHandler(statusCode int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Warn().Str("module", "web").Str("remote", req.RemoteAddr).Str("proto", req.Proto).
			Str("method", req.Method).Str("path", req.RequestURI).Msg(message)
		w.WriteHeader(statusCode)
	})
}

// requestLoggingWrapper returns middleware that logs client requests.
func requestLoggingWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Debug().Str("module", "web").Str("remote", req.RemoteAddr).Str("proto", req.Proto).
			Str("method", req.Method).Str("path", req.RequestURI).Msg("Request")
		next.ServeHTTP(w, req)
	})
}
