package web

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/chaptersafe/chaptersafe/pkg/config"
	"github.com/gorilla/mux"
)

// Context is passed into every request handler function
type Context struct {
	Vars        map[string]string
	RootConfig  *config.Root
	IsJSON      bool   // Client accepts JSON.
	ContentType string // Media type of the request body, without parameters.
}

// Close the Context (currently does nothing)
func (c *Context) Close() {
	// Do nothing
}

// headerMatch returns true if the request header specified by name contains
// the specified value.  Case is ignored.
func headerMatch(req *http.Request, name string, value string) bool {
	name = http.CanonicalHeaderKey(name)
	value = strings.ToLower(value)

	if header := req.Header[name]; header != nil {
		for _, hv := range header {
			if value == strings.ToLower(hv) {
				return true
			}
		}
	}

	return false
}

// NewContext returns a Context for the given HTTP Request
func NewContext(req *http.Request) (*Context, error) {
	conf, ok := req.Context().Value(configKey{}).(*config.Root)
	if !ok {
		return nil, errors.New("request has no configuration, route not registered on Server.Router")
	}
	ctx := &Context{
		Vars:       mux.Vars(req),
		RootConfig: conf,
		IsJSON:     headerMatch(req, "Accept", "application/json"),
	}
	if ct := req.Header.Get("Content-Type"); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
			ctx.ContentType = mediaType
		}
	}
	return ctx, nil
}
