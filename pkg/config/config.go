package config

import (
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	prefix      = "chaptersafe"
	tableFormat = `Chaptersafe is configured via the environment. The following environment
variables can be used:

KEY	DEFAULT	REQUIRED	DESCRIPTION
{{range .}}{{usage_key .}}	{{usage_default .}}	{{usage_required .}}	{{usage_description .}}
{{end}}`
)

var (
	// Version of this build, set by main
	Version = ""

	// BuildDate for this build, set by main
	BuildDate = ""
)

// Root wraps all other configurations.
type Root struct {
	LogLevel string `required:"true" default:"info" desc:"debug, info, warn, or error"`
	Web      Web
	Text     Text
}

// Web contains the HTTP server configuration.
type Web struct {
	Addr         string        `required:"true" default:"0.0.0.0:9100" desc:"Web server IP4 host:port"`
	BasePath     string        `default:"" desc:"Base path prefix for API URLs"`
	MaxBodyBytes int64         `required:"true" default:"4194304" desc:"Maximum request body size"`
	ReadTimeout  time.Duration `required:"true" default:"30s" desc:"Request read timeout"`
	WriteTimeout time.Duration `required:"true" default:"30s" desc:"Response write timeout"`
	AuditLog     bool          `required:"true" default:"true" desc:"Log every sanitize that removed content?"`
}

// Text contains the plain text derivation defaults.
type Text struct {
	ChunkSize    int `required:"true" default:"4000" desc:"Default speech chunk size in characters"`
	ExcerptLimit int `required:"true" default:"3000" desc:"Default excerpt length in characters"`
}

// Process loads and parses configuration from the environment.
func Process() (*Root, error) {
	c := &Root{}
	err := envconfig.Process(prefix, c)
	return c, err
}

// Usage prints out the envconfig usage to Stderr.
func Usage() {
	tabs := tabwriter.NewWriter(os.Stderr, 1, 0, 4, ' ', 0)
	if err := envconfig.Usagef(prefix, &Root{}, tabs, tableFormat); err != nil {
		log.Fatalf("Unable to parse env config: %v", err)
	}
	tabs.Flush()
}
