package rest

import (
	"github.com/chaptersafe/chaptersafe/pkg/server/web"
	"github.com/gorilla/mux"
)

// SetupRoutes populates the routes for the REST interface
func SetupRoutes(r *mux.Router) {
	// API v1
	r.Path("/v1/sanitize").Handler(
		web.Handler(SanitizeV1)).Name("SanitizeV1").Methods("POST")
	r.Path("/v1/speech").Handler(
		web.Handler(SpeechV1)).Name("SpeechV1").Methods("POST")
	r.Path("/v1/excerpt").Handler(
		web.Handler(ExcerptV1)).Name("ExcerptV1").Methods("POST")
	r.Path("/v1/providers").Handler(
		web.Handler(ProvidersV1)).Name("ProvidersV1").Methods("GET")
}
