package rest

import (
	"expvar"

	"github.com/chaptersafe/chaptersafe/pkg/metric"
	"github.com/chaptersafe/chaptersafe/pkg/sanitize"
)

var (
	// Sanitizer totals since startup.
	expSanitizeTotal   = new(expvar.Int)
	expRemovedTotal    = new(expvar.Int)
	expFailedTotal     = new(expvar.Int)
	expScriptsTotal    = new(expvar.Int)
	expSchemesTotal    = new(expvar.Int)
	expHandlersTotal   = new(expvar.Int)
	expStylesTotal     = new(expvar.Int)
	expEmbedsKeptTotal = new(expvar.Int)
	expEmbedsDropTotal = new(expvar.Int)

	// Derived text totals since startup.
	expSpeechTotal  = new(expvar.Int)
	expExcerptTotal = new(expvar.Int)
)

func init() {
	m := expvar.NewMap("sanitize")
	metric.Track(m, "Requests", expSanitizeTotal)
	metric.Track(m, "Removed", expRemovedTotal)
	m.Set("Failed", expFailedTotal)
	m.Set("Scripts", expScriptsTotal)
	m.Set("Schemes", expSchemesTotal)
	m.Set("Handlers", expHandlersTotal)
	m.Set("Styles", expStylesTotal)
	m.Set("EmbedsKept", expEmbedsKeptTotal)
	m.Set("EmbedsDropped", expEmbedsDropTotal)
	m.Set("SpeechRequests", expSpeechTotal)
	m.Set("ExcerptRequests", expExcerptTotal)
}

// countReport adds a sanitizer report to the expvar totals.
func countReport(r sanitize.Report) {
	expSanitizeTotal.Add(1)
	expRemovedTotal.Add(int64(r.Removed()))
	if r.Failed {
		expFailedTotal.Add(1)
	}
	expScriptsTotal.Add(int64(r.Scripts))
	expSchemesTotal.Add(int64(r.Schemes))
	expHandlersTotal.Add(int64(r.Handlers))
	expStylesTotal.Add(int64(r.Styles))
	expEmbedsKeptTotal.Add(int64(r.EmbedsKept))
	expEmbedsDropTotal.Add(int64(r.EmbedsDropped))
}
