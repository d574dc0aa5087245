// Package metric keeps short histories of expvar values for the status endpoint.
package metric

import (
	"container/list"
	"expvar"
	"strings"
	"sync"
	"time"
)

// HistoryLen holds an hour of samples plus one, clients chart the deltas between them.
const HistoryLen = 61

// TickerFunc is the function signature accepted by AddTickerFunc, will be called once per minute.
type TickerFunc func()

var (
	tickerOnce     sync.Once
	tickerFuncChan = make(chan TickerFunc)
)

// AddTickerFunc adds a new function callback to the list of metrics TickerFuncs that get
// called each minute.
func AddTickerFunc(f TickerFunc) {
	tickerOnce.Do(func() {
		go metricsTicker(time.Minute)
	})
	tickerFuncChan <- f
}

// metricsTicker calls the current list of TickerFuncs once per interval.
func metricsTicker(interval time.Duration) {
	funcs := make([]TickerFunc, 0)
	ticker := time.NewTicker(interval)

	for {
		select {
		case <-ticker.C:
			for _, f := range funcs {
				f()
			}
		case f := <-tickerFuncChan:
			funcs = append(funcs, f)
		}
	}
}

// History is an expvar.Var rendering the most recent samples of another var as a comma
// separated string.
type History struct {
	mu      sync.Mutex
	source  expvar.Var
	samples *list.List
}

// NewHistory creates an empty history of source.
func NewHistory(source expvar.Var) *History {
	return &History{source: source, samples: list.New()}
}

// Sample appends the current value of the source, dropping the oldest sample once HistoryLen
// is exceeded.
func (h *History) Sample() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples.PushBack(h.source.String())
	if h.samples.Len() > HistoryLen {
		h.samples.Remove(h.samples.Front())
	}
}

// String implements expvar.Var, returning a JSON string.
func (h *History) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return `"` + joinStringList(h.samples) + `"`
}

// Track publishes counter as name in m, along with a nameHistory entry sampled every minute.
func Track(m *expvar.Map, name string, counter expvar.Var) {
	h := NewHistory(counter)
	m.Set(name, counter)
	m.Set(name+"History", h)
	AddTickerFunc(h.Sample)
}

// joinStringList joins a List containing strings by commas.
func joinStringList(listOfStrings *list.List) string {
	if listOfStrings.Len() == 0 {
		return ""
	}
	s := make([]string, 0, listOfStrings.Len())
	for e := listOfStrings.Front(); e != nil; e = e.Next() {
		s = append(s, e.Value.(string))
	}
	return strings.Join(s, ",")
}
