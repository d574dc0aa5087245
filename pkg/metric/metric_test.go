package metric

import (
	"encoding/json"
	"expvar"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorySample(t *testing.T) {
	counter := new(expvar.Int)
	h := NewHistory(counter)
	assert.Equal(t, `""`, h.String())

	h.Sample()
	counter.Add(3)
	h.Sample()
	assert.Equal(t, `"0,3"`, h.String())

	var decoded string
	require.NoError(t, json.Unmarshal([]byte(h.String()), &decoded))
	assert.Equal(t, "0,3", decoded)
}

func TestHistoryLimit(t *testing.T) {
	counter := new(expvar.Int)
	h := NewHistory(counter)
	for i := 0; i < HistoryLen+10; i++ {
		counter.Set(int64(i))
		h.Sample()
	}

	var decoded string
	require.NoError(t, json.Unmarshal([]byte(h.String()), &decoded))
	samples := strings.Split(decoded, ",")
	require.Len(t, samples, HistoryLen)
	assert.Equal(t, "10", samples[0])
	assert.Equal(t, strconv.Itoa(HistoryLen+9), samples[HistoryLen-1])
}

func TestTrack(t *testing.T) {
	m := new(expvar.Map).Init()
	counter := new(expvar.Int)
	counter.Add(7)
	Track(m, "Requests", counter)

	assert.Equal(t, "7", m.Get("Requests").String())
	assert.Equal(t, `""`, m.Get("RequestsHistory").String())
}
