package rest

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost/api/v1"

func TestRestSanitizeJSON(t *testing.T) {
	s, logbuf := setupWebServer(t)

	input := `{"html": "<p onclick=\"x()\">Hi</p><script>alert(1)</script>` +
		`<iframe src=\"https://www.youtube.com/embed/a\"></iframe>"}`
	w := testRestPost(s, baseURL+"/sanitize", "application/json", input)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	decodedStringEquals(t, result, "html", `<p>Hi</p><iframe src="https://www.youtube.com/embed/a"`+
		` loading="lazy" allow="autoplay; encrypted-media; picture-in-picture"`+
		` referrerpolicy="strict-origin-when-cross-origin"`+
		` sandbox="allow-scripts allow-same-origin allow-presentation allow-popups"`+
		` frameborder="0" allowfullscreen></iframe>`)
	decodedNumberEquals(t, result, "report/scripts", 1)
	decodedNumberEquals(t, result, "report/handlers", 1)
	decodedNumberEquals(t, result, "report/embeds-kept", 1)
	decodedNumberEquals(t, result, "report/removed", 2)
	decodedBoolEquals(t, result, "report/clean", false)
	decodedBoolEquals(t, result, "report/failed", false)

	// Removal is audited.
	assert.Contains(t, logbuf.String(), "Sanitizer removed content")
	assert.Contains(t, logbuf.String(), `"module":"rest"`)
}

func TestRestSanitizeJSONNull(t *testing.T) {
	s, logbuf := setupWebServer(t)

	for _, body := range []string{`{"html": null}`, `{}`, `{"html": ""}`} {
		w := testRestPost(s, baseURL+"/sanitize", "application/json", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		decodedStringEquals(t, result, "html", "")
		decodedBoolEquals(t, result, "report/clean", true)
	}
	assert.NotContains(t, logbuf.String(), "Sanitizer removed content")
}

func TestRestSanitizeRawHTML(t *testing.T) {
	s, _ := setupWebServer(t)

	w := testRestPost(s, baseURL+"/sanitize", "text/html; charset=utf-8",
		`<a href="javascript:alert(1)">x</a>`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", w.Header().Get("X-Sanitize-Removed"))
	assert.Equal(t, `<a href="#">x</a>`, w.Body.String())
}

func TestRestSanitizeBadRequests(t *testing.T) {
	s, _ := setupWebServer(t)

	w := testRestPost(s, baseURL+"/sanitize", "application/json", `{"html": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testRestPost(s, baseURL+"/sanitize", "application/json", `{"html": 42}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	big := `{"html": "` + strings.Repeat("a", 70*1024) + `"}`
	w = testRestPost(s, baseURL+"/sanitize", "application/json", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = testRestPost(s, baseURL+"/sanitize", "text/html", strings.Repeat("a", 70*1024))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = testRestGet(s, baseURL+"/sanitize")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRestSpeech(t *testing.T) {
	s, _ := setupWebServer(t)

	body := `{"html": "<h2>Intro</h2><p>One. Two. Three.</p>", "chunkSize": 12}`
	w := testRestPost(s, baseURL+"/speech", "application/json", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	decodedStringEquals(t, result, "text", "Intro.\n\nOne. Two. Three.")
	decodedStringEquals(t, result, "chunks/[0]", "Intro. One.")
	decodedStringEquals(t, result, "chunks/[1]", "Two. Three.")

	w = testRestPost(s, baseURL+"/speech", "application/json", `{"html": null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text": "", "chunks": []}`, w.Body.String())

	w = testRestPost(s, baseURL+"/speech", "application/json", `{"html": "x", "chunkSize": -1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestExcerpt(t *testing.T) {
	s, _ := setupWebServer(t)

	w := testRestPost(s, baseURL+"/excerpt", "application/json",
		`{"html": "<p>Tom &amp; Jerry</p>", "limit": 3}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"text": "Tom...[content truncated]", "truncated": true}`, w.Body.String())

	w = testRestPost(s, baseURL+"/excerpt", "application/json", `{"html": "<p>Tom &amp; Jerry</p>"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"text": "Tom & Jerry", "truncated": false}`, w.Body.String())

	w = testRestPost(s, baseURL+"/excerpt", "application/json", `{"limit": -5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestProviders(t *testing.T) {
	s, _ := setupWebServer(t)

	w := testRestGet(s, baseURL+"/providers")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	decodedStringEquals(t, result, "[0]/name", "YouTube")
	decodedStringEquals(t, result, "[0]/prefix", "https://www.youtube.com/embed/")
	decodedBoolEquals(t, result, "[0]/allowfullscreen", true)
	decodedStringEquals(t, result, "[1]/name", "Spotify")
	decodedStringEquals(t, result, "[1]/referrerpolicy", "no-referrer")
}
