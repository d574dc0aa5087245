package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// RequestError is returned by handlers to reject a request with a client error status.
type RequestError struct {
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// RenderJSON sets the correct HTTP headers for JSON, then writes the specified
// data (typically a struct) encoded in JSON
func RenderJSON(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Expires", "-1")
	enc := json.NewEncoder(w)
	return enc.Encode(data)
}

// RenderHTML writes body as an HTML document fragment.
func RenderHTML(w http.ResponseWriter, body string) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Expires", "-1")
	_, err := io.WriteString(w, body)
	return err
}

// ReadBody reads the request body, up to the configured maximum size.
func ReadBody(w http.ResponseWriter, req *http.Request, ctx *Context) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, ctx.RootConfig.Web.MaxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, &RequestError{
				Status: http.StatusRequestEntityTooLarge,
				Err:    fmt.Errorf("request body exceeds %d bytes", mbe.Limit),
			}
		}
		return nil, &RequestError{
			Status: http.StatusBadRequest,
			Err:    fmt.Errorf("failed to read request body: %w", err),
		}
	}
	return body, nil
}

// DecodeJSON reads the request body and decodes it into v.
func DecodeJSON(w http.ResponseWriter, req *http.Request, ctx *Context, v interface{}) error {
	body, err := ReadBody(w, req, ctx)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &RequestError{
			Status: http.StatusBadRequest,
			Err:    fmt.Errorf("malformed JSON request: %w", err),
		}
	}
	return nil
}
