// Package client provides a basic REST client for chaptersafe
package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chaptersafe/chaptersafe/pkg/rest/model"
)

// Client accesses the chaptersafe REST API v1
type Client struct {
	restClient
}

// New creates a new v1 REST API client given the base URL of a chaptersafe server, ex:
// "http://localhost:9100"
func New(baseURL string, opts ...ClientOption) (*Client, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	options := getDefaultClientOptions()
	for _, opt := range opts {
		opt(options)
	}
	c := &Client{
		restClient{
			client: &http.Client{
				Transport: options.transport,
				Timeout:   options.timeout,
			},
			baseURL: parsedURL,
		},
	}
	return c, nil
}

// Sanitize sanitizes html on the server, returning the result along with the removal report.
func (c *Client) Sanitize(ctx context.Context, html string) (*model.JSONSanitizeResponseV1, error) {
	var resp model.JSONSanitizeResponseV1
	err := c.doJSON(ctx, "POST", "/api/v1/sanitize", &model.JSONSanitizeRequestV1{HTML: &html}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SanitizeHTML posts html as a text/html document and returns the sanitized document, along with
// the number of constructs the server removed.
func (c *Client) SanitizeHTML(ctx context.Context, html string) (string, int, error) {
	uri := "/api/v1/sanitize"
	resp, err := c.do(ctx, "POST", uri, "text/html; charset=utf-8", []byte(html))
	if err != nil {
		return "", 0, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return "", 0,
			fmt.Errorf("Unexpected HTTP response status %v: %s", resp.StatusCode, resp.Status)
	}
	buf := new(bytes.Buffer)
	if _, err = buf.ReadFrom(resp.Body); err != nil {
		return "", 0, err
	}
	removed, _ := strconv.Atoi(resp.Header.Get("X-Sanitize-Removed"))
	return buf.String(), removed, nil
}

// Speech converts html to narration text split into chunks of at most chunkSize characters, zero
// selects the server default.
func (c *Client) Speech(ctx context.Context, html string, chunkSize int) (*model.JSONSpeechResponseV1, error) {
	var resp model.JSONSpeechResponseV1
	req := &model.JSONSpeechRequestV1{HTML: &html, ChunkSize: chunkSize}
	if err := c.doJSON(ctx, "POST", "/api/v1/speech", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Excerpt converts html to a plain text excerpt of at most limit characters, zero selects the
// server default.
func (c *Client) Excerpt(ctx context.Context, html string, limit int) (*model.JSONExcerptResponseV1, error) {
	var resp model.JSONExcerptResponseV1
	req := &model.JSONExcerptRequestV1{HTML: &html, Limit: limit}
	if err := c.doJSON(ctx, "POST", "/api/v1/excerpt", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Providers lists the embed providers the server allows.
func (c *Client) Providers(ctx context.Context) (providers []*model.JSONProviderV1, err error) {
	err = c.doJSON(ctx, "GET", "/api/v1/providers", nil, &providers)
	if err != nil {
		return nil, err
	}
	return
}
