// Package quickchart renders QR codes through the quickchart.io image
// service, the second remote fallback behind qrserver.
package quickchart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goliatone/go-qrform/pkg/render"
)

const (
	rendererName   = "quickchart"
	defaultBaseURL = "https://quickchart.io/qr"
	defaultTimeout = 10 * time.Second
)

// Option customises the renderer before construction.
type Option func(*Renderer)

// WithBaseURL points the renderer at a different endpoint.
func WithBaseURL(baseURL string) Option {
	return func(r *Renderer) {
		if baseURL != "" {
			r.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Renderer) {
		if client != nil {
			r.client = client
		}
	}
}

// WithTimeout caps the per-request duration.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = timeout
	}
}

// Renderer fetches QR images from quickchart.io.
type Renderer struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the quickchart backend.
func New(options ...Option) *Renderer {
	r := &Renderer{
		baseURL: defaultBaseURL,
		client:  http.DefaultClient,
		timeout: defaultTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name identifies this backend in registries and fallback chains.
func (r *Renderer) Name() string { return rendererName }

// ContentType reports the produced image format.
func (r *Renderer) ContentType() string { return "image/png" }

// Render requests a QR image for the payload from the remote service.
func (r *Renderer) Render(ctx context.Context, payload string, opts render.RenderOptions) (*render.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if payload == "" {
		return nil, render.ErrEmptyPayload
	}
	if len(payload) > render.MaxPayloadBytes {
		return nil, fmt.Errorf("quickchart: %d bytes: %w", len(payload), render.ErrPayloadTooLarge)
	}

	size := opts.Size()
	endpoint, err := url.Parse(r.baseURL)
	if err != nil {
		return nil, fmt.Errorf("quickchart: parse base url: %w", err)
	}
	query := endpoint.Query()
	query.Set("text", payload)
	query.Set("size", strconv.Itoa(size))
	endpoint.RawQuery = query.Encode()

	reqCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("quickchart: build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quickchart: %v: %w", err, render.ErrUnavailable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("quickchart: unexpected status %s: %w", resp.Status, render.ErrUnavailable)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("quickchart: read body: %w", render.ErrUnavailable)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = r.ContentType()
	}

	return &render.Image{
		Data:        data,
		ContentType: contentType,
		SizePx:      size,
	}, nil
}
