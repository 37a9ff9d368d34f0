// Package qrserver renders QR codes through the api.qrserver.com image
// service. It is a fallback backend for environments where the local encoder
// is unavailable; every failure it can produce maps to render.ErrUnavailable
// so fallback chains keep walking.
package qrserver

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
	rendererName   = "qrserver"
	defaultBaseURL = "https://api.qrserver.com/v1/create-qr-code/"
	defaultTimeout = 10 * time.Second
)

// Format selects the image format the service is asked to produce.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Option customises the renderer before construction.
type Option func(*Renderer)

// WithBaseURL points the renderer at a different endpoint. Tests use this
// with httptest servers.
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

// WithTimeout caps the per-request duration. Zero disables the cap and defers
// entirely to the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = timeout
	}
}

// WithFormat asks the service for a different image format. PNG by default.
func WithFormat(format Format) Option {
	return func(r *Renderer) {
		if format == FormatSVG {
			r.format = format
		}
	}
}

// Renderer fetches QR images over HTTP.
type Renderer struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	format  Format
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the qrserver backend.
func New(options ...Option) *Renderer {
	r := &Renderer{
		baseURL: defaultBaseURL,
		client:  http.DefaultClient,
		timeout: defaultTimeout,
		format:  FormatPNG,
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
func (r *Renderer) ContentType() string {
	if r.format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Render requests a QR image for the payload from the remote service.
func (r *Renderer) Render(ctx context.Context, payload string, opts render.RenderOptions) (*render.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if payload == "" {
		return nil, render.ErrEmptyPayload
	}
	if len(payload) > render.MaxPayloadBytes {
		return nil, fmt.Errorf("qrserver: %d bytes: %w", len(payload), render.ErrPayloadTooLarge)
	}

	size := opts.Size()
	endpoint, err := url.Parse(r.baseURL)
	if err != nil {
		return nil, fmt.Errorf("qrserver: parse base url: %w", err)
	}
	query := endpoint.Query()
	query.Set("size", strconv.Itoa(size)+"x"+strconv.Itoa(size))
	query.Set("data", payload)
	if r.format == FormatSVG {
		query.Set("format", string(FormatSVG))
	}
	endpoint.RawQuery = query.Encode()

	reqCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("qrserver: build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qrserver: %v: %w", err, render.ErrUnavailable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("qrserver: unexpected status %s: %w", resp.Status, render.ErrUnavailable)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("qrserver: read body: %w", render.ErrUnavailable)
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
