// Package qrpng renders QR codes locally with the skip2/go-qrcode library.
// It is the primary backend: no network, deterministic output, and the only
// backend that can work offline.
package qrpng

import (
	"context"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/goliatone/go-qrform/pkg/render"
)

const rendererName = "qrpng"

// Option customises the renderer before construction.
type Option func(*Renderer)

// WithRecoveryLevel overrides the QR error-correction level. The default is
// medium, matching what the remote image services produce.
func WithRecoveryLevel(level qrcode.RecoveryLevel) Option {
	return func(r *Renderer) {
		r.level = level
	}
}

// Renderer encodes payloads as PNG QR images in-process.
type Renderer struct {
	level qrcode.RecoveryLevel
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the local QR renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{level: qrcode.Medium}
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

// Render encodes the payload into a PNG QR image.
func (r *Renderer) Render(ctx context.Context, payload string, opts render.RenderOptions) (*render.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if payload == "" {
		return nil, render.ErrEmptyPayload
	}
	if len(payload) > render.MaxPayloadBytes {
		return nil, fmt.Errorf("qrpng: %d bytes: %w", len(payload), render.ErrPayloadTooLarge)
	}

	size := opts.Size()
	data, err := qrcode.Encode(payload, r.level, size)
	if err != nil {
		if strings.Contains(err.Error(), "content too long") {
			return nil, fmt.Errorf("qrpng: %w", render.ErrPayloadTooLarge)
		}
		return nil, fmt.Errorf("qrpng: encode: %w", err)
	}

	return &render.Image{
		Data:        data,
		ContentType: r.ContentType(),
		SizePx:      size,
	}, nil
}
