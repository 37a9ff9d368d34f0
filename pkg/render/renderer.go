package render

import "context"

// Image is the displayable output of a renderer backend.
type Image struct {
	Data        []byte
	ContentType string
	SizePx      int
}

// RenderOptions describe per-request rendering knobs. The zero value is
// usable; unset or out-of-range sizes clamp to the defaults.
type RenderOptions struct {
	// SizePx is the edge length of the produced square image, in pixels.
	SizePx int
}

const (
	// DefaultSizePx is used when a request does not specify a size.
	DefaultSizePx = 256
	// MinSizePx and MaxSizePx bound the sizes backends are asked to produce.
	MinSizePx = 64
	MaxSizePx = 1024
)

// Size resolves the effective pixel size for a request.
func (o RenderOptions) Size() int {
	switch {
	case o.SizePx <= 0:
		return DefaultSizePx
	case o.SizePx < MinSizePx:
		return MinSizePx
	case o.SizePx > MaxSizePx:
		return MaxSizePx
	default:
		return o.SizePx
	}
}

// Renderer converts an encoded payload string into a scannable barcode image.
// Implementations must distinguish "payload too long for the symbology"
// (ErrPayloadTooLarge) from "backend cannot serve right now" (ErrUnavailable)
// so callers can decide whether falling back to another backend makes sense.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, payload string, opts RenderOptions) (*Image, error)
}
