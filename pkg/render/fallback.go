package render

import (
	"context"
	"errors"
	"fmt"
)

// Fallback is a Renderer composed of a priority-ordered list of backends.
// Each render request walks the list until a backend succeeds. Only
// ErrUnavailable failures advance the walk: ErrPayloadTooLarge (and any
// other error) aborts immediately, since handing the same payload to the
// next QR backend cannot change the outcome.
type Fallback struct {
	backends []Renderer
}

// NewFallback builds a fallback chain from the given backends, tried in
// argument order. At least one backend is required.
func NewFallback(backends ...Renderer) (*Fallback, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("render: fallback needs at least one backend")
	}
	for i, backend := range backends {
		if backend == nil {
			return nil, fmt.Errorf("render: fallback backend %d is nil", i)
		}
	}
	out := make([]Renderer, len(backends))
	copy(out, backends)
	return &Fallback{backends: out}, nil
}

// FallbackFromRegistry assembles a chain by looking up the named backends,
// preserving the order of names.
func FallbackFromRegistry(registry *Registry, names ...string) (*Fallback, error) {
	if registry == nil {
		return nil, fmt.Errorf("render: registry is required")
	}
	backends := make([]Renderer, 0, len(names))
	for _, name := range names {
		backend, err := registry.Get(name)
		if err != nil {
			return nil, err
		}
		backends = append(backends, backend)
	}
	return NewFallback(backends...)
}

// Name identifies the chain in logs and registries.
func (f *Fallback) Name() string { return "fallback" }

// ContentType reports the primary backend's content type; the chain only
// holds image-producing backends so they agree in practice.
func (f *Fallback) ContentType() string { return f.backends[0].ContentType() }

// Backends returns the backend names in priority order.
func (f *Fallback) Backends() []string {
	names := make([]string, len(f.backends))
	for i, backend := range f.backends {
		names[i] = backend.Name()
	}
	return names
}

// Render tries each backend in priority order.
func (f *Fallback) Render(ctx context.Context, payload string, opts RenderOptions) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var failures []error
	for _, backend := range f.backends {
		img, err := backend.Render(ctx, payload, opts)
		if err == nil {
			return img, nil
		}
		if errors.Is(err, ErrUnavailable) {
			failures = append(failures, fmt.Errorf("%s: %w", backend.Name(), err))
			continue
		}
		return nil, fmt.Errorf("render: backend %s: %w", backend.Name(), err)
	}
	return nil, fmt.Errorf("render: all backends failed: %w", errors.Join(failures...))
}
