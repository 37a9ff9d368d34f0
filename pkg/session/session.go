// Package session holds the in-memory form state and recomputes the encoded
// payload synchronously on every mutation. Nothing here persists: the state
// lives exactly as long as the Session value.
package session

import (
	"context"
	"fmt"

	"github.com/goliatone/go-qrform/internal/logging"
	"github.com/goliatone/go-qrform/pkg/payload"
	"github.com/goliatone/go-qrform/pkg/render"
)

// Session is the reactive-recompute core of the application: every setter
// re-derives the encoded payload before returning, so readers always observe
// a payload consistent with the current state. Formatting is pure and
// instantaneous, so there is no caching and nothing to cancel.
//
// A Session is single-owner state, not safe for concurrent use; that matches
// the one-user one-form interaction model.
type Session struct {
	state    payload.FormState
	encoded  string
	renderer render.Renderer
	sizePx   int

	outputDir string
	clipboard Clipboard
	log       logging.Logger
}

// New constructs a session. A renderer is required; everything else has
// defaults.
func New(renderer render.Renderer, options ...Option) (*Session, error) {
	if renderer == nil {
		return nil, fmt.Errorf("session: renderer is required")
	}

	s := &Session{
		state:     payload.FormState{Mode: payload.ModeURL},
		renderer:  renderer,
		sizePx:    render.DefaultSizePx,
		outputDir: ".",
		clipboard: systemClipboard{},
		log:       logging.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.recompute()
	return s, nil
}

// recompute is the single derivation point for the encoded payload. Every
// mutator funnels through it.
func (s *Session) recompute() {
	s.encoded = payload.Encode(s.state)
}

// SetMode switches the active payload mode. Field values of the other modes
// stay in place so switching back restores them.
func (s *Session) SetMode(mode payload.Mode) error {
	parsed, err := payload.ParseMode(mode.String())
	if err != nil {
		return err
	}
	s.state.Mode = parsed
	s.recompute()
	return nil
}

// SetURL updates the URL form field.
func (s *Session) SetURL(raw string) {
	s.state.URLInput = raw
	s.recompute()
}

// SetText updates the free-text form field.
func (s *Session) SetText(raw string) {
	s.state.TextInput = raw
	s.recompute()
}

// SetContact replaces the contact record.
func (s *Session) SetContact(rec payload.ContactRecord) {
	s.state.Contact = rec
	s.recompute()
}

// SetWifi replaces the WiFi record.
func (s *Session) SetWifi(rec payload.WifiRecord) {
	s.state.Wifi = rec
	s.recompute()
}

// Mode returns the active mode.
func (s *Session) Mode() payload.Mode { return s.state.Mode }

// State returns a copy of the current form snapshot.
func (s *Session) State() payload.FormState { return s.state }

// Payload returns the encoded payload for the active mode. Empty when the
// active mode's emptiness guard is not satisfied.
func (s *Session) Payload() string { return s.encoded }

// Empty reports whether there is anything to render.
func (s *Session) Empty() bool { return s.encoded == "" }

// Render hands the current payload to the configured renderer.
func (s *Session) Render(ctx context.Context) (*render.Image, error) {
	if s.encoded == "" {
		return nil, fmt.Errorf("session: %w", render.ErrEmptyPayload)
	}

	img, err := s.renderer.Render(ctx, s.encoded, render.RenderOptions{SizePx: s.sizePx})
	if err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "payload rendered", "backend", s.renderer.Name(), "bytes", len(img.Data), "size_px", img.SizePx)
	return img, nil
}
