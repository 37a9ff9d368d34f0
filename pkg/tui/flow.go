// Package tui drives the interactive terminal form: pick a payload mode,
// fill in its fields, then save or copy the result. All rendering goes
// through the session so the TUI stays a thin view layer.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-qrform/internal/logging"
	"github.com/goliatone/go-qrform/pkg/payload"
	"github.com/goliatone/go-qrform/pkg/render"
	"github.com/goliatone/go-qrform/pkg/session"
)

// errQuit ends the outer loop without surfacing an error to the caller.
var errQuit = errors.New("tui: quit")

var (
	modeLabels  = []string{"URL", "Text", "Contact card", "WiFi network"}
	modeByIndex = []payload.Mode{payload.ModeURL, payload.ModeText, payload.ModeContact, payload.ModeWifi}
)

const (
	actionSave = iota
	actionCopy
	actionEdit
	actionQuit
)

var actionLabels = []string{"Save PNG", "Copy payload to clipboard", "Edit the form", "Quit"}

// Option customises the flow.
type Option func(*Flow)

// WithPromptDriver overrides the terminal driver, mainly for tests.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Flow) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(log logging.Logger) Option {
	return func(f *Flow) {
		if log != nil {
			f.log = log
		}
	}
}

// Flow walks the user through the form and its follow-up actions.
type Flow struct {
	session *session.Session
	driver  PromptDriver
	log     logging.Logger
}

// New constructs a flow over an existing session.
func New(sess *session.Session, options ...Option) (*Flow, error) {
	if sess == nil {
		return nil, fmt.Errorf("tui: session is required")
	}
	f := &Flow{
		session: sess,
		driver:  NewSurveyDriver(),
		log:     logging.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f, nil
}

// Run loops edit → payload preview → action until the user quits or aborts.
// Aborting a prompt (Ctrl+C) exits cleanly.
func (f *Flow) Run(ctx context.Context) error {
	for {
		err := f.step(ctx)
		switch {
		case errors.Is(err, errQuit), errors.Is(err, ErrAborted):
			return nil
		case err != nil:
			return err
		}
	}
}

func (f *Flow) step(ctx context.Context) error {
	if err := f.editForm(ctx); err != nil {
		return err
	}

	if f.session.Empty() {
		return f.driver.Info(ctx, "Nothing to encode yet; fill in at least the required field.")
	}

	if err := f.driver.Info(ctx, "Payload:\n"+f.session.Payload()); err != nil {
		return err
	}
	return f.actionLoop(ctx)
}

func (f *Flow) editForm(ctx context.Context) error {
	current := 0
	for i, mode := range modeByIndex {
		if mode == f.session.Mode() {
			current = i
		}
	}

	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      "What should the code contain?",
		Options:      modeLabels,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(modeByIndex) {
		return fmt.Errorf("tui: mode selection out of range: %d", idx)
	}
	if err := f.session.SetMode(modeByIndex[idx]); err != nil {
		return err
	}

	switch f.session.Mode() {
	case payload.ModeURL:
		return f.editURL(ctx)
	case payload.ModeText:
		return f.editText(ctx)
	case payload.ModeContact:
		return f.editContact(ctx)
	case payload.ModeWifi:
		return f.editWifi(ctx)
	}
	return nil
}

func (f *Flow) editURL(ctx context.Context) error {
	value, err := f.driver.Input(ctx, InputConfig{
		Message: "URL",
		Default: f.session.State().URLInput,
		Help:    "https:// is added automatically when no scheme is given",
	})
	if err != nil {
		return err
	}
	f.session.SetURL(value)
	return nil
}

func (f *Flow) editText(ctx context.Context) error {
	value, err := f.driver.TextArea(ctx, InputConfig{
		Message: "Text",
		Default: f.session.State().TextInput,
	})
	if err != nil {
		return err
	}
	f.session.SetText(value)
	return nil
}

func (f *Flow) editContact(ctx context.Context) error {
	current := f.session.State().Contact
	fields := []struct {
		message string
		current string
		target  *string
	}{
		{message: "First name", current: current.FirstName},
		{message: "Last name", current: current.LastName},
		{message: "Phone", current: current.Phone},
		{message: "Email", current: current.Email},
		{message: "Organization", current: current.Organization},
		{message: "Website", current: current.WebsiteURL},
	}

	rec := payload.ContactRecord{}
	fields[0].target = &rec.FirstName
	fields[1].target = &rec.LastName
	fields[2].target = &rec.Phone
	fields[3].target = &rec.Email
	fields[4].target = &rec.Organization
	fields[5].target = &rec.WebsiteURL

	for _, field := range fields {
		value, err := f.driver.Input(ctx, InputConfig{Message: field.message, Default: field.current})
		if err != nil {
			return err
		}
		*field.target = value
	}

	f.session.SetContact(rec)
	return nil
}

func (f *Flow) editWifi(ctx context.Context) error {
	current := f.session.State().Wifi

	ssid, err := f.driver.Input(ctx, InputConfig{Message: "Network name (SSID)", Default: current.SSID})
	if err != nil {
		return err
	}

	securityDefault := 0
	if current.Security == payload.SecurityOpen {
		securityDefault = 1
	}
	securityIdx, err := f.driver.Select(ctx, SelectConfig{
		Message:      "Security",
		Options:      []string{"WPA/WPA2", "Open (no password)"},
		DefaultIndex: securityDefault,
	})
	if err != nil {
		return err
	}

	rec := payload.WifiRecord{SSID: ssid, Security: payload.SecurityWPA}
	if securityIdx == 1 {
		rec.Security = payload.SecurityOpen
	} else {
		password, err := f.driver.Password(ctx, InputConfig{Message: "Password"})
		if err != nil {
			return err
		}
		rec.Password = password
	}

	f.session.SetWifi(rec)
	return nil
}

func (f *Flow) actionLoop(ctx context.Context) error {
	for {
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message: "Next",
			Options: actionLabels,
		})
		if err != nil {
			return err
		}

		switch idx {
		case actionSave:
			if err := f.save(ctx); err != nil {
				return err
			}
		case actionCopy:
			if err := f.session.CopyPayload(ctx); err != nil {
				if infoErr := f.driver.Info(ctx, "Copy failed: "+err.Error()); infoErr != nil {
					return infoErr
				}
				continue
			}
			if err := f.driver.Info(ctx, "Payload copied to clipboard."); err != nil {
				return err
			}
		case actionEdit:
			return nil
		default:
			return errQuit
		}
	}
}

func (f *Flow) save(ctx context.Context) error {
	path, err := f.driver.Input(ctx, InputConfig{
		Message: "File path",
		Help:    "leave empty to auto-name inside the output directory",
	})
	if err != nil {
		return err
	}

	written, err := f.session.Export(ctx, path)
	if err != nil {
		// Rendering failures are user-visible conditions, not flow bugs.
		if errors.Is(err, render.ErrPayloadTooLarge) || errors.Is(err, render.ErrUnavailable) {
			return f.driver.Info(ctx, "Could not render the code: "+err.Error())
		}
		return err
	}
	f.log.Info(ctx, "image saved", "path", written)
	return f.driver.Info(ctx, "Saved "+written)
}
