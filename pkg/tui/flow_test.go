package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-qrform/pkg/render"
	"github.com/goliatone/go-qrform/pkg/session"
)

type stubDriver struct {
	inputs    []string
	passwords []string
	textAreas []string
	selects   []int
	infos     []string

	inputPos  int
	passPos   int
	textPos   int
	selectPos int

	abortAfterInfo bool
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ InputConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selects) {
		return -1, errors.New("no select scripted")
	}
	val := s.selects[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	return false, errors.New("no confirm scripted")
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	if s.abortAfterInfo {
		return ErrAborted
	}
	return nil
}

type fakeRenderer struct{}

func (fakeRenderer) Name() string        { return "fake" }
func (fakeRenderer) ContentType() string { return "image/png" }

func (fakeRenderer) Render(_ context.Context, p string, opts render.RenderOptions) (*render.Image, error) {
	return &render.Image{Data: []byte("img:" + p), ContentType: "image/png", SizePx: opts.Size()}, nil
}

type clipboardRecorder struct {
	texts []string
}

func (c *clipboardRecorder) WriteAll(text string) error {
	c.texts = append(c.texts, text)
	return nil
}

func newFlow(t *testing.T, driver *stubDriver, options ...session.Option) (*Flow, *session.Session) {
	t.Helper()
	sess, err := session.New(fakeRenderer{}, options...)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	flow, err := New(sess, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return flow, sess
}

func TestFlowWifiFormToSave(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "wifi.png")

	driver := &stubDriver{
		// mode=WiFi, security=WPA, action=save, action=quit
		selects:   []int{3, 0, actionSave, actionQuit},
		inputs:    []string{"HomeWiFi", target},
		passwords: []string{"Sunshine1"},
	}
	flow, sess := newFlow(t, driver)

	if err := flow.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := sess.Payload(); got != "WIFI:T:WPA;S:HomeWiFi;P:Sunshine1;;" {
		t.Fatalf("payload %q", got)
	}

	var sawPayload, sawSaved bool
	for _, msg := range driver.infos {
		if strings.Contains(msg, "WIFI:T:WPA;S:HomeWiFi;P:Sunshine1;;") {
			sawPayload = true
		}
		if strings.Contains(msg, "Saved "+target) {
			sawSaved = true
		}
	}
	if !sawPayload || !sawSaved {
		t.Fatalf("missing expected messages, got %q", driver.infos)
	}
}

func TestFlowOpenNetworkSkipsPasswordPrompt(t *testing.T) {
	driver := &stubDriver{
		// mode=WiFi, security=Open, action=quit; no password scripted on
		// purpose: prompting for one would fail the test.
		selects: []int{3, 1, actionQuit},
		inputs:  []string{"CafeWiFi"},
	}
	flow, sess := newFlow(t, driver)

	if err := flow.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := sess.Payload(); got != "WIFI:T:nopass;S:CafeWiFi;P:;;" {
		t.Fatalf("payload %q", got)
	}
}

func TestFlowCopyAction(t *testing.T) {
	clip := &clipboardRecorder{}
	driver := &stubDriver{
		// mode=URL, action=copy, action=quit
		selects: []int{0, actionCopy, actionQuit},
		inputs:  []string{"example.com"},
	}
	flow, _ := newFlow(t, driver, session.WithClipboard(clip))

	if err := flow.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(clip.texts) != 1 || clip.texts[0] != "https://example.com" {
		t.Fatalf("clipboard got %v", clip.texts)
	}
}

func TestFlowEmptyFormReportsAndLoops(t *testing.T) {
	driver := &stubDriver{
		// mode=URL with empty input → info message, then the outer loop runs
		// again and the info abort ends it.
		selects:        []int{0},
		inputs:         []string{"   "},
		abortAfterInfo: true,
	}
	flow, sess := newFlow(t, driver)

	if err := flow.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !sess.Empty() {
		t.Fatal("session should have no payload")
	}
	if len(driver.infos) != 1 || !strings.Contains(driver.infos[0], "Nothing to encode") {
		t.Fatalf("expected guidance message, got %q", driver.infos)
	}
}

func TestFlowContactForm(t *testing.T) {
	driver := &stubDriver{
		// mode=Contact, then six fields, then quit.
		selects: []int{2, actionQuit},
		inputs:  []string{"Jane", "Doe", "", "", "Acme", ""},
	}
	flow, sess := newFlow(t, driver)

	if err := flow.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := sess.Payload()
	for _, fragment := range []string{"BEGIN:VCARD", "FN:Jane Doe", "N:Doe;Jane;;;", "ORG:Acme", "END:VCARD"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("payload missing %q:\n%s", fragment, got)
		}
	}
}

func TestFlowAbortDuringEditIsClean(t *testing.T) {
	driver := &stubDriver{}
	flow, _ := newFlow(t, driver)
	// No selects scripted: Select errors. A generic error should surface...
	if err := flow.Run(context.Background()); err == nil {
		t.Fatal("expected scripted-driver error to surface")
	}

	// ...but ErrAborted must not.
	abortingDriver := &abortDriver{}
	sess, err := session.New(fakeRenderer{})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	abortingFlow, err := New(sess, WithPromptDriver(abortingDriver))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := abortingFlow.Run(context.Background()); err != nil {
		t.Fatalf("aborted run should be clean, got %v", err)
	}
}

type abortDriver struct{}

func (abortDriver) Input(context.Context, InputConfig) (string, error)    { return "", ErrAborted }
func (abortDriver) Password(context.Context, InputConfig) (string, error) { return "", ErrAborted }
func (abortDriver) TextArea(context.Context, InputConfig) (string, error) { return "", ErrAborted }
func (abortDriver) Select(context.Context, SelectConfig) (int, error)     { return 0, ErrAborted }
func (abortDriver) Confirm(context.Context, ConfirmConfig) (bool, error)  { return false, ErrAborted }
func (abortDriver) Info(context.Context, string) error                    { return nil }
