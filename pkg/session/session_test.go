package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-qrform/pkg/payload"
	"github.com/goliatone/go-qrform/pkg/render"
)

type stubRenderer struct {
	err   error
	calls []string
}

func (s *stubRenderer) Name() string        { return "stub" }
func (s *stubRenderer) ContentType() string { return "image/png" }

func (s *stubRenderer) Render(_ context.Context, p string, opts render.RenderOptions) (*render.Image, error) {
	s.calls = append(s.calls, p)
	if s.err != nil {
		return nil, s.err
	}
	return &render.Image{Data: []byte("img:" + p), ContentType: "image/png", SizePx: opts.Size()}, nil
}

type recordingClipboard struct {
	texts []string
	err   error
}

func (c *recordingClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

func newTestSession(t *testing.T, options ...Option) (*Session, *stubRenderer) {
	t.Helper()
	backend := &stubRenderer{}
	sess, err := New(backend, options...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sess, backend
}

func TestNewRequiresRenderer(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil renderer")
	}
}

func TestSettersRecomputeSynchronously(t *testing.T) {
	sess, _ := newTestSession(t)

	if !sess.Empty() {
		t.Fatal("fresh session should have no payload")
	}

	sess.SetURL("example.com")
	if got := sess.Payload(); got != "https://example.com" {
		t.Fatalf("payload after SetURL = %q", got)
	}

	// Per-keystroke updates: each change is visible immediately.
	sess.SetURL("example.org")
	if got := sess.Payload(); got != "https://example.org" {
		t.Fatalf("payload after second SetURL = %q", got)
	}

	if err := sess.SetMode(payload.ModeWifi); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if !sess.Empty() {
		t.Fatal("wifi mode with no ssid should suppress the payload")
	}

	sess.SetWifi(payload.WifiRecord{SSID: "HomeWiFi", Password: "Sunshine1", Security: payload.SecurityWPA})
	if got := sess.Payload(); got != "WIFI:T:WPA;S:HomeWiFi;P:Sunshine1;;" {
		t.Fatalf("wifi payload = %q", got)
	}

	// Switching modes preserves the other modes' fields.
	if err := sess.SetMode(payload.ModeURL); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if got := sess.Payload(); got != "https://example.org" {
		t.Fatalf("payload after switching back = %q", got)
	}
}

func TestSetModeRejectsUnknown(t *testing.T) {
	sess, _ := newTestSession(t)

	err := sess.SetMode(payload.Mode("barcode"))
	if !errors.Is(err, payload.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if sess.Mode() != payload.ModeURL {
		t.Fatalf("mode changed to %q after rejected switch", sess.Mode())
	}
}

func TestSetModeCanonicalizesSpelling(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.SetURL("example.com")

	if err := sess.SetMode(payload.Mode("URL")); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if got := sess.Mode(); got != payload.ModeURL {
		t.Fatalf("mode stored as %q, want %q", got, payload.ModeURL)
	}
	if got := sess.Payload(); got != "https://example.com" {
		t.Fatalf("payload after case-folded switch = %q", got)
	}
}

func TestRenderEmptySession(t *testing.T) {
	sess, backend := newTestSession(t)

	_, err := sess.Render(context.Background())
	if !errors.Is(err, render.ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
	if len(backend.calls) != 0 {
		t.Fatal("renderer must not be invoked with an empty payload")
	}
}

func TestRenderUsesConfiguredSize(t *testing.T) {
	sess, _ := newTestSession(t, WithSizePx(512))
	sess.SetURL("example.com")

	img, err := sess.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.SizePx != 512 {
		t.Fatalf("size %d, want 512", img.SizePx)
	}
}

func TestExportWritesNamedFile(t *testing.T) {
	sess, _ := newTestSession(t)
	if err := sess.SetMode(payload.ModeText); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	sess.SetText("hello")

	path := filepath.Join(t.TempDir(), "code.png")

	written, err := sess.Export(context.Background(), path)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if written != path {
		t.Fatalf("written path %q, want %q", written, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if string(data) != "img:hello" {
		t.Fatalf("exported bytes %q", data)
	}
}

func TestExportGeneratesFileName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sess, _ := newTestSession(t, WithOutputDir(dir))
	sess.SetURL("example.com")

	written, err := sess.Export(context.Background(), "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Dir(written) != dir {
		t.Fatalf("wrote outside output dir: %q", written)
	}
	if !strings.HasPrefix(filepath.Base(written), "qr-") || !strings.HasSuffix(written, ".png") {
		t.Fatalf("unexpected generated name %q", written)
	}
	if _, err := os.Stat(written); err != nil {
		t.Fatalf("stat exported file: %v", err)
	}
}

func TestCopyPayload(t *testing.T) {
	clip := &recordingClipboard{}
	sess, _ := newTestSession(t, WithClipboard(clip))

	if err := sess.CopyPayload(context.Background()); err == nil {
		t.Fatal("expected error copying an empty payload")
	}

	sess.SetURL("example.com")
	if err := sess.CopyPayload(context.Background()); err != nil {
		t.Fatalf("CopyPayload: %v", err)
	}
	if len(clip.texts) != 1 || clip.texts[0] != "https://example.com" {
		t.Fatalf("clipboard got %v", clip.texts)
	}
}

func TestCopyPayloadClipboardFailure(t *testing.T) {
	clip := &recordingClipboard{err: errors.New("no display")}
	sess, _ := newTestSession(t, WithClipboard(clip))
	if err := sess.SetMode(payload.ModeText); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	sess.SetText("x")

	if err := sess.CopyPayload(context.Background()); err == nil {
		t.Fatal("expected clipboard error to surface")
	}
}
