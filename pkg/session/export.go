package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
)

// Clipboard abstracts the OS clipboard so the copy action is testable and
// swappable on headless systems.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("session: no clipboard available on this system")
	}
	return clipboard.WriteAll(text)
}

// Export renders the current payload and writes the image to path. An empty
// path picks a unique file name inside the configured output directory.
// Returns the path actually written.
func (s *Session) Export(ctx context.Context, path string) (string, error) {
	img, err := s.Render(ctx)
	if err != nil {
		return "", err
	}

	if path == "" {
		if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("session: create output dir: %w", err)
		}
		path = filepath.Join(s.outputDir, "qr-"+uuid.NewString()+extensionFor(img.ContentType))
	}

	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("session: write image: %w", err)
	}
	s.log.Info(ctx, "image exported", "path", path, "bytes", len(img.Data))
	return path, nil
}

// CopyPayload places the encoded payload text on the system clipboard.
func (s *Session) CopyPayload(ctx context.Context) error {
	if s.encoded == "" {
		return fmt.Errorf("session: nothing to copy")
	}
	if err := s.clipboard.WriteAll(s.encoded); err != nil {
		return fmt.Errorf("session: copy payload: %w", err)
	}
	s.log.Info(ctx, "payload copied", "bytes", len(s.encoded))
	return nil
}

func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "svg"):
		return ".svg"
	case strings.Contains(contentType, "jpeg"):
		return ".jpg"
	default:
		return ".png"
	}
}
