package session

import "github.com/goliatone/go-qrform/internal/logging"

// Option customises the session before first use.
type Option func(*Session)

// WithSizePx sets the pixel size requested from the renderer.
func WithSizePx(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.sizePx = size
		}
	}
}

// WithOutputDir sets the directory Export writes into when the caller does
// not name a file.
func WithOutputDir(dir string) Option {
	return func(s *Session) {
		if dir != "" {
			s.outputDir = dir
		}
	}
}

// WithClipboard overrides the system clipboard, mainly for tests and for
// environments without one.
func WithClipboard(clipboard Clipboard) Option {
	return func(s *Session) {
		if clipboard != nil {
			s.clipboard = clipboard
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}
