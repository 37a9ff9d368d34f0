package tui

import "errors"

// ErrAborted signals the user aborted input (e.g., Ctrl+C). The flow treats
// it as a clean exit.
var ErrAborted = errors.New("tui: aborted")
