package render

import "errors"

// Sentinel errors for programmatic error handling. Backends wrap these with
// fmt.Errorf("...: %w", ...) so errors.Is keeps working through the chain.
var (
	// ErrEmptyPayload signals a render request with nothing to encode.
	ErrEmptyPayload = errors.New("render: empty payload")
	// ErrPayloadTooLarge signals the payload exceeds the symbol capacity.
	// Every QR backend shares this limit, so fallback chains abort on it.
	ErrPayloadTooLarge = errors.New("render: payload exceeds symbol capacity")
	// ErrUnavailable signals the backend cannot serve the request right now
	// (library failure, network failure, non-2xx upstream). Fallback chains
	// move on to the next backend.
	ErrUnavailable = errors.New("render: renderer unavailable")
)

// MaxPayloadBytes is the binary capacity of a version-40 QR symbol at medium
// error correction. Remote backends check it locally before spending a
// network round trip on a payload no QR code can hold.
const MaxPayloadBytes = 2331
