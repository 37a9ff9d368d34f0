package payload

import internalpayload "github.com/goliatone/go-qrform/internal/payload"

// Mode re-exports the internal Mode enumeration.
type Mode = internalpayload.Mode

const (
	ModeURL     = internalpayload.ModeURL
	ModeText    = internalpayload.ModeText
	ModeContact = internalpayload.ModeContact
	ModeWifi    = internalpayload.ModeWifi
)

// SecurityType re-exports the internal WiFi security enumeration.
type SecurityType = internalpayload.SecurityType

const (
	SecurityWPA  = internalpayload.SecurityWPA
	SecurityOpen = internalpayload.SecurityOpen
)

type ContactRecord = internalpayload.ContactRecord
type WifiRecord = internalpayload.WifiRecord
type FormState = internalpayload.FormState

var ErrUnknownMode = internalpayload.ErrUnknownMode

// Formatter entry points. Encode is the dispatch function callers use to
// recompute the payload after every form mutation; the per-mode formatters
// are exported for direct use and testing.
var (
	Modes             = internalpayload.Modes
	ParseMode         = internalpayload.ParseMode
	FormatURL         = internalpayload.FormatURL
	FormatText        = internalpayload.FormatText
	FormatContact     = internalpayload.FormatContact
	FormatWifi        = internalpayload.FormatWifi
	EscapeWifiField   = internalpayload.EscapeWifiField
	UnescapeWifiField = internalpayload.UnescapeWifiField
	Encode            = internalpayload.Encode
)
