package payload

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for unrecognized mode names.
var ErrUnknownMode = errors.New("payload: unknown mode")

// Mode selects which formatter runs and which form fields are relevant.
type Mode string

const (
	ModeURL     Mode = "url"
	ModeText    Mode = "text"
	ModeContact Mode = "contact"
	ModeWifi    Mode = "wifi"
)

var modes = []Mode{ModeURL, ModeText, ModeContact, ModeWifi}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// Modes returns every supported mode, in presentation order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	candidate := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, mode := range modes {
		if candidate == mode {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// SecurityType is the WiFi security declaration carried in the WIFI URI's
// T parameter. The wire values are the literal strings scanners expect.
type SecurityType string

const (
	SecurityWPA  SecurityType = "WPA"
	SecurityOpen SecurityType = "nopass"
)

// ContactRecord holds the contact form fields. Every field is optional
// free text.
type ContactRecord struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Organization string `json:"organization"`
	WebsiteURL   string `json:"websiteUrl"`
}

// Blank reports whether the record lacks all identifying fields. Organization
// and website alone do not make a renderable contact, so Encode suppresses
// output for blank records.
func (r ContactRecord) Blank() bool {
	return r.FirstName == "" && r.LastName == "" && r.Phone == "" && r.Email == ""
}

// WifiRecord holds the WiFi form fields.
type WifiRecord struct {
	SSID     string       `json:"ssid"`
	Password string       `json:"password"`
	Security SecurityType `json:"security"`
}

// FormState is the complete in-memory snapshot of the form. Only the fields
// belonging to the active mode influence the encoded payload.
type FormState struct {
	Mode      Mode          `json:"mode"`
	URLInput  string        `json:"urlInput"`
	TextInput string        `json:"textInput"`
	Contact   ContactRecord `json:"contact"`
	Wifi      WifiRecord    `json:"wifi"`
}

// FormatURL trims the input and ensures an http or https scheme, defaulting
// to https. The empty string maps to the empty string so callers can suppress
// rendering. No structural validation happens beyond the scheme check.
func FormatURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}

// FormatText passes the input through verbatim, whitespace and newlines
// included.
func FormatText(raw string) string {
	return raw
}

// FormatContact serializes the record as a vCard 3.0 document with a fixed
// field order. Field values are interpolated as-is: reserved vCard characters
// (";", ",", "\") are intentionally not escaped, matching the behavior of
// the importing flows this output was validated against.
func FormatContact(rec ContactRecord) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + rec.FirstName + " " + rec.LastName,
		"N:" + rec.LastName + ";" + rec.FirstName + ";;;",
		"ORG:" + rec.Organization,
		"TEL:" + rec.Phone,
		"EMAIL:" + rec.Email,
		"URL:" + rec.WebsiteURL,
		"END:VCARD",
	}
	return strings.Join(lines, "\n")
}

// FormatWifi serializes the record using the WIFI: URI scheme understood by
// mobile camera scanners. The password is always omitted for open networks,
// whatever value the form holds: advertising a network as open while
// embedding a password would misrepresent it. Unrecognized security values
// normalize to WPA so the function stays total.
func FormatWifi(rec WifiRecord) string {
	security := rec.Security
	if security != SecurityOpen {
		security = SecurityWPA
	}
	password := ""
	if security == SecurityWPA {
		password = rec.Password
	}
	return "WIFI:T:" + string(security) +
		";S:" + EscapeWifiField(rec.SSID) +
		";P:" + EscapeWifiField(password) + ";;"
}

// EscapeWifiField backslash-escapes the characters reserved by the WIFI URI
// scheme. The backslash replacement must run first; otherwise the backslashes
// inserted for the other characters would themselves be re-escaped.
func EscapeWifiField(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `;`, `\;`)
	value = strings.ReplaceAll(value, `:`, `\:`)
	value = strings.ReplaceAll(value, `,`, `\,`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return value
}

// UnescapeWifiField inverts EscapeWifiField. A trailing lone backslash is
// preserved as-is.
func UnescapeWifiField(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	escaped := false
	for _, r := range value {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

// Encode is the single recomputation entry point: it selects the formatter
// for the active mode and applies the per-mode emptiness guard, returning the
// empty string whenever the guard is not satisfied. It is pure and
// synchronous; callers invoke it after every state mutation.
func Encode(state FormState) string {
	switch state.Mode {
	case ModeURL:
		return FormatURL(state.URLInput)
	case ModeText:
		if state.TextInput == "" {
			return ""
		}
		return FormatText(state.TextInput)
	case ModeContact:
		if state.Contact.Blank() {
			return ""
		}
		return FormatContact(state.Contact)
	case ModeWifi:
		if state.Wifi.SSID == "" {
			return ""
		}
		return FormatWifi(state.Wifi)
	default:
		return ""
	}
}
