package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-qrform/pkg/payload"
	"github.com/goliatone/go-qrform/pkg/render"
)

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	state := s.stateFromRequest(r)
	encoded := payload.Encode(state)

	data := pongo2.Context{
		"mode": state.Mode.String(),
		"mode_options": []map[string]string{
			{"value": "url", "label": "URL"},
			{"value": "text", "label": "Text"},
			{"value": "contact", "label": "Contact card"},
			{"value": "wifi", "label": "WiFi network"},
		},
		"url_input":  state.URLInput,
		"text_input": state.TextInput,
		"contact": map[string]string{
			"first_name":   state.Contact.FirstName,
			"last_name":    state.Contact.LastName,
			"phone":        state.Contact.Phone,
			"email":        state.Contact.Email,
			"organization": state.Contact.Organization,
			"website":      state.Contact.WebsiteURL,
		},
		"wifi": map[string]string{
			"ssid":     state.Wifi.SSID,
			"password": state.Wifi.Password,
			"security": string(state.Wifi.Security),
		},
		"has_payload": encoded != "",
		"has_svg":     s.svgRenderer != nil,
		"payload":     encoded,
		"qr_query":    stateQuery(state),
		"size_px":     s.sizePx,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.engine.render("templates/form.html", data, w); err != nil {
		s.log.Error(r.Context(), "form render failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	state := s.stateFromRequest(r)
	encoded := payload.Encode(state)
	if encoded == "" {
		http.Error(w, "nothing to encode", http.StatusNotFound)
		return
	}

	img, err := s.renderer.Render(r.Context(), encoded, render.RenderOptions{SizePx: s.sizePx})
	if err != nil {
		s.log.Error(r.Context(), "image render failed", "error", err)
		switch {
		case errors.Is(err, render.ErrPayloadTooLarge):
			http.Error(w, "payload too large to encode", http.StatusRequestEntityTooLarge)
		case errors.Is(err, render.ErrUnavailable):
			http.Error(w, "no renderer available", http.StatusBadGateway)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+downloadName(img.ContentType)+`"`)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	_, _ = w.Write(img.Data)
}

// downloadName picks the attachment file name from the image content type so
// the extension matches what the backend actually produced.
func downloadName(contentType string) string {
	switch {
	case strings.Contains(contentType, "svg"):
		return "qr.svg"
	case strings.Contains(contentType, "jpeg"):
		return "qr.jpg"
	default:
		return "qr.png"
	}
}

// handleSVG serves the remote backend's SVG rendition. The fetched document
// is third-party markup served from this origin, so it is sanitized down to
// plain vector elements first.
func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	state := s.stateFromRequest(r)
	encoded := payload.Encode(state)
	if encoded == "" {
		http.Error(w, "nothing to encode", http.StatusNotFound)
		return
	}

	img, err := s.svgRenderer.Render(r.Context(), encoded, render.RenderOptions{SizePx: s.sizePx})
	if err != nil {
		s.log.Error(r.Context(), "svg render failed", "error", err)
		switch {
		case errors.Is(err, render.ErrPayloadTooLarge):
			http.Error(w, "payload too large to encode", http.StatusRequestEntityTooLarge)
		case errors.Is(err, render.ErrUnavailable):
			http.Error(w, "svg backend unavailable", http.StatusBadGateway)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	clean := svgSanitizer().SanitizeBytes(img.Data)
	w.Header().Set("Content-Type", "image/svg+xml")
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", `attachment; filename="qr.svg"`)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(clean)))
	_, _ = w.Write(clean)
}

// stateFromRequest rebuilds the form snapshot from request values. Values are
// taken verbatim: the formatters require raw input (escaping a password or a
// text payload here would corrupt the encoded result), and the template layer
// escapes everything it prints.
func (s *Server) stateFromRequest(r *http.Request) payload.FormState {
	_ = r.ParseForm()

	mode, err := payload.ParseMode(r.FormValue("mode"))
	if err != nil {
		mode = payload.ModeURL
	}

	security := payload.SecurityWPA
	if r.FormValue("security") == string(payload.SecurityOpen) {
		security = payload.SecurityOpen
	}

	return payload.FormState{
		Mode:      mode,
		URLInput:  r.FormValue("url"),
		TextInput: r.FormValue("text"),
		Contact: payload.ContactRecord{
			FirstName:    r.FormValue("first_name"),
			LastName:     r.FormValue("last_name"),
			Phone:        r.FormValue("phone"),
			Email:        r.FormValue("email"),
			Organization: r.FormValue("organization"),
			WebsiteURL:   r.FormValue("website"),
		},
		Wifi: payload.WifiRecord{
			SSID:     r.FormValue("ssid"),
			Password: r.FormValue("password"),
			Security: security,
		},
	}
}

// stateQuery serializes the snapshot into the query string the image
// endpoint consumes, so the <img> tag re-derives the same payload.
func stateQuery(state payload.FormState) string {
	values := url.Values{}
	values.Set("mode", state.Mode.String())

	switch state.Mode {
	case payload.ModeURL:
		values.Set("url", state.URLInput)
	case payload.ModeText:
		values.Set("text", state.TextInput)
	case payload.ModeContact:
		values.Set("first_name", state.Contact.FirstName)
		values.Set("last_name", state.Contact.LastName)
		values.Set("phone", state.Contact.Phone)
		values.Set("email", state.Contact.Email)
		values.Set("organization", state.Contact.Organization)
		values.Set("website", state.Contact.WebsiteURL)
	case payload.ModeWifi:
		values.Set("ssid", state.Wifi.SSID)
		values.Set("password", state.Wifi.Password)
		values.Set("security", string(state.Wifi.Security))
	}
	return values.Encode()
}
