package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/refeed/pkg/settings"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, rest.JSON{
		"status":    "ok",
		"version":   s.version,
		"time":      time.Now().UTC(),
		"feed_path": s.feedPath(),
	})
}

// getSettingsHandler returns current canonical feed settings
func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.settings.Current(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't load settings")
		return
	}
	rest.RenderJSON(w, cfg)
}

// updateSettingsHandler replaces feed settings with raw values from JSON body.
// Validation failures are reported per field with 422, settings stay unchanged.
func (s *Server) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}
	if raw == nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, errors.New("null body"), "settings object expected")
		return
	}

	cfg, err := s.settings.Update(r.Context(), raw)
	if err != nil {
		var verr *settings.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnprocessableEntity)
			rest.RenderJSON(w, rest.JSON{"error": verr.Error(), "fields": verr.Fields})
			return
		}
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't update settings")
		return
	}
	rest.RenderJSON(w, cfg)
}
