package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/refeed/pkg/domain"
	"github.com/umputun/refeed/pkg/settings"
)

// recordResponse is the JSON view of a stored record
type recordResponse struct {
	ID        int64             `json:"id"`
	Type      string            `json:"type"`
	Status    string            `json:"status"`
	Title     string            `json:"title"`
	Permalink string            `json:"permalink"`
	Excerpt   string            `json:"excerpt,omitempty"`
	Body      string            `json:"body,omitempty"`
	Author    string            `json:"author,omitempty"`
	Published time.Time         `json:"published"`
	Meta      map[string]string `json:"meta"`
}

// getRecordHandler returns a single record with its metadata
func (s *Server) getRecordHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.recordID(w, r)
	if !ok {
		return
	}
	rec, err := s.records.GetRecord(r.Context(), id)
	if err != nil {
		s.sendRecordError(w, r, err, "can't load record")
		return
	}
	meta := rec.Meta
	if meta == nil {
		meta = map[string]string{}
	}
	rest.RenderJSON(w, recordResponse{ID: rec.ID, Type: rec.Type, Status: rec.Status, Title: rec.Title,
		Permalink: rec.Permalink, Excerpt: rec.Excerpt, Body: rec.Body, Author: rec.Author,
		Published: rec.Published, Meta: meta})
}

// setRecordStatusHandler publishes or drafts a record, drafts drop out of the feed
func (s *Server) setRecordStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.recordID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != domain.StatusPublish && status != domain.StatusDraft {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, fmt.Errorf("bad status %q", req.Status),
			"status must be publish or draft")
		return
	}
	if err := s.records.SetStatus(r.Context(), id, status); err != nil {
		s.sendRecordError(w, r, err, "can't update record status")
		return
	}
	log.Printf("[INFO] record %d status set to %s", id, status)
	rest.RenderJSON(w, rest.JSON{"id": id, "status": status})
}

// setRecordMetaHandler sets a single metadata override on a record, empty value removes it
func (s *Server) setRecordMetaHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.recordID(w, r)
	if !ok {
		return
	}
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}
	key := settings.SanitizeKey(req.Key)
	if key == "" {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, fmt.Errorf("bad meta key %q", req.Key),
			"meta key is required")
		return
	}
	value := strings.TrimSpace(req.Value)
	if err := s.records.SetMeta(r.Context(), id, key, value); err != nil {
		s.sendRecordError(w, r, err, "can't update record meta")
		return
	}
	rest.RenderJSON(w, rest.JSON{"id": id, "key": key, "value": value})
}

// deleteRecordHandler removes a record with its metadata
func (s *Server) deleteRecordHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.recordID(w, r)
	if !ok {
		return
	}
	if err := s.records.DeleteRecord(r.Context(), id); err != nil {
		s.sendRecordError(w, r, err, "can't delete record")
		return
	}
	log.Printf("[INFO] record %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// recordID parses positive record ID from the path, sends 400 if invalid
func (s *Server) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, fmt.Errorf("bad id %q", r.PathValue("id")),
			"invalid record id")
		return 0, false
	}
	return id, true
}

func (s *Server) sendRecordError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, domain.ErrNotFound) {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotFound, err, "record not found")
		return
	}
	rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, msg)
}
