package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/umputun/refeed/pkg/feed"
)

// feedHandler serves the RSS feed
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := s.feeds.Render(r.Context(), time.Now().UTC())
	if err != nil {
		var serr *feed.StructuralError
		if errors.As(err, &serr) {
			log.Printf("[ERROR] malformed records for RSS: %v", err)
		} else {
			log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		}
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(doc.Body); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
