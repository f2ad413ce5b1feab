package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/umputun/refeed/pkg/domain"
)

// recordJSON is a record in the import file
type recordJSON struct {
	ID        int64             `json:"id"`
	Type      string            `json:"type"`
	Status    string            `json:"status"`
	Title     string            `json:"title"`
	Permalink string            `json:"permalink"`
	Excerpt   string            `json:"excerpt"`
	Body      string            `json:"body"`
	Author    string            `json:"author"`
	Published string            `json:"published"`
	Meta      map[string]string `json:"meta"`
}

// DecodeRecords reads a JSON array of records. Input of a wrong shape, records without
// permalink or with unparseable publication time are reported as *StructuralError.
func DecodeRecords(r io.Reader) ([]domain.Record, error) {
	var raw []recordJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &StructuralError{Index: -1, Reason: err.Error()}
	}
	if raw == nil {
		return nil, &StructuralError{Index: -1, Reason: "records list is missing"}
	}

	res := make([]domain.Record, 0, len(raw))
	for i, rj := range raw {
		published, err := time.Parse(time.RFC3339, rj.Published)
		if err != nil {
			return nil, &StructuralError{Index: i, Reason: fmt.Sprintf("bad published time %q", rj.Published)}
		}
		rec := domain.Record{
			ID:        rj.ID,
			Type:      rj.Type,
			Status:    rj.Status,
			Title:     rj.Title,
			Permalink: rj.Permalink,
			Excerpt:   rj.Excerpt,
			Body:      rj.Body,
			Author:    rj.Author,
			Published: published.UTC(),
			Meta:      rj.Meta,
		}
		if rec.Type == "" {
			rec.Type = domain.DefaultRecordType
		}
		if rec.Status == "" {
			rec.Status = domain.StatusPublish
		}
		if err := checkRecord(rec); err != nil {
			return nil, &StructuralError{Index: i, Reason: err.Error()}
		}
		res = append(res, rec)
	}
	return res, nil
}
