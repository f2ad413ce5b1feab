package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when requested record does not exist
var ErrNotFound = errors.New("not found")

// record statuses, only published records are syndicated
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
)

// DefaultRecordType is the built-in record type used when nothing else is configured
const DefaultRecordType = "post"

// Record represents a content record the feed is built from
type Record struct {
	ID        int64
	Type      string
	Status    string
	Title     string
	Permalink string
	Excerpt   string
	Body      string
	Author    string    // display name of the record author
	Published time.Time // canonical publication time, UTC
	Meta      map[string]string
}

// MetaValue returns metadata value for the key, empty if key is empty or missing
func (r Record) MetaValue(key string) string {
	if key == "" || r.Meta == nil {
		return ""
	}
	return r.Meta[key]
}
