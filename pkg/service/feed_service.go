package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/umputun/refeed/pkg/domain"
	"github.com/umputun/refeed/pkg/feed"
	"github.com/umputun/refeed/pkg/settings"
)

//go:generate moq -out mocks/record_source.go -pkg mocks -skip-ensure -fmt goimports . RecordSource
//go:generate moq -out mocks/settings_provider.go -pkg mocks -skip-ensure -fmt goimports . SettingsProvider

// RecordSource provides published records of given types, newest first
type RecordSource interface {
	GetPublished(ctx context.Context, types []string, limit int) ([]domain.Record, error)
}

// SettingsProvider provides current canonical settings
type SettingsProvider interface {
	Current(ctx context.Context) (settings.Settings, error)
}

// FeedService renders the feed from current settings and stored records
type FeedService struct {
	settings  SettingsProvider
	records   RecordSource
	generator *feed.Generator
}

// NewFeedService creates a feed service
func NewFeedService(sp SettingsProvider, records RecordSource, generator *feed.Generator) *FeedService {
	return &FeedService{settings: sp, records: records, generator: generator}
}

// Render builds the feed document as of now
func (s *FeedService) Render(ctx context.Context, now time.Time) (feed.Document, error) {
	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return feed.Document{}, fmt.Errorf("get settings: %w", err)
	}

	records, err := s.records.GetPublished(ctx, cfg.RecordTypes, cfg.PostsPerFeed)
	if err != nil {
		return feed.Document{}, fmt.Errorf("get records: %w", err)
	}

	doc, err := s.generator.Synthesize(cfg, records, now)
	if err != nil {
		return feed.Document{}, fmt.Errorf("synthesize feed: %w", err)
	}
	log.Printf("[DEBUG] feed rendered, %d records, %d bytes", len(records), len(doc.Body))
	return doc, nil
}
