package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/refeed/pkg/domain"
	"github.com/umputun/refeed/pkg/settings"
)

//go:generate moq -out mocks/importer.go -pkg mocks -skip-ensure -fmt goimports . Importer
//go:generate moq -out mocks/record_store.go -pkg mocks -skip-ensure -fmt goimports . RecordStore
//go:generate moq -out mocks/settings_provider.go -pkg mocks -skip-ensure -fmt goimports . SettingsProvider

// maxPermalinkSuffix limits attempts to find a free permalink for an imported record
const maxPermalinkSuffix = 100

// Importer converts items of a remote feed to records
type Importer interface {
	Import(ctx context.Context, feedURL string, cfg settings.Settings) ([]domain.Record, error)
}

// RecordStore stores imported records and checks for already imported ones
type RecordStore interface {
	CreateRecord(ctx context.Context, rec *domain.Record) error
	RecordExists(ctx context.Context, permalink string) (bool, error)
	MetaExists(ctx context.Context, key, value string) (bool, error)
}

// SettingsProvider returns effective feed settings
type SettingsProvider interface {
	Current(ctx context.Context) (settings.Settings, error)
}

// Params for scheduler creation
type Params struct {
	Importer         Importer
	Store            RecordStore
	SettingsProvider SettingsProvider

	Sources    []string
	Interval   time.Duration // zero means single sync on start
	MaxWorkers int

	RetryAttempts int
	RetryDelay    time.Duration
}

// Stats summarizes a single sync run
type Stats struct {
	Sources  int
	Imported int
	Skipped  int
	Failed   int
}

// Scheduler periodically imports items of remote feeds into records
type Scheduler struct {
	importer Importer
	store    RecordStore
	settings SettingsProvider

	sources       []string
	interval      time.Duration
	maxWorkers    int
	retryAttempts int
	retryDelay    time.Duration

	storeMu sync.Mutex // serialize existence check and insert
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(p Params) *Scheduler {
	if p.MaxWorkers < 1 {
		p.MaxWorkers = 1
	}
	if p.RetryAttempts < 1 {
		p.RetryAttempts = 1
	}
	if p.RetryDelay <= 0 {
		p.RetryDelay = time.Second
	}
	return &Scheduler{
		importer:      p.Importer,
		store:         p.Store,
		settings:      p.SettingsProvider,
		sources:       p.Sources,
		interval:      p.Interval,
		maxWorkers:    p.MaxWorkers,
		retryAttempts: p.RetryAttempts,
		retryDelay:    p.RetryDelay,
	}
}

// Start runs the first sync right away and repeats it every interval until Stop or ctx cancel
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.syncAndLog(ctx)
		if s.interval <= 0 {
			return
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.syncAndLog(ctx)
			}
		}
	}()

	log.Printf("[INFO] scheduler started for %d sources, interval %v", len(s.sources), s.interval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	log.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) syncAndLog(ctx context.Context) {
	stats, err := s.SyncNow(ctx)
	if err != nil {
		log.Printf("[WARN] sync finished with errors: %v", err)
	}
	log.Printf("[INFO] sync done, sources: %d, imported: %d, skipped: %d, failed: %d",
		stats.Sources, stats.Imported, stats.Skipped, stats.Failed)
}

// SyncNow imports all sources once. Failure of one source doesn't stop others,
// all failures are returned joined.
func (s *Scheduler) SyncNow(ctx context.Context) (Stats, error) {
	stats := Stats{Sources: len(s.sources)}
	if len(s.sources) == 0 {
		return stats, nil
	}

	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return stats, fmt.Errorf("get settings: %w", err)
	}

	var mu sync.Mutex
	var errs []error
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)
	for _, src := range s.sources {
		g.Go(func() error {
			imported, skipped, err := s.syncSource(gctx, src, cfg)
			mu.Lock()
			defer mu.Unlock()
			stats.Imported += imported
			stats.Skipped += skipped
			if err != nil {
				stats.Failed++
				errs = append(errs, fmt.Errorf("source %s: %w", src, err))
			}
			return nil
		})
	}
	_ = g.Wait()
	return stats, errors.Join(errs...)
}

// syncSource fetches a single source with retries and stores records not seen before
func (s *Scheduler) syncSource(ctx context.Context, src string, cfg settings.Settings) (imported, skipped int, err error) {
	var records []domain.Record
	retrier := repeater.NewBackoff(s.retryAttempts, s.retryDelay, repeater.WithMaxDelay(30*time.Second))
	err = retrier.Do(ctx, func() error {
		var importErr error
		records, importErr = s.importer.Import(ctx, src, cfg)
		return importErr
	})
	if err != nil {
		return 0, 0, fmt.Errorf("import: %w", err)
	}

	for i := range records {
		added, err := s.storeNew(ctx, &records[i], cfg.SourceLinkField)
		if err != nil {
			return imported, skipped, err
		}
		if !added {
			skipped++
			continue
		}
		imported++
	}
	log.Printf("[DEBUG] source %s: %d imported, %d skipped", src, imported, skipped)
	return imported, skipped, nil
}

// storeNew creates the record unless it was imported before. Records are matched by
// the source link meta when set, by permalink otherwise.
func (s *Scheduler) storeNew(ctx context.Context, rec *domain.Record, sourceKey string) (bool, error) {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	sourceLink := ""
	if sourceKey != "" {
		sourceLink = rec.Meta[sourceKey]
	}

	if sourceLink != "" {
		exists, err := s.store.MetaExists(ctx, sourceKey, sourceLink)
		if err != nil {
			return false, fmt.Errorf("check %s: %w", sourceLink, err)
		}
		if exists {
			return false, nil
		}
		// different source items may share a title, keep local permalinks distinct
		if rec.Permalink, err = s.freePermalink(ctx, rec.Permalink); err != nil {
			return false, err
		}
	} else {
		exists, err := s.store.RecordExists(ctx, rec.Permalink)
		if err != nil {
			return false, fmt.Errorf("check %s: %w", rec.Permalink, err)
		}
		if exists {
			return false, nil
		}
	}

	if err := s.store.CreateRecord(ctx, rec); err != nil {
		return false, fmt.Errorf("store %s: %w", rec.Permalink, err)
	}
	return true, nil
}

// freePermalink returns permalink, or permalink with numeric suffix up to maxPermalinkSuffix if taken
func (s *Scheduler) freePermalink(ctx context.Context, permalink string) (string, error) {
	for i := 1; i <= maxPermalinkSuffix; i++ {
		candidate := permalink
		if i > 1 {
			candidate = permalink + "-" + strconv.Itoa(i)
		}
		exists, err := s.store.RecordExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free permalink for %s", permalink)
}
