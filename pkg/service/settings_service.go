// Package service glues storage with the settings resolver and the feed generator.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/umputun/refeed/pkg/domain"
	"github.com/umputun/refeed/pkg/settings"
)

//go:generate moq -out mocks/setting_store.go -pkg mocks -skip-ensure -fmt goimports . SettingStore

// SettingStore persists raw settings as a string value per key
type SettingStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	SetSettingIfMissing(ctx context.Context, key, value string) (bool, error)
	DeleteSetting(ctx context.Context, key string) error
}

// SettingsService loads, validates and caches feed settings
type SettingsService struct {
	store    SettingStore
	resolver *settings.Resolver
	defaults settings.DefaultsProvider

	mu     sync.RWMutex
	cached *settings.Settings
}

// NewSettingsService creates a settings service
func NewSettingsService(store SettingStore, resolver *settings.Resolver, defaults settings.DefaultsProvider) *SettingsService {
	return &SettingsService{store: store, resolver: resolver, defaults: defaults}
}

// Install stores default settings unless some are stored already
func (s *SettingsService) Install(ctx context.Context) error {
	data, err := json.Marshal(settings.InstallDefaults(s.defaults))
	if err != nil {
		return fmt.Errorf("marshal default settings: %w", err)
	}
	stored, err := s.store.SetSettingIfMissing(ctx, domain.SettingsKey, string(data))
	if err != nil {
		return fmt.Errorf("install settings: %w", err)
	}
	if stored {
		log.Printf("[INFO] default feed settings installed")
	}
	s.invalidate()
	return nil
}

// Reset drops stored settings and installs defaults again
func (s *SettingsService) Reset(ctx context.Context) error {
	if err := s.store.DeleteSetting(ctx, domain.SettingsKey); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	s.invalidate()
	log.Printf("[INFO] feed settings reset")
	return s.Install(ctx)
}

// Teardown drops cached settings, stored settings are kept
func (s *SettingsService) Teardown(context.Context) error {
	s.invalidate()
	log.Printf("[DEBUG] feed settings cache dropped")
	return nil
}

// Current returns canonical settings, loading them from the store on cache miss.
// Stored settings failing validation are replaced by defaults with a warning.
func (s *SettingsService) Current(ctx context.Context) (settings.Settings, error) {
	s.mu.RLock()
	if s.cached != nil {
		res := *s.cached
		s.mu.RUnlock()
		return res, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return *s.cached, nil
	}

	raw, err := s.load(ctx)
	if err != nil {
		return settings.Settings{}, err
	}
	res, err := s.resolver.Resolve(raw)
	if err != nil {
		log.Printf("[WARN] stored feed settings rejected, using defaults: %v", err)
		if res, err = s.resolver.Resolve(nil); err != nil {
			return settings.Settings{}, fmt.Errorf("resolve default settings: %w", err)
		}
	}
	s.cached = &res
	return res, nil
}

// Update resolves raw settings and stores them. On *settings.ValidationError nothing is
// stored and current settings stay as they were.
func (s *SettingsService) Update(ctx context.Context, raw map[string]any) (settings.Settings, error) {
	res, err := s.resolver.Resolve(raw)
	if err != nil {
		var verr *settings.ValidationError
		if errors.As(err, &verr) {
			log.Printf("[DEBUG] feed settings update rejected: %v", verr)
		}
		return settings.Settings{}, err
	}

	data, err := json.Marshal(res.Raw())
	if err != nil {
		return settings.Settings{}, fmt.Errorf("marshal settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SetSetting(ctx, domain.SettingsKey, string(data)); err != nil {
		return settings.Settings{}, fmt.Errorf("store settings: %w", err)
	}
	s.cached = &res
	log.Printf("[INFO] feed settings updated, %d posts of %v", res.PostsPerFeed, res.RecordTypes)
	return res, nil
}

// load reads stored raw settings, nil if nothing stored
func (s *SettingsService) load(ctx context.Context) (map[string]any, error) {
	value, err := s.store.GetSetting(ctx, domain.SettingsKey)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if value == "" {
		return nil, nil
	}
	var raw map[string]any
	dec := json.NewDecoder(strings.NewReader(value))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode stored settings: %w", err)
	}
	return raw, nil
}

func (s *SettingsService) invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
