package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/refeed/pkg/domain"
	"github.com/umputun/refeed/pkg/repository"
	"github.com/umputun/refeed/pkg/service/mocks"
	"github.com/umputun/refeed/pkg/settings"
)

var testDefaults = settings.StaticDefaults{
	Name:        "My Blog",
	Description: "Just another blog",
	Lang:        "en_US",
	Email:       "admin@example.com",
	Clock:       func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
}

// memStore returns a SettingStoreMock backed by a map
func memStore() *mocks.SettingStoreMock {
	var mu sync.Mutex
	data := map[string]string{}
	return &mocks.SettingStoreMock{
		GetSettingFunc: func(_ context.Context, key string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			return data[key], nil
		},
		SetSettingFunc: func(_ context.Context, key, value string) error {
			mu.Lock()
			defer mu.Unlock()
			data[key] = value
			return nil
		},
		SetSettingIfMissingFunc: func(_ context.Context, key, value string) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := data[key]; ok {
				return false, nil
			}
			data[key] = value
			return true, nil
		},
		DeleteSettingFunc: func(_ context.Context, key string) error {
			mu.Lock()
			defer mu.Unlock()
			delete(data, key)
			return nil
		},
	}
}

func TestSettingsService_InstallAndCurrent(t *testing.T) {
	store := memStore()
	svc := NewSettingsService(store, settings.NewResolver(testDefaults, 100), testDefaults)

	require.NoError(t, svc.Install(context.Background()))
	require.Len(t, store.SetSettingIfMissingCalls(), 1)
	assert.Equal(t, domain.SettingsKey, store.SetSettingIfMissingCalls()[0].Key)

	cfg, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.Settings{
		Title:           "My Blog",
		Description:     "Just another blog",
		Language:        "en-US",
		Copyright:       "Copyright 2024 My Blog",
		ManagingEditor:  "admin@example.com (My Blog)",
		Webmaster:       "admin@example.com (Webmaster)",
		PostsPerFeed:    10,
		RecordTypes:     []string{"post"},
		SourceLinkField: "original_source_link",
	}, cfg)

	// second call served from cache
	_, err = svc.Current(context.Background())
	require.NoError(t, err)
	assert.Len(t, store.GetSettingCalls(), 1)
}

func TestSettingsService_InstallKeepsExisting(t *testing.T) {
	store := memStore()
	require.NoError(t, store.SetSetting(context.Background(), domain.SettingsKey, `{"feed_title":"Custom","posts_per_feed":5}`))
	svc := NewSettingsService(store, settings.NewResolver(testDefaults, 100), testDefaults)

	require.NoError(t, svc.Install(context.Background()))
	cfg, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Custom", cfg.Title)
	assert.Equal(t, 5, cfg.PostsPerFeed)
	assert.Empty(t, cfg.SourceLinkField)
}

func TestSettingsService_CurrentWithoutStored(t *testing.T) {
	svc := NewSettingsService(memStore(), settings.NewResolver(testDefaults, 100), testDefaults)
	cfg, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "My Blog", cfg.Title)
	assert.Equal(t, 10, cfg.PostsPerFeed)
	assert.Equal(t, []string{"post"}, cfg.RecordTypes)
}

func TestSettingsService_Update(t *testing.T) {
	store := memStore()
	svc := NewSettingsService(store, settings.NewResolver(testDefaults, 100), testDefaults)
	require.NoError(t, svc.Install(context.Background()))

	cfg, err := svc.Update(context.Background(), map[string]any{
		"feed_title":      "<b>Fresh</b> Title",
		"posts_per_feed":  "500",
		"post_types":      []any{"post", "Podcast"},
		"author_meta_key": "Guest Author",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fresh Title", cfg.Title)
	assert.Equal(t, 100, cfg.PostsPerFeed)
	assert.Equal(t, []string{"post", "podcast"}, cfg.RecordTypes)
	assert.Equal(t, "guestauthor", cfg.AuthorField)

	// stored value is the canonical raw shape
	require.Len(t, store.SetSettingCalls(), 1)
	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(store.SetSettingCalls()[0].Value), &stored))
	assert.Equal(t, "Fresh Title", stored[settings.KeyTitle])
	assert.InDelta(t, 100, stored[settings.KeyPostsPerFeed], 0.001)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg, current)

	// reload from store resolves to the same settings
	svc2 := NewSettingsService(store, settings.NewResolver(testDefaults, 100), testDefaults)
	reloaded, err := svc2.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestSettingsService_UpdateRejected(t *testing.T) {
	store := memStore()
	svc := NewSettingsService(store, settings.NewResolver(testDefaults, 100), testDefaults)
	require.NoError(t, svc.Install(context.Background()))
	before, err := svc.Current(context.Background())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), map[string]any{
		"feed_title":     "Should not stick",
		"posts_per_feed": "lots",
	})
	require.Error(t, err)
	var verr *settings.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, settings.KeyPostsPerFeed)

	assert.Empty(t, store.SetSettingCalls())
	after, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSettingsService_StoreErrors(t *testing.T) {
	resolver := settings.NewResolver(testDefaults, 100)

	t.Run("install", func(t *testing.T) {
		store := &mocks.SettingStoreMock{
			SetSettingIfMissingFunc: func(context.Context, string, string) (bool, error) {
				return false, errors.New("disk full")
			},
		}
		err := NewSettingsService(store, resolver, testDefaults).Install(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("current", func(t *testing.T) {
		store := &mocks.SettingStoreMock{
			GetSettingFunc: func(context.Context, string) (string, error) { return "", errors.New("db closed") },
		}
		_, err := NewSettingsService(store, resolver, testDefaults).Current(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load settings")
	})

	t.Run("corrupted stored json", func(t *testing.T) {
		store := &mocks.SettingStoreMock{
			GetSettingFunc: func(context.Context, string) (string, error) { return "{not json", nil },
		}
		_, err := NewSettingsService(store, resolver, testDefaults).Current(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode stored settings")
	})

	t.Run("invalid stored settings fall back to defaults", func(t *testing.T) {
		store := &mocks.SettingStoreMock{
			GetSettingFunc: func(context.Context, string) (string, error) { return `{"posts_per_feed":"many"}`, nil },
		}
		cfg, err := NewSettingsService(store, resolver, testDefaults).Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.PostsPerFeed)
	})

	t.Run("update", func(t *testing.T) {
		store := &mocks.SettingStoreMock{
			SetSettingFunc: func(context.Context, string, string) error { return errors.New("read only") },
		}
		_, err := NewSettingsService(store, resolver, testDefaults).Update(context.Background(), map[string]any{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store settings")
	})
}

func TestSettingsService_Teardown(t *testing.T) {
	store := memStore()
	svc := NewSettingsService(store, settings.NewResolver(testDefaults, 100), testDefaults)
	require.NoError(t, svc.Install(context.Background()))
	_, err := svc.Current(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Teardown(context.Background()))

	// stored settings survive, cache reloaded
	require.NoError(t, store.SetSetting(context.Background(), domain.SettingsKey, `{"feed_title":"Changed"}`))
	cfg, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Changed", cfg.Title)
	assert.Len(t, store.GetSettingCalls(), 2)
}

func TestSettingsService_Reset(t *testing.T) {
	store := memStore()
	svc := NewSettingsService(store, settings.NewResolver(testDefaults, 100), testDefaults)
	require.NoError(t, svc.Install(context.Background()))
	_, err := svc.Update(context.Background(), map[string]any{"feed_title": "Custom", "posts_per_feed": 3})
	require.NoError(t, err)

	require.NoError(t, svc.Reset(context.Background()))
	require.Len(t, store.DeleteSettingCalls(), 1)
	assert.Equal(t, domain.SettingsKey, store.DeleteSettingCalls()[0].Key)
	assert.Len(t, store.SetSettingIfMissingCalls(), 2, "defaults installed again")

	cfg, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "My Blog", cfg.Title)
	assert.Equal(t, 10, cfg.PostsPerFeed)

	t.Run("delete error", func(t *testing.T) {
		store := &mocks.SettingStoreMock{
			DeleteSettingFunc: func(context.Context, string) error { return errors.New("locked") },
		}
		err := NewSettingsService(store, settings.NewResolver(testDefaults, 100), testDefaults).Reset(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reset settings")
		assert.Empty(t, store.SetSettingIfMissingCalls())
	})
}

func TestSettingsService_WithRepository(t *testing.T) {
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	svc := NewSettingsService(repos.Setting, settings.NewResolver(testDefaults, 50), testDefaults)
	require.NoError(t, svc.Install(context.Background()))

	updated, err := svc.Update(context.Background(), map[string]any{"posts_per_feed": 75, "post_types": "post, page"})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.PostsPerFeed)
	assert.Equal(t, []string{"post", "page"}, updated.RecordTypes)

	// install after update keeps updated settings
	require.NoError(t, svc.Install(context.Background()))
	cfg, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, updated, cfg)
}

func TestSettingsService_Concurrent(t *testing.T) {
	svc := NewSettingsService(memStore(), settings.NewResolver(testDefaults, 100), testDefaults)
	require.NoError(t, svc.Install(context.Background()))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				_, err := svc.Update(context.Background(), map[string]any{"posts_per_feed": i + 1})
				assert.NoError(t, err)
				return
			}
			cfg, err := svc.Current(context.Background())
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, cfg.PostsPerFeed, 1)
		}(i)
	}
	wg.Wait()
}
