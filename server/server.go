package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/refeed/pkg/domain"
	"github.com/umputun/refeed/pkg/feed"
	"github.com/umputun/refeed/pkg/settings"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/feed_renderer.go -pkg mocks -skip-ensure -fmt goimports . FeedRenderer
//go:generate moq -out mocks/settings_manager.go -pkg mocks -skip-ensure -fmt goimports . SettingsManager
//go:generate moq -out mocks/record_manager.go -pkg mocks -skip-ensure -fmt goimports . RecordManager

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	feeds    FeedRenderer
	settings SettingsManager
	records  RecordManager
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFeedPath() string
}

// FeedRenderer renders the feed document
type FeedRenderer interface {
	Render(ctx context.Context, now time.Time) (feed.Document, error)
}

// SettingsManager reads and updates feed settings
type SettingsManager interface {
	Current(ctx context.Context) (settings.Settings, error)
	Update(ctx context.Context, raw map[string]any) (settings.Settings, error)
}

// RecordManager moderates stored records, missing records reported with domain.ErrNotFound
type RecordManager interface {
	GetRecord(ctx context.Context, id int64) (*domain.Record, error)
	SetStatus(ctx context.Context, recordID int64, status string) error
	SetMeta(ctx context.Context, recordID int64, key, value string) error
	DeleteRecord(ctx context.Context, id int64) error
}

// New initializes a new server instance
func New(cfg ConfigProvider, feeds FeedRenderer, sm SettingsManager, records RecordManager, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		feeds:    feeds,
		settings: sm,
		records:  records,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s, feed at %s", listen, s.feedPath())

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("refeed", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /settings", s.getSettingsHandler)
		r.HandleFunc("PUT /settings", s.updateSettingsHandler)
		r.HandleFunc("GET /records/{id}", s.getRecordHandler)
		r.HandleFunc("PUT /records/{id}/status", s.setRecordStatusHandler)
		r.HandleFunc("PUT /records/{id}/meta", s.setRecordMetaHandler)
		r.HandleFunc("DELETE /records/{id}", s.deleteRecordHandler)
	})

	// feed is served with and without trailing slash
	path := s.feedPath()
	s.router.HandleFunc("GET "+path, s.feedHandler)
	s.router.HandleFunc("GET "+path+"/{$}", s.feedHandler)
}

func (s *Server) feedPath() string {
	path := strings.TrimRight(s.config.GetFeedPath(), "/")
	if path == "" {
		return feed.DefaultFeedPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
