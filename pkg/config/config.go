package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/refeed/pkg/settings"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public site URL used for feed links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:refeed.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Feed FeedConfig `yaml:"feed" json:"feed" jsonschema:"description=Feed endpoint configuration"`

	Site SiteConfig `yaml:"site" json:"site" jsonschema:"description=Site values used for unset feed settings"`

	Sync SyncConfig `yaml:"sync" json:"sync" jsonschema:"description=Remote feeds imported into records"`
}

// FeedConfig holds feed endpoint settings
type FeedConfig struct {
	Path      string `yaml:"path" json:"path" jsonschema:"default=/refeed,description=Path the feed is served on"`
	MaxPosts  int    `yaml:"max_posts" json:"max_posts" jsonschema:"default=100,minimum=1,description=Upper limit for posts per feed"`
	Generator string `yaml:"generator" json:"generator" jsonschema:"default=refeed,description=Feed generator name"`
}

// SiteConfig holds site-level values, feed settings fall back to them
type SiteConfig struct {
	Name        string `yaml:"name" json:"name" jsonschema:"description=Site name; default feed title"`
	Description string `yaml:"description" json:"description" jsonschema:"description=Site tagline; default feed description"`
	Locale      string `yaml:"locale" json:"locale" jsonschema:"default=en_US,description=Site locale; default feed language"`
	AdminEmail  string `yaml:"admin_email" json:"admin_email" jsonschema:"description=Admin email for managing editor and webmaster"`
}

// SyncConfig holds remote feed import settings
type SyncConfig struct {
	Sources    []string      `yaml:"sources" json:"sources" jsonschema:"description=RSS/Atom feed URLs to import items from"`
	Interval   time.Duration `yaml:"interval" json:"interval" jsonschema:"default=30m,description=Interval between imports; 0 imports once on start"`
	MaxWorkers int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=4,minimum=1,description=Sources fetched concurrently"`

	// PermalinkBase is the site URL hosting imported records, the source link is used when empty
	PermalinkBase string `yaml:"permalink_base" json:"permalink_base" jsonschema:"description=URL imported records are published under; empty keeps source links"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration, expands environment variables and applies defaults
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema validation is supplementary, warn only
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		log.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// SetDefaults fills unset values
func (c *Config) SetDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://" + c.Server.Listen
		if strings.HasPrefix(c.Server.Listen, ":") {
			c.Server.BaseURL = "http://localhost" + c.Server.Listen
		}
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:refeed.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// feed
	if c.Feed.Path == "" {
		c.Feed.Path = "/refeed"
	}
	if !strings.HasPrefix(c.Feed.Path, "/") {
		c.Feed.Path = "/" + c.Feed.Path
	}
	if c.Feed.MaxPosts == 0 {
		c.Feed.MaxPosts = settings.DefaultMaxPosts
	}
	if c.Feed.Generator == "" {
		c.Feed.Generator = "refeed"
	}

	// site
	if c.Site.Locale == "" {
		c.Site.Locale = "en_US"
	}

	// sync
	if c.Sync.MaxWorkers == 0 {
		c.Sync.MaxWorkers = 4
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	u, err := url.Parse(cfg.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("server.base_url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url must be http or https, got %q", cfg.Server.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("server.base_url must have a host")
	}

	if cfg.Feed.MaxPosts < 1 {
		return fmt.Errorf("feed.max_posts must be at least 1")
	}
	if strings.ContainsAny(cfg.Feed.Path, "?# ") {
		return fmt.Errorf("feed.path must be a plain path, got %q", cfg.Feed.Path)
	}
	if strings.HasPrefix(cfg.Feed.Path, "/api/") || cfg.Feed.Path == "/ping" {
		return fmt.Errorf("feed.path %q collides with service routes", cfg.Feed.Path)
	}

	if cfg.Database.MaxOpenConns < 0 || cfg.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database connection limits must be non-negative")
	}

	if cfg.Sync.Interval != 0 && cfg.Sync.Interval < time.Minute {
		return fmt.Errorf("sync.interval must be at least 1 minute or 0")
	}
	if cfg.Sync.MaxWorkers < 1 {
		return fmt.Errorf("sync.max_workers must be at least 1")
	}
	if cfg.Sync.PermalinkBase != "" {
		u, err := url.Parse(cfg.Sync.PermalinkBase)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("sync.permalink_base %q is not a valid http(s) URL", cfg.Sync.PermalinkBase)
		}
	}
	for _, src := range cfg.Sync.Sources {
		u, err := url.Parse(src)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("sync source %q is not a valid http(s) URL", src)
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFeedPath returns path the feed is served on
func (c *Config) GetFeedPath() string {
	return c.Feed.Path
}

// SiteDefaults returns site values as settings defaults provider
func (c *Config) SiteDefaults() settings.StaticDefaults {
	return settings.StaticDefaults{
		Name:        c.Site.Name,
		Description: c.Site.Description,
		Lang:        c.Site.Locale,
		Email:       c.Site.AdminEmail,
	}
}
