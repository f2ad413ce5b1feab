package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/refeed/pkg/config"
	"github.com/umputun/refeed/pkg/domain"
	"github.com/umputun/refeed/pkg/feed"
	"github.com/umputun/refeed/pkg/repository"
	"github.com/umputun/refeed/pkg/scheduler"
	"github.com/umputun/refeed/pkg/service"
	"github.com/umputun/refeed/pkg/settings"
	"github.com/umputun/refeed/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string   `short:"c" long:"config" env:"CONFIG" description:"path to configuration file"`
	Listen  string   `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DBPath  string   `long:"db" env:"DB" description:"database DSN, overrides config"`
	Import  string   `long:"import" env:"IMPORT" description:"import records from JSON file before start"`
	Sources []string `long:"import-feed" env:"IMPORT_FEED" env-delim:"," description:"remote RSS/Atom feed to import items from, adds to config sources"`
	Dump    string   `long:"dump" description:"write rendered feed to file and exit, - for stdout"`
	Reset   bool     `long:"reset-settings" description:"replace stored feed settings with defaults"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// .env is optional, values from it don't override existing environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "can't load .env: %v\n", err)
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	SetupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting refeed version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] can't close database: %v", err)
		}
	}()

	defaults := cfg.SiteDefaults()
	settingsSvc := service.NewSettingsService(repos.Setting, settings.NewResolver(defaults, cfg.Feed.MaxPosts), defaults)
	if err := settingsSvc.Install(ctx); err != nil {
		return fmt.Errorf("failed to install settings: %w", err)
	}
	if opts.Reset {
		if err := settingsSvc.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}
	}
	defer func() {
		if err := settingsSvc.Teardown(context.Background()); err != nil {
			log.Printf("[WARN] settings teardown: %v", err)
		}
	}()

	if opts.Import != "" {
		n, err := importRecords(ctx, repos.Record, opts.Import)
		if err != nil {
			return fmt.Errorf("failed to import records: %w", err)
		}
		log.Printf("[INFO] imported %d records from %s", n, opts.Import)
	}

	var sch *scheduler.Scheduler
	if len(cfg.Sync.Sources) > 0 {
		sch = scheduler.NewScheduler(scheduler.Params{
			Importer:         feed.NewImporter(cfg.Server.Timeout, "refeed/"+revision, cfg.Sync.PermalinkBase),
			Store:            repos.Record,
			SettingsProvider: settingsSvc,
			Sources:          cfg.Sync.Sources,
			Interval:         cfg.Sync.Interval,
			MaxWorkers:       cfg.Sync.MaxWorkers,
			RetryAttempts:    3,
			RetryDelay:       500 * time.Millisecond,
		})
	}

	generator := feed.NewGenerator(feed.SiteInfo{
		BaseURL:   cfg.Server.BaseURL,
		FeedPath:  cfg.Feed.Path,
		Generator: cfg.Feed.Generator,
	})
	feedSvc := service.NewFeedService(settingsSvc, repos.Record, generator)

	if opts.Dump != "" {
		if sch != nil {
			stats, err := sch.SyncNow(ctx)
			if err != nil {
				return fmt.Errorf("failed to sync feeds: %w", err)
			}
			log.Printf("[INFO] imported %d items from %d sources", stats.Imported, stats.Sources)
		}
		return dumpFeed(ctx, feedSvc, opts.Dump)
	}

	if sch != nil {
		sch.Start(ctx)
		defer sch.Stop()
	}

	srv := server.New(cfg, feedSvc, settingsSvc, repos.Record, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads config file if set, applies CLI overrides
func loadConfig(opts Opts) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.Config != "" {
		cfg, err = config.Load(opts.Config)
	} else {
		cfg, err = config.Parse(nil)
	}
	if err != nil {
		return nil, err
	}

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DBPath != "" {
		cfg.Database.DSN = opts.DBPath
	}
	cfg.Sync.Sources = append(cfg.Sync.Sources, opts.Sources...)
	return cfg, nil
}

// recordCreator stores imported records
type recordCreator interface {
	CreateRecord(ctx context.Context, rec *domain.Record) error
}

// importRecords loads records from JSON file and stores them
func importRecords(ctx context.Context, store recordCreator, path string) (int, error) {
	fh, err := os.Open(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	records, err := feed.DecodeRecords(fh)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := storeRecords(ctx, store, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// storeRecords creates records one by one, stops on the first failure
func storeRecords(ctx context.Context, store recordCreator, records []domain.Record) error {
	for i := range records {
		if err := store.CreateRecord(ctx, &records[i]); err != nil {
			return fmt.Errorf("store record %q: %w", records[i].Permalink, err)
		}
	}
	return nil
}

// dumpFeed renders the feed once and writes it to file or stdout
func dumpFeed(ctx context.Context, renderer server.FeedRenderer, path string) error {
	doc, err := renderer.Render(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to render feed: %w", err)
	}

	var out io.Writer = os.Stdout
	if path != "-" {
		fh, err := os.Create(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer fh.Close()
		out = fh
	}
	if _, err := out.Write(doc.Body); err != nil {
		return fmt.Errorf("write feed: %w", err)
	}
	return nil
}

// SetupLog configures lgr as the standard logger, colorized unless noColor is set
func SetupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
