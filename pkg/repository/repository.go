package repository

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// DefaultDSN is the on-disk database used when no DSN is configured
const DefaultDSN = "file:refeed.db?cache=shared&mode=rwc&_txlock=immediate"

//go:embed schema.sql
var schemaSQL string

// connection pragmas, applied in order. busy_timeout lets SQLite wait for locks before
// withRetry kicks in.
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA temp_store = MEMORY",
	"PRAGMA busy_timeout = 5000",
}

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories groups record and settings stores sharing one connection pool
type Repositories struct {
	Record  *RecordRepository
	Setting *SettingRepository
	DB      *sqlx.DB
}

// NewRepositories opens the database, prepares the schema and creates repositories
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Record:  NewRecordRepository(db),
		Setting: NewSettingRepository(db),
		DB:      db,
	}, nil
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// openDB opens sqlite with pool limits from cfg, applies pragmas and schema.
// The connection is closed on any failure.
func openDB(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		cfg.DSN = DefaultDSN
	}
	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	prepare := func() error {
		for _, p := range pragmas {
			if _, err := db.ExecContext(ctx, p); err != nil {
				return fmt.Errorf("execute %s: %w", p, err)
			}
		}
		if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
		return nil
	}
	if err := prepare(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// withRetry runs fn with backoff while it fails on SQLite lock errors
func withRetry(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err // nil or retry
		}
		return &criticalError{err: err}
	}, errCritical)
}
