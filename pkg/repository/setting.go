package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SettingRepository handles setting-related database operations
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value, empty if not set
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, key, value)
		return err
	})
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// SetSettingIfMissing stores a setting value only if the key is not set yet.
// Returns true if the value was stored.
func (r *SettingRepository) SetSettingIfMissing(ctx context.Context, key, value string) (bool, error) {
	var affected int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)", key, value)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("set setting if missing: %w", err)
	}
	return affected > 0, nil
}

// DeleteSetting removes a setting
func (r *SettingRepository) DeleteSetting(ctx context.Context, key string) error {
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	return nil
}
