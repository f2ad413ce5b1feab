package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/refeed/pkg/domain"
)

// RecordRepository handles content records and their metadata
type RecordRepository struct {
	db *sqlx.DB
}

// recordSQL represents a record for SQL operations
type recordSQL struct {
	ID        int64     `db:"id"`
	Type      string    `db:"type"`
	Status    string    `db:"status"`
	Title     string    `db:"title"`
	Permalink string    `db:"permalink"`
	Excerpt   string    `db:"excerpt"`
	Body      string    `db:"body"`
	Author    string    `db:"author"`
	Published time.Time `db:"published"`
	CreatedAt time.Time `db:"created_at"`
}

// metaSQL is a single record metadata entry
type metaSQL struct {
	RecordID int64  `db:"record_id"`
	Key      string `db:"key"`
	Value    string `db:"value"`
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// CreateRecord inserts a record with its metadata, sets record ID
func (r *RecordRepository) CreateRecord(ctx context.Context, rec *domain.Record) error {
	row := &recordSQL{
		Type:      rec.Type,
		Status:    rec.Status,
		Title:     rec.Title,
		Permalink: rec.Permalink,
		Excerpt:   rec.Excerpt,
		Body:      rec.Body,
		Author:    rec.Author,
		Published: rec.Published.UTC(),
	}
	if row.Type == "" {
		row.Type = domain.DefaultRecordType
	}
	if row.Status == "" {
		row.Status = domain.StatusPublish
	}

	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		query := `
			INSERT INTO records (type, status, title, permalink, excerpt, body, author, published)
			VALUES (:type, :status, :title, :permalink, :excerpt, :body, :author, :published)
		`
		res, err := tx.NamedExecContext(ctx, query, row)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}

		for k, v := range rec.Meta {
			if _, err := tx.ExecContext(ctx, "INSERT INTO record_meta (record_id, key, value) VALUES (?, ?, ?)", id, k, v); err != nil {
				return fmt.Errorf("insert meta %q: %w", k, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		row.ID = id
		return nil
	})
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}

	rec.ID = row.ID
	rec.Type, rec.Status = row.Type, row.Status
	return nil
}

// SetMeta sets a metadata value on the record, replacing existing one.
// An empty value removes the key. Returns domain.ErrNotFound for unknown record.
func (r *RecordRepository) SetMeta(ctx context.Context, recordID int64, key, value string) error {
	query := `
		INSERT INTO record_meta (record_id, key, value)
		SELECT id, ?, ? FROM records WHERE id = ?
		ON CONFLICT(record_id, key) DO UPDATE SET value = excluded.value
	`
	if value == "" {
		err := withRetry(ctx, func() error {
			_, err := r.db.ExecContext(ctx, "DELETE FROM record_meta WHERE record_id = ? AND key = ?", recordID, key)
			return err
		})
		if err != nil {
			return fmt.Errorf("delete meta %d: %w", recordID, err)
		}
		return nil
	}
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, key, value, recordID)
		if err != nil {
			return err
		}
		return checkAffected(res) // nothing inserted means no such record
	})
	if err != nil {
		return fmt.Errorf("set meta %d: %w", recordID, err)
	}
	return nil
}

// SetStatus changes record status, e.g. publish or draft
func (r *RecordRepository) SetStatus(ctx context.Context, recordID int64, status string) error {
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE records SET status = ? WHERE id = ?", status, recordID)
		if err != nil {
			return err
		}
		return checkAffected(res)
	})
	if err != nil {
		return fmt.Errorf("set status %d: %w", recordID, err)
	}
	return nil
}

// GetRecord retrieves a record with metadata by ID, domain.ErrNotFound if missing
func (r *RecordRepository) GetRecord(ctx context.Context, id int64) (*domain.Record, error) {
	var row recordSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM records WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get record %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get record %d: %w", id, err)
	}
	meta, err := r.loadMeta(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	rec := r.toDomainRecord(&row, meta[id])
	return &rec, nil
}

// RecordExists checks if any record, regardless of status, has given permalink
func (r *RecordRepository) RecordExists(ctx context.Context, permalink string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM records WHERE permalink = ?)", permalink)
	if err != nil {
		return false, fmt.Errorf("check record exists: %w", err)
	}
	return exists, nil
}

// MetaExists checks if any record has metadata key set to value
func (r *RecordRepository) MetaExists(ctx context.Context, key, value string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM record_meta WHERE key = ? AND value = ?)", key, value)
	if err != nil {
		return false, fmt.Errorf("check meta exists: %w", err)
	}
	return exists, nil
}

// GetPublished retrieves published records of given types, newest first, up to limit
func (r *RecordRepository) GetPublished(ctx context.Context, types []string, limit int) ([]domain.Record, error) {
	if len(types) == 0 || limit <= 0 {
		return []domain.Record{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT * FROM records
		WHERE status = ? AND type IN (?)
		ORDER BY published DESC, id DESC
		LIMIT ?`, domain.StatusPublish, types, limit)
	if err != nil {
		return nil, fmt.Errorf("build published query: %w", err)
	}

	var rows []recordSQL
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get published records: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Record{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	meta, err := r.loadMeta(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Record, len(rows))
	for i := range rows {
		res[i] = r.toDomainRecord(&rows[i], meta[rows[i].ID])
	}
	return res, nil
}

// DeleteRecord removes record and its metadata
func (r *RecordRepository) DeleteRecord(ctx context.Context, id int64) error {
	// foreign_keys pragma is per connection, meta is removed explicitly
	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit
		if _, err := tx.ExecContext(ctx, "DELETE FROM record_meta WHERE record_id = ?", id); err != nil {
			return fmt.Errorf("delete meta: %w", err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete row: %w", err)
		}
		if err := checkAffected(res); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	return nil
}

// checkAffected returns domain.ErrNotFound if statement touched no rows
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// loadMeta returns metadata grouped by record ID
func (r *RecordRepository) loadMeta(ctx context.Context, ids []int64) (map[int64]map[string]string, error) {
	query, args, err := sqlx.In("SELECT record_id, key, value FROM record_meta WHERE record_id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("build meta query: %w", err)
	}

	var rows []metaSQL
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get record meta: %w", err)
	}

	res := make(map[int64]map[string]string, len(ids))
	for _, m := range rows {
		if res[m.RecordID] == nil {
			res[m.RecordID] = map[string]string{}
		}
		res[m.RecordID][m.Key] = m.Value
	}
	return res, nil
}

func (r *RecordRepository) toDomainRecord(row *recordSQL, meta map[string]string) domain.Record {
	return domain.Record{
		ID:        row.ID,
		Type:      row.Type,
		Status:    row.Status,
		Title:     row.Title,
		Permalink: row.Permalink,
		Excerpt:   row.Excerpt,
		Body:      row.Body,
		Author:    row.Author,
		Published: row.Published.UTC(),
		Meta:      meta,
	}
}
