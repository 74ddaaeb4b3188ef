// Package sqlite provides a SQLite-backed seed ledger.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/encounterseed/internal/encounter/seed"
	"github.com/louisbranch/encounterseed/internal/encounter/storage"
	"github.com/louisbranch/encounterseed/internal/encounter/storage/sqlite/migrations"
	"github.com/louisbranch/encounterseed/internal/platform/storage/sqlitemigrate"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// Store persists issued seeds in SQLite.
//
// Event IDs and seeds are stored as the int64 with the same bits, so ordering
// is only meaningful below 1<<63; snowflakes stay there until 2084.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite seed ledger and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSeed records an issued seed. Recording the same event twice returns
// storage.ErrAlreadyExists.
func (s *Store) PutSeed(ctx context.Context, record storage.SeedRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if !record.Stats.Type.Valid() {
		return fmt.Errorf("stat type %q: %w", record.Stats.Type, seed.ErrUnknownStatType)
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO seeds (
		   event_id,
		   seed,
		   stat_type,
		   min_stat,
		   max_stat,
		   win_percent,
		   created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		int64(record.EventID),
		int64(record.Seed),
		string(record.Stats.Type),
		record.Stats.Min,
		record.Stats.Max,
		record.Stats.WinPercent,
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put seed: %w", err)
	}
	return nil
}

// GetSeed returns the seed issued for an event.
func (s *Store) GetSeed(ctx context.Context, eventID uint64) (storage.SeedRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SeedRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SeedRecord{}, fmt.Errorf("storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(ctx, selectSeeds+` WHERE event_id = ?`, int64(eventID))
	record, err := scanSeed(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SeedRecord{}, storage.ErrNotFound
		}
		return storage.SeedRecord{}, fmt.Errorf("get seed: %w", err)
	}
	return record, nil
}

// FindSeed returns the newest record carrying a packed seed value.
func (s *Store) FindSeed(ctx context.Context, value uint64) (storage.SeedRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SeedRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SeedRecord{}, fmt.Errorf("storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(ctx, selectSeeds+` WHERE seed = ? ORDER BY event_id DESC LIMIT 1`, int64(value))
	record, err := scanSeed(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SeedRecord{}, storage.ErrNotFound
		}
		return storage.SeedRecord{}, fmt.Errorf("find seed: %w", err)
	}
	return record, nil
}

// ListSeeds returns one page of records, newest event first.
func (s *Store) ListSeeds(ctx context.Context, limit int, before uint64) (storage.SeedPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.SeedPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SeedPage{}, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var (
		rows *sql.Rows
		err  error
	)
	// Fetch one extra row to learn whether another page exists.
	if before == 0 {
		rows, err = s.sqlDB.QueryContext(ctx, selectSeeds+` ORDER BY event_id DESC LIMIT ?`, limit+1)
	} else {
		rows, err = s.sqlDB.QueryContext(ctx, selectSeeds+` WHERE event_id < ? ORDER BY event_id DESC LIMIT ?`, int64(before), limit+1)
	}
	if err != nil {
		return storage.SeedPage{}, fmt.Errorf("list seeds: %w", err)
	}
	defer rows.Close()

	page := storage.SeedPage{Records: make([]storage.SeedRecord, 0, limit)}
	for rows.Next() {
		record, err := scanSeed(rows)
		if err != nil {
			return storage.SeedPage{}, fmt.Errorf("scan seed: %w", err)
		}
		page.Records = append(page.Records, record)
	}
	if err := rows.Err(); err != nil {
		return storage.SeedPage{}, fmt.Errorf("iterate seeds: %w", err)
	}
	if len(page.Records) > limit {
		page.Records = page.Records[:limit]
		page.NextBefore = page.Records[limit-1].EventID
	}
	return page, nil
}

const selectSeeds = `SELECT event_id, seed, stat_type, min_stat, max_stat, win_percent, created_at FROM seeds`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeed(row rowScanner) (storage.SeedRecord, error) {
	var (
		eventID   int64
		value     int64
		statType  string
		createdAt int64
		record    storage.SeedRecord
	)
	if err := row.Scan(
		&eventID,
		&value,
		&statType,
		&record.Stats.Min,
		&record.Stats.Max,
		&record.Stats.WinPercent,
		&createdAt,
	); err != nil {
		return storage.SeedRecord{}, err
	}
	record.EventID = uint64(eventID)
	record.Seed = uint64(value)
	record.Stats.Type = seed.StatType(statType)
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.SeedStore = (*Store)(nil)
