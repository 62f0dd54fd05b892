// Package cache keeps the last fetched copy of each month in a local
// SQLite database so the ledger can still render when the endpoint is
// unreachable. The backend stays authoritative; this is display-only
// state.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"aperture/internal/core"
	"aperture/internal/log"
)

type Store struct {
	db     *sql.DB
	logger *log.Logger
}

func New(dbPath string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping cache database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}

	return &Store{db: db, logger: logger.WithComponent(log.ComponentCache)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put stores or replaces the cached copy of one month/user pair.
func (s *Store) Put(ctx context.Context, month, user string, data core.MonthData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode month payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO month_cache (month, username, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (month, username) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at`,
		month, user, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store month cache: %w", err)
	}

	s.logger.Debug("Month cached",
		log.FieldMonth, month, log.FieldUser, user, "transactions", len(data.Transactions))
	return nil
}

// Get returns the cached copy and its fetch time, with ok=false on a miss.
func (s *Store) Get(ctx context.Context, month, user string) (core.MonthData, time.Time, bool, error) {
	var (
		payload   string
		fetchedAt time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT payload, fetched_at FROM month_cache
		WHERE month = ? AND username = ?`, month, user).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.EmptyMonth(), time.Time{}, false, nil
	}
	if err != nil {
		return core.EmptyMonth(), time.Time{}, false, fmt.Errorf("read month cache: %w", err)
	}

	var data core.MonthData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		// A corrupt row is a miss, not a failure.
		s.logger.Warn("Cached month payload corrupt, ignoring",
			log.FieldMonth, month, log.FieldUser, user, log.FieldError, err)
		return core.EmptyMonth(), time.Time{}, false, nil
	}
	return data, fetchedAt, true, nil
}
