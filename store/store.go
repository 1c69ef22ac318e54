// Package store persists backtest run history, strategy profiles, and
// candle history in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/market"
)

// ErrNotFound reports that a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict reports a uniqueness violation, e.g. a duplicate
// profile name.
var ErrConflict = errors.New("already exists")

// Store is everything the API layer needs from persistence.
type Store interface {
	RecordRun(ctx context.Context, runID string, res *backtest.Result) error
	GetRun(ctx context.Context, runID string) (*backtest.Result, error)
	ListRuns(ctx context.Context) ([]RunSummary, error)
	DeleteRun(ctx context.Context, runID string) error

	CreateProfile(ctx context.Context, p *Profile) error
	GetProfile(ctx context.Context, id int64) (*Profile, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) error
	DeleteProfile(ctx context.Context, id int64) error
	ReorderProfiles(ctx context.Context, ids []int64) error

	UpsertCandles(ctx context.Context, symbol, interval string, candles []market.Candle) error
	GetCandles(ctx context.Context, symbol, interval string, start, end market.UnixTime) ([]market.Candle, error)

	Close() error
}

// SQLite implements Store on a single database file.
type SQLite struct {
	db  *sql.DB
	log *slog.Logger
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the database at path and applies
// the schema. A nil logger falls back to slog.Default().
func NewSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection: SQLite serializes writers anyway, and a single
	// handle avoids busy errors between the API and replay sessions.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	logger.Debug("store opened", "path", path)
	return &SQLite{db: db, log: logger}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
