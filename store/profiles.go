package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/backview/market"
)

// Profile is a saved strategy configuration. order_index is the user's
// display ordering; listing always sorts by it.
type Profile struct {
	ID             int64           `json:"id"`
	CreatedAt      market.UnixTime `json:"created_at"`
	Name           string          `json:"name"`
	Symbol         string          `json:"symbol"`
	ShortWindow    int             `json:"short_window"`
	LongWindow     int             `json:"long_window"`
	EMAFast        int             `json:"ema_fast"`
	EMASlow        int             `json:"ema_slow"`
	Period         string          `json:"period"`
	Interval       string          `json:"interval"`
	InitialCapital float64         `json:"initial_capital"`
	FeeRate        float64         `json:"fee_rate"`
	OrderIndex     int             `json:"order_index"`
}

// Validate reports problems that would make the profile unusable.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile: missing name")
	}
	if p.Symbol == "" {
		return fmt.Errorf("profile: missing symbol")
	}
	return nil
}

// CreateProfile inserts the profile at the end of the display order and
// fills in its assigned ID, created time, and order index.
func (s *SQLite) CreateProfile(ctx context.Context, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.CreatedAt = market.UnixTime(time.Now().UTC().Unix())

	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(order_index)+1, 0) FROM strategy_profiles`).Scan(&p.OrderIndex)
	if err != nil {
		return fmt.Errorf("create profile %q: %w", p.Name, err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO strategy_profiles
		(created_at, name, symbol, short_window, long_window, ema_fast, ema_slow,
		 period, interval, initial_capital, fee_rate, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.CreatedAt, p.Name, p.Symbol, p.ShortWindow, p.LongWindow, p.EMAFast, p.EMASlow,
		p.Period, p.Interval, p.InitialCapital, p.FeeRate, p.OrderIndex,
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("profile %q: %w", p.Name, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create profile %q: %w", p.Name, err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create profile %q: %w", p.Name, err)
	}
	s.log.Debug("profile created", "id", p.ID, "name", p.Name)
	return nil
}

const profileColumns = `id, created_at, name, symbol, short_window, long_window,
	ema_fast, ema_slow, period, interval, initial_capital, fee_rate, order_index`

func scanProfile(row interface{ Scan(...any) error }, p *Profile) error {
	return row.Scan(
		&p.ID, &p.CreatedAt, &p.Name, &p.Symbol, &p.ShortWindow, &p.LongWindow,
		&p.EMAFast, &p.EMASlow, &p.Period, &p.Interval,
		&p.InitialCapital, &p.FeeRate, &p.OrderIndex,
	)
}

// GetProfile returns one profile by ID.
func (s *SQLite) GetProfile(ctx context.Context, id int64) (*Profile, error) {
	var p Profile
	err := scanProfile(s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM strategy_profiles WHERE id = ?`, id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %d: %w", id, err)
	}
	return &p, nil
}

// ListProfiles returns all profiles in display order.
func (s *SQLite) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM strategy_profiles
		 ORDER BY order_index, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	out := []Profile{}
	for rows.Next() {
		var p Profile
		if err := scanProfile(rows, &p); err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateProfile rewrites every editable field of the profile by ID.
func (s *SQLite) UpdateProfile(ctx context.Context, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE strategy_profiles
		SET name = ?, symbol = ?, short_window = ?, long_window = ?,
		    ema_fast = ?, ema_slow = ?, period = ?, interval = ?,
		    initial_capital = ?, fee_rate = ?
		WHERE id = ?`,
		p.Name, p.Symbol, p.ShortWindow, p.LongWindow,
		p.EMAFast, p.EMASlow, p.Period, p.Interval,
		p.InitialCapital, p.FeeRate, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile %d: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile %d: %w", p.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("profile %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

// DeleteProfile removes one profile by ID.
func (s *SQLite) DeleteProfile(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM strategy_profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete profile %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("profile %d: %w", id, ErrNotFound)
	}
	return nil
}

// ReorderProfiles rewrites order_index so the given IDs display in the
// given order. Every ID must exist; the whole reorder is one
// transaction, so a bad ID leaves the previous order intact.
func (s *SQLite) ReorderProfiles(ctx context.Context, ids []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reorder profiles: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE strategy_profiles SET order_index = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("reorder profiles: %w", err)
	}
	defer stmt.Close()

	for position, id := range ids {
		res, err := stmt.ExecContext(ctx, position, id)
		if err != nil {
			return fmt.Errorf("reorder profiles: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reorder profiles: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("profile %d: %w", id, ErrNotFound)
		}
	}
	return tx.Commit()
}
