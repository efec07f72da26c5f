// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/liftstats/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for day records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS days (
			date TEXT PRIMARY KEY,
			total_vert INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rides (
			date TEXT NOT NULL,
			seq INTEGER NOT NULL,
			lift TEXT NOT NULL,
			time TEXT NOT NULL,
			vert INTEGER NOT NULL,
			is_snowbird INTEGER NOT NULL,
			PRIMARY KEY (date, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rides_lift ON rides(lift);`,
		`CREATE TABLE IF NOT EXISTS imports (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			imported_at TEXT NOT NULL,
			days INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// UpsertDays stores records, replacing any stored day with the same date.
// Rides keep their order through the seq column.
func (s *Store) UpsertDays(ctx context.Context, records []model.DayRecord) (n int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	rideStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rides (date, seq, lift, time, vert, is_snowbird) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := rideStmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	for _, day := range records {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO days (date, total_vert) VALUES (?, ?)
			 ON CONFLICT(date) DO UPDATE SET total_vert = excluded.total_vert`,
			day.Date, day.TotalVert); err != nil {
			return 0, err
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM rides WHERE date = ?`, day.Date); err != nil {
			return 0, err
		}
		for i, ride := range day.Rides {
			if _, err = rideStmt.ExecContext(ctx, day.Date, i, ride.Lift, ride.Time, ride.Vert, ride.IsSnowBird); err != nil {
				return 0, err
			}
		}
		n++
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// ListDays returns stored days on or after since (all days when empty),
// oldest first.
func (s *Store) ListDays(ctx context.Context, since string) ([]model.DayRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, total_vert FROM days
		 WHERE (? = '' OR date >= ?)
		 ORDER BY date ASC`, since, since)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var days []model.DayRecord
	index := map[string]int{}
	for rows.Next() {
		var day model.DayRecord
		if err := rows.Scan(&day.Date, &day.TotalVert); err != nil {
			return nil, err
		}
		index[day.Date] = len(days)
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return days, nil
	}

	rideRows, err := s.db.QueryContext(ctx,
		`SELECT date, lift, time, vert, is_snowbird FROM rides
		 WHERE (? = '' OR date >= ?)
		 ORDER BY date ASC, seq ASC`, since, since)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rideRows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rideRows.Next() {
		var date string
		var ride model.Ride
		if err := rideRows.Scan(&date, &ride.Lift, &ride.Time, &ride.Vert, &ride.IsSnowBird); err != nil {
			return nil, err
		}
		i, ok := index[date]
		if !ok {
			continue
		}
		days[i].Rides = append(days[i].Rides, ride)
	}
	if err := rideRows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

// RecordImport logs one import of days records from source.
func (s *Store) RecordImport(ctx context.Context, source string, days int, at time.Time) (model.ImportRecord, error) {
	rec := model.ImportRecord{
		ID:         uuid.New().String(),
		Source:     source,
		ImportedAt: at.UTC(),
		Days:       days,
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO imports (id, source, imported_at, days) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.ImportedAt.Format(time.RFC3339Nano), rec.Days); err != nil {
		return model.ImportRecord{}, err
	}
	return rec, nil
}

// ListImports returns the import log, newest first.
func (s *Store) ListImports(ctx context.Context) ([]model.ImportRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, imported_at, days FROM imports ORDER BY imported_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []model.ImportRecord
	for rows.Next() {
		var rec model.ImportRecord
		var at string
		if err := rows.Scan(&rec.ID, &rec.Source, &at, &rec.Days); err != nil {
			return nil, err
		}
		if rec.ImportedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAll removes all stored data, the import log included.
func (s *Store) DeleteAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range []string{`DELETE FROM rides`, `DELETE FROM days`, `DELETE FROM imports`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
			return err
		}
	}
	return tx.Commit()
}
