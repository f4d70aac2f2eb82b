// Package store persists the pull menu order and the refresh history in a
// small SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/atomicstack/pullmenu/internal/logging/events"
)

const (
	appName    = "pullmenu"
	dbFileName = "state.db"
)

// Refresh is one entry of the refresh history. Label is empty for a plain
// refresh.
type Refresh struct {
	Label string
	At    time.Time
}

// Store wraps the state database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns the XDG data location of the state database.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens (creating when needed) the database at path. An empty path uses
// DefaultPath; ":memory:" opens a throwaway database.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve state path: %w", err)
		}
		path = p
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own database
		db.SetMaxOpenConns(1)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	events.Store.Open(path)
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// LoadOrder returns the saved label order, or nil when none was saved.
func (s *Store) LoadOrder() ([]string, error) {
	rows, err := s.db.Query(`SELECT label FROM menu_order ORDER BY position`)
	if err != nil {
		events.Store.Error("load-order", err)
		return nil, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// SaveOrder replaces the saved label order.
func (s *Store) SaveOrder(labels []string) error {
	err := WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM menu_order`); err != nil {
			return err
		}
		stmt, err := tx.Prepare(`INSERT INTO menu_order (position, label) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, label := range labels {
			if _, err := stmt.Exec(i, label); err != nil {
				return fmt.Errorf("save label %q: %w", label, err)
			}
		}
		return nil
	})
	if err != nil {
		events.Store.Error("save-order", err)
		return err
	}
	events.Store.SaveOrder(labels)
	return nil
}

// RecordRefresh appends a refresh to the history.
func (s *Store) RecordRefresh(label string) error {
	_, err := s.db.Exec(
		`INSERT INTO refresh_log (label, refreshed_at) VALUES (?, ?)`,
		label, s.now().UnixMilli(),
	)
	if err != nil {
		events.Store.Error("record-refresh", err)
	}
	return err
}

// LastRefresh returns the most recent refresh. ok is false when the history
// is empty.
func (s *Store) LastRefresh() (Refresh, bool, error) {
	var r Refresh
	var at int64
	row := s.db.QueryRow(`SELECT label, refreshed_at FROM refresh_log ORDER BY refreshed_at DESC, id DESC LIMIT 1`)
	err := row.Scan(&r.Label, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return Refresh{}, false, nil
	}
	if err != nil {
		events.Store.Error("last-refresh", err)
		return Refresh{}, false, err
	}
	r.At = time.UnixMilli(at)
	return r, true, nil
}

// RefreshCount returns how many refreshes were recorded for label.
func (s *Store) RefreshCount(label string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM refresh_log WHERE label = ?`, label).Scan(&n)
	return n, err
}
