// Package storage provides SQLite-based persistence for save slots and the
// event journal. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
)

// Store manages the SQLite database connection for save persistence.
type Store struct {
	db *sqlx.DB
}

// SaveInfo summarizes one save slot without decoding its state.
type SaveInfo struct {
	Slot         string `db:"slot"`
	RunID        string `db:"run_id"`
	PlayerLevel  int    `db:"player_level"`
	TotalLevel   int    `db:"total_level"`
	LastActiveAt int64  `db:"last_active_at"`
	UpdatedAt    int64  `db:"updated_at"` // unix ms
}

// Updated returns UpdatedAt as a time.
func (i SaveInfo) Updated() time.Time {
	return time.UnixMilli(i.UpdatedAt)
}

// JournalEntry is one recorded game event.
type JournalEntry struct {
	ID      int64  `db:"id"`
	Slot    string `db:"slot"`
	RunID   string `db:"run_id"`
	At      int64  `db:"at"`
	Type    string `db:"type"`
	Message string `db:"message"`
	Payload string `db:"payload"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SSH sessions share the store.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			state_json TEXT NOT NULL,
			player_level INTEGER NOT NULL,
			total_level INTEGER NOT NULL,
			last_active_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL,
			run_id TEXT NOT NULL,
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			message TEXT NOT NULL,
			payload TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_journal_slot ON journal(slot, id DESC);
		CREATE INDEX IF NOT EXISTS idx_journal_type ON journal(slot, type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveState writes state into slot, replacing what was there.
func (s *Store) SaveState(slot, runID string, state core.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("storage: cannot encode state: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO saves (slot, run_id, state_json, player_level, total_level, last_active_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
			run_id = excluded.run_id,
			state_json = excluded.state_json,
			player_level = excluded.player_level,
			total_level = excluded.total_level,
			last_active_at = excluded.last_active_at,
			updated_at = excluded.updated_at`,
		slot, runID, string(data), state.Player.Level, state.TotalSkillLevel(), state.LastActiveAt, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %q: %w", slot, err)
	}
	return nil
}

// LoadState reads the state in slot. found is false when the slot is empty.
func (s *Store) LoadState(slot string) (state core.GameState, found bool, err error) {
	var data string
	err = s.db.Get(&data, "SELECT state_json FROM saves WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return core.GameState{}, false, nil
	}
	if err != nil {
		return core.GameState{}, false, fmt.Errorf("storage: cannot load slot %q: %w", slot, err)
	}
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return core.GameState{}, false, fmt.Errorf("storage: cannot decode slot %q: %w", slot, err)
	}
	return state, true, nil
}

// ListSaves returns every slot, most recently updated first.
func (s *Store) ListSaves() ([]SaveInfo, error) {
	var saves []SaveInfo
	err := s.db.Select(&saves,
		`SELECT slot, run_id, player_level, total_level, last_active_at, updated_at
		 FROM saves
		 ORDER BY updated_at DESC, slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	return saves, nil
}

// DeleteSave removes a slot and its journal.
func (s *Store) DeleteSave(slot string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete slot %q: %w", slot, err)
	}
	if _, err := tx.Exec("DELETE FROM journal WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot clear journal for %q: %w", slot, err)
	}
	return tx.Commit()
}

// AppendEvents records events in the slot's journal in one transaction.
func (s *Store) AppendEvents(slot, runID string, at int64, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO journal (slot, run_id, at, type, message, payload) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare journal insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("storage: cannot encode %s: %w", ev.Type(), err)
		}
		if _, err := stmt.Exec(slot, runID, at, string(ev.Type()), event.Describe(ev), string(payload)); err != nil {
			return fmt.Errorf("storage: cannot append %s: %w", ev.Type(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit journal: %w", err)
	}
	return nil
}

// RecentEvents returns the newest journal entries for slot, newest first.
func (s *Store) RecentEvents(slot string, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []JournalEntry
	err := s.db.Select(&entries,
		`SELECT id, slot, run_id, at, type, message, payload
		 FROM journal
		 WHERE slot = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		slot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query journal: %w", err)
	}
	return entries, nil
}

// CountEvents returns how many events of type t the slot's journal holds.
func (s *Store) CountEvents(slot string, t event.Type) (int, error) {
	var n int
	if err := s.db.Get(&n, "SELECT COUNT(*) FROM journal WHERE slot = ? AND type = ?", slot, string(t)); err != nil {
		return 0, fmt.Errorf("storage: cannot count events: %w", err)
	}
	return n, nil
}
