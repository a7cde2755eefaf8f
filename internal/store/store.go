// Package store handles SQLite persistence for preferences and scan history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/agroscan/internal/i18n"
	"github.com/verte-zerg/agroscan/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Settings keys. Dark mode follows the original convention: the key holds
// "enabled" when on and is absent otherwise.
const (
	settingLanguage = "language"
	settingDarkMode = "darkMode"

	darkModeEnabled = "enabled"
)

// Store wraps SQLite access for client-local state.
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
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scans (
			id INTEGER PRIMARY KEY,
			path TEXT NOT NULL,
			prediction TEXT NOT NULL,
			confidence REAL NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scans_created_at ON scans(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadPreferences returns the persisted preferences, with defaults for
// anything unset.
func (s *Store) LoadPreferences(ctx context.Context) (model.Preferences, error) {
	prefs := model.Preferences{Language: i18n.DefaultLanguage}
	lang, err := s.getSetting(ctx, settingLanguage)
	if err != nil {
		return model.Preferences{}, err
	}
	if lang != "" {
		prefs.Language = lang
	}
	dark, err := s.getSetting(ctx, settingDarkMode)
	if err != nil {
		return model.Preferences{}, err
	}
	prefs.DarkMode = dark == darkModeEnabled
	return prefs, nil
}

// SetLanguage persists the language choice immediately.
func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	return s.putSetting(ctx, settingLanguage, lang)
}

// SetDarkMode persists the dark-mode flag immediately. Disabling removes the
// key rather than storing a value.
func (s *Store) SetDarkMode(ctx context.Context, dark bool) error {
	if !dark {
		_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, settingDarkMode)
		return err
	}
	return s.putSetting(ctx, settingDarkMode, darkModeEnabled)
}

func (s *Store) getSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) putSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// InsertScan appends one analysis to the local history.
func (s *Store) InsertScan(ctx context.Context, record model.ScanRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scans (path, prediction, confidence, created_at) VALUES (?, ?, ?, ?)`,
		record.Path,
		record.Prediction,
		record.Confidence,
		record.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListScans returns the local history, newest first, capped at limit when
// limit is positive.
func (s *Store) ListScans(ctx context.Context, limit int) ([]model.ScanRecord, error) {
	query := `SELECT id, path, prediction, confidence, created_at FROM scans ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ScanRecord
	for rows.Next() {
		var record model.ScanRecord
		var createdAt string
		if err := rows.Scan(&record.ID, &record.Path, &record.Prediction, &record.Confidence, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		record.CreatedAt = parsed
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
