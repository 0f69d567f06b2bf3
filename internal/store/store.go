// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuikit/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for generated strings and translations.
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
	// Writes arrive from concurrent tea.Cmd goroutines.
	db.SetMaxOpenConns(1)
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
		`CREATE TABLE IF NOT EXISTS generated (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			value TEXT NOT NULL,
			length INTEGER NOT NULL,
			classes TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS translations (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			text TEXT NOT NULL,
			lang TEXT NOT NULL,
			result TEXT NOT NULL,
			error TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_generated_created_at ON generated(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_translations_created_at ON translations(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGenerated stores a generated string.
func (s *Store) InsertGenerated(ctx context.Context, rec model.GeneratedRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO generated (created_at, value, length, classes) VALUES (?, ?, ?, ?)`,
		rec.CreatedAt.Format(time.RFC3339Nano),
		rec.Value,
		rec.Length,
		strings.Join(rec.Classes.Names(), ","),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertTranslation stores a translation attempt.
func (s *Store) InsertTranslation(ctx context.Context, rec model.TranslationRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translations (id, created_at, text, lang, result, error) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CreatedAt.Format(time.RFC3339Nano),
		rec.Text,
		rec.Lang,
		rec.Result,
		rec.Error,
	)
	return err
}

// ListGenerated returns generated strings, newest first. last <= 0 returns all.
func (s *Store) ListGenerated(ctx context.Context, last int) ([]model.GeneratedRecord, error) {
	query := `SELECT id, created_at, value, length, classes FROM generated ORDER BY id DESC`
	args := []any{}
	if last > 0 {
		query += ` LIMIT ?`
		args = append(args, last)
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

	var result []model.GeneratedRecord
	for rows.Next() {
		var rec model.GeneratedRecord
		var createdAt, classes string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Value, &rec.Length, &classes); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		rec.Classes = parseClasses(classes)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListTranslations returns translation attempts, newest first. last <= 0 returns all.
func (s *Store) ListTranslations(ctx context.Context, last int) ([]model.TranslationRecord, error) {
	query := `SELECT id, created_at, text, lang, result, error FROM translations ORDER BY rowid DESC`
	args := []any{}
	if last > 0 {
		query += ` LIMIT ?`
		args = append(args, last)
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

	var result []model.TranslationRecord
	for rows.Next() {
		var rec model.TranslationRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Text, &rec.Lang, &rec.Result, &rec.Error); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func parseClasses(value string) model.Classes {
	var classes model.Classes
	for _, name := range strings.Split(value, ",") {
		switch strings.TrimSpace(name) {
		case "upper":
			classes.Uppercase = true
		case "lower":
			classes.Lowercase = true
		case "numbers":
			classes.Numbers = true
		case "symbols":
			classes.Symbols = true
		}
	}
	return classes
}
