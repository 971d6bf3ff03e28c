// Package sqlite provides a SQLite-backed implementation of the storage.PresetStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.PresetStore
var _ storage.PresetStore = (*SQLiteStore)(nil)

// SQLiteStore implements storage.PresetStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListPresets returns all presets ordered by position.
func (s *SQLiteStore) ListPresets(ctx context.Context) ([]models.Preset, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, label, percent, position, created_at FROM presets ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	var presets []models.Preset
	for rows.Next() {
		var p models.Preset
		if err := rows.Scan(&p.ID, &p.Label, &p.Percent, &p.Position, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate presets: %w", err)
	}

	return presets, nil
}

// ReplacePresets deletes the current set and inserts presets in order.
func (s *SQLiteStore) ReplacePresets(ctx context.Context, presets []models.Preset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM presets"); err != nil {
		return fmt.Errorf("failed to clear presets: %w", err)
	}
	if err := insertPresets(ctx, tx, presets); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SeedPresets inserts presets when the table is empty.
func (s *SQLiteStore) SeedPresets(ctx context.Context, presets []models.Preset) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM presets").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count presets: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if err := insertPresets(ctx, tx, presets); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

func insertPresets(ctx context.Context, tx *sql.Tx, presets []models.Preset) error {
	now := time.Now().Unix()
	for i := range presets {
		p := &presets[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if p.Label == "" {
			p.Label = models.PercentLabel(p.Percent)
		}
		p.Position = i
		p.CreatedAt = now

		_, err := tx.ExecContext(ctx,
			"INSERT INTO presets (id, label, percent, position, created_at) VALUES (?, ?, ?, ?, ?)",
			p.ID, p.Label, p.Percent, p.Position, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert preset: %w", err)
		}
	}
	return nil
}
