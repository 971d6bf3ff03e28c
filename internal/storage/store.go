// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/tipsplit/internal/models"
)

// PresetStore defines the interface for preset storage operations.
// Only deployment configuration goes through it; user input is never stored.
type PresetStore interface {
	// ListPresets returns every preset ordered by position.
	ListPresets(ctx context.Context) ([]models.Preset, error)

	// ReplacePresets swaps the whole preset set in one transaction.
	// IDs, positions and CreatedAt are assigned by the store and written
	// back into the slice.
	ReplacePresets(ctx context.Context, presets []models.Preset) error

	// SeedPresets stores presets only when the store is empty.
	// It reports whether anything was written.
	SeedPresets(ctx context.Context, presets []models.Preset) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
