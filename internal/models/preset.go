package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidPresets is wrapped by every preset validation failure.
var ErrInvalidPresets = errors.New("invalid preset configuration")

// DefaultPercents is the preset set used when nothing else is configured.
var DefaultPercents = []float64{10, 15, 20, 25}

// Preset is a fixed tip percentage the user can pick with one action.
type Preset struct {
	// ID is the unique identifier for the preset (UUID format).
	// Empty for presets that were never stored.
	ID string

	// Label is the button text, e.g. "15%".
	Label string

	// Percent is the tip rate, 15 means 15%.
	Percent float64

	// Position orders presets for display, starting at 0.
	Position int

	// CreatedAt is the Unix timestamp when the preset was stored.
	CreatedAt int64
}

// NewPresets builds an ordered preset list from percents.
func NewPresets(percents []float64) []Preset {
	presets := make([]Preset, len(percents))
	for i, p := range percents {
		presets[i] = Preset{
			Label:    PercentLabel(p),
			Percent:  p,
			Position: i,
		}
	}
	return presets
}

// PercentLabel formats a percent the way preset buttons show it.
func PercentLabel(percent float64) string {
	return strconv.FormatFloat(percent, 'f', -1, 64) + "%"
}

// Percents returns the percent of every preset, in order.
func Percents(presets []Preset) []float64 {
	out := make([]float64, len(presets))
	for i, p := range presets {
		out[i] = p.Percent
	}
	return out
}

// ValidatePresets checks that the set is usable: non-empty, every percent
// finite and non-negative, and no percent listed twice.
func ValidatePresets(presets []Preset) error {
	if len(presets) == 0 {
		return fmt.Errorf("%w: at least one preset is required", ErrInvalidPresets)
	}
	seen := make(map[float64]bool, len(presets))
	for i, p := range presets {
		if math.IsNaN(p.Percent) || math.IsInf(p.Percent, 0) || p.Percent < 0 {
			return fmt.Errorf("%w: preset %d has percent %v", ErrInvalidPresets, i+1, p.Percent)
		}
		if seen[p.Percent] {
			return fmt.Errorf("%w: percent %v listed twice", ErrInvalidPresets, p.Percent)
		}
		seen[p.Percent] = true
	}
	return nil
}
