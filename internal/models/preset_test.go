package models

import (
	"errors"
	"math"
	"testing"
)

func TestNewPresets(t *testing.T) {
	presets := NewPresets([]float64{10, 12.5, 20})

	if len(presets) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(presets))
	}
	wantLabels := []string{"10%", "12.5%", "20%"}
	for i, p := range presets {
		if p.Label != wantLabels[i] {
			t.Errorf("preset %d label = %q, want %q", i, p.Label, wantLabels[i])
		}
		if p.Position != i {
			t.Errorf("preset %d position = %d, want %d", i, p.Position, i)
		}
	}
}

func TestValidatePresets(t *testing.T) {
	tests := []struct {
		name     string
		percents []float64
		wantErr  bool
	}{
		{name: "defaults", percents: DefaultPercents},
		{name: "zero percent allowed", percents: []float64{0, 10}},
		{name: "empty", percents: nil, wantErr: true},
		{name: "negative", percents: []float64{10, -5}, wantErr: true},
		{name: "duplicate", percents: []float64{15, 15}, wantErr: true},
		{name: "nan", percents: []float64{math.NaN()}, wantErr: true},
		{name: "infinite", percents: []float64{math.Inf(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePresets(NewPresets(tt.percents))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePresets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPresets) {
				t.Errorf("error %v does not wrap ErrInvalidPresets", err)
			}
		})
	}
}
