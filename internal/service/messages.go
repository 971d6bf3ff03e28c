package service

import "github.com/mmynk/tipsplit/internal/models"

// Preset is the wire form of models.Preset.
type Preset struct {
	ID       string  `json:"id,omitempty"`
	Label    string  `json:"label"`
	Percent  float64 `json:"percent"`
	Position int     `json:"position"`
}

type ListPresetsRequest struct{}

type ListPresetsResponse struct {
	Presets []Preset `json:"presets"`
}

// ReplacePresetsRequest lists the new set in display order. Labels may be
// left empty to get the default "15%" form.
type ReplacePresetsRequest struct {
	Presets []Preset `json:"presets"`
}

type ReplacePresetsResponse struct {
	Presets []Preset `json:"presets"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

func toWire(presets []models.Preset) []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = Preset{
			ID:       p.ID,
			Label:    p.Label,
			Percent:  p.Percent,
			Position: p.Position,
		}
	}
	return out
}

func fromWire(presets []Preset) []models.Preset {
	out := make([]models.Preset, len(presets))
	for i, p := range presets {
		label := p.Label
		if label == "" {
			label = models.PercentLabel(p.Percent)
		}
		out[i] = models.Preset{
			ID:       p.ID,
			Label:    label,
			Percent:  p.Percent,
			Position: i,
		}
	}
	return out
}
