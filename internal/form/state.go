package form

import "github.com/mmynk/tipsplit/internal/models"

// FieldState is the visible state of one text field.
type FieldState struct {
	Value   string
	Invalid bool
}

// State is everything the form currently shows.
type State struct {
	Bill      FieldState
	CustomTip FieldState
	People    FieldState

	Presets      []models.Preset
	ActivePreset int // -1 when none

	TipPerPerson   string
	TotalPerPerson string
}

// Snapshot captures the visible state of the form.
func (f *Form) Snapshot() State {
	return State{
		Bill:           fieldState(f.Bill),
		CustomTip:      fieldState(f.CustomTip),
		People:         fieldState(f.People),
		Presets:        f.Presets.Presets(),
		ActivePreset:   f.Presets.ActiveIndex(),
		TipPerPerson:   f.TipDisplay.Text(),
		TotalPerPerson: f.TotalDisplay.Text(),
	}
}

func fieldState(f *Field) FieldState {
	return FieldState{Value: f.Value(), Invalid: f.Invalid()}
}
