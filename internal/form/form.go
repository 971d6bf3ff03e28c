// Package form provides an in-memory input surface for the tip calculator:
// three text fields, a preset group and two displays, plus the user
// interactions that edit them and trigger a recompute.
package form

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/tipsplit/internal/calculator"
	"github.com/mmynk/tipsplit/internal/models"
)

// ErrUnknownPreset is returned when selecting a preset that does not exist.
var ErrUnknownPreset = errors.New("unknown preset")

// Field is a text input with an error indicator.
type Field struct {
	value   string
	invalid bool
}

func (f *Field) Value() string         { return f.value }
func (f *Field) SetValue(text string)  { f.value = text }
func (f *Field) SetError(invalid bool) { f.invalid = invalid }

// Invalid reports whether the error indicator is on.
func (f *Field) Invalid() bool { return f.invalid }

// Display is a text output.
type Display struct {
	text string
}

func (d *Display) SetText(text string) { d.text = text }
func (d *Display) Text() string        { return d.text }

// PresetGroup is an ordered set of presets with at most one active.
type PresetGroup struct {
	presets []models.Preset
	active  int // -1 when none
}

// NewPresetGroup creates a group with no active preset.
func NewPresetGroup(presets []models.Preset) *PresetGroup {
	return &PresetGroup{presets: presets, active: -1}
}

// Active returns the percent of the active preset.
func (g *PresetGroup) Active() (float64, bool) {
	if g.active < 0 {
		return 0, false
	}
	return g.presets[g.active].Percent, true
}

// ActiveIndex returns the index of the active preset, or -1.
func (g *PresetGroup) ActiveIndex() int { return g.active }

// ClearActive deselects every preset.
func (g *PresetGroup) ClearActive() { g.active = -1 }

// Select marks exactly the preset at index as active.
func (g *PresetGroup) Select(index int) error {
	if index < 0 || index >= len(g.presets) {
		return fmt.Errorf("%w: index %d", ErrUnknownPreset, index)
	}
	g.active = index
	return nil
}

// IndexOf returns the index of the preset with the given percent.
func (g *PresetGroup) IndexOf(percent float64) (int, bool) {
	for i, p := range g.presets {
		if p.Percent == percent {
			return i, true
		}
	}
	return -1, false
}

// Presets returns the presets in display order.
func (g *PresetGroup) Presets() []models.Preset { return g.presets }

// Form is a complete input surface wired to a calculator.
// It is not safe for concurrent use; events must be handled one at a time.
type Form struct {
	Bill      *Field
	CustomTip *Field
	People    *Field

	Presets *PresetGroup

	TipDisplay   *Display
	TotalDisplay *Display

	calc *calculator.Calculator
	last calculator.Calculation
}

// New creates a form offering the given presets. Both displays start at $0.00.
func New(presets []models.Preset) *Form {
	f := &Form{
		Bill:         &Field{},
		CustomTip:    &Field{},
		People:       &Field{},
		Presets:      NewPresetGroup(presets),
		TipDisplay:   &Display{text: calculator.ZeroAmount},
		TotalDisplay: &Display{text: calculator.ZeroAmount},
	}
	f.calc = &calculator.Calculator{
		Bill:         f.Bill,
		CustomTip:    f.CustomTip,
		People:       f.People,
		Presets:      f.Presets,
		TipDisplay:   f.TipDisplay,
		TotalDisplay: f.TotalDisplay,
	}
	return f
}

// Init runs the initial recompute that establishes the default display.
func (f *Form) Init() calculator.Calculation {
	return f.recompute("init")
}

// EditBill replaces the bill text and recomputes.
func (f *Form) EditBill(text string) calculator.Calculation {
	f.Bill.SetValue(text)
	return f.recompute("bill")
}

// EditPeople replaces the people text and recomputes.
func (f *Form) EditPeople(text string) calculator.Calculation {
	f.People.SetValue(text)
	return f.recompute("people")
}

// EditCustomTip replaces the custom tip text, deselects every preset and
// recomputes.
func (f *Form) EditCustomTip(text string) calculator.Calculation {
	f.CustomTip.SetValue(text)
	f.Presets.ClearActive()
	return f.recompute("custom_tip")
}

// SelectPreset activates the preset at index, clears the custom tip text and
// recomputes. An unknown index leaves the form untouched.
func (f *Form) SelectPreset(index int) (calculator.Calculation, error) {
	if err := f.Presets.Select(index); err != nil {
		return f.last, err
	}
	f.CustomTip.SetValue("")
	return f.recompute("preset"), nil
}

// SelectPresetPercent selects the preset offering percent.
func (f *Form) SelectPresetPercent(percent float64) (calculator.Calculation, error) {
	index, ok := f.Presets.IndexOf(percent)
	if !ok {
		return f.last, fmt.Errorf("%w: %s", ErrUnknownPreset, models.PercentLabel(percent))
	}
	return f.SelectPreset(index)
}

// Reset restores the initial state of every element.
func (f *Form) Reset() {
	f.calc.Reset()
	f.last = calculator.Calculation{}
	slog.Debug("Form reset")
}

// Last returns the outcome of the most recent recompute.
func (f *Form) Last() calculator.Calculation { return f.last }

func (f *Form) recompute(event string) calculator.Calculation {
	f.last = f.calc.Recompute()
	slog.Debug("Recomputed",
		"event", event,
		"effective_tip", f.last.EffectiveTipPercent,
		"tip_per_person", f.last.TipDisplay,
		"total_per_person", f.last.TotalDisplay,
	)
	return f.last
}
