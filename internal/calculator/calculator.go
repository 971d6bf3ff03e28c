// Package calculator implements the tip splitting core: parsing and validating
// raw field text, resolving the effective tip rate, and driving the recompute
// and reset lifecycle of an input surface.
package calculator

// Field is an editable text input that can carry an error indicator.
type Field interface {
	Value() string
	SetValue(text string)
	SetError(invalid bool)
}

// Display is a write-only text output.
type Display interface {
	SetText(text string)
}

// PresetSelector exposes the active preset of the input surface.
type PresetSelector interface {
	// Active returns the percent of the active preset, if any.
	Active() (percent float64, ok bool)
	// ClearActive deselects every preset.
	ClearActive()
}

// Calculator connects the calculation routine to the elements of an input
// surface. It keeps no state of its own: the field contents and the active
// preset belong to the surface.
//
// Any element may be left nil. A missing field reads as empty text and a
// missing display or indicator is skipped, so a partial surface still works
// for the elements it has.
type Calculator struct {
	Bill      Field
	CustomTip Field
	People    Field

	Presets PresetSelector

	TipDisplay   Display
	TotalDisplay Display
}

// Inputs takes a snapshot of the surface.
func (c *Calculator) Inputs() RawInputs {
	in := RawInputs{
		BillText:      valueOf(c.Bill),
		PeopleText:    valueOf(c.People),
		CustomTipText: valueOf(c.CustomTip),
	}
	if c.Presets != nil {
		if percent, ok := c.Presets.Active(); ok {
			in.ActivePreset = &percent
		}
	}
	return in
}

// Recompute reads the surface, recalculates, and writes the displays and
// error indicators back. It never fails.
func (c *Calculator) Recompute() Calculation {
	calc := Calculate(c.Inputs())

	setText(c.TipDisplay, calc.TipDisplay)
	setText(c.TotalDisplay, calc.TotalDisplay)

	setError(c.Bill, !calc.Flags.BillValid)
	setError(c.People, !calc.Flags.PeopleValid)
	setError(c.CustomTip, calc.ShowCustomTipError())

	return calc
}

// Reset returns the surface to its initial state. The zero displays are
// written directly; Reset does not recompute.
func (c *Calculator) Reset() {
	for _, f := range []Field{c.Bill, c.CustomTip, c.People} {
		if f == nil {
			continue
		}
		f.SetValue("")
		f.SetError(false)
	}
	if c.Presets != nil {
		c.Presets.ClearActive()
	}
	setText(c.TipDisplay, ZeroAmount)
	setText(c.TotalDisplay, ZeroAmount)
}

func valueOf(f Field) string {
	if f == nil {
		return ""
	}
	return f.Value()
}

func setText(d Display, text string) {
	if d != nil {
		d.SetText(text)
	}
}

func setError(f Field, invalid bool) {
	if f != nil {
		f.SetError(invalid)
	}
}
