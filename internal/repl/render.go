package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/tipsplit/internal/calculator"
	"github.com/mmynk/tipsplit/internal/form"
	"github.com/mmynk/tipsplit/internal/models"
)

// Styles controls how the form is drawn.
type Styles struct {
	Label   lipgloss.Style
	Invalid lipgloss.Style
	Active  lipgloss.Style
	Preset  lipgloss.Style
	Result  lipgloss.Style
	Hint    lipgloss.Style
}

// DefaultStyles returns the styles used by the terminal.
func DefaultStyles() Styles {
	return Styles{
		Label:   lipgloss.NewStyle().Width(16).Bold(true),
		Invalid: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Active:  lipgloss.NewStyle().Bold(true).Reverse(true),
		Preset:  lipgloss.NewStyle().Faint(true),
		Result: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1),
		Hint: lipgloss.NewStyle().Faint(true).Italic(true),
	}
}

// RenderState draws the current form.
func RenderState(w io.Writer, st form.State, styles Styles) {
	var b strings.Builder

	b.WriteString(fieldLine(styles, "Bill", st.Bill))
	b.WriteString(styles.Label.Render("Tip presets") + presetRow(styles, st.Presets, st.ActivePreset) + "\n")
	b.WriteString(fieldLine(styles, "Custom tip %", st.CustomTip))
	b.WriteString(fieldLine(styles, "People", st.People))

	result := styles.Label.Render("Tip / person") + st.TipPerPerson + "\n" +
		styles.Label.Render("Total / person") + st.TotalPerPerson
	b.WriteString(styles.Result.Render(result))
	b.WriteString("\n")

	fmt.Fprint(w, b.String())
}

// RenderCalculation prints the outcome of a one-shot calculation.
func RenderCalculation(w io.Writer, calc calculator.Calculation, styles Styles) {
	var b strings.Builder

	b.WriteString(styles.Label.Render("Effective tip") + models.PercentLabel(calc.EffectiveTipPercent) + "\n")
	result := styles.Label.Render("Tip / person") + calc.TipDisplay + "\n" +
		styles.Label.Render("Total / person") + calc.TotalDisplay
	b.WriteString(styles.Result.Render(result))
	b.WriteString("\n")

	for _, problem := range Problems(calc) {
		b.WriteString(styles.Invalid.Render(problem) + "\n")
	}

	fmt.Fprint(w, b.String())
}

// Problems lists the fields a calculation flagged, in display order.
func Problems(calc calculator.Calculation) []string {
	var problems []string
	if !calc.Flags.BillValid {
		problems = append(problems, "bill must be a number of 0 or more")
	}
	if calc.ShowCustomTipError() {
		problems = append(problems, "custom tip must be a number of 0 or more")
	}
	if !calc.Flags.PeopleValid {
		problems = append(problems, "people must be a whole number above 0")
	}
	return problems
}

func fieldLine(styles Styles, label string, f form.FieldState) string {
	value := f.Value
	if value == "" {
		value = styles.Hint.Render("(empty)")
	}
	line := styles.Label.Render(label) + value
	if f.Invalid {
		line += " " + styles.Invalid.Render("✗ invalid")
	}
	return line + "\n"
}

func presetRow(styles Styles, presets []models.Preset, active int) string {
	parts := make([]string, len(presets))
	for i, p := range presets {
		text := fmt.Sprintf("%d:%s", i+1, p.Label)
		if i == active {
			parts[i] = styles.Active.Render("[" + text + "]")
		} else {
			parts[i] = styles.Preset.Render(" " + text + " ")
		}
	}
	return strings.Join(parts, " ")
}
