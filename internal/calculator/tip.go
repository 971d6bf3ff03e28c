package calculator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ZeroAmount is what both displays show before any calculation and after a reset.
const ZeroAmount = "$0.00"

// RawInputs is a snapshot of the unparsed values present on the input surface.
type RawInputs struct {
	BillText      string
	PeopleText    string
	CustomTipText string

	// ActivePreset is the percent of the selected preset, nil when none is active.
	ActivePreset *float64
}

// ParsedInputs holds the numeric form of RawInputs. NaN marks unparseable text.
type ParsedInputs struct {
	Bill      float64
	People    float64
	CustomTip float64
}

// ValidityFlags are recomputed on every call; none of them carries over.
type ValidityFlags struct {
	BillValid           bool
	PeopleValid         bool
	CustomTipFieldValid bool
	EffectiveTipValid   bool
}

// Result holds the per-person figures, rounded to cents.
type Result struct {
	TipPerPerson   float64
	TotalPerPerson float64
}

// Calculation is the full outcome of one recompute.
type Calculation struct {
	Inputs              RawInputs
	Parsed              ParsedInputs
	Flags               ValidityFlags
	EffectiveTipPercent float64

	// TipAmount and TotalBill are for the whole table, before dividing.
	TipAmount float64
	TotalBill float64

	Result       Result
	TipDisplay   string
	TotalDisplay string
}

// ShowCustomTipError reports whether the custom tip field should carry the
// error indicator. An empty field next to an active preset is never flagged.
func (c Calculation) ShowCustomTipError() bool {
	if c.Inputs.CustomTipText == "" && c.Inputs.ActivePreset != nil {
		return false
	}
	return !c.Flags.CustomTipFieldValid
}

// Calculate validates the raw inputs and computes the per-person tip and total.
//
// Invalid input never produces an error: every quantity whose preconditions
// fail is replaced by 0 and the matching flag is cleared.
func Calculate(in RawInputs) Calculation {
	parsed := ParsedInputs{
		Bill:      ParseNumber(in.BillText),
		People:    ParseNumber(in.PeopleText),
		CustomTip: ParseNumber(in.CustomTipText),
	}

	flags := ValidityFlags{
		BillValid:           !math.IsNaN(parsed.Bill) && parsed.Bill >= 0,
		PeopleValid:         isWholePositive(parsed.People),
		CustomTipFieldValid: in.CustomTipText == "" || isNonNegative(parsed.CustomTip),
	}

	tipPercent := EffectiveTipPercent(in, parsed.CustomTip)
	flags.EffectiveTipValid = isNonNegative(tipPercent)

	calc := Calculation{
		Inputs:              in,
		Parsed:              parsed,
		Flags:               flags,
		EffectiveTipPercent: tipPercent,
	}

	if flags.BillValid && flags.EffectiveTipValid {
		calc.TipAmount = parsed.Bill * (tipPercent / 100)
	}
	if flags.BillValid {
		calc.TotalBill = parsed.Bill + calc.TipAmount
	}

	var tipPerPerson, totalPerPerson float64
	if flags.BillValid && flags.EffectiveTipValid && flags.PeopleValid {
		tipPerPerson = calc.TipAmount / parsed.People
		totalPerPerson = calc.TotalBill / parsed.People
		// Huge bills can overflow; the displays must stay well-formed.
		if !isFinite(tipPerPerson) || !isFinite(totalPerPerson) {
			tipPerPerson, totalPerPerson = 0, 0
		}
	}

	calc.Result = Result{
		TipPerPerson:   roundCents(tipPerPerson),
		TotalPerPerson: roundCents(totalPerPerson),
	}
	// Displays format the rounded figures so a half-cent tie reads the same
	// in both; %.2f alone would round it to even.
	calc.TipDisplay = FormatAmount(calc.Result.TipPerPerson)
	calc.TotalDisplay = FormatAmount(calc.Result.TotalPerPerson)

	return calc
}

// EffectiveTipPercent resolves which tip rate applies.
//
// A non-empty custom tip always overrides the active preset, even when it is
// invalid: in that case the effective tip is 0 rather than the preset's rate.
func EffectiveTipPercent(in RawInputs, customTip float64) float64 {
	if in.CustomTipText != "" {
		if isNonNegative(customTip) {
			return customTip
		}
		return 0
	}
	if in.ActivePreset != nil && isNonNegative(*in.ActivePreset) {
		return *in.ActivePreset
	}
	return 0
}

// FormatAmount renders an amount with a dollar prefix and exactly two decimals.
func FormatAmount(amount float64) string {
	if amount == 0 || !isFinite(amount) {
		// also folds negative zero
		amount = 0
	}
	return fmt.Sprintf("$%.2f", amount)
}

// ParseNumber parses the longest numeric prefix of text, after skipping
// leading whitespace. "12.5kg" parses as 12.5; text without a numeric prefix,
// or one that overflows float64, yields NaN.
func ParseNumber(text string) float64 {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	n := numericPrefixLen(s)
	if n == 0 {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil || !isFinite(v) {
		return math.NaN()
	}
	return v
}

// numericPrefixLen returns the length of the prefix of s matching
// [+-]? (digits [. digits*] | . digits) ([eE] [+-]? digits)?
func numericPrefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intDigits := countDigits(s[i:])
	i += intDigits

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = countDigits(s[i+1:])
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}

	// An exponent only counts when it has at least one digit.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if expDigits := countDigits(s[j:]); expDigits > 0 {
			i = j + expDigits
		}
	}
	return i
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func isNonNegative(v float64) bool {
	return !math.IsNaN(v) && v >= 0
}

func isWholePositive(v float64) bool {
	return !math.IsNaN(v) && v > 0 && !math.IsInf(v, 0) && math.Trunc(v) == v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
