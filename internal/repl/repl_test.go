package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mmynk/tipsplit/internal/calculator"
	"github.com/mmynk/tipsplit/internal/form"
	"github.com/mmynk/tipsplit/internal/models"
)

func newTestShell(input string) (*Shell, *form.Form, *bytes.Buffer) {
	f := form.New(models.NewPresets(models.DefaultPercents))
	var out bytes.Buffer
	return New(f, strings.NewReader(input), &out), f, &out
}

func TestRun_Session(t *testing.T) {
	shell, f, out := newTestShell("bill 100\npeople 4\npreset 3\nquit\nbill 5\n")

	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	st := f.Snapshot()
	if st.Bill.Value != "100" {
		t.Errorf("bill = %q, commands after quit must be ignored", st.Bill.Value)
	}
	if st.TipPerPerson != "$5.00" || st.TotalPerPerson != "$30.00" {
		t.Errorf("displays = %q/%q, want $5.00/$30.00", st.TipPerPerson, st.TotalPerPerson)
	}
	if !strings.Contains(out.String(), "$30.00") {
		t.Errorf("rendered output missing total: %q", out.String())
	}
}

func TestRun_EndOfInput(t *testing.T) {
	shell, f, _ := newTestShell("bill 50\npeople 2\ntip 10")

	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := f.Snapshot().TotalPerPerson; got != "$27.50" {
		t.Errorf("total = %q, want $27.50", got)
	}
}

func TestRun_InitialDisplay(t *testing.T) {
	shell, f, out := newTestShell("")

	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), calculator.ZeroAmount) {
		t.Errorf("initial render missing %s: %q", calculator.ZeroAmount, out.String())
	}

	// Startup recomputes once, so the empty required fields are already flagged.
	st := f.Snapshot()
	if !st.Bill.Invalid || !st.People.Invalid {
		t.Errorf("bill/people invalid = %v/%v, want both flagged at startup", st.Bill.Invalid, st.People.Invalid)
	}
	if st.CustomTip.Invalid {
		t.Error("empty custom tip must not be flagged")
	}
	if st.TipPerPerson != calculator.ZeroAmount || st.TotalPerPerson != calculator.ZeroAmount {
		t.Errorf("displays = %q/%q, want %s", st.TipPerPerson, st.TotalPerPerson, calculator.ZeroAmount)
	}
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantTip  string
		wantTot  string
		validate func(t *testing.T, st form.State)
	}{
		{
			name:    "preset by percent",
			lines:   []string{"bill 100", "people 4", "preset 20%"},
			wantTip: "$5.00",
			wantTot: "$30.00",
			validate: func(t *testing.T, st form.State) {
				if st.ActivePreset != 2 {
					t.Errorf("ActivePreset = %d, want 2", st.ActivePreset)
				}
			},
		},
		{
			name:    "custom tip deselects preset",
			lines:   []string{"bill 50", "people 2", "preset 1", "tip 10"},
			wantTip: "$2.50",
			wantTot: "$27.50",
			validate: func(t *testing.T, st form.State) {
				if st.ActivePreset != -1 {
					t.Errorf("ActivePreset = %d, want -1", st.ActivePreset)
				}
			},
		},
		{
			name:    "negative custom tip is flagged and zeroes the tip",
			lines:   []string{"bill 100", "people 4", "preset 3", "tip -5"},
			wantTip: "$0.00",
			wantTot: "$25.00",
			validate: func(t *testing.T, st form.State) {
				if !st.CustomTip.Invalid {
					t.Error("custom tip should be flagged")
				}
			},
		},
		{
			name:    "clearing custom tip",
			lines:   []string{"bill 20", "people 2", "tip x", "tip"},
			wantTip: "$0.00",
			wantTot: "$10.00",
			validate: func(t *testing.T, st form.State) {
				if st.CustomTip.Invalid || st.CustomTip.Value != "" {
					t.Errorf("custom tip = %+v, want empty and valid", st.CustomTip)
				}
			},
		},
		{
			name:    "reset",
			lines:   []string{"bill 20", "people 0", "preset 2", "reset"},
			wantTip: "$0.00",
			wantTot: "$0.00",
			validate: func(t *testing.T, st form.State) {
				if st.Bill.Value != "" || st.People.Invalid || st.ActivePreset != -1 {
					t.Errorf("state after reset = %+v", st)
				}
			},
		},
		{
			name:    "whitespace-only custom tip is invalid and overrides preset",
			lines:   []string{"bill 100", "people 4", "preset 3", "tip   "},
			wantTip: "$0.00",
			wantTot: "$25.00",
			validate: func(t *testing.T, st form.State) {
				if !st.CustomTip.Invalid {
					t.Error("whitespace-only custom tip should be flagged")
				}
				if st.CustomTip.Value != "  " {
					t.Errorf("custom tip = %q, want two spaces", st.CustomTip.Value)
				}
				if st.ActivePreset != -1 {
					t.Errorf("ActivePreset = %d, want -1", st.ActivePreset)
				}
			},
		},
		{
			name:    "tab separates command from argument",
			lines:   []string{"bill\t80", "people\t2", "preset\t 15% "},
			wantTip: "$6.00",
			wantTot: "$46.00",
		},
		{
			name:    "commands are case insensitive",
			lines:   []string{"BILL 10", "People 1", "TIP 10"},
			wantTip: "$1.00",
			wantTot: "$11.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell, f, _ := newTestShell("")
			f.Init()
			for _, line := range tt.lines {
				if _, err := shell.Dispatch(line); err != nil {
					t.Fatalf("Dispatch(%q) failed: %v", line, err)
				}
			}

			st := f.Snapshot()
			if st.TipPerPerson != tt.wantTip {
				t.Errorf("tip per person = %q, want %q", st.TipPerPerson, tt.wantTip)
			}
			if st.TotalPerPerson != tt.wantTot {
				t.Errorf("total per person = %q, want %q", st.TotalPerPerson, tt.wantTot)
			}
			if tt.validate != nil {
				tt.validate(t, st)
			}
		})
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		line    string
		command string
		arg     string
	}{
		{line: "bill 12", command: "bill", arg: "12"},
		{line: "  TIP 15\r", command: "tip", arg: "15"},
		{line: "tip", command: "tip", arg: ""},
		{line: "tip    ", command: "tip", arg: "   "},
		{line: "people\t3", command: "people", arg: "3"},
		{line: "bill 1 2", command: "bill", arg: "1 2"},
		{line: "   ", command: "", arg: ""},
	}

	for _, tt := range tests {
		command, arg := splitCommand(tt.line)
		if command != tt.command || arg != tt.arg {
			t.Errorf("splitCommand(%q) = %q, %q; want %q, %q", tt.line, command, arg, tt.command, tt.arg)
		}
	}
}

func TestDispatch_Errors(t *testing.T) {
	shell, f, _ := newTestShell("")
	f.Init()
	if _, err := shell.Dispatch("bill 40"); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if _, err := shell.Dispatch("split evenly"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
	if _, err := shell.Dispatch("preset 9"); !errors.Is(err, form.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if _, err := shell.Dispatch("preset 17%"); !errors.Is(err, form.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset for 17%%, got %v", err)
	}
	if _, err := shell.Dispatch("preset many"); err == nil {
		t.Error("expected error for non-numeric preset")
	}

	if got := f.Snapshot().Bill.Value; got != "40" {
		t.Errorf("bill = %q, failed commands must not touch the form", got)
	}
}

func TestRun_ReportsErrorsAndContinues(t *testing.T) {
	shell, f, out := newTestShell("dance\nbill 12\n")

	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("expected error message in output: %q", out.String())
	}
	if got := f.Snapshot().Bill.Value; got != "12" {
		t.Errorf("bill = %q, want 12", got)
	}
}

func TestRenderCalculation(t *testing.T) {
	var out bytes.Buffer
	calc := calculator.Calculate(calculator.RawInputs{BillText: "100", PeopleText: "0", CustomTipText: "-2"})

	RenderCalculation(&out, calc, DefaultStyles())

	text := out.String()
	for _, want := range []string{"$0.00", "custom tip must be", "people must be"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q: %q", want, text)
		}
	}
	if strings.Contains(text, "bill must be") {
		t.Errorf("bill is valid and should not be reported: %q", text)
	}
}
