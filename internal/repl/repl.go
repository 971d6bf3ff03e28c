// Package repl is the terminal host of the calculator. It turns line commands
// into form events, handles them one at a time, and redraws the form.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/mmynk/tipsplit/internal/form"
)

// ErrUnknownCommand is returned by Dispatch for unrecognized input.
var ErrUnknownCommand = errors.New("unknown command")

const helpText = `Commands:
  bill <amount>       set the bill amount
  people <count>      set the number of people
  tip [percent]       type a custom tip (empty clears it)
  preset <n|p%>       pick preset number n, or the preset for p%
  reset               clear everything
  show                redraw the form
  help                show this help
  quit                leave
`

// Shell runs the command loop against a form.
type Shell struct {
	form   *form.Form
	in     io.Reader
	out    io.Writer
	styles Styles
}

// New creates a shell reading commands from in and drawing on out.
func New(f *form.Form, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		form:   f,
		in:     in,
		out:    out,
		styles: DefaultStyles(),
	}
}

// WithStyles replaces the drawing styles.
func (s *Shell) WithStyles(styles Styles) *Shell {
	s.styles = styles
	return s
}

// Run draws the initial form and handles commands until quit, end of input
// or cancellation of ctx.
func (s *Shell) Run(ctx context.Context) error {
	s.form.Init()
	s.render()
	fmt.Fprint(s.out, s.styles.Hint.Render("type help for commands")+"\n")

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := s.Dispatch(scanner.Text())
		if err != nil {
			fmt.Fprintln(s.out, s.styles.Invalid.Render(err.Error()))
			continue
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Fprintln(s.out)
	return nil
}

// Dispatch handles one command line. It reports whether the user asked to quit.
func (s *Shell) Dispatch(line string) (bool, error) {
	command, arg := splitCommand(line)
	slog.Debug("Command received", "command", command, "arg", arg)

	switch command {
	case "":
		return false, nil
	case "bill", "b":
		s.form.EditBill(arg)
	case "people", "p":
		s.form.EditPeople(arg)
	case "tip", "t":
		s.form.EditCustomTip(arg)
	case "preset":
		if err := s.selectPreset(arg); err != nil {
			return false, err
		}
	case "reset", "r":
		s.form.Reset()
	case "show":
	case "help", "?":
		fmt.Fprint(s.out, helpText)
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("%w %q, type help for commands", ErrUnknownCommand, command)
	}

	s.render()
	return false, nil
}

func (s *Shell) selectPreset(arg string) error {
	arg = strings.TrimSpace(arg)
	if strings.HasSuffix(arg, "%") {
		percent, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(arg, "%")), 64)
		if err != nil {
			return fmt.Errorf("%w: %s", form.ErrUnknownPreset, arg)
		}
		_, err = s.form.SelectPresetPercent(percent)
		return err
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("preset expects a number like 2 or a percent like 15%%, got %q", arg)
	}
	_, err = s.form.SelectPreset(n - 1)
	return err
}

func (s *Shell) render() {
	RenderState(s.out, s.form.Snapshot(), s.styles)
}

// splitCommand separates the command word from its argument. The word ends at
// the first space or tab; everything after that one separator is the argument,
// passed on verbatim so whitespace-only entries reach the validator.
func splitCommand(line string) (string, string) {
	line = strings.TrimSuffix(strings.TrimLeftFunc(line, unicode.IsSpace), "\r")
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:i]), line[i+1:]
}
