// Package tui presents an assistant session in the terminal, either as
// a Bubble Tea transcript view or as a plain line-oriented loop when no
// terminal is attached.
package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/rolodex/internal/assistant"
)

// Banner and farewell lines shared by both presentation modes.
const (
	Welcome     = "Welcome to the assistant bot!"
	WelcomeHint = "Enter 'help' for a list of built-in commands."
	Farewell    = "Good bye!"
)

// defaultPrompt is used when Options.Prompt is empty.
const defaultPrompt = "Enter a command: "

// Options configures how a session is presented.
type Options struct {
	Input      io.Reader // Command source (default: os.Stdin).
	Output     io.Writer // Render destination (default: os.Stdout).
	Prompt     string    // Command prompt (default: "Enter a command: ").
	Color      string    // "auto", "always", or "never".
	ForcePlain bool      // Force the line loop even on a terminal.
}

// Run presents an assistant session until the user ends it or ctx is
// cancelled. It renders through Bubble Tea when both ends are
// terminals, and falls back to a plain line loop otherwise. Color
// "never" and ForcePlain force the fallback; "always" forces the
// Bubble Tea view.
func Run(ctx context.Context, s *assistant.Session, opts Options) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Prompt == "" {
		opts.Prompt = defaultPrompt
	}

	plain := opts.ForcePlain || opts.Color == "never"
	if !plain && opts.Color != "always" {
		plain = !isTTY(opts.Output) || !isTTYReader(opts.Input)
	}
	if plain {
		return runPlain(ctx, s, opts.Input, opts.Output, opts.Prompt)
	}
	return runTUI(ctx, s, opts)
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// isTTYReader reports whether r is connected to a terminal.
func isTTYReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runPlain runs the line loop used for pipes and dumb terminals. Lines
// are read in a goroutine so cancellation can interrupt the wait.
func runPlain(ctx context.Context, s *assistant.Session, in io.Reader, out io.Writer, prompt string) error {
	fmt.Fprintln(out, Welcome)
	fmt.Fprintln(out, WelcomeHint)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		fmt.Fprint(out, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintf(out, "\n%s\n", Farewell)
			return nil
		case line, ok := <-lines:
			if !ok {
				// Input ended without an exit command.
				fmt.Fprintf(out, "\n%s\n", Farewell)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			reply := s.Execute(line)
			fmt.Fprintln(out, reply.Text)
			if reply.Kind == assistant.ReplyBye {
				return nil
			}
		}
	}
}

// runTUI drives the Bubble Tea transcript view. Context cancellation
// is forwarded into the program so signal handling ends it cleanly.
func runTUI(ctx context.Context, s *assistant.Session, opts Options) error {
	m := NewModel(s, WithPrompt(opts.Prompt))
	p := tea.NewProgram(m, tea.WithInput(opts.Input), tea.WithOutput(opts.Output))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Send(interruptMsg{})
		case <-done:
		}
	}()

	_, err := p.Run()
	return err
}
