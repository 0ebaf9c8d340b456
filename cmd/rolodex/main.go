package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/smileynet/rolodex/internal/assistant"
	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/store"
	"github.com/smileynet/rolodex/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	Book    string           `help:"Path to the book file (overrides config)." placeholder:"PATH"`
	Config  string           `help:"Extra config file loaded after the defaults." placeholder:"PATH"`
	Color   string           `help:"Color output: auto, always, or never." placeholder:"MODE"`
	Version kong.VersionFlag `help:"Show version." short:"V"`
}

// CLI is the top-level command structure for rolodex.
type CLI struct {
	Globals

	Assistant AssistantCmd `cmd:"" default:"1" help:"Start the interactive assistant."`
	Add       AddCmd       `cmd:"" help:"Add a contact with a phone number."`
	Change    ChangeCmd    `cmd:"" help:"Replace a contact's phone number."`
	Phone     PhoneCmd     `cmd:"" help:"Show a contact's phone numbers."`
	Email     EmailCmd     `cmd:"" help:"Add or list a contact's email addresses."`
	Delete    DeleteCmd    `cmd:"" help:"Delete a contact."`
	All       AllCmd       `cmd:"" help:"List every contact."`
}

// commandError marks a failed contact operation so exit-code mapping can
// distinguish it from setup failures.
type commandError struct {
	text string
}

func (e *commandError) Error() string { return e.text }

// loadConfig loads layered config from user and project paths, applies
// environment and flag overrides, and validates the result.
func loadConfig(g *Globals) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/rolodex/config.yaml"),
		".rolodex/config.yaml",
	}
	if g.Config != "" {
		paths = append(paths, g.Config)
	}

	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.Book != "" {
		cfg.Book.Path = g.Book
	}
	if g.Color != "" {
		cfg.UI.Color = g.Color
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession loads the configured book and wraps it in a persisting
// session.
func openSession(g *Globals) (*assistant.Session, *config.Config, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, nil, err
	}
	st := store.NewFileStore(cfg.Book.Path)
	b, _, err := st.Load()
	if err != nil {
		return nil, nil, err
	}
	return assistant.NewSession(b, st), cfg, nil
}

// emit prints a reply, converting error replies to commandError.
func emit(w io.Writer, r assistant.Reply) error {
	if r.Kind == assistant.ReplyError {
		return &commandError{text: r.Text}
	}
	fmt.Fprintln(w, r.Text)
	return nil
}

// AssistantCmd starts the interactive assistant session.
type AssistantCmd struct {
	Plain bool `help:"Force plain line output even on a terminal." default:"false"`
}

// Run executes the assistant command.
func (a *AssistantCmd) Run(g *Globals) error {
	s, cfg, err := openSession(g)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, s, tui.Options{
		Prompt:     cfg.UI.Prompt,
		Color:      cfg.UI.Color,
		ForcePlain: a.Plain,
	})
}

// AddCmd adds a contact with one phone number.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number."`
}

// Run executes the add command.
func (c *AddCmd) Run(g *Globals) error {
	s, _, err := openSession(g)
	if err != nil {
		return err
	}
	return c.run(os.Stdout, s)
}

func (c *AddCmd) run(w io.Writer, s *assistant.Session) error {
	return emit(w, s.Add(c.Name, c.Phone))
}

// ChangeCmd replaces a contact's phone number.
type ChangeCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"New phone number."`
}

// Run executes the change command.
func (c *ChangeCmd) Run(g *Globals) error {
	s, _, err := openSession(g)
	if err != nil {
		return err
	}
	return c.run(os.Stdout, s)
}

func (c *ChangeCmd) run(w io.Writer, s *assistant.Session) error {
	return emit(w, s.Change(c.Name, c.Phone))
}

// PhoneCmd shows a contact's phone numbers.
type PhoneCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the phone command.
func (c *PhoneCmd) Run(g *Globals) error {
	s, _, err := openSession(g)
	if err != nil {
		return err
	}
	return c.run(os.Stdout, s)
}

func (c *PhoneCmd) run(w io.Writer, s *assistant.Session) error {
	return emit(w, s.Phone(c.Name))
}

// EmailCmd adds an email address to a contact, or lists the stored
// addresses when the address argument is omitted.
type EmailCmd struct {
	Name    string `arg:"" help:"Contact name."`
	Address string `arg:"" optional:"" help:"Email address to add."`
}

// Run executes the email command.
func (c *EmailCmd) Run(g *Globals) error {
	s, _, err := openSession(g)
	if err != nil {
		return err
	}
	return c.run(os.Stdout, s)
}

func (c *EmailCmd) run(w io.Writer, s *assistant.Session) error {
	return emit(w, s.Email(c.Name, c.Address))
}

// DeleteCmd deletes a contact.
type DeleteCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(g *Globals) error {
	s, _, err := openSession(g)
	if err != nil {
		return err
	}
	return c.run(os.Stdout, s)
}

func (c *DeleteCmd) run(w io.Writer, s *assistant.Session) error {
	return emit(w, s.Delete(c.Name))
}

// AllCmd lists every contact.
type AllCmd struct{}

// Run executes the all command.
func (c *AllCmd) Run(g *Globals) error {
	s, _, err := openSession(g)
	if err != nil {
		return err
	}
	return c.run(os.Stdout, s)
}

func (c *AllCmd) run(w io.Writer, s *assistant.Session) error {
	return emit(w, s.All())
}

// Exit codes.
const (
	exitSuccess = 0
	exitCommand = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *commandError
	if errors.As(err, &ce) {
		return exitCommand
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
