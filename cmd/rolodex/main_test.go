package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/smileynet/rolodex/internal/assistant"
	"github.com/smileynet/rolodex/internal/book"
)

// errExitCalled is a sentinel used to catch kong's os.Exit calls in tests.
var errExitCalled = errors.New("exit called")

// newParser builds a kong parser for the CLI with a test version string.
func newParser(t *testing.T, cli *CLI) *kong.Kong {
	t.Helper()
	k, err := kong.New(cli, kong.Vars{"version": "test"})
	if err != nil {
		t.Fatal(err)
	}
	return k
}

// newTestSession returns a non-persisting session seeded with one contact.
func newTestSession(t *testing.T) *assistant.Session {
	t.Helper()
	rec, err := book.NewRecord("John", []string{"1234567890"}, []string{"john@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	return assistant.NewSession(book.NewBook(rec), nil)
}

func TestFeature_GoProjectSkeleton(t *testing.T) {
	t.Run("version flag prints version commit and date", func(t *testing.T) {
		// Given: a CLI parser with version, commit, and date fields
		var cli CLI
		var buf bytes.Buffer
		versionStr := "v1.0.0 abc1234 2026-01-01T00:00:00Z"
		k, err := kong.New(&cli,
			kong.Vars{"version": versionStr},
			kong.Writers(&buf, &buf),
			kong.Exit(func(int) { panic(errExitCalled) }),
		)
		if err != nil {
			t.Fatal(err)
		}

		// When: --version flag is passed
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic from --version flag")
			}
			err, ok := r.(error)
			if !ok || !errors.Is(err, errExitCalled) {
				panic(r)
			}

			// Then: version, commit, and date are all present in output
			output := buf.String()
			for _, want := range []string{"v1.0.0", "abc1234", "2026-01-01T00:00:00Z"} {
				if !strings.Contains(output, want) {
					t.Errorf("version output = %q, want to contain %q", output, want)
				}
			}
		}()

		k.Parse([]string{"--version"}) //nolint:errcheck // --version triggers panic via Exit hook
	})

	t.Run("no args selects the assistant command", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: no arguments are provided
		kctx, err := k.Parse([]string{})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the default command is the assistant
		if kctx.Command() != "assistant" {
			t.Errorf("got command %q, want %q", kctx.Command(), "assistant")
		}
	})

	t.Run("assistant command accepts --plain flag", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: assistant command is invoked with --plain
		_, err := k.Parse([]string{"assistant", "--plain"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: Plain flag is set
		if !cli.Assistant.Plain {
			t.Error("Plain = false, want true")
		}
	})

	t.Run("assistant command defaults plain to false", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: assistant command is invoked without --plain
		_, err := k.Parse([]string{"assistant"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: Plain defaults to false
		if cli.Assistant.Plain {
			t.Error("Plain = true, want false (default)")
		}
	})

	t.Run("add command parses name and phone", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: add command is invoked with a quoted multi-word name
		kctx, err := k.Parse([]string{"add", "John Smith", "1234567890"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the command, name, and phone are parsed correctly
		if kctx.Command() != "add <name> <phone>" {
			t.Errorf("got command %q, want %q", kctx.Command(), "add <name> <phone>")
		}
		if cli.Add.Name != "John Smith" {
			t.Errorf("got name %q, want %q", cli.Add.Name, "John Smith")
		}
		if cli.Add.Phone != "1234567890" {
			t.Errorf("got phone %q, want %q", cli.Add.Phone, "1234567890")
		}
	})

	t.Run("add command requires both arguments", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: add command is invoked with only a name
		_, err := k.Parse([]string{"add", "John"})

		// Then: an error is returned
		if err == nil {
			t.Fatal("expected error when phone missing")
		}
	})

	t.Run("change command parses name and phone", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: change command is invoked
		kctx, err := k.Parse([]string{"change", "John", "0987654321"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the command and arguments are parsed correctly
		if kctx.Command() != "change <name> <phone>" {
			t.Errorf("got command %q, want %q", kctx.Command(), "change <name> <phone>")
		}
		if cli.Change.Phone != "0987654321" {
			t.Errorf("got phone %q, want %q", cli.Change.Phone, "0987654321")
		}
	})

	t.Run("phone command parses name", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: phone command is invoked
		kctx, err := k.Parse([]string{"phone", "John"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the command and name are parsed correctly
		if kctx.Command() != "phone <name>" {
			t.Errorf("got command %q, want %q", kctx.Command(), "phone <name>")
		}
		if cli.Phone.Name != "John" {
			t.Errorf("got name %q, want %q", cli.Phone.Name, "John")
		}
	})

	t.Run("email command accepts optional address", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: email command is invoked with an address
		kctx, err := k.Parse([]string{"email", "John", "john@example.com"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the command, name, and address are parsed correctly
		if kctx.Command() != "email <name> <address>" {
			t.Errorf("got command %q, want %q", kctx.Command(), "email <name> <address>")
		}
		if cli.Email.Address != "john@example.com" {
			t.Errorf("got address %q, want %q", cli.Email.Address, "john@example.com")
		}
	})

	t.Run("email command works without address", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: email command is invoked with only a name
		kctx, err := k.Parse([]string{"email", "John"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the address stays empty
		if kctx.Command() != "email <name>" {
			t.Errorf("got command %q, want %q", kctx.Command(), "email <name>")
		}
		if cli.Email.Address != "" {
			t.Errorf("got address %q, want empty", cli.Email.Address)
		}
	})

	t.Run("delete command parses name", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: delete command is invoked
		kctx, err := k.Parse([]string{"delete", "John"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the command and name are parsed correctly
		if kctx.Command() != "delete <name>" {
			t.Errorf("got command %q, want %q", kctx.Command(), "delete <name>")
		}
		if cli.Delete.Name != "John" {
			t.Errorf("got name %q, want %q", cli.Delete.Name, "John")
		}
	})

	t.Run("all command takes no arguments", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: all command is invoked
		kctx, err := k.Parse([]string{"all"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the command is parsed correctly
		if kctx.Command() != "all" {
			t.Errorf("got command %q, want %q", kctx.Command(), "all")
		}
	})

	t.Run("global flags parse before the command", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: global flags are passed ahead of a command
		_, err := k.Parse([]string{"--book", "contacts.json", "--color", "never", "all"})
		if err != nil {
			t.Fatal(err)
		}

		// Then: the global flags are parsed correctly
		if cli.Book != "contacts.json" {
			t.Errorf("got book %q, want %q", cli.Book, "contacts.json")
		}
		if cli.Color != "never" {
			t.Errorf("got color %q, want %q", cli.Color, "never")
		}
	})
}

func TestFeature_OneShotCommands(t *testing.T) {
	t.Run("add prints confirmation", func(t *testing.T) {
		// Given a seeded session and the add command
		s := newTestSession(t)
		cmd := AddCmd{Name: "Jane Doe", Phone: "0987654321"}
		var buf bytes.Buffer

		// When the command runs
		err := cmd.run(&buf, s)

		// Then the confirmation is printed
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if got, want := buf.String(), "Contact added.\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("add rejects duplicate name with command error", func(t *testing.T) {
		// Given a session that already has John
		s := newTestSession(t)
		cmd := AddCmd{Name: "John", Phone: "0987654321"}
		var buf bytes.Buffer

		// When the command runs
		err := cmd.run(&buf, s)

		// Then a commandError carries the bot's message
		var ce *commandError
		if !errors.As(err, &ce) {
			t.Fatalf("run() error = %v, want commandError", err)
		}
		if got, want := ce.Error(), "Contact already exists"; got != want {
			t.Errorf("error text = %q, want %q", got, want)
		}
		if buf.Len() != 0 {
			t.Errorf("output = %q, want empty on error", buf.String())
		}
	})

	t.Run("change prints confirmation", func(t *testing.T) {
		// Given a seeded session and the change command
		s := newTestSession(t)
		cmd := ChangeCmd{Name: "John", Phone: "1112223333"}
		var buf bytes.Buffer

		// When the command runs
		err := cmd.run(&buf, s)

		// Then the confirmation is printed
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if got, want := buf.String(), "Contact updated.\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("phone prints stored numbers", func(t *testing.T) {
		// Given a seeded session and the phone command
		s := newTestSession(t)
		cmd := PhoneCmd{Name: "John"}
		var buf bytes.Buffer

		// When the command runs
		err := cmd.run(&buf, s)

		// Then the number is printed
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if got, want := buf.String(), "1234567890\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("phone reports missing contact as command error", func(t *testing.T) {
		// Given a session without the requested contact
		s := newTestSession(t)
		cmd := PhoneCmd{Name: "Nobody"}
		var buf bytes.Buffer

		// When the command runs
		err := cmd.run(&buf, s)

		// Then a commandError carries the bot's message
		var ce *commandError
		if !errors.As(err, &ce) {
			t.Fatalf("run() error = %v, want commandError", err)
		}
		if got, want := ce.Error(), "Contact does not exist."; got != want {
			t.Errorf("error text = %q, want %q", got, want)
		}
	})

	t.Run("email adds an address", func(t *testing.T) {
		// Given a seeded session and the email command with an address
		s := newTestSession(t)
		cmd := EmailCmd{Name: "John", Address: "john.work@example.com"}
		var buf bytes.Buffer

		// When the command runs
		err := cmd.run(&buf, s)

		// Then the confirmation is printed
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if got, want := buf.String(), "Email added.\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("email without address lists stored addresses", func(t *testing.T) {
		// Given a seeded session and the email command with no address
		s := newTestSession(t)
		cmd := EmailCmd{Name: "John"}
		var buf bytes.Buffer

		// When the command runs
		err := cmd.run(&buf, s)

		// Then the stored address is printed
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if got, want := buf.String(), "john@example.com\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("delete prints confirmation", func(t *testing.T) {
		// Given a seeded session and the delete command
		s := newTestSession(t)
		cmd := DeleteCmd{Name: "John"}
		var buf bytes.Buffer

		// When the command runs
		err := cmd.run(&buf, s)

		// Then the confirmation is printed
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if got, want := buf.String(), "Contact deleted.\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("all prints every contact", func(t *testing.T) {
		// Given a seeded session and the all command
		s := newTestSession(t)
		cmd := AllCmd{}
		var buf bytes.Buffer

		// When the command runs
		err := cmd.run(&buf, s)

		// Then the rendered record is printed
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
		want := "Contact name: John, phones: 1234567890, emails: john@example.com\n"
		if got := buf.String(); got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, exitSuccess},
		{"command error", &commandError{text: "Contact does not exist."}, exitCommand},
		{"wrapped command error", fmt.Errorf("running: %w", &commandError{text: "x"}), exitCommand},
		{"setup error", errors.New("config: book.path cannot be empty"), exitSetup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFeature_ConfigWiring(t *testing.T) {
	// isolate ensures tests see no user config or rolodex environment.
	isolate := func(t *testing.T) {
		t.Helper()
		t.Setenv("HOME", t.TempDir())
		t.Setenv("ROLODEX_BOOK", "")
		t.Setenv("ROLODEX_COLOR", "")
		t.Setenv("ROLODEX_PROMPT", "")
	}

	t.Run("defaults apply with no flags or files", func(t *testing.T) {
		// Given an isolated environment
		isolate(t)

		// When config is loaded with empty globals
		cfg, err := loadConfig(&Globals{})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}

		// Then built-in defaults are returned
		if got, want := cfg.Book.Path, ".rolodex/book.json"; got != want {
			t.Errorf("book path = %q, want %q", got, want)
		}
		if got, want := cfg.UI.Color, "auto"; got != want {
			t.Errorf("color = %q, want %q", got, want)
		}
	})

	t.Run("flags override environment", func(t *testing.T) {
		// Given an isolated environment with ROLODEX_BOOK set
		isolate(t)
		t.Setenv("ROLODEX_BOOK", "env.json")

		// When config is loaded with a --book flag
		cfg, err := loadConfig(&Globals{Book: "flag.json", Color: "never"})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}

		// Then the flag wins over the environment
		if got, want := cfg.Book.Path, "flag.json"; got != want {
			t.Errorf("book path = %q, want %q", got, want)
		}
		if got, want := cfg.UI.Color, "never"; got != want {
			t.Errorf("color = %q, want %q", got, want)
		}
	})

	t.Run("environment overrides files", func(t *testing.T) {
		// Given an isolated environment with ROLODEX_BOOK set
		isolate(t)
		t.Setenv("ROLODEX_BOOK", "env.json")

		// When config is loaded without flags
		cfg, err := loadConfig(&Globals{})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}

		// Then the environment value is used
		if got, want := cfg.Book.Path, "env.json"; got != want {
			t.Errorf("book path = %q, want %q", got, want)
		}
	})

	t.Run("extra config file layers on top of defaults", func(t *testing.T) {
		// Given an isolated environment and an extra config file
		isolate(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "ui:\n  prompt: \"rolodex> \"\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}

		// When config is loaded with the --config flag
		cfg, err := loadConfig(&Globals{Config: path})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}

		// Then the file's prompt is used and other defaults survive
		if got, want := cfg.UI.Prompt, "rolodex> "; got != want {
			t.Errorf("prompt = %q, want %q", got, want)
		}
		if got, want := cfg.Book.Path, ".rolodex/book.json"; got != want {
			t.Errorf("book path = %q, want %q", got, want)
		}
	})

	t.Run("invalid color flag fails validation", func(t *testing.T) {
		// Given an isolated environment
		isolate(t)

		// When config is loaded with a bad --color value
		_, err := loadConfig(&Globals{Color: "sometimes"})

		// Then validation rejects it
		if err == nil {
			t.Fatal("expected error for invalid color")
		}
	})

	t.Run("open session persists across invocations", func(t *testing.T) {
		// Given an isolated environment and a temp book path
		isolate(t)
		path := filepath.Join(t.TempDir(), "book.json")
		g := &Globals{Book: path}

		// When one session adds a contact
		s, cfg, err := openSession(g)
		if err != nil {
			t.Fatalf("openSession() error = %v", err)
		}
		if cfg.Book.Path != path {
			t.Fatalf("book path = %q, want %q", cfg.Book.Path, path)
		}
		if reply := s.Add("John", "1234567890"); reply.Kind != assistant.ReplyInfo {
			t.Fatalf("Add reply = %+v, want info", reply)
		}

		// Then a fresh session loads the same contact from disk
		s2, _, err := openSession(g)
		if err != nil {
			t.Fatalf("openSession() reload error = %v", err)
		}
		reply := s2.Phone("John")
		if reply.Kind != assistant.ReplyInfo {
			t.Fatalf("Phone reply = %+v, want info", reply)
		}
		if got, want := reply.Text, "1234567890"; got != want {
			t.Errorf("phone = %q, want %q", got, want)
		}
	})
}
