// Package assistant implements the command engine behind the contact bot:
// it parses a command line, applies it to the book, persists mutations,
// and returns a typed reply for the caller to render.
package assistant

import (
	"errors"
	"strings"

	"github.com/smileynet/rolodex/internal/book"
)

// ReplyKind classifies a reply for presentation.
type ReplyKind int

const (
	ReplyInfo  ReplyKind = iota // Normal command output.
	ReplyError                  // User-facing failure text.
	ReplyBye                    // Session-ending farewell.
)

// Reply is the outcome of executing one command.
type Reply struct {
	Kind ReplyKind
	Text string
}

// Store persists the book between commands.
type Store interface {
	Save(b *book.Book) error
}

// Session executes assistant commands against a book. A nil store
// disables persistence.
type Session struct {
	book  *book.Book
	store Store
}

// NewSession creates a session over an already-loaded book.
func NewSession(b *book.Book, st Store) *Session {
	return &Session{book: b, store: st}
}

// Execute runs one command line and returns the reply. The command word
// is case-insensitive; arguments are whitespace-separated and taken
// verbatim. Blank lines and unknown commands produce an error reply.
// Callers holding structured arguments (names with spaces) should use
// the typed methods directly.
func (s *Session) Execute(line string) Reply {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Reply{Kind: ReplyError, Text: "Invalid command."}
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "hello":
		return Reply{Kind: ReplyInfo, Text: "How can I help you?"}
	case "help":
		return Reply{Kind: ReplyInfo, Text: helpText}
	case "all":
		return s.All()
	case "phone":
		if len(args) < 1 {
			return Reply{Kind: ReplyError, Text: "Give me the name, please."}
		}
		return s.Phone(args[0])
	case "add":
		if len(args) < 2 {
			return Reply{Kind: ReplyError, Text: "Give me the name and phone number, please."}
		}
		return s.Add(args[0], args[1])
	case "change":
		if len(args) < 2 {
			return Reply{Kind: ReplyError, Text: "Give me the name and phone number, please."}
		}
		return s.Change(args[0], args[1])
	case "email":
		switch {
		case len(args) < 1:
			return Reply{Kind: ReplyError, Text: "Give me the name, please."}
		case len(args) < 2:
			return s.Email(args[0], "")
		default:
			return s.Email(args[0], args[1])
		}
	case "delete":
		if len(args) < 1 {
			return Reply{Kind: ReplyError, Text: "Give me the name, please."}
		}
		return s.Delete(args[0])
	case "close", "exit", "quit":
		return Reply{Kind: ReplyBye, Text: "Good bye!"}
	default:
		return Reply{Kind: ReplyError, Text: "Invalid command."}
	}
}

// All lists every contact's full rendering in insertion order.
func (s *Session) All() Reply {
	var lines []string
	for _, r := range s.book.All() {
		lines = append(lines, r.String())
	}
	return Reply{Kind: ReplyInfo, Text: strings.Join(lines, "\n")}
}

// Phone shows the phone numbers stored for one contact.
func (s *Session) Phone(name string) Reply {
	r, err := s.book.Find(name)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Kind: ReplyInfo, Text: joinValues(r.Phones())}
}

// Add creates a contact with one phone number. Adding a name that is
// already present fails; Change updates an existing contact instead.
func (s *Session) Add(name, phone string) Reply {
	// The name conflict wins over phone validation, so a malformed
	// number on an existing name still reports the existing contact.
	if _, err := s.book.Find(name); err == nil {
		return errorReply(book.ErrContactExists)
	}

	r, err := book.NewRecord(name, []string{phone}, nil)
	if err != nil {
		return errorReply(err)
	}
	if err := s.book.Add(r); err != nil {
		return errorReply(err)
	}
	return s.saved("Contact added.")
}

// Change replaces a contact's first phone number, or adds the number
// when the contact has none.
func (s *Session) Change(name, phone string) Reply {
	r, err := s.book.Find(name)
	if err != nil {
		return errorReply(err)
	}

	phones := r.Phones()
	if len(phones) == 0 {
		err = r.AddPhone(phone)
	} else {
		err = r.EditPhone(phones[0].Value(), phone)
	}
	if err != nil {
		return errorReply(err)
	}
	return s.saved("Contact updated.")
}

// Email adds an email address to a contact, or lists the contact's
// addresses when address is empty.
func (s *Session) Email(name, address string) Reply {
	r, err := s.book.Find(name)
	if err != nil {
		return errorReply(err)
	}
	if address == "" {
		return Reply{Kind: ReplyInfo, Text: joinValues(r.Emails())}
	}
	if err := r.AddEmail(address); err != nil {
		return errorReply(err)
	}
	return s.saved("Email added.")
}

// Delete removes a contact.
func (s *Session) Delete(name string) Reply {
	if err := s.book.Delete(name); err != nil {
		return errorReply(err)
	}
	return s.saved("Contact deleted.")
}

// saved persists the book after a successful mutation, then reports text.
func (s *Session) saved(text string) Reply {
	if s.store != nil {
		if err := s.store.Save(s.book); err != nil {
			return errorReply(err)
		}
	}
	return Reply{Kind: ReplyInfo, Text: text}
}

// joinValues renders field values separated by "; ".
func joinValues(fields []book.Field) string {
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = f.Value()
	}
	return strings.Join(values, "; ")
}

// errorReply converts an error to its user-facing reply.
func errorReply(err error) Reply {
	return Reply{Kind: ReplyError, Text: message(err)}
}

// message maps book errors to the bot's user-facing wording. Unmapped
// errors (persistence failures) pass through as-is.
func message(err error) string {
	switch {
	case errors.Is(err, book.ErrContactNotFound):
		return "Contact does not exist."
	case errors.Is(err, book.ErrContactExists):
		return "Contact already exists"
	case errors.Is(err, book.ErrNameRequired):
		return "The contact name is required"
	case errors.Is(err, book.ErrPhoneNotFound):
		return "The contact phone number not found"
	case errors.Is(err, book.ErrPhoneExists):
		return "The contact phone number already exists"
	case errors.Is(err, book.ErrPhoneInvalid):
		return "The contact phone number must consist of exactly ten digits " +
			"and must not contain any letters or other characters, " +
			"except for phone number formatting symbols"
	case errors.Is(err, book.ErrEmailNotFound):
		return "The contact email address not found"
	case errors.Is(err, book.ErrEmailExists):
		return "The contact email address already exists"
	case errors.Is(err, book.ErrEmailInvalid):
		return "The contact email address must contain a local part and a domain " +
			"separated by the @ symbol"
	default:
		return err.Error()
	}
}
