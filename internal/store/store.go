// Package store persists the contact book as a flat JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/smileynet/rolodex/internal/book"
)

// ErrNoPath indicates the store was built without a file path.
var ErrNoPath = errors.New("store: book path is empty")

// FileStore persists a flattened name-to-phone mapping as one JSON file.
// Only each contact's first phone number survives a save; the format does
// not round-trip multi-phone or email data.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore that reads and writes the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string { return s.path }

// Save writes the book as a JSON object of name-to-phone pairs.
func (s *FileStore) Save(b *book.Book) error {
	if s.path == "" {
		return ErrNoPath
	}

	contacts := make(map[string]string, b.Len())
	for name, r := range b.All() {
		phone := ""
		if phones := r.Phones(); len(phones) > 0 {
			phone = phones[0].Value()
		}
		contacts[name] = phone
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: creating directory: %w", err)
	}

	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("store: writing %s: %w", s.path, err)
	}
	return nil
}

// Load reads the book back from the file.
// Returns (book, true, nil) if the file exists, (empty book, false, nil)
// if it does not. Entries rebuild through the regular record constructor,
// so a file holding invalid names or phones fails with the book package's
// own validation errors.
func (s *FileStore) Load() (*book.Book, bool, error) {
	if s.path == "" {
		return nil, false, ErrNoPath
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return book.NewBook(), false, nil
		}
		return nil, false, fmt.Errorf("store: reading %s: %w", s.path, err)
	}

	var contacts map[string]string
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, false, fmt.Errorf("store: parsing %s: %w", s.path, err)
	}

	// A JSON object carries no order of its own, so entries load sorted
	// by name.
	names := make([]string, 0, len(contacts))
	for name := range contacts {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]*book.Record, 0, len(names))
	for _, name := range names {
		var phones []string
		if contacts[name] != "" {
			phones = []string{contacts[name]}
		}
		r, err := book.NewRecord(name, phones, nil)
		if err != nil {
			return nil, false, fmt.Errorf("store: entry %q: %w", name, err)
		}
		records = append(records, r)
	}
	return book.NewBook(records...), true, nil
}
