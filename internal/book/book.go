// Package book implements the contact directory core: validated name,
// phone, and email fields, multi-valued contact records, and the
// name-keyed book that owns them. The package does no I/O and no
// formatting beyond error values and Record.String.
package book

import (
	"fmt"
	"iter"
)

// Book owns contact records keyed by name. Each record belongs to exactly
// one book entry, and the key is always the record's own name value.
// Iteration follows insertion order.
type Book struct {
	records map[string]*Record
	order   []string
}

// NewBook builds a book seeded with the given records. A record whose
// name matches an earlier record in the same call is dropped without
// error; the first occurrence wins. Explicit Add rejects the same
// collision instead.
func NewBook(records ...*Record) *Book {
	b := &Book{records: make(map[string]*Record)}
	for _, r := range records {
		if _, ok := b.records[r.name.value]; ok {
			continue
		}
		b.insert(r)
	}
	return b
}

func (b *Book) insert(r *Record) {
	b.records[r.name.value] = r
	b.order = append(b.order, r.name.value)
}

// Find returns the record stored under name. The lookup is an exact,
// case-sensitive string match on the stored name. Fails with
// ErrContactNotFound.
func (b *Book) Find(name string) (*Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContactNotFound, name)
	}
	return r, nil
}

// Add stores a record under its name value. Fails with ErrContactExists
// when that name is already taken.
func (b *Book) Add(r *Record) error {
	if _, ok := b.records[r.name.value]; ok {
		return fmt.Errorf("%w: %s", ErrContactExists, r.name.value)
	}
	b.insert(r)
	return nil
}

// Delete removes the record stored under name. Fails with
// ErrContactNotFound.
func (b *Book) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return fmt.Errorf("%w: %s", ErrContactNotFound, name)
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns the (name, record) pairs in insertion order. The sequence
// is lazy and can be ranged over any number of times.
func (b *Book) All() iter.Seq2[string, *Record] {
	return func(yield func(string, *Record) bool) {
		for _, name := range b.order {
			if !yield(name, b.records[name]) {
				return
			}
		}
	}
}

// Len reports the number of records.
func (b *Book) Len() int { return len(b.records) }
