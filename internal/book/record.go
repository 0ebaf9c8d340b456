package book

import (
	"fmt"
	"strings"
)

// Record is one contact: a fixed name plus insertion-ordered phone and
// email fields, each unique by normalized value. The name is set at
// construction and has no rename operation. A failed mutation leaves the
// record unchanged.
type Record struct {
	name   Field
	phones []Field
	emails []Field
}

// NewRecord builds a contact with optional seed phone and email lists.
// Seed values are validated like explicit adds, but a value repeating an
// earlier entry in the same list collapses to the first occurrence
// instead of failing the way AddPhone and AddEmail do.
func NewRecord(name string, phones, emails []string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	r := &Record{name: n}
	for _, raw := range phones {
		value, err := NormalizePhone(raw)
		if err != nil {
			return nil, err
		}
		if r.phoneIndex(value) < 0 {
			r.phones = append(r.phones, Field{kind: KindPhone, value: value})
		}
	}
	for _, raw := range emails {
		value, err := NormalizeEmail(raw)
		if err != nil {
			return nil, err
		}
		if r.emailIndex(value) < 0 {
			r.emails = append(r.emails, Field{kind: KindEmail, value: value})
		}
	}
	return r, nil
}

// Name returns the contact name field.
func (r *Record) Name() Field { return r.name }

// Phones returns the phone fields in insertion order.
func (r *Record) Phones() []Field { return append([]Field(nil), r.phones...) }

// Emails returns the email fields in insertion order.
func (r *Record) Emails() []Field { return append([]Field(nil), r.emails...) }

// phoneIndex locates an already-normalized value, -1 if absent.
func (r *Record) phoneIndex(value string) int {
	for i, f := range r.phones {
		if f.value == value {
			return i
		}
	}
	return -1
}

// emailIndex locates an already-normalized value, -1 if absent.
func (r *Record) emailIndex(value string) int {
	for i, f := range r.emails {
		if f.value == value {
			return i
		}
	}
	return -1
}

// FindPhone returns the phone field matching the normalized form of raw.
// Fails with ErrPhoneInvalid if raw does not normalize, ErrPhoneNotFound
// if no entry matches.
func (r *Record) FindPhone(raw string) (Field, error) {
	value, err := NormalizePhone(raw)
	if err != nil {
		return Field{}, err
	}
	i := r.phoneIndex(value)
	if i < 0 {
		return Field{}, fmt.Errorf("%w: %s", ErrPhoneNotFound, value)
	}
	return r.phones[i], nil
}

// AddPhone appends a phone to the end of the sequence. Fails with
// ErrPhoneExists if the normalized value is already present.
func (r *Record) AddPhone(raw string) error {
	value, err := NormalizePhone(raw)
	if err != nil {
		return err
	}
	if r.phoneIndex(value) >= 0 {
		return fmt.Errorf("%w: %s", ErrPhoneExists, value)
	}
	r.phones = append(r.phones, Field{kind: KindPhone, value: value})
	return nil
}

// RemovePhone removes the phone matching the normalized form of raw.
func (r *Record) RemovePhone(raw string) error {
	value, err := NormalizePhone(raw)
	if err != nil {
		return err
	}
	i := r.phoneIndex(value)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPhoneNotFound, value)
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return nil
}

// EditPhone replaces the entry matching old with the normalized new value,
// keeping its position in the sequence. The new value is validated before
// old is looked up, and is not checked against the other entries.
func (r *Record) EditPhone(old, new string) error {
	newValue, err := NormalizePhone(new)
	if err != nil {
		return err
	}
	oldValue, err := NormalizePhone(old)
	if err != nil {
		return err
	}
	i := r.phoneIndex(oldValue)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPhoneNotFound, oldValue)
	}
	r.phones[i] = Field{kind: KindPhone, value: newValue}
	return nil
}

// FindEmail returns the email field matching the normalized form of raw.
// Fails with ErrEmailInvalid if raw does not normalize, ErrEmailNotFound
// if no entry matches.
func (r *Record) FindEmail(raw string) (Field, error) {
	value, err := NormalizeEmail(raw)
	if err != nil {
		return Field{}, err
	}
	i := r.emailIndex(value)
	if i < 0 {
		return Field{}, fmt.Errorf("%w: %s", ErrEmailNotFound, value)
	}
	return r.emails[i], nil
}

// AddEmail appends an email to the end of the sequence. Fails with
// ErrEmailExists if the normalized value is already present.
func (r *Record) AddEmail(raw string) error {
	value, err := NormalizeEmail(raw)
	if err != nil {
		return err
	}
	if r.emailIndex(value) >= 0 {
		return fmt.Errorf("%w: %s", ErrEmailExists, value)
	}
	r.emails = append(r.emails, Field{kind: KindEmail, value: value})
	return nil
}

// RemoveEmail removes the email matching the normalized form of raw.
func (r *Record) RemoveEmail(raw string) error {
	value, err := NormalizeEmail(raw)
	if err != nil {
		return err
	}
	i := r.emailIndex(value)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEmailNotFound, value)
	}
	r.emails = append(r.emails[:i], r.emails[i+1:]...)
	return nil
}

// EditEmail replaces the entry matching old with the normalized new value,
// keeping its position in the sequence. Same contract as EditPhone.
func (r *Record) EditEmail(old, new string) error {
	newValue, err := NormalizeEmail(new)
	if err != nil {
		return err
	}
	oldValue, err := NormalizeEmail(old)
	if err != nil {
		return err
	}
	i := r.emailIndex(oldValue)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEmailNotFound, oldValue)
	}
	r.emails[i] = Field{kind: KindEmail, value: newValue}
	return nil
}

// String renders the contact on one line: the name, then the phone values,
// then the email values, multi-values joined by "; ".
func (r *Record) String() string {
	return fmt.Sprintf("Contact name: %s, phones: %s, emails: %s",
		r.name.value, joinValues(r.phones), joinValues(r.emails))
}

// joinValues renders field values separated by "; ".
func joinValues(fields []Field) string {
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = f.value
	}
	return strings.Join(values, "; ")
}
