package book

import "regexp"

// Kind identifies the validation rule a Field was built with.
type Kind int

const (
	KindName  Kind = iota // Non-empty contact name.
	KindPhone             // Ten-digit phone number.
	KindEmail             // local@domain.tld email address.
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindPhone:
		return "phone"
	case KindEmail:
		return "email"
	default:
		return "unknown"
	}
}

// Validation patterns. Stateless, shared by all fields of the kind.
var (
	phoneStripPattern = regexp.MustCompile(`[()\s-]`)
	phoneShapePattern = regexp.MustCompile(`^\d{10}$`)
	emailStripPattern = regexp.MustCompile(`\s`)
	emailShapePattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// Field is a validated scalar. The stored value is always the normalized
// form, never raw input. Fields are immutable once constructed; an edit
// replaces the whole Field in its owning Record.
type Field struct {
	kind  Kind
	value string
}

// Kind reports which validation rule produced the field.
func (f Field) Kind() Kind { return f.kind }

// Value returns the normalized form.
func (f Field) Value() string { return f.value }

func (f Field) String() string { return f.value }

// NewName wraps a contact name. The name is stored as given, with no
// trimming or case folding. Fails with ErrNameRequired when raw is empty.
func NewName(raw string) (Field, error) {
	if raw == "" {
		return Field{}, ErrNameRequired
	}
	return Field{kind: KindName, value: raw}, nil
}

// NewPhone normalizes raw and wraps it as a phone Field.
func NewPhone(raw string) (Field, error) {
	value, err := NormalizePhone(raw)
	if err != nil {
		return Field{}, err
	}
	return Field{kind: KindPhone, value: value}, nil
}

// NewEmail normalizes raw and wraps it as an email Field.
func NewEmail(raw string) (Field, error) {
	value, err := NormalizeEmail(raw)
	if err != nil {
		return Field{}, err
	}
	return Field{kind: KindEmail, value: value}, nil
}

// NormalizePhone strips spaces, parentheses, and dashes anywhere in raw,
// then requires the result to be exactly ten ASCII digits. Normalization
// is idempotent: a normalized value passes through unchanged. Fails with
// ErrPhoneInvalid.
func NormalizePhone(raw string) (string, error) {
	if raw == "" {
		return "", ErrPhoneInvalid
	}
	value := phoneStripPattern.ReplaceAllString(raw, "")
	if !phoneShapePattern.MatchString(value) {
		return "", ErrPhoneInvalid
	}
	return value, nil
}

// NormalizeEmail strips all whitespace anywhere in raw, then requires the
// result to be a local part and a dotted domain joined by @. Idempotent,
// same contract as NormalizePhone. Fails with ErrEmailInvalid.
func NormalizeEmail(raw string) (string, error) {
	if raw == "" {
		return "", ErrEmailInvalid
	}
	value := emailStripPattern.ReplaceAllString(raw, "")
	if !emailShapePattern.MatchString(value) {
		return "", ErrEmailInvalid
	}
	return value, nil
}
