package book

import (
	"errors"
	"fmt"
)

// Failure categories. Every error returned by this package wraps exactly
// one of these, so callers can match a whole category with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalid       = errors.New("invalid")
)

// Lookup failures.
var (
	ErrContactNotFound = fmt.Errorf("book: contact %w", ErrNotFound)
	ErrPhoneNotFound   = fmt.Errorf("book: phone number %w", ErrNotFound)
	ErrEmailNotFound   = fmt.Errorf("book: email address %w", ErrNotFound)
)

// Uniqueness failures.
var (
	ErrContactExists = fmt.Errorf("book: contact %w", ErrAlreadyExists)
	ErrPhoneExists   = fmt.Errorf("book: phone number %w", ErrAlreadyExists)
	ErrEmailExists   = fmt.Errorf("book: email address %w", ErrAlreadyExists)
)

// Validation failures.
var (
	ErrNameRequired = fmt.Errorf("book: contact name %w: must not be empty", ErrInvalid)
	ErrPhoneInvalid = fmt.Errorf("book: phone number %w: must be exactly ten digits once spaces, parentheses, and dashes are stripped", ErrInvalid)
	ErrEmailInvalid = fmt.Errorf("book: email address %w: must have the shape local@domain.tld", ErrInvalid)
)
