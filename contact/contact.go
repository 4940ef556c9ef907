package contact

import (
	"errors"

	"phonebook/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidName              = errs.Errorf(errs.EINVALID, "invalid name")
	ErrDuplicateName            = errs.Errorf(errs.ECONFLICT, "contact already exists")
	ErrInvalidNumberFormat      = errs.Errorf(errs.EINVALID, "invalid number format")
	ErrNearDuplicateNumber      = errs.Errorf(errs.ECONFLICT, "number is too similar to an existing one")
	ErrDuplicateNumberInContact = errs.Errorf(errs.ECONFLICT, "number already exists for contact")
	ErrPersistenceFailed        = errs.Errorf(errs.EINTERNAL, "persistence failed")
	ErrNoSelection              = errs.Errorf(errs.ENOTFOUND, "nothing selected")
)

var reasons = []struct {
	err    error
	reason string
}{
	{ErrInvalidName, "invalid_name"},
	{ErrDuplicateName, "duplicate_name"},
	{ErrInvalidNumberFormat, "invalid_number_format"},
	{ErrNearDuplicateNumber, "near_duplicate_number"},
	{ErrDuplicateNumberInContact, "duplicate_number_in_contact"},
	{ErrPersistenceFailed, "persistence_failed"},
	{ErrNoSelection, "no_selection"},
}

// Reason returns a stable label for one of the package errors, or an empty
// string when err is not one of them.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ""
}

// IsValidation reports whether err rejects user input. Validation errors
// discard the mutation they guard.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrInvalidNumberFormat) ||
		errors.Is(err, ErrNearDuplicateNumber) ||
		errors.Is(err, ErrDuplicateNumberInContact)
}

// Contact is a named entry of the book. It owns its phone list, which keeps
// insertion order.
type Contact struct {
	// ID is a runtime handle. It is not persisted and changes on every load.
	ID     uuid.UUID
	Name   string
	Phones []*PhoneNumber
}

func New(name string, phones ...*PhoneNumber) *Contact {
	return &Contact{
		ID:     uuid.New(),
		Name:   name,
		Phones: phones,
	}
}

func (c *Contact) String() string {
	return c.Name
}

func (c *Contact) AddPhone(p *PhoneNumber) {
	c.Phones = append(c.Phones, p)
}

// RemovePhone removes p by identity and reports whether it was present.
func (c *Contact) RemovePhone(p *PhoneNumber) bool {
	for i, existing := range c.Phones {
		if existing == p {
			c.Phones = append(c.Phones[:i:i], c.Phones[i+1:]...)
			return true
		}
	}
	return false
}

// Owns reports whether p is one of the contact's phones.
func (c *Contact) Owns(p *PhoneNumber) bool {
	for _, existing := range c.Phones {
		if existing == p {
			return true
		}
	}
	return false
}

// FindNumber returns the phone whose raw number equals number.
func (c *Contact) FindNumber(number string) *PhoneNumber {
	for _, p := range c.Phones {
		if p.Number() == number {
			return p
		}
	}
	return nil
}
