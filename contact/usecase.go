package contact

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"phonebook/pkg/logger"
	"phonebook/pkg/metrics"
	"phonebook/pkg/sentry"

	"go.uber.org/zap"
)

type Service interface {
	Open(ctx context.Context) error
	Book() *Book
	AddContact(ctx context.Context, name string) (*Contact, error)
	RemoveContact(ctx context.Context, c *Contact) error
	RenameContact(ctx context.Context, c *Contact, name string) error
	AddNumber(ctx context.Context, c *Contact, number string, t Type) (*PhoneNumber, error)
	EditNumber(ctx context.Context, c *Contact, old *PhoneNumber, number string, t Type) (*PhoneNumber, error)
	RemoveNumber(ctx context.Context, c *Contact, p *PhoneNumber) error
	Sort(ctx context.Context) (SortState, error)
	Search(query string) []*Contact
}

// Repository persists the whole book at once.
type Repository interface {
	// EnsureInitialised creates an empty book in the backing store when none exists.
	EnsureInitialised(ctx context.Context) error
	LoadContacts(ctx context.Context) ([]*Contact, error)
	// SaveContacts replaces the stored book with contacts.
	SaveContacts(ctx context.Context, contacts []*Contact) error
}

type Option func(uc *Usecase)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(uc *Usecase) {
		uc.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *Usecase) {
		uc.metrics = m
	}
}

func WithBook(b *Book) Option {
	return func(uc *Usecase) {
		uc.book = b
	}
}

// Usecase orchestrates every mutation: validate, change the book, then save a
// full snapshot. A failed save leaves the in-memory change in place.
type Usecase struct {
	r       Repository
	book    *Book
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewUsecase(r Repository, opts ...Option) *Usecase {
	uc := &Usecase{
		r:      r,
		book:   NewBook(),
		logger: logger.NOOPLogger,
	}
	for _, fn := range opts {
		fn(uc)
	}
	return uc
}

func (uc *Usecase) Book() *Book {
	return uc.book
}

// Open initialises the backing store and loads the book from it. Any failure
// leaves an empty book in place; the returned error is informational and the
// usecase stays usable.
func (uc *Usecase) Open(ctx context.Context) error {
	uc.logger.Info("loading phone book")

	if err := uc.r.EnsureInitialised(ctx); err != nil {
		uc.logger.Errorw("cannot initialise phone book storage", "error", err)
	}

	contacts, err := uc.r.LoadContacts(ctx)
	if err != nil {
		uc.book.ReplaceAll(nil)
		uc.reportPersistence("load", err)
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	uc.book.ReplaceAll(contacts)
	uc.logger.Infow("phone book loaded", "contacts", uc.book.Len())
	return nil
}

// AddContact appends a contact without phones. The contact is returned even
// when only the save failed.
func (uc *Usecase) AddContact(ctx context.Context, name string) (*Contact, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, uc.reject(err, "name", name)
	}
	if uc.book.FindByName(name, true) != nil {
		return nil, uc.reject(ErrDuplicateName, "name", name)
	}

	c := New(name)
	uc.book.Add(c)
	uc.metrics.ContactAdded()
	uc.logger.Infow("contact added", "name", name)

	return c, uc.persist(ctx)
}

func (uc *Usecase) RemoveContact(ctx context.Context, c *Contact) error {
	if !uc.book.Remove(c) {
		return ErrNoSelection
	}
	uc.book.Selection().Clear()
	uc.metrics.ContactRemoved()
	uc.logger.Infow("contact removed", "name", c.Name)

	return uc.persist(ctx)
}

// RenameContact sets a new name. The name must keep its shape and must not
// clash with any other contact, ignoring case.
func (uc *Usecase) RenameContact(ctx context.Context, c *Contact, name string) error {
	if !uc.book.Contains(c) {
		return ErrNoSelection
	}
	name, err := NormalizeName(name)
	if err != nil {
		return uc.reject(err, "name", name)
	}
	for _, other := range uc.book.contacts {
		if other != c && strings.EqualFold(other.Name, name) {
			return uc.reject(ErrDuplicateName, "name", name)
		}
	}

	old := c.Name
	c.Name = name
	uc.book.Touch(c, true)
	uc.logger.Infow("contact renamed", "from", old, "to", name)

	return uc.persist(ctx)
}

func (uc *Usecase) AddNumber(ctx context.Context, c *Contact, number string, t Type) (*PhoneNumber, error) {
	if !uc.book.Contains(c) {
		return nil, ErrNoSelection
	}
	if err := ValidateNumberFormat(number, t); err != nil {
		return nil, uc.reject(err, "number", number)
	}
	// An exact duplicate is always a near-duplicate as well; checking it
	// first only sharpens the reason.
	if c.FindNumber(number) != nil {
		return nil, uc.reject(ErrDuplicateNumberInContact, "number", number)
	}
	if err := CheckNearDuplicate(uc.book.contacts, number, nil); err != nil {
		return nil, uc.reject(err, "number", number)
	}

	p := NewPhoneNumber(number, t)
	c.AddPhone(p)
	uc.book.Touch(c, false)
	uc.metrics.NumberAdded()
	uc.logger.Infow("number added", "name", c.Name, "number", number, "type", t)

	return p, uc.persist(ctx)
}

// EditNumber replaces old with a new phone appended at the end of the list.
// Near-duplicates are only searched in other contacts.
func (uc *Usecase) EditNumber(ctx context.Context, c *Contact, old *PhoneNumber, number string, t Type) (*PhoneNumber, error) {
	if !uc.book.Contains(c) || old == nil || !c.Owns(old) {
		return nil, ErrNoSelection
	}
	if err := ValidateNumberFormat(number, t); err != nil {
		return nil, uc.reject(err, "number", number)
	}
	if existing := c.FindNumber(number); existing != nil && existing != old {
		return nil, uc.reject(ErrDuplicateNumberInContact, "number", number)
	}
	if err := CheckNearDuplicate(uc.book.contacts, number, c); err != nil {
		return nil, uc.reject(err, "number", number)
	}

	p := NewPhoneNumber(number, t)
	c.RemovePhone(old)
	c.AddPhone(p)
	uc.book.Selection().ClearPhone()
	uc.book.Touch(c, false)
	uc.metrics.NumberAdded()
	uc.logger.Infow("number edited", "name", c.Name, "from", old.Number(), "to", number, "type", t)

	return p, uc.persist(ctx)
}

func (uc *Usecase) RemoveNumber(ctx context.Context, c *Contact, p *PhoneNumber) error {
	if !uc.book.Contains(c) || !c.RemovePhone(p) {
		return ErrNoSelection
	}
	uc.book.Selection().ClearPhone()
	uc.book.Touch(c, false)
	uc.metrics.NumberRemoved()
	uc.logger.Infow("number removed", "name", c.Name, "number", p.Number())

	return uc.persist(ctx)
}

// Sort toggles the book order by name. It sorts descending when the book is
// known or observed to be ascending, and ascending otherwise. An empty book
// is left alone.
func (uc *Usecase) Sort(ctx context.Context) (SortState, error) {
	b := uc.book
	if b.Len() == 0 {
		return b.SortState(), nil
	}

	state := Ascending
	if b.SortState() == Ascending || (b.SortState() == Unsorted && isAscending(b.contacts)) {
		state = Descending
	}

	sorted := slices.Clone(b.contacts)
	if state == Ascending {
		slices.SortStableFunc(sorted, byName)
	} else {
		slices.SortStableFunc(sorted, func(x, y *Contact) int { return byName(y, x) })
	}
	b.reorder(sorted, state)
	uc.metrics.Sorted(state.String())
	uc.logger.Infow("contacts sorted", "direction", state)

	return state, uc.persist(ctx)
}

// Search returns, in book order, the contacts whose name contains query
// ignoring case or that own a phone whose raw number contains it. An empty
// query returns the whole book.
func (uc *Usecase) Search(query string) []*Contact {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return uc.book.All()
	}

	var found []*Contact
	for _, c := range uc.book.contacts {
		if matches(c, query) {
			found = append(found, c)
		}
	}
	uc.logger.Debugw("search", "query", query, "found", len(found))
	return found
}

func matches(c *Contact, query string) bool {
	if strings.Contains(strings.ToLower(c.Name), query) {
		return true
	}
	for _, p := range c.Phones {
		if strings.Contains(p.Number(), query) {
			return true
		}
	}
	return false
}

func (uc *Usecase) persist(ctx context.Context) error {
	if err := uc.r.SaveContacts(ctx, uc.book.All()); err != nil {
		uc.reportPersistence("save", err)
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return nil
}

func (uc *Usecase) reportPersistence(op string, err error) {
	uc.metrics.PersistenceFailed(op)
	uc.logger.Errorw("phone book "+op+" failed", "error", err)
	sentry.WithTags(map[string]string{"operation": op}).Error(err)
}

func (uc *Usecase) reject(err error, field, value string) error {
	uc.metrics.Rejected(Reason(err))
	uc.logger.Warnw("rejected", "reason", Reason(err), field, value)
	return err
}
