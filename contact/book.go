package contact

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

type EventKind int

const (
	ContactAdded EventKind = iota + 1
	ContactRemoved
	ContactChanged
	Reordered
	Replaced
)

// Event describes a change of the book. Contact is nil for Reordered and
// Replaced.
type Event struct {
	Kind    EventKind
	Contact *Contact
}

type SortState int

const (
	Unsorted SortState = iota
	Ascending
	Descending
)

func (s SortState) String() string {
	switch s {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	}
	return "unsorted"
}

// Book is the authoritative ordered list of contacts together with the
// current selection. It has a single mutator and is not safe for concurrent
// use.
type Book struct {
	contacts  []*Contact
	selection Selection
	sortState SortState

	observers map[int]func(Event)
	nextObs   int
}

func NewBook(contacts ...*Contact) *Book {
	b := &Book{observers: make(map[int]func(Event))}
	b.contacts = compact(contacts)
	return b
}

// All returns the contacts in book order. The slice is a copy; the contacts
// are not.
func (b *Book) All() []*Contact {
	return slices.Clone(b.contacts)
}

func (b *Book) Len() int {
	return len(b.contacts)
}

func (b *Book) Selection() *Selection {
	return &b.selection
}

func (b *Book) SortState() SortState {
	return b.sortState
}

// FindByName returns the first contact called name.
func (b *Book) FindByName(name string, caseInsensitive bool) *Contact {
	for _, c := range b.contacts {
		if c.Name == name || (caseInsensitive && strings.EqualFold(c.Name, name)) {
			return c
		}
	}
	return nil
}

func (b *Book) FindByID(id uuid.UUID) *Contact {
	for _, c := range b.contacts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (b *Book) Contains(c *Contact) bool {
	return c != nil && slices.Contains(b.contacts, c)
}

// Add appends c. Uniqueness is the caller's concern.
func (b *Book) Add(c *Contact) {
	if c == nil {
		return
	}
	b.contacts = append(b.contacts, c)
	b.sortState = Unsorted
	b.notify(Event{Kind: ContactAdded, Contact: c})
}

// Remove removes c by identity and reports whether it was present.
func (b *Book) Remove(c *Contact) bool {
	i := slices.Index(b.contacts, c)
	if c == nil || i < 0 {
		return false
	}
	b.contacts = slices.Delete(b.contacts, i, i+1)
	if b.selection.contact == c {
		b.selection.Clear()
	}
	b.notify(Event{Kind: ContactRemoved, Contact: c})
	return true
}

// Touch announces an in-place change of c, such as a rename or a phone edit.
func (b *Book) Touch(c *Contact, renamed bool) {
	if renamed {
		b.sortState = Unsorted
	}
	b.notify(Event{Kind: ContactChanged, Contact: c})
}

// ReplaceAll swaps the whole sequence. Nil entries are dropped.
func (b *Book) ReplaceAll(contacts []*Contact) {
	b.contacts = compact(contacts)
	b.sortState = Unsorted
	b.selection.Clear()
	b.notify(Event{Kind: Replaced})
}

func (b *Book) reorder(contacts []*Contact, state SortState) {
	b.contacts = contacts
	b.sortState = state
	b.notify(Event{Kind: Reordered})
}

// Subscribe registers fn for every change and returns a function removing it.
func (b *Book) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := b.nextObs
	b.nextObs++
	b.observers[id] = fn
	return func() { delete(b.observers, id) }
}

func (b *Book) notify(e Event) {
	for _, fn := range b.observers {
		fn(e)
	}
}

func compact(contacts []*Contact) []*Contact {
	out := make([]*Contact, 0, len(contacts))
	for _, c := range contacts {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func byName(a, b *Contact) int {
	return strings.Compare(a.Name, b.Name)
}

// isAscending reports whether contacts already are in ascending name order.
func isAscending(contacts []*Contact) bool {
	return slices.IsSortedFunc(contacts, byName)
}
