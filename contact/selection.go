package contact

type SelectionState int

const (
	NoContact SelectionState = iota
	ContactOnly
	ContactAndNumber
)

func (s SelectionState) String() string {
	switch s {
	case ContactOnly:
		return "contact"
	case ContactAndNumber:
		return "contact and number"
	}
	return "none"
}

// Operation is a user action gated by the selection.
type Operation int

const (
	OpAddContact Operation = iota
	OpSort
	OpSearch
	OpEditContact
	OpRemoveContact
	OpAddNumber
	OpEditNumber
	OpRemoveNumber
)

func (op Operation) requires() SelectionState {
	switch op {
	case OpEditContact, OpRemoveContact, OpAddNumber:
		return ContactOnly
	case OpEditNumber, OpRemoveNumber:
		return ContactAndNumber
	}
	return NoContact
}

// Selection is what the user currently points at: a contact and optionally
// one of its phones.
type Selection struct {
	contact *Contact
	phone   *PhoneNumber
}

func (s *Selection) State() SelectionState {
	switch {
	case s.contact == nil:
		return NoContact
	case s.phone == nil:
		return ContactOnly
	}
	return ContactAndNumber
}

// Allows reports whether op is legal in the current state.
func (s *Selection) Allows(op Operation) bool {
	return s.State() >= op.requires()
}

// SelectContact points at c and drops any phone selection. A nil c clears
// the selection.
func (s *Selection) SelectContact(c *Contact) {
	s.contact = c
	s.phone = nil
}

// SelectPhone points at p, which must belong to the selected contact.
func (s *Selection) SelectPhone(p *PhoneNumber) error {
	if s.contact == nil || p == nil || !s.contact.Owns(p) {
		return ErrNoSelection
	}
	s.phone = p
	return nil
}

func (s *Selection) Contact() (*Contact, error) {
	if s.contact == nil {
		return nil, ErrNoSelection
	}
	return s.contact, nil
}

func (s *Selection) Phone() (*Contact, *PhoneNumber, error) {
	if s.contact == nil || s.phone == nil {
		return nil, nil, ErrNoSelection
	}
	return s.contact, s.phone, nil
}

func (s *Selection) ClearPhone() {
	s.phone = nil
}

func (s *Selection) Clear() {
	s.contact = nil
	s.phone = nil
}
