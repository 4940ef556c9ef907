package contact

// Type classifies a phone number and selects its format rule.
type Type string

const (
	Mobile Type = "Мобильный"
	Work   Type = "Рабочий"
	Home   Type = "Домашний"
	Fax    Type = "Факс"
)

// Types returns the known type tags in the order the number dialog offers them.
func Types() []Type {
	return []Type{Mobile, Work, Home, Fax}
}

// Known reports whether t belongs to the closed tag set.
func (t Type) Known() bool {
	switch t {
	case Mobile, Work, Home, Fax:
		return true
	}
	return false
}

// PhoneNumber is an immutable pair of a raw number and its type tag.
type PhoneNumber struct {
	number string
	kind   Type
}

func NewPhoneNumber(number string, t Type) *PhoneNumber {
	return &PhoneNumber{number: number, kind: t}
}

// Number returns the number as entered, possibly with a leading '+'.
func (p *PhoneNumber) Number() string {
	return p.number
}

func (p *PhoneNumber) Type() Type {
	return p.kind
}

// Digits returns the number with every non-digit removed.
func (p *PhoneNumber) Digits() string {
	return Digits(p.number)
}

func (p *PhoneNumber) String() string {
	return p.number + " (" + string(p.kind) + ")"
}
