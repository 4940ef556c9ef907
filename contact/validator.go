package contact

import (
	"regexp"
	"strings"
)

var (
	namePattern        = regexp.MustCompile(`^[А-Яа-яA-Za-z ]+$`)
	nameInputPattern   = regexp.MustCompile(`^[а-яА-Яa-zA-Z ]*$`)
	numberInputPattern = regexp.MustCompile(`^[+]?\d*$`)

	defaultFormat = regexp.MustCompile(`^\d{6,11}$`)
	formats       = map[Type]*regexp.Regexp{
		Mobile: regexp.MustCompile(`^[78]\d{10}$`),
		Home:   regexp.MustCompile(`^\d{6,7}$`),
		Work:   regexp.MustCompile(`^\d{6,11}$`),
	}
)

// NameInputAllowed reports whether s may stay in the name field while it is
// being typed. Disallowed input is reverted by the shell.
func NameInputAllowed(s string) bool {
	return nameInputPattern.MatchString(s)
}

// NumberInputAllowed reports whether s may stay in the number field: digits
// with an optional leading '+'.
func NumberInputAllowed(s string) bool {
	return numberInputPattern.MatchString(s)
}

// NormalizeName trims the name and checks its shape: non-empty, Cyrillic or
// Latin letters and spaces only. The trimmed name is returned either way.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !namePattern.MatchString(name) {
		return name, ErrInvalidName
	}
	return name, nil
}

// Digits strips every character that is not an ASCII digit.
func Digits(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for i := 0; i < len(number); i++ {
		if ch := number[i]; ch >= '0' && ch <= '9' {
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// ValidateNumberFormat checks the digits of number against the rule of its
// type. Unknown types use the permissive 6 to 11 digits rule.
func ValidateNumberFormat(number string, t Type) error {
	if number == "" {
		return ErrInvalidNumberFormat
	}
	format, ok := formats[t]
	if !ok {
		format = defaultFormat
	}
	if !format.MatchString(Digits(number)) {
		return ErrInvalidNumberFormat
	}
	return nil
}

// NearDuplicate reports whether two numbers have digit forms of equal length
// that agree everywhere but the first digit, like "+7..." and "8...".
func NearDuplicate(a, b string) bool {
	da, db := Digits(a), Digits(b)
	if len(da) == 0 || len(da) != len(db) {
		return false
	}
	return da[1:] == db[1:]
}

// CheckNearDuplicate rejects number when any phone of any contact other than
// exclude is a near-duplicate of it.
func CheckNearDuplicate(contacts []*Contact, number string, exclude *Contact) error {
	for _, c := range contacts {
		if c == nil || c == exclude {
			continue
		}
		for _, p := range c.Phones {
			if NearDuplicate(p.Number(), number) {
				return ErrNearDuplicateNumber
			}
		}
	}
	return nil
}

// ValidateNumber composes the number checks in order: empty, format, then
// near-duplicate. The first failure wins.
func ValidateNumber(contacts []*Contact, number string, t Type, exclude *Contact) error {
	if err := ValidateNumberFormat(number, t); err != nil {
		return err
	}
	return CheckNearDuplicate(contacts, number, exclude)
}
