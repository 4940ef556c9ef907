package contact_test

import (
	"testing"

	"phonebook/contact"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{name: "cyrillic", input: "Иван", expected: "Иван"},
		{name: "latin with space", input: "John Doe", expected: "John Doe"},
		{name: "mixed alphabets", input: "Иван Smith", expected: "Иван Smith"},
		{name: "yo is outside the accepted alphabet", input: "Пётр", err: contact.ErrInvalidName},
		{name: "surrounding spaces", input: "  Петр ", expected: "Петр"},
		{name: "empty", input: "", err: contact.ErrInvalidName},
		{name: "only spaces", input: "   ", err: contact.ErrInvalidName},
		{name: "digits", input: "Agent 007", err: contact.ErrInvalidName},
		{name: "punctuation", input: "O'Brien", err: contact.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := contact.NormalizeName(tt.input)

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateNumberFormat(t *testing.T) {
	tests := []struct {
		name   string
		number string
		typ    contact.Type
		valid  bool
	}{
		{name: "mobile with plus", number: "+79161234567", typ: contact.Mobile, valid: true},
		{name: "mobile with leading 8", number: "89161234567", typ: contact.Mobile, valid: true},
		{name: "mobile with leading 9", number: "99161234567", typ: contact.Mobile, valid: false},
		{name: "mobile too short", number: "7916123456", typ: contact.Mobile, valid: false},
		{name: "home five digits", number: "12345", typ: contact.Home, valid: false},
		{name: "home six digits", number: "123456", typ: contact.Home, valid: true},
		{name: "home seven digits", number: "1234567", typ: contact.Home, valid: true},
		{name: "home eight digits", number: "12345678", typ: contact.Home, valid: false},
		{name: "work eleven digits", number: "12345678901", typ: contact.Work, valid: true},
		{name: "work twelve digits", number: "123456789012", typ: contact.Work, valid: false},
		{name: "fax uses permissive rule", number: "123456", typ: contact.Fax, valid: true},
		{name: "unknown type uses permissive rule", number: "+1234567890", typ: contact.Type("Спутниковый"), valid: true},
		{name: "empty", number: "", typ: contact.Mobile, valid: false},
		{name: "no digits", number: "+", typ: contact.Work, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := contact.ValidateNumberFormat(tt.number, tt.typ)

			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, contact.ErrInvalidNumberFormat)
			}
		})
	}
}

func TestNearDuplicate(t *testing.T) {
	assert.True(t, contact.NearDuplicate("+79161234567", "89161234567"), "plus seven and eight variants")
	assert.True(t, contact.NearDuplicate("79161112233", "79161112233"), "identical numbers")
	assert.False(t, contact.NearDuplicate("79161112233", "79161112234"), "different tail")
	assert.False(t, contact.NearDuplicate("9161112233", "79161112233"), "different length")
	assert.False(t, contact.NearDuplicate("", ""), "empty numbers")
}

func TestCheckNearDuplicate(t *testing.T) {
	a := contact.New("A", contact.NewPhoneNumber("79161112233", contact.Mobile))
	b := contact.New("B")
	contacts := []*contact.Contact{a, nil, b}

	t.Run("should reject a near-duplicate of another contact's number", func(t *testing.T) {
		err := contact.CheckNearDuplicate(contacts, "89161112233", b)

		assert.ErrorIs(t, err, contact.ErrNearDuplicateNumber)
	})

	t.Run("should skip the excluded contact", func(t *testing.T) {
		err := contact.CheckNearDuplicate(contacts, "89161112233", a)

		assert.NoError(t, err)
	})

	t.Run("should accept an unrelated number", func(t *testing.T) {
		err := contact.CheckNearDuplicate(contacts, "89160000000", nil)

		assert.NoError(t, err)
	})
}

func TestValidateNumber(t *testing.T) {
	a := contact.New("A", contact.NewPhoneNumber("79161112233", contact.Mobile))

	t.Run("should check the format before near-duplicates", func(t *testing.T) {
		err := contact.ValidateNumber([]*contact.Contact{a}, "7916111223", contact.Mobile, nil)

		assert.ErrorIs(t, err, contact.ErrInvalidNumberFormat)
	})

	t.Run("should report near-duplicates of a well formed number", func(t *testing.T) {
		err := contact.ValidateNumber([]*contact.Contact{a}, "+7 916 111-22-33", contact.Mobile, nil)

		assert.ErrorIs(t, err, contact.ErrNearDuplicateNumber)
	})
}

func TestInputFilters(t *testing.T) {
	assert.True(t, contact.NameInputAllowed(""))
	assert.True(t, contact.NameInputAllowed("Анна Lee "))
	assert.False(t, contact.NameInputAllowed("Анна1"))

	assert.True(t, contact.NumberInputAllowed(""))
	assert.True(t, contact.NumberInputAllowed("+7916"))
	assert.False(t, contact.NumberInputAllowed("7+916"))
	assert.False(t, contact.NumberInputAllowed("8 916"))
}

func TestReason(t *testing.T) {
	assert.Equal(t, "near_duplicate_number", contact.Reason(contact.ErrNearDuplicateNumber))
	assert.Equal(t, "", contact.Reason(assert.AnError))
	assert.True(t, contact.IsValidation(contact.ErrDuplicateName))
	assert.False(t, contact.IsValidation(contact.ErrPersistenceFailed))
	assert.False(t, contact.IsValidation(contact.ErrNoSelection))
}
