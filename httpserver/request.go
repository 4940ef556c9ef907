package httpserver

import "phonebook/contact"

// Names and numbers are checked against the same character filters the
// console applies while typing. Shape and uniqueness rules stay in the usecase.

type AddContactRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100,contactname"`
}

type RenameContactRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100,contactname"`
}

type NumberRequest struct {
	Number string `json:"number" validate:"required,max=20,phoneinput"`
	Type   string `json:"type" validate:"omitempty,phonetype"`
}

// PhoneType defaults to mobile, like the number dialog.
func (r NumberRequest) PhoneType() contact.Type {
	if r.Type == "" {
		return contact.Mobile
	}
	return contact.Type(r.Type)
}

type PhoneResponse struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

type ContactResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Phones []PhoneResponse `json:"phones"`
}

func toPhoneResponse(p *contact.PhoneNumber) PhoneResponse {
	return PhoneResponse{Number: p.Number(), Type: string(p.Type())}
}

func toPhoneResponses(phones []*contact.PhoneNumber) []PhoneResponse {
	out := make([]PhoneResponse, 0, len(phones))
	for _, p := range phones {
		out = append(out, toPhoneResponse(p))
	}
	return out
}

func toContactResponse(c *contact.Contact) ContactResponse {
	return ContactResponse{
		ID:     c.ID.String(),
		Name:   c.Name,
		Phones: toPhoneResponses(c.Phones),
	}
}

func toContactResponses(contacts []*contact.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, toContactResponse(c))
	}
	return out
}
