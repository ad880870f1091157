package contact

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"contacts-api/internal/domain/contact"
)

const DateLayout = "2006-01-02"

func ToResponseContact(cDomain contact.Contact) Contact {
	var c = Contact{
		ID:          int64(cDomain.ID),
		FirstName:   cDomain.FirstName,
		LastName:    cDomain.LastName,
		Email:       cDomain.Email,
		PhoneNumber: cDomain.PhoneNumber,
		BornDate:    cDomain.BornDate.Format(DateLayout),
		Description: cDomain.Description,
	}

	return c
}

func ToResponseContacts(csDomain contact.Contacts) Contacts {
	cs := make(Contacts, len(csDomain))
	for idx, c := range csDomain {
		cs[idx] = ToResponseContact(*c)
	}

	return cs
}

// ToDomainContact trims the text fields and puts them in Unicode NFC so that
// the stored text and later search terms compare byte for byte.
func ToDomainContact(cRequest Request) (contact.Contact, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(cRequest.BornDate))
	if err != nil {
		return contact.Contact{}, errors.New("invalid born_date format, want YYYY-MM-DD")
	}

	var description *string
	if cRequest.Description != nil {
		s := Normalize(*cRequest.Description)
		description = &s
	}

	var c = contact.Contact{
		FirstName:   Normalize(cRequest.FirstName),
		LastName:    Normalize(cRequest.LastName),
		Email:       Normalize(cRequest.Email),
		PhoneNumber: strings.TrimSpace(cRequest.PhoneNumber),
		BornDate:    d,
		Description: description,
	}

	return c, nil
}

func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
