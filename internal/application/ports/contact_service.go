package ports

import (
	"context"

	"contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
)

type ContactService interface {
	FindContacts(ctx context.Context, userID user.ID, skip, limit int) (contact.Contacts, error)
	FindContactByID(ctx context.Context, userID user.ID, id contact.ID) (*contact.Contact, error)
	FindByFirstName(ctx context.Context, userID user.ID, part string) (contact.Contacts, error)
	FindByLastName(ctx context.Context, userID user.ID, part string) (contact.Contacts, error)
	FindByEmail(ctx context.Context, userID user.ID, part string) (contact.Contacts, error)
	FindUpcomingBirthdays(ctx context.Context, userID user.ID) (contact.Contacts, error)
	CreateContact(ctx context.Context, userID user.ID, c contact.Contact) (*contact.Contact, error)
	UpdateContact(ctx context.Context, userID user.ID, id contact.ID, c contact.Contact) (*contact.Contact, error)
	DeleteContact(ctx context.Context, userID user.ID, id contact.ID) (*contact.Contact, error)
}
