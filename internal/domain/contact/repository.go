package contact

import (
	"context"
	"errors"
	"time"

	"contacts-api/internal/domain/user"
)

// ErrInvalidContact is returned when the store rejects the submitted values.
var ErrInvalidContact = errors.New("invalid contact data")

// Repository hands out handles bound to a single owner.
type Repository interface {
	ForUser(userID user.ID) UserRepository
}

// UserRepository only ever sees contacts of the owner it was created for.
// A miss is reported as a nil result with a nil error.
type UserRepository interface {
	FetchContacts(ctx context.Context, skip, limit int) (Contacts, error)
	FetchContactByID(ctx context.Context, id ID) (*Contact, error)
	FetchContactsByFirstName(ctx context.Context, part string) (Contacts, error)
	FetchContactsByLastName(ctx context.Context, part string) (Contacts, error)
	FetchContactsByEmail(ctx context.Context, part string) (Contacts, error)
	FetchUpcomingBirthdays(ctx context.Context, today time.Time) (Contacts, error)
	CreateContact(ctx context.Context, req Contact) (*Contact, error)
	UpdateContact(ctx context.Context, id ID, req Contact) (*Contact, error)
	DeleteContact(ctx context.Context, id ID) (*Contact, error)
}
