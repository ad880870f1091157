package contact

import (
	"time"

	"contacts-api/internal/domain/user"
)

type (
	ID      int64
	Contact struct {
		ID          ID
		UserID      user.ID
		FirstName   string
		LastName    string
		Email       string
		PhoneNumber string
		BornDate    time.Time
		Description *string
	}
	Contacts []*Contact
)
