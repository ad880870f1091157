package contact

import "time"

type (
	Contact struct {
		ID          int64
		UserID      int64
		FirstName   string
		LastName    string
		Email       string
		PhoneNumber string
		BornDate    time.Time
		Description *string
	}
	Contacts []*Contact
)
