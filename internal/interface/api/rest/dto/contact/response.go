package contact

type (
	Contact struct {
		ID          int64   `json:"id"`
		FirstName   string  `json:"first_name"`
		LastName    string  `json:"last_name"`
		Email       string  `json:"email"`
		PhoneNumber string  `json:"phone_number"`
		BornDate    string  `json:"born_date"`
		Description *string `json:"description"`
	}
	Contacts []Contact
)
