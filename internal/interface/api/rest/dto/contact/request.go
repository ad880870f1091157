package contact

// Request is the body of create and update. Update is a full replace, so both
// take the same shape.
type Request struct {
	FirstName   string  `json:"first_name" binding:"required,max=50"`
	LastName    string  `json:"last_name" binding:"required,max=50"`
	Email       string  `json:"email" binding:"required,email,max=100"`
	PhoneNumber string  `json:"phone_number" binding:"required,max=30"`
	BornDate    string  `json:"born_date" binding:"required"`
	Description *string `json:"description" binding:"omitempty,max=250"`
}
