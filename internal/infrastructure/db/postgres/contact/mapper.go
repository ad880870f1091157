package contact

import (
	domain "contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
)

func fromDBModel(model *Contact) *domain.Contact {
	var c = &domain.Contact{
		ID:          domain.ID(model.ID),
		UserID:      user.ID(model.UserID),
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		Email:       model.Email,
		PhoneNumber: model.PhoneNumber,
		BornDate:    model.BornDate,
		Description: model.Description,
	}

	return c
}

func fromDBModels(models Contacts) domain.Contacts {
	cs := make(domain.Contacts, len(models))
	for idx, c := range models {
		cs[idx] = fromDBModel(c)
	}

	return cs
}
