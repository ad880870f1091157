package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"contacts-api/internal/application/ports"
	domain "contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/metrics"
	"contacts-api/internal/infrastructure/mq"
	"contacts-api/internal/interface/api/rest/dto/contact"
)

type ContactService struct {
	contactRepository domain.Repository
	publisher         ports.EventPublisher
	mCounter          *prometheus.CounterVec
	now               func() time.Time
}

// NewContactService wires the service. publisher may be nil when change
// notifications are disabled.
func NewContactService(
	contactRepository domain.Repository,
	publisher ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.ContactService {
	return &ContactService{
		contactRepository: contactRepository,
		publisher:         publisher,
		mCounter:          mCounter,
		now:               time.Now,
	}
}

func (cs *ContactService) FindContacts(ctx context.Context, userID user.ID, skip, limit int) (domain.Contacts, error) {
	return cs.contactRepository.ForUser(userID).FetchContacts(ctx, skip, limit)
}

func (cs *ContactService) FindContactByID(ctx context.Context, userID user.ID, id domain.ID) (*domain.Contact, error) {
	return cs.contactRepository.ForUser(userID).FetchContactByID(ctx, id)
}

func (cs *ContactService) FindByFirstName(ctx context.Context, userID user.ID, part string) (domain.Contacts, error) {
	return cs.contactRepository.ForUser(userID).FetchContactsByFirstName(ctx, part)
}

func (cs *ContactService) FindByLastName(ctx context.Context, userID user.ID, part string) (domain.Contacts, error) {
	return cs.contactRepository.ForUser(userID).FetchContactsByLastName(ctx, part)
}

func (cs *ContactService) FindByEmail(ctx context.Context, userID user.ID, part string) (domain.Contacts, error) {
	return cs.contactRepository.ForUser(userID).FetchContactsByEmail(ctx, part)
}

func (cs *ContactService) FindUpcomingBirthdays(ctx context.Context, userID user.ID) (domain.Contacts, error) {
	return cs.contactRepository.ForUser(userID).FetchUpcomingBirthdays(ctx, cs.now())
}

func (cs *ContactService) CreateContact(ctx context.Context, userID user.ID, c domain.Contact) (*domain.Contact, error) {
	cRet, err := cs.contactRepository.ForUser(userID).CreateContact(ctx, c)
	if err != nil {
		return nil, err
	}

	cs.notify(http.MethodPost, userID, cRet)
	cs.inc(metrics.ContactsCreated)

	return cRet, nil
}

func (cs *ContactService) UpdateContact(ctx context.Context, userID user.ID, id domain.ID, c domain.Contact) (*domain.Contact, error) {
	cRet, err := cs.contactRepository.ForUser(userID).UpdateContact(ctx, id, c)
	if err != nil {
		return nil, err
	}
	if cRet == nil {
		return nil, nil
	}

	cs.notify(http.MethodPut, userID, cRet)
	cs.inc(metrics.ContactsUpdated)

	return cRet, nil
}

func (cs *ContactService) DeleteContact(ctx context.Context, userID user.ID, id domain.ID) (*domain.Contact, error) {
	cRet, err := cs.contactRepository.ForUser(userID).DeleteContact(ctx, id)
	if err != nil {
		return nil, err
	}
	if cRet == nil {
		return nil, nil
	}

	cs.notify(http.MethodDelete, userID, cRet)
	cs.inc(metrics.ContactsDeleted)

	return cRet, nil
}

func (cs *ContactService) notify(method string, userID user.ID, c *domain.Contact) {
	if cs.publisher == nil || c == nil {
		return
	}

	ok := cs.publisher.Publish(mq.Event{
		Id:      uuid.New(),
		TS:      cs.now(),
		Method:  method,
		UserID:  int64(userID),
		Payload: contact.ToResponseContact(*c),
	})
	if !ok {
		cs.inc(metrics.EventsDropped)
	}
}

func (cs *ContactService) inc(result string) {
	if cs.mCounter != nil {
		cs.mCounter.WithLabelValues(result).Inc()
	}
}
