package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"contacts-api/internal/domain/contact"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.TxBeginner
}

func NewRepository(db postgres.TxBeginner) contact.Repository {
	return &Repository{db: db}
}

func (r *Repository) ForUser(userID user.ID) contact.UserRepository {
	return &UserRepository{db: r.db, userID: int64(userID)}
}

// UserRepository binds userID as $1 of every statement it runs.
type UserRepository struct {
	db     postgres.TxBeginner
	userID int64
}

func (r *UserRepository) FetchContacts(ctx context.Context, skip, limit int) (contact.Contacts, error) {
	return r.queryContacts(ctx, SelectContacts, skip, limit)
}

func (r *UserRepository) FetchContactByID(ctx context.Context, id contact.ID) (*contact.Contact, error) {
	return r.queryContact(ctx, SelectContactByID, int64(id))
}

func (r *UserRepository) FetchContactsByFirstName(ctx context.Context, part string) (contact.Contacts, error) {
	return r.queryContacts(ctx, SelectContactsByFirstName, part)
}

func (r *UserRepository) FetchContactsByLastName(ctx context.Context, part string) (contact.Contacts, error) {
	return r.queryContacts(ctx, SelectContactsByLastName, part)
}

func (r *UserRepository) FetchContactsByEmail(ctx context.Context, part string) (contact.Contacts, error) {
	return r.queryContacts(ctx, SelectContactsByEmail, part)
}

func (r *UserRepository) FetchUpcomingBirthdays(ctx context.Context, today time.Time) (contact.Contacts, error) {
	return r.queryContacts(ctx, SelectContactsByBirthdayKeys, contact.BirthdayKeys(today))
}

func (r *UserRepository) CreateContact(ctx context.Context, req contact.Contact) (*contact.Contact, error) {
	c, err := r.queryContact(ctx, InsertContact,
		req.FirstName, req.LastName, req.Email, req.PhoneNumber, req.BornDate, req.Description,
	)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("insert returned no row")
	}

	return c, nil
}

func (r *UserRepository) UpdateContact(ctx context.Context, id contact.ID, req contact.Contact) (*contact.Contact, error) {
	return r.queryContact(ctx, UpdateContactByID,
		int64(id), req.FirstName, req.LastName, req.Email, req.PhoneNumber, req.BornDate, req.Description,
	)
}

func (r *UserRepository) DeleteContact(ctx context.Context, id contact.ID) (*contact.Contact, error) {
	return r.queryContact(ctx, DeleteContactByID, int64(id))
}

// queryContact runs a single-row statement. A missing row yields nil, nil.
func (r *UserRepository) queryContact(ctx context.Context, query string, args ...any) (*contact.Contact, error) {
	var found *Contact

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		c := new(Contact)
		err := tx.QueryRow(ctx, query, r.scoped(args)...).Scan(
			&c.ID,
			&c.UserID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.PhoneNumber,
			&c.BornDate,
			&c.Description,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		found = c
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	if found == nil {
		return nil, nil
	}

	return fromDBModel(found), nil
}

func (r *UserRepository) queryContacts(ctx context.Context, query string, args ...any) (contact.Contacts, error) {
	var cs Contacts

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, r.scoped(args)...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			c := new(Contact)

			if err = rows.Scan(
				&c.ID,
				&c.UserID,
				&c.FirstName,
				&c.LastName,
				&c.Email,
				&c.PhoneNumber,
				&c.BornDate,
				&c.Description,
			); err != nil {
				return err
			}

			cs = append(cs, c)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return fromDBModels(cs), nil
}

func (r *UserRepository) scoped(args []any) []any {
	return append([]any{r.userID}, args...)
}

func wrapErr(err error) error {
	if postgres.IsPgConstraintViolation(err) {
		return fmt.Errorf("%w: %w", contact.ErrInvalidContact, err)
	}
	return err
}
