package ports

import (
	"context"

	"contacts-api/internal/domain/user"
)

// IdentityResolver turns a bearer token into the id of the calling user.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (user.ID, error)
}
