package user

import "context"

// Repository resolves users by the identity carried on each call.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (User, bool, error)
}
