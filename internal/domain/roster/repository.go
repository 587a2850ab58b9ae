package roster

import "context"

type Repository interface {
	GetByUserAndDetail(ctx context.Context, userID, fixtureDetailID string) (Member, bool, error)
	ListByDetail(ctx context.Context, fixtureDetailID string) ([]Member, error)
	UpdateAvailability(ctx context.Context, memberID string, availability Availability) error
}
