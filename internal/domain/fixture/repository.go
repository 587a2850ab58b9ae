package fixture

import "context"

// Repository exposes fixture read operations. Returned fixtures have their
// participants, scores, details and location loaded.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Fixture, error)
	GetDetailByID(ctx context.Context, detailID string) (Detail, bool, error)
}
