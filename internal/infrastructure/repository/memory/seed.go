package memory

import (
	"github.com/riskibarqy/teamsync/internal/dataset"
)

// Repositories groups the in-memory stores built from one dataset.
type Repositories struct {
	Users     *UserRepository
	Teams     *TeamRepository
	Fixtures  *FixtureRepository
	Rosters   *RosterRepository
	TeamStats *TeamStatsRepository
}

func NewRepositories(ds dataset.Dataset) Repositories {
	return Repositories{
		Users:     NewUserRepository(ds.Users),
		Teams:     NewTeamRepository(ds.Teams),
		Fixtures:  NewFixtureRepository(ds.Fixtures),
		Rosters:   NewRosterRepository(ds.Rosters),
		TeamStats: NewTeamStatsRepository(ds.Stats),
	}
}
