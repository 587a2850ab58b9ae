package cache

import (
	"context"

	"github.com/riskibarqy/teamsync/internal/domain/team"
	"github.com/riskibarqy/teamsync/internal/domain/teamstats"
	"github.com/riskibarqy/teamsync/internal/domain/user"
	basecache "github.com/riskibarqy/teamsync/internal/platform/cache"
)

// lookup is a cached "value, exists" pair so misses are cached too.
type lookup[T any] struct {
	value  T
	exists bool
}

func load[T any](ctx context.Context, store *basecache.Store, key string, fetch func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := basecache.Load(ctx, store, key, func(ctx context.Context) (lookup[T], error) {
		item, exists, err := fetch(ctx)
		if err != nil {
			return lookup[T]{}, err
		}
		return lookup[T]{value: item, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.value, v.exists, nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return load(ctx, r.cache, "team:id:"+teamID, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

type TeamStatsRepository struct {
	next  teamstats.Repository
	cache *basecache.Store
}

func NewTeamStatsRepository(next teamstats.Repository, cache *basecache.Store) *TeamStatsRepository {
	return &TeamStatsRepository{next: next, cache: cache}
}

func (r *TeamStatsRepository) GetByTeamAndTournament(ctx context.Context, teamID, tournamentID string) (teamstats.TournamentStats, bool, error) {
	key := "teamstats:" + teamID + ":" + tournamentID
	return load(ctx, r.cache, key, func(ctx context.Context) (teamstats.TournamentStats, bool, error) {
		return r.next.GetByTeamAndTournament(ctx, teamID, tournamentID)
	})
}

type UserRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{next: next, cache: cache}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	email = user.NormalizeEmail(email)
	return load(ctx, r.cache, "user:email:"+email, func(ctx context.Context) (user.User, bool, error) {
		return r.next.GetByEmail(ctx, email)
	})
}
