package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/teamsync/internal/domain/team"
	"github.com/riskibarqy/teamsync/internal/domain/teamstats"
	"github.com/riskibarqy/teamsync/internal/domain/user"
	teammock "github.com/riskibarqy/teamsync/internal/mocks/domain/team"
	teamstatsmock "github.com/riskibarqy/teamsync/internal/mocks/domain/teamstats"
	usermock "github.com/riskibarqy/teamsync/internal/mocks/domain/user"
	basecache "github.com/riskibarqy/teamsync/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestTeamRepository_CachesHitsAndMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	next.On("GetByID", mock.Anything, "team-a").Return(team.Team{ID: "team-a", Name: "A"}, true, nil).Once()
	next.On("GetByID", mock.Anything, "team-x").Return(team.Team{}, false, nil).Once()

	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 3; i++ {
		got, ok, err := repo.GetByID(ctx, "team-a")
		if err != nil || !ok || got.Name != "A" {
			t.Fatalf("unexpected team: %+v ok=%v err=%v", got, ok, err)
		}
		if _, ok, err := repo.GetByID(ctx, "team-x"); err != nil || ok {
			t.Fatalf("expected cached miss, ok=%v err=%v", ok, err)
		}
	}
}

func TestTeamStatsRepository_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teamstatsmock.NewRepository(t)
	boom := errors.New("db down")
	next.On("GetByTeamAndTournament", mock.Anything, "team-a", "cup").Return(teamstats.TournamentStats{}, false, boom).Once()
	next.On("GetByTeamAndTournament", mock.Anything, "team-a", "cup").Return(teamstats.TournamentStats{Points: 9}, true, nil).Once()

	repo := NewTeamStatsRepository(next, basecache.NewStore(time.Minute))
	if _, _, err := repo.GetByTeamAndTournament(ctx, "team-a", "cup"); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	got, ok, err := repo.GetByTeamAndTournament(ctx, "team-a", "cup")
	if err != nil || !ok || got.Points != 9 {
		t.Fatalf("unexpected stats after retry: %+v ok=%v err=%v", got, ok, err)
	}
}

func TestUserRepository_NormalizesKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := usermock.NewRepository(t)
	next.On("GetByEmail", mock.Anything, "test@teamsync.dev").Return(user.User{ID: "u-1"}, true, nil).Once()

	repo := NewUserRepository(next, basecache.NewStore(time.Minute))
	for _, email := range []string{"test@teamsync.dev", " TEST@teamsync.dev"} {
		got, ok, err := repo.GetByEmail(ctx, email)
		if err != nil || !ok || got.ID != "u-1" {
			t.Fatalf("unexpected user for %q: %+v ok=%v err=%v", email, got, ok, err)
		}
	}
}
