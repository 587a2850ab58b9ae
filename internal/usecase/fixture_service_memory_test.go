package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamsync/internal/dataset"
	"github.com/riskibarqy/teamsync/internal/domain/roster"
	"github.com/riskibarqy/teamsync/internal/infrastructure/repository/memory"
)

func newMemoryFixtureService(t *testing.T) *FixtureService {
	t.Helper()

	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	ds, err := dataset.Default(now)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	repos := memory.NewRepositories(ds)
	return NewFixtureService(
		repos.Users, repos.Teams, repos.Fixtures, repos.Rosters, repos.TeamStats,
		WithClock(clockwork.NewFakeClockAt(now)),
	)
}

func TestFixtureService_SetAvailability_ReadYourWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newMemoryFixtureService(t)
	const email = "test@teamsync.dev"

	before, err := svc.Upcoming(ctx, email)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if before == nil || before.ID != "fx-004" || before.DetailsID != "fx-004-team-harbour" {
		t.Fatalf("unexpected upcoming fixture: %+v", before)
	}

	err = svc.SetAvailability(ctx, email, SetAvailabilityInput{
		FixtureDetailsID: before.DetailsID,
		Availability:     "AVAILABLE",
	})
	if err != nil {
		t.Fatalf("set availability: %v", err)
	}

	after, err := svc.Upcoming(ctx, email)
	if err != nil {
		t.Fatalf("upcoming after update: %v", err)
	}
	if after.Availability == nil || *after.Availability != roster.AvailabilityAvailable {
		t.Fatalf("expected AVAILABLE after update, got %v", after.Availability)
	}

	details, err := svc.Details(ctx, email, before.DetailsID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.Availability == nil || *details.Availability != roster.AvailabilityAvailable {
		t.Fatalf("expected AVAILABLE in details, got %v", details.Availability)
	}
	if details.Team.Name != "Harbour Athletic" || details.Opposition.Name != "Northgate Rovers" {
		t.Fatalf("unexpected sides: team=%s opposition=%s", details.Team.Name, details.Opposition.Name)
	}
	if details.Team.Stats == nil || details.Team.Stats.Points != 4 {
		t.Fatalf("unexpected team stats: %+v", details.Team.Stats)
	}
}

func TestFixtureService_Recent_FromDataset(t *testing.T) {
	t.Parallel()

	svc := newMemoryFixtureService(t)
	got, err := svc.Recent(context.Background(), "test@teamsync.dev", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 || got[0].ID != "fx-003" || got[1].ID != "fx-002" {
		t.Fatalf("unexpected recent fixtures: %+v", got)
	}
	if got[0].Team.Score == nil || *got[0].Team.Score != 0 || got[0].Opposition.Score != nil {
		t.Fatalf("unexpected scores on fx-003: team=%v opposition=%v", got[0].Team.Score, got[0].Opposition.Score)
	}
}
