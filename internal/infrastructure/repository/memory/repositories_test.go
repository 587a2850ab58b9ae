package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/teamsync/internal/domain/fixture"
	"github.com/riskibarqy/teamsync/internal/domain/roster"
	"github.com/riskibarqy/teamsync/internal/domain/user"
)

func TestFixtureRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFixtureRepository([]fixture.Fixture{{
		ID:   "fx-1",
		Date: time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		Participants: []fixture.Participant{
			{TeamID: "a", Name: "A"},
			{TeamID: "b", Name: "B"},
		},
		Location: &fixture.Location{Name: "Ground"},
		Details:  []fixture.Detail{{ID: "fx-1-a", FixtureID: "fx-1", TeamID: "a"}},
	}})

	got, ok, err := repo.GetByID(ctx, "fx-1")
	if err != nil || !ok {
		t.Fatalf("get fixture: ok=%v err=%v", ok, err)
	}
	got.Participants[0].Name = "mutated"
	got.Location.Name = "mutated"

	again, _, _ := repo.GetByID(ctx, "fx-1")
	if again.Participants[0].Name != "A" || again.Location.Name != "Ground" {
		t.Fatalf("repository state leaked through returned fixture: %+v", again)
	}

	byTeam, err := repo.ListByTeam(ctx, "b")
	if err != nil || len(byTeam) != 1 {
		t.Fatalf("list by team: len=%d err=%v", len(byTeam), err)
	}
	if none, _ := repo.ListByTeam(ctx, "c"); len(none) != 0 {
		t.Fatalf("expected no fixtures for unknown team, got %d", len(none))
	}

	detail, ok, _ := repo.GetDetailByID(ctx, "fx-1-a")
	if !ok || detail.FixtureID != "fx-1" {
		t.Fatalf("unexpected detail: %+v ok=%v", detail, ok)
	}
}

func TestRosterRepository_UpdateAvailability(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRosterRepository([]roster.Member{
		{ID: "rm-1", FixtureDetailID: "d-1", UserID: "u-1", PlayerName: "Sam", Availability: roster.AvailabilityUnknown},
		{ID: "rm-2", FixtureDetailID: "d-1", UserID: "u-2", PlayerName: "Alex", Availability: roster.AvailabilityUnknown},
	})

	if err := repo.UpdateAvailability(ctx, "rm-1", roster.AvailabilityAvailable); err != nil {
		t.Fatalf("update availability: %v", err)
	}
	member, ok, _ := repo.GetByUserAndDetail(ctx, "u-1", "d-1")
	if !ok || member.Availability != roster.AvailabilityAvailable {
		t.Fatalf("unexpected member after update: %+v ok=%v", member, ok)
	}

	if err := repo.UpdateAvailability(ctx, "rm-404", roster.AvailabilityAvailable); err == nil {
		t.Fatalf("expected error for unknown member")
	}

	list, _ := repo.ListByDetail(ctx, "d-1")
	if len(list) != 2 || list[0].PlayerName != "Alex" {
		t.Fatalf("expected roster sorted by player name, got %+v", list)
	}
}

func TestUserRepository_NormalizesEmail(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository([]user.User{{ID: "u-1", Email: "Test@TeamSync.dev"}})
	got, ok, err := repo.GetByEmail(context.Background(), " test@teamsync.dev ")
	if err != nil || !ok || got.ID != "u-1" {
		t.Fatalf("unexpected lookup: %+v ok=%v err=%v", got, ok, err)
	}
}
