package usecase

import (
	"time"

	"github.com/riskibarqy/teamsync/internal/domain/fixture"
	"github.com/riskibarqy/teamsync/internal/domain/roster"
	"github.com/riskibarqy/teamsync/internal/domain/teamstats"
)

// UpcomingFixture is the caller's next match seen from the caller's team.
type UpcomingFixture struct {
	ID           string
	DetailsID    string
	Date         time.Time
	Team         string
	Opposition   string
	Location     *fixture.Location
	Availability *roster.Availability
}

type FixtureSide struct {
	Name  string
	Score *int
}

// RecentFixture is one played match seen from the caller's team.
type RecentFixture struct {
	ID         string
	Team       FixtureSide
	Opposition FixtureSide
	Date       time.Time
}

type SideStats struct {
	Wins   int
	Losses int
	Draws  int
	Points int
}

type DetailSide struct {
	Name  string
	Score *int
	Stats *SideStats
}

// FixtureDetails is a full fixture view seen from the team owning the detail.
type FixtureDetails struct {
	ID           string
	FixtureID    string
	Date         time.Time
	Team         DetailSide
	Opposition   DetailSide
	Location     *fixture.Location
	Availability *roster.Availability
}

type RosterEntry struct {
	MemberID     string
	UserID       string
	PlayerName   string
	Availability roster.Availability
}

func scorePtr(f fixture.Fixture, teamID string) *int {
	score, ok := f.ScoreFor(teamID)
	if !ok {
		return nil
	}
	return &score
}

func statsView(stats teamstats.TournamentStats, ok bool) *SideStats {
	if !ok {
		return nil
	}
	return &SideStats{
		Wins:   stats.Wins,
		Losses: stats.Losses,
		Draws:  stats.Draws,
		Points: stats.Points,
	}
}

func copyLocation(loc *fixture.Location) *fixture.Location {
	if loc == nil {
		return nil
	}
	out := *loc
	return &out
}
