package httpapi

import (
	"time"

	"github.com/riskibarqy/teamsync/internal/domain/fixture"
	"github.com/riskibarqy/teamsync/internal/domain/roster"
	"github.com/riskibarqy/teamsync/internal/usecase"
)

type locationDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type participantDTO struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
}

type scoreDTO struct {
	TeamID string `json:"teamId"`
	Score  int    `json:"score"`
}

type fixtureDetailRefDTO struct {
	ID     string `json:"id"`
	TeamID string `json:"teamId"`
}

type fixtureDTO struct {
	ID           string                `json:"id"`
	Date         time.Time             `json:"date"`
	TournamentID string                `json:"tournamentId"`
	Participants []participantDTO      `json:"participatingTeams"`
	Location     *locationDTO          `json:"location"`
	Scores       []scoreDTO            `json:"scores"`
	Details      []fixtureDetailRefDTO `json:"details"`
}

type upcomingFixtureDTO struct {
	ID           string       `json:"id"`
	DetailsID    string       `json:"detailsId"`
	Date         time.Time    `json:"date"`
	Team         string       `json:"team"`
	Opposition   string       `json:"opposition"`
	Location     *locationDTO `json:"location"`
	Availability *string      `json:"availability"`
}

type fixtureSideDTO struct {
	Name  string `json:"name"`
	Score *int   `json:"score"`
}

type recentFixtureDTO struct {
	ID         string         `json:"id"`
	Team       fixtureSideDTO `json:"team"`
	Opposition fixtureSideDTO `json:"opposition"`
	Date       time.Time      `json:"date"`
}

type sideStatsDTO struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
	Points int `json:"points"`
}

type detailSideDTO struct {
	Name  string        `json:"name"`
	Score *int          `json:"score"`
	Stats *sideStatsDTO `json:"stats"`
}

type fixtureDetailsDTO struct {
	ID           string        `json:"id"`
	FixtureID    string        `json:"fixtureId"`
	Date         time.Time     `json:"date"`
	Team         detailSideDTO `json:"team"`
	Opposition   detailSideDTO `json:"opposition"`
	Location     *locationDTO  `json:"location"`
	Availability *string       `json:"availability"`
}

type rosterEntryDTO struct {
	MemberID     string `json:"memberId"`
	UserID       string `json:"userId"`
	PlayerName   string `json:"playerName"`
	Availability string `json:"availability"`
}

type setAvailabilityRequest struct {
	FixtureDetailsID string `json:"fixtureDetailsId" validate:"required,max=128"`
	Availability     string `json:"availability" validate:"required,max=32"`
}

func fixtureToDTO(f fixture.Fixture) fixtureDTO {
	participants := make([]participantDTO, 0, len(f.Participants))
	for _, p := range f.Participants {
		participants = append(participants, participantDTO{TeamID: p.TeamID, Name: p.Name})
	}
	scores := make([]scoreDTO, 0, len(f.Scores))
	for _, s := range f.Scores {
		scores = append(scores, scoreDTO{TeamID: s.TeamID, Score: s.Score})
	}
	details := make([]fixtureDetailRefDTO, 0, len(f.Details))
	for _, d := range f.Details {
		details = append(details, fixtureDetailRefDTO{ID: d.ID, TeamID: d.TeamID})
	}

	return fixtureDTO{
		ID:           f.ID,
		Date:         f.Date,
		TournamentID: f.TournamentID,
		Participants: participants,
		Location:     locationToDTO(f.Location),
		Scores:       scores,
		Details:      details,
	}
}

func locationToDTO(loc *fixture.Location) *locationDTO {
	if loc == nil {
		return nil
	}
	return &locationDTO{
		ID:        loc.ID,
		Name:      loc.Name,
		Address:   loc.Address,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
}

func availabilityToDTO(a *roster.Availability) *string {
	if a == nil {
		return nil
	}
	v := a.String()
	return &v
}

func upcomingToDTO(u usecase.UpcomingFixture) upcomingFixtureDTO {
	return upcomingFixtureDTO{
		ID:           u.ID,
		DetailsID:    u.DetailsID,
		Date:         u.Date,
		Team:         u.Team,
		Opposition:   u.Opposition,
		Location:     locationToDTO(u.Location),
		Availability: availabilityToDTO(u.Availability),
	}
}

func recentToDTO(r usecase.RecentFixture) recentFixtureDTO {
	return recentFixtureDTO{
		ID:         r.ID,
		Team:       fixtureSideDTO{Name: r.Team.Name, Score: r.Team.Score},
		Opposition: fixtureSideDTO{Name: r.Opposition.Name, Score: r.Opposition.Score},
		Date:       r.Date,
	}
}

func detailSideToDTO(s usecase.DetailSide) detailSideDTO {
	out := detailSideDTO{Name: s.Name, Score: s.Score}
	if s.Stats != nil {
		out.Stats = &sideStatsDTO{
			Wins:   s.Stats.Wins,
			Losses: s.Stats.Losses,
			Draws:  s.Stats.Draws,
			Points: s.Stats.Points,
		}
	}
	return out
}

func detailsToDTO(d usecase.FixtureDetails) fixtureDetailsDTO {
	return fixtureDetailsDTO{
		ID:           d.ID,
		FixtureID:    d.FixtureID,
		Date:         d.Date,
		Team:         detailSideToDTO(d.Team),
		Opposition:   detailSideToDTO(d.Opposition),
		Location:     locationToDTO(d.Location),
		Availability: availabilityToDTO(d.Availability),
	}
}
