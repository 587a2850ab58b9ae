package fixture

import (
	"fmt"
	"time"
)

// Fixture is a scheduled match between exactly two teams. Participants carry
// no home/away meaning; perspective is always computed against a team id.
type Fixture struct {
	ID           string
	Date         time.Time
	TournamentID string
	Participants []Participant
	Location     *Location
	Scores       []Score
	Details      []Detail
}

type Participant struct {
	TeamID string
	Name   string
}

type Score struct {
	TeamID string
	Score  int
}

// Detail is the per-team record that scopes a team's roster for one fixture.
type Detail struct {
	ID        string
	FixtureID string
	TeamID    string
}

type Location struct {
	ID        string
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
}

func (f Fixture) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fixture id is required")
	}
	if len(f.Participants) != 2 {
		return fmt.Errorf("fixture %s must have exactly two participants, got %d", f.ID, len(f.Participants))
	}
	if f.Participants[0].TeamID == f.Participants[1].TeamID {
		return fmt.Errorf("fixture %s lists team %s twice", f.ID, f.Participants[0].TeamID)
	}
	if f.Date.IsZero() {
		return fmt.Errorf("fixture %s has no date", f.ID)
	}

	return nil
}

// HasParticipant reports whether teamID is one of the two sides.
func (f Fixture) HasParticipant(teamID string) bool {
	for _, p := range f.Participants {
		if p.TeamID == teamID {
			return true
		}
	}
	return false
}

// Sides splits the participants into the side matching teamID and the other
// one. Either result is nil when it cannot be found.
func (f Fixture) Sides(teamID string) (team *Participant, opposition *Participant) {
	for i := range f.Participants {
		p := f.Participants[i]
		if p.TeamID == teamID {
			if team == nil {
				team = &p
			}
			continue
		}
		if opposition == nil {
			opposition = &p
		}
	}
	return team, opposition
}

// Opponent returns the participant that is not teamID.
func (f Fixture) Opponent(teamID string) (Participant, bool) {
	_, opposition := f.Sides(teamID)
	if opposition == nil {
		return Participant{}, false
	}
	return *opposition, true
}

// ScoreFor returns the recorded score of teamID, if any.
func (f Fixture) ScoreFor(teamID string) (int, bool) {
	for _, s := range f.Scores {
		if s.TeamID == teamID {
			return s.Score, true
		}
	}
	return 0, false
}

// DetailFor returns the detail record owned by teamID.
func (f Fixture) DetailFor(teamID string) (Detail, bool) {
	for _, d := range f.Details {
		if d.TeamID == teamID {
			return d, true
		}
	}
	return Detail{}, false
}
