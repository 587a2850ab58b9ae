// Package dataset loads the YAML fixture dataset used by the memory store and
// by the seed command.
package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/teamsync/internal/domain/fixture"
	"github.com/riskibarqy/teamsync/internal/domain/roster"
	"github.com/riskibarqy/teamsync/internal/domain/team"
	"github.com/riskibarqy/teamsync/internal/domain/teamstats"
	"github.com/riskibarqy/teamsync/internal/domain/user"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type File struct {
	Users     []UserRecord     `yaml:"users"`
	Teams     []TeamRecord     `yaml:"teams"`
	Locations []LocationRecord `yaml:"locations"`
	Fixtures  []FixtureRecord  `yaml:"fixtures"`
	Rosters   []RosterRecord   `yaml:"rosters"`
	Stats     []StatsRecord    `yaml:"stats"`
}

type UserRecord struct {
	ID           string `yaml:"id"`
	Email        string `yaml:"email"`
	Name         string `yaml:"name"`
	ActiveTeamID string `yaml:"activeTeamId"`
}

type TeamRecord struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type LocationRecord struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Address   string  `yaml:"address"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// FixtureRecord dates are either absolute (Date) or an offset from the load
// time (In). Detail records default to "<fixture id>-<team id>".
type FixtureRecord struct {
	ID           string            `yaml:"id"`
	Date         *time.Time        `yaml:"date"`
	In           string            `yaml:"in"`
	TournamentID string            `yaml:"tournamentId"`
	LocationID   string            `yaml:"locationId"`
	Teams        []string          `yaml:"teams"`
	Scores       map[string]int    `yaml:"scores"`
	Details      map[string]string `yaml:"details"`
}

type RosterRecord struct {
	ID           string `yaml:"id"`
	DetailID     string `yaml:"detailId"`
	UserID       string `yaml:"userId"`
	PlayerName   string `yaml:"playerName"`
	Availability string `yaml:"availability"`
}

type StatsRecord struct {
	TeamID       string `yaml:"teamId"`
	TournamentID string `yaml:"tournamentId"`
	Wins         int    `yaml:"wins"`
	Losses       int    `yaml:"losses"`
	Draws        int    `yaml:"draws"`
	Points       int    `yaml:"points"`
}

// Dataset is a resolved, validated set of domain records.
type Dataset struct {
	Users    []user.User
	Teams    []team.Team
	Fixtures []fixture.Fixture
	Rosters  []roster.Member
	Stats    []teamstats.TournamentStats
}

func Default(base time.Time) (Dataset, error) {
	return Parse(defaultSeed, base)
}

func LoadFile(path string, base time.Time) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset file: %w", err)
	}
	return Parse(raw, base)
}

func Parse(raw []byte, base time.Time) (Dataset, error) {
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset yaml: %w", err)
	}
	return file.Resolve(base)
}

func (f File) Resolve(base time.Time) (Dataset, error) {
	out := Dataset{}

	teamsByID := make(map[string]team.Team, len(f.Teams))
	for _, rec := range f.Teams {
		item := team.Team{ID: strings.TrimSpace(rec.ID), Name: strings.TrimSpace(rec.Name)}
		if err := item.Validate(); err != nil {
			return Dataset{}, fmt.Errorf("team %q: %w", rec.ID, err)
		}
		if _, dup := teamsByID[item.ID]; dup {
			return Dataset{}, fmt.Errorf("duplicate team id %q", item.ID)
		}
		teamsByID[item.ID] = item
		out.Teams = append(out.Teams, item)
	}

	for _, rec := range f.Users {
		email := user.NormalizeEmail(rec.Email)
		if rec.ID == "" || email == "" {
			return Dataset{}, fmt.Errorf("user %q: id and email are required", rec.ID)
		}
		if rec.ActiveTeamID != "" {
			if _, ok := teamsByID[rec.ActiveTeamID]; !ok {
				return Dataset{}, fmt.Errorf("user %q: unknown active team %q", rec.ID, rec.ActiveTeamID)
			}
		}
		out.Users = append(out.Users, user.User{
			ID:           rec.ID,
			Email:        email,
			Name:         rec.Name,
			ActiveTeamID: rec.ActiveTeamID,
		})
	}

	locations := make(map[string]fixture.Location, len(f.Locations))
	for _, rec := range f.Locations {
		locations[rec.ID] = fixture.Location{
			ID:        rec.ID,
			Name:      rec.Name,
			Address:   rec.Address,
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
		}
	}

	detailIDs := make(map[string]struct{})
	for _, rec := range f.Fixtures {
		item, err := rec.resolve(base, teamsByID, locations)
		if err != nil {
			return Dataset{}, err
		}
		for _, d := range item.Details {
			detailIDs[d.ID] = struct{}{}
		}
		out.Fixtures = append(out.Fixtures, item)
	}

	for _, rec := range f.Rosters {
		if _, ok := detailIDs[rec.DetailID]; !ok {
			return Dataset{}, fmt.Errorf("roster %q: unknown fixture detail %q", rec.ID, rec.DetailID)
		}
		availability := roster.AvailabilityUnknown
		if rec.Availability != "" {
			parsed, err := roster.ParseAvailability(rec.Availability)
			if err != nil {
				return Dataset{}, fmt.Errorf("roster %q: %w", rec.ID, err)
			}
			availability = parsed
		}
		out.Rosters = append(out.Rosters, roster.Member{
			ID:              rec.ID,
			FixtureDetailID: rec.DetailID,
			UserID:          rec.UserID,
			PlayerName:      rec.PlayerName,
			Availability:    availability,
		})
	}

	for _, rec := range f.Stats {
		if _, ok := teamsByID[rec.TeamID]; !ok {
			return Dataset{}, fmt.Errorf("stats: unknown team %q", rec.TeamID)
		}
		out.Stats = append(out.Stats, teamstats.TournamentStats{
			TeamID:       rec.TeamID,
			TournamentID: rec.TournamentID,
			Wins:         rec.Wins,
			Losses:       rec.Losses,
			Draws:        rec.Draws,
			Points:       rec.Points,
		})
	}

	return out, nil
}

func (r FixtureRecord) resolve(base time.Time, teams map[string]team.Team, locations map[string]fixture.Location) (fixture.Fixture, error) {
	item := fixture.Fixture{
		ID:           strings.TrimSpace(r.ID),
		TournamentID: r.TournamentID,
	}

	switch {
	case r.Date != nil:
		item.Date = r.Date.UTC()
	case r.In != "":
		offset, err := time.ParseDuration(r.In)
		if err != nil {
			return fixture.Fixture{}, fmt.Errorf("fixture %q: parse in=%q: %w", r.ID, r.In, err)
		}
		item.Date = base.Add(offset).UTC().Truncate(time.Minute)
	}

	for _, teamID := range r.Teams {
		t, ok := teams[teamID]
		if !ok {
			return fixture.Fixture{}, fmt.Errorf("fixture %q: unknown team %q", r.ID, teamID)
		}
		item.Participants = append(item.Participants, fixture.Participant{TeamID: t.ID, Name: t.Name})

		detailID := r.Details[teamID]
		if detailID == "" {
			detailID = item.ID + "-" + teamID
		}
		item.Details = append(item.Details, fixture.Detail{ID: detailID, FixtureID: item.ID, TeamID: teamID})
	}

	if r.LocationID != "" {
		loc, ok := locations[r.LocationID]
		if !ok {
			return fixture.Fixture{}, fmt.Errorf("fixture %q: unknown location %q", r.ID, r.LocationID)
		}
		item.Location = &loc
	}

	scoreTeams := make([]string, 0, len(r.Scores))
	for teamID := range r.Scores {
		if !item.HasParticipant(teamID) {
			return fixture.Fixture{}, fmt.Errorf("fixture %q: score for non-participant %q", r.ID, teamID)
		}
		scoreTeams = append(scoreTeams, teamID)
	}
	sort.Strings(scoreTeams)
	for _, teamID := range scoreTeams {
		item.Scores = append(item.Scores, fixture.Score{TeamID: teamID, Score: r.Scores[teamID]})
	}

	if err := item.Validate(); err != nil {
		return fixture.Fixture{}, err
	}
	return item, nil
}
