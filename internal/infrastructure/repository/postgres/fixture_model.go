package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	PublicID           string         `db:"public_id"`
	Date               time.Time      `db:"date"`
	TournamentPublicID string         `db:"tournament_public_id"`
	LocationPublicID   sql.NullString `db:"location_public_id"`
}

// fixtureRow is a fixture joined with its location. Coordinates are selected
// as text so NUMERIC precision never goes through a driver-specific type.
type fixtureRow struct {
	fixtureTableModel
	LocationName    sql.NullString `db:"location_name"`
	LocationAddress sql.NullString `db:"location_address"`
	Latitude        sql.NullString `db:"latitude"`
	Longitude       sql.NullString `db:"longitude"`
}

type locationTableModel struct {
	PublicID  string  `db:"public_id"`
	Name      string  `db:"name"`
	Address   string  `db:"address"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
}

type participantRow struct {
	FixturePublicID string `db:"fixture_public_id"`
	TeamPublicID    string `db:"team_public_id"`
	TeamName        string `db:"team_name"`
}

type participantTableModel struct {
	FixturePublicID string `db:"fixture_public_id"`
	TeamPublicID    string `db:"team_public_id"`
}

type scoreTableModel struct {
	FixturePublicID string `db:"fixture_public_id"`
	TeamPublicID    string `db:"team_public_id"`
	Score           int    `db:"score"`
}

type detailTableModel struct {
	PublicID        string `db:"public_id"`
	FixturePublicID string `db:"fixture_public_id"`
	TeamPublicID    string `db:"team_public_id"`
}

type rosterTableModel struct {
	PublicID              string `db:"public_id"`
	FixtureDetailPublicID string `db:"fixture_detail_public_id"`
	UserPublicID          string `db:"user_public_id"`
	PlayerName            string `db:"player_name"`
	Availability          string `db:"availability"`
}
