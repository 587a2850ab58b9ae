package postgres

import "database/sql"

type teamTableModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
}

type userTableModel struct {
	PublicID           string         `db:"public_id"`
	Email              string         `db:"email"`
	Name               string         `db:"name"`
	ActiveTeamPublicID sql.NullString `db:"active_team_public_id"`
}

type teamStatsTableModel struct {
	TeamPublicID       string `db:"team_public_id"`
	TournamentPublicID string `db:"tournament_public_id"`
	Wins               int    `db:"wins"`
	Losses             int    `db:"losses"`
	Draws              int    `db:"draws"`
	Points             int    `db:"points"`
}
