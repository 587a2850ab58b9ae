package teamstats

// TournamentStats is the aggregated record of one team inside one tournament.
type TournamentStats struct {
	TeamID       string
	TournamentID string
	Wins         int
	Losses       int
	Draws        int
	Points       int
}

func (s TournamentStats) Played() int {
	return s.Wins + s.Losses + s.Draws
}
