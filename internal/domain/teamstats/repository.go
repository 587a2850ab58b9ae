package teamstats

import "context"

type Repository interface {
	GetByTeamAndTournament(ctx context.Context, teamID, tournamentID string) (TournamentStats, bool, error)
}
