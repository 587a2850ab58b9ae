package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamsync/internal/domain/teamstats"
	qb "github.com/riskibarqy/teamsync/internal/platform/querybuilder"
)

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) GetByTeamAndTournament(ctx context.Context, teamID, tournamentID string) (teamstats.TournamentStats, bool, error) {
	query, args, err := qb.Select("team_public_id", "tournament_public_id", "wins", "losses", "draws", "points").
		From("team_tournament_stats").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.Eq("tournament_public_id", tournamentID),
		).
		ToSQL()
	if err != nil {
		return teamstats.TournamentStats{}, false, fmt.Errorf("build get team tournament stats query: %w", err)
	}

	var row teamStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return teamstats.TournamentStats{}, false, nil
		}
		return teamstats.TournamentStats{}, false, fmt.Errorf("get team tournament stats: %w", err)
	}

	return teamstats.TournamentStats{
		TeamID:       row.TeamPublicID,
		TournamentID: row.TournamentPublicID,
		Wins:         row.Wins,
		Losses:       row.Losses,
		Draws:        row.Draws,
		Points:       row.Points,
	}, true, nil
}
