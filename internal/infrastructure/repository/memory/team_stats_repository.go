package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/teamsync/internal/domain/teamstats"
)

type TeamStatsRepository struct {
	mu    sync.RWMutex
	stats map[string]teamstats.TournamentStats
}

func NewTeamStatsRepository(items []teamstats.TournamentStats) *TeamStatsRepository {
	byKey := make(map[string]teamstats.TournamentStats, len(items))
	for _, item := range items {
		byKey[statsKey(item.TeamID, item.TournamentID)] = item
	}
	return &TeamStatsRepository{stats: byKey}
}

func (r *TeamStatsRepository) GetByTeamAndTournament(_ context.Context, teamID, tournamentID string) (teamstats.TournamentStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.stats[statsKey(teamID, tournamentID)]
	return item, ok, nil
}

func statsKey(teamID, tournamentID string) string {
	return teamID + "|" + tournamentID
}
