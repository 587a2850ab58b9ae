package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/teamsync/internal/dataset"
	"github.com/riskibarqy/teamsync/internal/domain/fixture"
	"github.com/riskibarqy/teamsync/internal/platform/logging"
	qb "github.com/riskibarqy/teamsync/internal/platform/querybuilder"
)

const defaultSeedWorkers = 4

type SeedResult struct {
	Teams    int
	Users    int
	Fixtures int
	Rosters  int
	Stats    int
}

// SeedDataset upserts a dataset. Fixtures are written concurrently, one
// transaction per fixture, bounded by workers.
func SeedDataset(ctx context.Context, db *sqlx.DB, ds dataset.Dataset, workers int, logger *logging.Logger) (SeedResult, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultSeedWorkers
	}
	result := SeedResult{}

	if len(ds.Teams) > 0 {
		rows := make([]teamTableModel, 0, len(ds.Teams))
		for _, t := range ds.Teams {
			rows = append(rows, teamTableModel{PublicID: t.ID, Name: t.Name})
		}
		if err := execInsertModels(ctx, db, "teams", rows, "ON CONFLICT (public_id) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()"); err != nil {
			return result, fmt.Errorf("seed teams: %w", err)
		}
		result.Teams = len(rows)
	}

	if len(ds.Users) > 0 {
		rows := make([]userTableModel, 0, len(ds.Users))
		for _, u := range ds.Users {
			rows = append(rows, userTableModel{
				PublicID:           u.ID,
				Email:              u.Email,
				Name:               u.Name,
				ActiveTeamPublicID: nullString(u.ActiveTeamID),
			})
		}
		if err := execInsertModels(ctx, db, "users", rows, "ON CONFLICT (public_id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, active_team_public_id = EXCLUDED.active_team_public_id, updated_at = NOW()"); err != nil {
			return result, fmt.Errorf("seed users: %w", err)
		}
		result.Users = len(rows)
	}

	locations := uniqueLocations(ds.Fixtures)
	if len(locations) > 0 {
		if err := execInsertModels(ctx, db, "locations", locations, "ON CONFLICT (public_id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address, latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude, updated_at = NOW()"); err != nil {
			return result, fmt.Errorf("seed locations: %w", err)
		}
	}

	written, err := seedFixtures(ctx, db, ds.Fixtures, workers, logger)
	result.Fixtures = written
	if err != nil {
		return result, err
	}

	if len(ds.Rosters) > 0 {
		rows := make([]rosterTableModel, 0, len(ds.Rosters))
		for _, m := range ds.Rosters {
			rows = append(rows, rosterTableModel{
				PublicID:              m.ID,
				FixtureDetailPublicID: m.FixtureDetailID,
				UserPublicID:          m.UserID,
				PlayerName:            m.PlayerName,
				Availability:          m.Availability.String(),
			})
		}
		if err := execInsertModels(ctx, db, "roster_members", rows, "ON CONFLICT (public_id) DO UPDATE SET player_name = EXCLUDED.player_name, availability = EXCLUDED.availability, updated_at = NOW()"); err != nil {
			return result, fmt.Errorf("seed roster members: %w", err)
		}
		result.Rosters = len(rows)
	}

	if len(ds.Stats) > 0 {
		rows := make([]teamStatsTableModel, 0, len(ds.Stats))
		for _, s := range ds.Stats {
			rows = append(rows, teamStatsTableModel{
				TeamPublicID:       s.TeamID,
				TournamentPublicID: s.TournamentID,
				Wins:               s.Wins,
				Losses:             s.Losses,
				Draws:              s.Draws,
				Points:             s.Points,
			})
		}
		if err := execInsertModels(ctx, db, "team_tournament_stats", rows, "ON CONFLICT (team_public_id, tournament_public_id) DO UPDATE SET wins = EXCLUDED.wins, losses = EXCLUDED.losses, draws = EXCLUDED.draws, points = EXCLUDED.points, updated_at = NOW()"); err != nil {
			return result, fmt.Errorf("seed team tournament stats: %w", err)
		}
		result.Stats = len(rows)
	}

	return result, nil
}

func seedFixtures(ctx context.Context, db *sqlx.DB, items []fixture.Fixture, workers int, logger *logging.Logger) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return 0, fmt.Errorf("create seed worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		written  int
	)
	for _, item := range items {
		item := item
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := seedFixture(ctx, db, item); err != nil {
				logger.WarnContext(ctx, "seed fixture failed", "fixture_id", item.ID, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			mu.Lock()
			written++
			mu.Unlock()
		}); err != nil {
			wg.Done()
			wg.Wait()
			return written, fmt.Errorf("submit seed fixture %s: %w", item.ID, err)
		}
	}
	wg.Wait()

	return written, firstErr
}

func seedFixture(ctx context.Context, db *sqlx.DB, item fixture.Fixture) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed fixture %s tx: %w", item.ID, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	locationID := ""
	if item.Location != nil {
		locationID = item.Location.ID
	}
	row := fixtureTableModel{
		PublicID:           item.ID,
		Date:               item.Date,
		TournamentPublicID: item.TournamentID,
		LocationPublicID:   nullString(locationID),
	}
	if err := execInsertModels(ctx, tx, "fixtures", []fixtureTableModel{row}, "ON CONFLICT (public_id) DO UPDATE SET date = EXCLUDED.date, tournament_public_id = EXCLUDED.tournament_public_id, location_public_id = EXCLUDED.location_public_id, updated_at = NOW()"); err != nil {
		return fmt.Errorf("seed fixture %s: %w", item.ID, err)
	}

	participants := make([]participantTableModel, 0, len(item.Participants))
	for _, p := range item.Participants {
		participants = append(participants, participantTableModel{FixturePublicID: item.ID, TeamPublicID: p.TeamID})
	}
	if err := execInsertModels(ctx, tx, "fixture_participants", participants, "ON CONFLICT DO NOTHING"); err != nil {
		return fmt.Errorf("seed fixture %s participants: %w", item.ID, err)
	}

	if len(item.Scores) > 0 {
		scores := make([]scoreTableModel, 0, len(item.Scores))
		for _, s := range item.Scores {
			scores = append(scores, scoreTableModel{FixturePublicID: item.ID, TeamPublicID: s.TeamID, Score: s.Score})
		}
		if err := execInsertModels(ctx, tx, "fixture_scores", scores, "ON CONFLICT (fixture_public_id, team_public_id) DO UPDATE SET score = EXCLUDED.score"); err != nil {
			return fmt.Errorf("seed fixture %s scores: %w", item.ID, err)
		}
	}

	if len(item.Details) > 0 {
		details := make([]detailTableModel, 0, len(item.Details))
		for _, d := range item.Details {
			details = append(details, detailTableModel{PublicID: d.ID, FixturePublicID: item.ID, TeamPublicID: d.TeamID})
		}
		if err := execInsertModels(ctx, tx, "fixture_details", details, "ON CONFLICT (public_id) DO NOTHING"); err != nil {
			return fmt.Errorf("seed fixture %s details: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed fixture %s: %w", item.ID, err)
	}
	return nil
}

func uniqueLocations(items []fixture.Fixture) []locationTableModel {
	seen := make(map[string]struct{})
	out := make([]locationTableModel, 0)
	for _, item := range items {
		loc := item.Location
		if loc == nil || loc.ID == "" {
			continue
		}
		if _, ok := seen[loc.ID]; ok {
			continue
		}
		seen[loc.ID] = struct{}{}
		out = append(out, locationTableModel{
			PublicID:  loc.ID,
			Name:      loc.Name,
			Address:   loc.Address,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		})
	}
	return out
}

func execInsertModels[T any](ctx context.Context, db sqlx.ExecerContext, table string, rows []T, suffix string) error {
	query, args, err := qb.InsertModels(table, rows, suffix)
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
