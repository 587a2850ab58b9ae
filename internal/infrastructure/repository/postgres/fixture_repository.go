package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/teamsync/internal/domain/fixture"
	qb "github.com/riskibarqy/teamsync/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := fixtureBaseSelectBuilder().
		Where(qb.IsNull("f.deleted_at")).
		OrderBy("f.date", "f.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures query: %w", err)
	}

	return r.selectFixtures(ctx, query, args)
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := fixtureBaseSelectBuilder().
		Where(
			qb.Eq("f.public_id", fixtureID),
			qb.IsNull("f.deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	items, err := r.selectFixtures(ctx, query, args)
	if err != nil {
		return fixture.Fixture{}, false, err
	}
	if len(items) == 0 {
		return fixture.Fixture{}, false, nil
	}
	return items[0], true, nil
}

func (r *FixtureRepository) ListByTeam(ctx context.Context, teamID string) ([]fixture.Fixture, error) {
	query, args, err := fixtureBaseSelectBuilder().
		Join("fixture_participants fp", "fp.fixture_public_id = f.public_id").
		Where(
			qb.Eq("fp.team_public_id", teamID),
			qb.IsNull("f.deleted_at"),
		).
		OrderBy("f.date", "f.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures by team query: %w", err)
	}

	return r.selectFixtures(ctx, query, args)
}

func (r *FixtureRepository) GetDetailByID(ctx context.Context, detailID string) (fixture.Detail, bool, error) {
	query, args, err := qb.Select("d.public_id", "d.fixture_public_id", "d.team_public_id").
		From("fixture_details d").
		Join("fixtures f", "f.public_id = d.fixture_public_id").
		Where(
			qb.Eq("d.public_id", detailID),
			qb.IsNull("f.deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fixture.Detail{}, false, fmt.Errorf("build get fixture detail query: %w", err)
	}

	var row detailTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Detail{}, false, nil
		}
		return fixture.Detail{}, false, fmt.Errorf("get fixture detail: %w", err)
	}

	return detailFromRow(row), true, nil
}

func (r *FixtureRepository) selectFixtures(ctx context.Context, query string, args []any) ([]fixture.Fixture, error) {
	var rows []fixtureRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}
	if len(rows) == 0 {
		return []fixture.Fixture{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}

	rel, err := r.loadRelations(ctx, ids)
	if err != nil {
		return nil, err
	}
	return mergeFixtures(rows, rel)
}

type fixtureRelations struct {
	participants []participantRow
	scores       []scoreTableModel
	details      []detailTableModel
}

func (r *FixtureRepository) loadRelations(ctx context.Context, fixtureIDs []string) (fixtureRelations, error) {
	var rel fixtureRelations
	anyID := qb.Expr("fixture_public_id = ANY(?)", pq.Array(fixtureIDs))

	query, args, err := qb.Select("fp.fixture_public_id", "fp.team_public_id", "t.name AS team_name").
		From("fixture_participants fp").
		Join("teams t", "t.public_id = fp.team_public_id").
		Where(qb.Expr("fp.fixture_public_id = ANY(?)", pq.Array(fixtureIDs))).
		OrderBy("fp.fixture_public_id", "fp.team_public_id").
		ToSQL()
	if err != nil {
		return rel, fmt.Errorf("build select fixture participants query: %w", err)
	}
	if err := r.db.SelectContext(ctx, &rel.participants, query, args...); err != nil {
		return rel, fmt.Errorf("select fixture participants: %w", err)
	}

	query, args, err = qb.Select("fixture_public_id", "team_public_id", "score").
		From("fixture_scores").
		Where(anyID).
		ToSQL()
	if err != nil {
		return rel, fmt.Errorf("build select fixture scores query: %w", err)
	}
	if err := r.db.SelectContext(ctx, &rel.scores, query, args...); err != nil {
		return rel, fmt.Errorf("select fixture scores: %w", err)
	}

	query, args, err = qb.Select("public_id", "fixture_public_id", "team_public_id").
		From("fixture_details").
		Where(anyID).
		ToSQL()
	if err != nil {
		return rel, fmt.Errorf("build select fixture details query: %w", err)
	}
	if err := r.db.SelectContext(ctx, &rel.details, query, args...); err != nil {
		return rel, fmt.Errorf("select fixture details: %w", err)
	}

	return rel, nil
}

// mergeFixtures attaches the second-query relations to their fixtures,
// keeping the order of rows.
func mergeFixtures(rows []fixtureRow, rel fixtureRelations) ([]fixture.Fixture, error) {
	out := make([]fixture.Fixture, 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		item, err := fixtureFromRow(row)
		if err != nil {
			return nil, err
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}

	for _, p := range rel.participants {
		if i, ok := index[p.FixturePublicID]; ok {
			out[i].Participants = append(out[i].Participants, fixture.Participant{TeamID: p.TeamPublicID, Name: p.TeamName})
		}
	}
	for _, s := range rel.scores {
		if i, ok := index[s.FixturePublicID]; ok {
			out[i].Scores = append(out[i].Scores, fixture.Score{TeamID: s.TeamPublicID, Score: s.Score})
		}
	}
	for _, d := range rel.details {
		if i, ok := index[d.FixturePublicID]; ok {
			out[i].Details = append(out[i].Details, detailFromRow(d))
		}
	}

	return out, nil
}

func fixtureFromRow(row fixtureRow) (fixture.Fixture, error) {
	item := fixture.Fixture{
		ID:           row.PublicID,
		Date:         row.Date.UTC(),
		TournamentID: row.TournamentPublicID,
	}
	if !row.LocationPublicID.Valid {
		return item, nil
	}

	lat, err := parseNumeric(row.Latitude)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("fixture %s latitude: %w", row.PublicID, err)
	}
	lng, err := parseNumeric(row.Longitude)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("fixture %s longitude: %w", row.PublicID, err)
	}
	item.Location = &fixture.Location{
		ID:        row.LocationPublicID.String,
		Name:      row.LocationName.String,
		Address:   row.LocationAddress.String,
		Latitude:  lat,
		Longitude: lng,
	}
	return item, nil
}

func detailFromRow(row detailTableModel) fixture.Detail {
	return fixture.Detail{
		ID:        row.PublicID,
		FixtureID: row.FixturePublicID,
		TeamID:    row.TeamPublicID,
	}
}

func fixtureBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"f.public_id",
		"f.date",
		"f.tournament_public_id",
		"f.location_public_id",
		"l.name AS location_name",
		"l.address AS location_address",
		"l.latitude::text AS latitude",
		"l.longitude::text AS longitude",
	).From("fixtures f").
		LeftJoin("locations l", "l.public_id = f.location_public_id")
}
