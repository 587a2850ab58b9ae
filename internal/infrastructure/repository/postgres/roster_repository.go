package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamsync/internal/domain/roster"
	qb "github.com/riskibarqy/teamsync/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByUserAndDetail(ctx context.Context, userID, fixtureDetailID string) (roster.Member, bool, error) {
	query, args, err := rosterBaseSelectBuilder().
		Where(
			qb.Eq("user_public_id", userID),
			qb.Eq("fixture_detail_public_id", fixtureDetailID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return roster.Member{}, false, fmt.Errorf("build get roster member query: %w", err)
	}

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Member{}, false, nil
		}
		return roster.Member{}, false, fmt.Errorf("get roster member: %w", err)
	}

	return rosterFromRow(row), true, nil
}

func (r *RosterRepository) ListByDetail(ctx context.Context, fixtureDetailID string) ([]roster.Member, error) {
	query, args, err := rosterBaseSelectBuilder().
		Where(qb.Eq("fixture_detail_public_id", fixtureDetailID)).
		OrderBy("player_name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roster by detail: %w", err)
	}

	out := make([]roster.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) UpdateAvailability(ctx context.Context, memberID string, availability roster.Availability) error {
	if !availability.Valid() {
		return fmt.Errorf("invalid availability %q", availability)
	}

	query, args, err := qb.Update("roster_members").
		Set("availability", availability.String()).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", memberID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update availability query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update availability rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("roster member %s not found", memberID)
	}
	return nil
}

func rosterFromRow(row rosterTableModel) roster.Member {
	availability, err := roster.ParseAvailability(row.Availability)
	if err != nil {
		availability = roster.AvailabilityUnknown
	}
	return roster.Member{
		ID:              row.PublicID,
		FixtureDetailID: row.FixtureDetailPublicID,
		UserID:          row.UserPublicID,
		PlayerName:      row.PlayerName,
		Availability:    availability,
	}
}

func rosterBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"public_id",
		"fixture_detail_public_id",
		"user_public_id",
		"player_name",
		"availability",
	).From("roster_members")
}
