package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamsync/internal/domain/team"
	"github.com/riskibarqy/teamsync/internal/domain/user"
	qb "github.com/riskibarqy/teamsync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("public_id", "name").
		From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return team.Team{ID: row.PublicID, Name: row.Name}, true, nil
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	query, args, err := qb.Select("public_id", "email", "name", "active_team_public_id").
		From("users").
		Where(
			qb.Expr("LOWER(email) = ?", user.NormalizeEmail(email)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by email query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by email: %w", err)
	}

	return user.User{
		ID:           row.PublicID,
		Email:        row.Email,
		Name:         row.Name,
		ActiveTeamID: row.ActiveTeamPublicID.String,
	}, true, nil
}
