package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const teamColumns = `id, name, idea_description, needed_skills, status,
	leader_id, created_at, updated_at`

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

func scanTeam(row pgx.Row, t *Team) error {
	return row.Scan(
		&t.ID, &t.Name, &t.IdeaDescription, &t.NeededSkills, &t.Status,
		&t.LeaderID, &t.CreatedAt, &t.UpdatedAt,
	)
}

// Create inserts a new team record.
func (r *PostgresRepository) Create(ctx context.Context, t *Team) error {
	query := `
		INSERT INTO teams (name, idea_description, needed_skills, status, leader_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	if t.Status == "" {
		t.Status = StatusActive
	}

	err := r.pool.QueryRow(ctx, query,
		t.Name, t.IdeaDescription, t.NeededSkills, t.Status, t.LeaderID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}

	return nil
}

// GetByID retrieves a single team by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	var t Team
	if err := scanTeam(r.pool.QueryRow(ctx, query, id), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

// ListByLeader retrieves all teams led by the given user, oldest first.
func (r *PostgresRepository) ListByLeader(ctx context.Context, leaderID uuid.UUID) ([]Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE leader_id = $1
		ORDER BY created_at ASC`

	return r.list(ctx, query, leaderID)
}

// ListActive retrieves all teams still recruiting, most recently updated first.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE status = $1
		ORDER BY updated_at DESC`

	return r.list(ctx, query, StatusActive)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Team, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := scanTeam(rows, &t); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}

	if teams == nil {
		teams = []Team{}
	}

	return teams, nil
}

// UpdateStatus sets the team's recruiting status.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE teams SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("updating team status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// UpdateNeededSkills replaces the team's needed-skills text.
func (r *PostgresRepository) UpdateNeededSkills(ctx context.Context, id uuid.UUID, neededSkills string) error {
	query := `UPDATE teams SET needed_skills = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, neededSkills)
	if err != nil {
		return fmt.Errorf("updating team needed skills: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// Count returns the number of teams, optionally restricted to one status.
func (r *PostgresRepository) Count(ctx context.Context, status *Status) (int, error) {
	query := "SELECT COUNT(*) FROM teams"
	args := []any{}
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, *status)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting teams: %w", err)
	}
	return count, nil
}
