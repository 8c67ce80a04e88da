package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, external_id, username, name, role, primary_skill,
	additional_skills, idea_what, idea_who, is_searching,
	last_active, created_at, updated_at`

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

func scanUser(row pgx.Row, u *User) error {
	return row.Scan(
		&u.ID, &u.ExternalID, &u.Username, &u.Name, &u.Role,
		&u.PrimarySkill, &u.AdditionalSkills, &u.IdeaWhat, &u.IdeaWho,
		&u.IsSearching, &u.LastActive, &u.CreatedAt, &u.UpdatedAt,
	)
}

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (external_id, username, name, role, primary_skill,
		                   additional_skills, idea_what, idea_who, is_searching)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, last_active, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		u.ExternalID, u.Username, u.Name, u.Role, u.PrimarySkill,
		u.AdditionalSkills, u.IdeaWhat, u.IdeaWho, u.IsSearching,
	).Scan(&u.ID, &u.LastActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateExternalID
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// GetByID retrieves a single user by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u User
	if err := scanUser(r.pool.QueryRow(ctx, query, id), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &u, nil
}

// GetByExternalID retrieves a single user by its messenger-side id.
func (r *PostgresRepository) GetByExternalID(ctx context.Context, externalID int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`

	var u User
	if err := scanUser(r.pool.QueryRow(ctx, query, externalID), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user by external id: %w", err)
	}

	return &u, nil
}

// ListParticipants retrieves searching participants, most recently active
// first, excluding the given user (typically the requesting team's leader).
func (r *PostgresRepository) ListParticipants(ctx context.Context, excludeID uuid.UUID) ([]User, error) {
	return r.listByRole(ctx, RoleParticipant, excludeID)
}

// ListCofounders retrieves searching cofounders, most recently active first,
// excluding the requesting user.
func (r *PostgresRepository) ListCofounders(ctx context.Context, excludeID uuid.UUID) ([]User, error) {
	return r.listByRole(ctx, RoleCofounder, excludeID)
}

func (r *PostgresRepository) listByRole(ctx context.Context, role Role, excludeID uuid.UUID) ([]User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1 AND is_searching AND id <> $2
		ORDER BY last_active DESC`

	rows, err := r.pool.Query(ctx, query, role, excludeID)
	if err != nil {
		return nil, fmt.Errorf("listing %s users: %w", role, err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	if users == nil {
		users = []User{}
	}

	return users, nil
}

// TouchLastActive bumps the user's last_active timestamp to now.
func (r *PostgresRepository) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_active = NOW(), updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("touching last_active: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetSearching flips the user's search-pool membership.
func (r *PostgresRepository) SetSearching(ctx context.Context, id uuid.UUID, searching bool) error {
	query := `UPDATE users SET is_searching = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, searching)
	if err != nil {
		return fmt.Errorf("updating is_searching: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeactivateIdle flips is_searching off for every searching user whose
// last_active is older than the threshold. Returns the number of users touched.
func (r *PostgresRepository) DeactivateIdle(ctx context.Context, threshold time.Time) (int64, error) {
	query := `
		UPDATE users
		SET is_searching = FALSE, updated_at = NOW()
		WHERE is_searching AND last_active < $1`

	result, err := r.pool.Exec(ctx, query, threshold)
	if err != nil {
		return 0, fmt.Errorf("deactivating idle users: %w", err)
	}

	return result.RowsAffected(), nil
}

// Count returns the total number of registered users.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// CountByRole returns the number of registered users with the given role.
func (r *PostgresRepository) CountByRole(ctx context.Context, role Role) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE role = $1", role).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users by role: %w", err)
	}
	return count, nil
}
