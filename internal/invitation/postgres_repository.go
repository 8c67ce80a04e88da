package invitation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invitationColumns = `id, from_user_id, from_team_id, to_user_id, message,
	status, created_at, expires_at, viewed_at, responded_at`

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

func scanInvitation(row pgx.Row, inv *Invitation) error {
	return row.Scan(
		&inv.ID, &inv.FromUserID, &inv.FromTeamID, &inv.ToUserID, &inv.Message,
		&inv.Status, &inv.CreatedAt, &inv.ExpiresAt, &inv.ViewedAt, &inv.RespondedAt,
	)
}

// Create inserts a new invitation record.
func (r *PostgresRepository) Create(ctx context.Context, inv *Invitation) error {
	query := `
		INSERT INTO invitations (from_user_id, from_team_id, to_user_id, message, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	if inv.Status == "" {
		inv.Status = StatusPending
	}

	err := r.pool.QueryRow(ctx, query,
		inv.FromUserID, inv.FromTeamID, inv.ToUserID, inv.Message, inv.Status, inv.ExpiresAt,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting invitation: %w", err)
	}

	return nil
}

// GetByID retrieves a single invitation by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`

	var inv Invitation
	if err := scanInvitation(r.pool.QueryRow(ctx, query, id), &inv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("querying invitation: %w", err)
	}

	return &inv, nil
}

// ListSent retrieves invitations sent by a user, newest first, optionally
// filtered by status.
func (r *PostgresRepository) ListSent(ctx context.Context, fromUserID uuid.UUID, status *Status) ([]Invitation, error) {
	return r.listByUser(ctx, "from_user_id", fromUserID, status)
}

// ListReceived retrieves invitations received by a user, newest first,
// optionally filtered by status.
func (r *PostgresRepository) ListReceived(ctx context.Context, toUserID uuid.UUID, status *Status) ([]Invitation, error) {
	return r.listByUser(ctx, "to_user_id", toUserID, status)
}

func (r *PostgresRepository) listByUser(ctx context.Context, column string, userID uuid.UUID, status *Status) ([]Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE ` + column + ` = $1`
	args := []any{userID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}
	defer rows.Close()

	var invitations []Invitation
	for rows.Next() {
		var inv Invitation
		if err := scanInvitation(rows, &inv); err != nil {
			return nil, fmt.Errorf("scanning invitation row: %w", err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invitation rows: %w", err)
	}

	if invitations == nil {
		invitations = []Invitation{}
	}

	return invitations, nil
}

// UpdateStatus sets the invitation status and stamps responded_at.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `
		UPDATE invitations
		SET status = $2, responded_at = NOW()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("updating invitation status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrInvitationNotFound
	}

	return nil
}

// MarkViewed stamps viewed_at on the invitation.
func (r *PostgresRepository) MarkViewed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE invitations SET viewed_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("marking invitation viewed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrInvitationNotFound
	}

	return nil
}

// CountSentSince counts invitations a user has created since the given
// instant, regardless of their current status. Backs the daily limiter.
func (r *PostgresRepository) CountSentSince(ctx context.Context, fromUserID uuid.UUID, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM invitations WHERE from_user_id = $1 AND created_at >= $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, fromUserID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting sent invitations: %w", err)
	}

	return count, nil
}

// ExpirePending marks every pending invitation whose expires_at has passed as
// expired. Returns the number of invitations touched.
func (r *PostgresRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE invitations
		SET status = $1
		WHERE status = $2 AND expires_at IS NOT NULL AND expires_at < $3`

	result, err := r.pool.Exec(ctx, query, StatusExpired, StatusPending, now)
	if err != nil {
		return 0, fmt.Errorf("expiring invitations: %w", err)
	}

	return result.RowsAffected(), nil
}

// Count returns the number of invitations, optionally restricted to one status.
func (r *PostgresRepository) Count(ctx context.Context, status *Status) (int, error) {
	query := "SELECT COUNT(*) FROM invitations"
	args := []any{}
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, *status)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting invitations: %w", err)
	}
	return count, nil
}
