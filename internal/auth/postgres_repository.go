package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements ClientRepository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new ClientRepository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) ClientRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new client record.
func (r *PostgresRepository) Create(ctx context.Context, c *Client) error {
	query := `
		INSERT INTO api_clients (name, is_admin, key_prefix, key_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		c.Name, c.IsAdmin, c.KeyPrefix, c.KeyHash,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}

	return nil
}

// GetByID retrieves a single client by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	query := `
		SELECT id, name, is_admin, key_prefix, key_hash, created_at, revoked_at
		FROM api_clients
		WHERE id = $1`

	var c Client
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.IsAdmin, &c.KeyPrefix, &c.KeyHash,
		&c.CreatedAt, &c.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("querying client: %w", err)
	}

	return &c, nil
}

// FindByPrefix returns active (non-revoked) clients matching the given API key prefix.
func (r *PostgresRepository) FindByPrefix(ctx context.Context, prefix string) ([]Client, error) {
	query := `
		SELECT id, name, is_admin, key_prefix, key_hash, created_at, revoked_at
		FROM api_clients
		WHERE key_prefix = $1 AND revoked_at IS NULL`

	return r.query(ctx, query, prefix)
}

// List retrieves all clients ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]Client, error) {
	query := `
		SELECT id, name, is_admin, key_prefix, key_hash, created_at, revoked_at
		FROM api_clients
		ORDER BY created_at ASC`

	return r.query(ctx, query)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]Client, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		err := rows.Scan(
			&c.ID, &c.Name, &c.IsAdmin, &c.KeyPrefix, &c.KeyHash,
			&c.CreatedAt, &c.RevokedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	if clients == nil {
		clients = []Client{}
	}

	return clients, nil
}

// Revoke sets revoked_at on a client. Returns ErrClientNotFound if the client
// does not exist, and ErrClientRevoked if already revoked.
func (r *PostgresRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE api_clients
		SET revoked_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("revoking client: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM api_clients WHERE id = $1)", id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking client existence: %w", err)
		}
		if !exists {
			return ErrClientNotFound
		}
		return ErrClientRevoked
	}

	return nil
}

// CountAll returns the total number of clients (including revoked ones).
func (r *PostgresRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM api_clients").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting clients: %w", err)
	}
	return count, nil
}
