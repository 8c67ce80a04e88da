package database

import (
	"context"
	"fmt"
)

// The original deployment creates its tables on boot rather than through a
// migration tool, so the statements are idempotent.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    external_id BIGINT NOT NULL UNIQUE,
    username VARCHAR(255),
    name VARCHAR(50) NOT NULL,
    role VARCHAR(20) NOT NULL,
    primary_skill VARCHAR(255) NOT NULL DEFAULT '',
    additional_skills TEXT NOT NULL DEFAULT '',
    idea_what TEXT NOT NULL DEFAULT '',
    idea_who TEXT NOT NULL DEFAULT '',
    is_searching BOOLEAN NOT NULL DEFAULT TRUE,
    last_active TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_role_searching ON users (role, is_searching);
CREATE INDEX IF NOT EXISTS idx_users_last_active ON users (last_active DESC);

CREATE TABLE IF NOT EXISTS teams (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(50) NOT NULL,
    idea_description TEXT NOT NULL DEFAULT '',
    needed_skills TEXT NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    leader_id UUID NOT NULL REFERENCES users (id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_teams_status ON teams (status);
CREATE INDEX IF NOT EXISTS idx_teams_leader ON teams (leader_id);

CREATE TABLE IF NOT EXISTS invitations (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    from_user_id UUID NOT NULL REFERENCES users (id),
    from_team_id UUID REFERENCES teams (id),
    to_user_id UUID NOT NULL REFERENCES users (id),
    message TEXT NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMPTZ,
    viewed_at TIMESTAMPTZ,
    responded_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_invitations_from_user ON invitations (from_user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_invitations_to_user ON invitations (to_user_id);
CREATE INDEX IF NOT EXISTS idx_invitations_status ON invitations (status);

CREATE TABLE IF NOT EXISTS api_clients (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(255) NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    key_prefix VARCHAR(8) NOT NULL,
    key_hash VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    revoked_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_api_clients_prefix ON api_clients (key_prefix);
`

// EnsureSchema creates the application tables and indexes if they do not
// already exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
