package auth

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a row in the api_clients table: a front-end caller
// (typically a bot instance) holding an API key.
type Client struct {
	ID        uuid.UUID
	Name      string
	IsAdmin   bool // admins may manage other clients
	KeyPrefix string
	KeyHash   string
	CreatedAt time.Time
	RevokedAt *time.Time
}

// Identity is stored in the request context after authentication.
type Identity struct {
	ClientID   uuid.UUID
	ClientName string
	IsAdmin    bool
}
