package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidKey is returned when the provided API key does not match any active client.
var ErrInvalidKey = errors.New("invalid or revoked API key")

// Service provides API key generation and authentication for front-end clients.
type Service struct {
	repo       ClientRepository
	bcryptCost int
}

// NewService creates a new auth Service.
func NewService(repo ClientRepository, bcryptCost int) *Service {
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// GenerateKey creates a new API key. Returns the raw key, its prefix (first 8
// chars), and the bcrypt hash. The raw key is: 32 random bytes -> base64url
// -> prepend "tfk_".
func (s *Service) GenerateKey() (rawKey, prefix, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", "", fmt.Errorf("generating random bytes: %w", err)
	}

	rawKey = "tfk_" + base64.RawURLEncoding.EncodeToString(b)
	prefix = rawKey[:8]

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(rawKey), s.bcryptCost)
	if err != nil {
		return "", "", "", fmt.Errorf("hashing key: %w", err)
	}
	hash = string(hashBytes)

	return rawKey, prefix, hash, nil
}

// Authenticate resolves a raw API key to an Identity. It extracts the prefix,
// looks up candidates, and bcrypt-compares each one.
func (s *Service) Authenticate(ctx context.Context, rawKey string) (*Identity, error) {
	if len(rawKey) < 8 {
		return nil, ErrInvalidKey
	}

	prefix := rawKey[:8]

	candidates, err := s.repo.FindByPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("finding clients by prefix: %w", err)
	}

	for _, c := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(c.KeyHash), []byte(rawKey)) == nil {
			return &Identity{
				ClientID:   c.ID,
				ClientName: c.Name,
				IsAdmin:    c.IsAdmin,
			}, nil
		}
	}

	return nil, ErrInvalidKey
}

// CreateClient registers a new API client and returns it along with the raw
// key, which is only available at creation time.
func (s *Service) CreateClient(ctx context.Context, name string, isAdmin bool) (*Client, string, error) {
	rawKey, prefix, hash, err := s.GenerateKey()
	if err != nil {
		return nil, "", fmt.Errorf("generating client key: %w", err)
	}

	c := &Client{
		Name:      name,
		IsAdmin:   isAdmin,
		KeyPrefix: prefix,
		KeyHash:   hash,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, "", err
	}

	slog.Info("api client created", "client", c.ID, "name", c.Name, "admin", c.IsAdmin)
	return c, rawKey, nil
}

// BootstrapClient creates the initial admin client if the table is empty.
// Returns the raw API key (only displayed once). If clients already exist,
// returns empty string.
func (s *Service) BootstrapClient(ctx context.Context) (string, error) {
	count, err := s.repo.CountAll(ctx)
	if err != nil {
		return "", fmt.Errorf("counting clients: %w", err)
	}

	if count > 0 {
		return "", nil
	}

	_, rawKey, err := s.CreateClient(ctx, "bootstrap", true)
	if err != nil {
		return "", fmt.Errorf("creating bootstrap client: %w", err)
	}

	slog.Info("bootstrap API key created", "key", rawKey)

	return rawKey, nil
}
