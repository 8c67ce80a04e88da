package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port                   int    `envconfig:"PORT" default:"8080"`
	LogLevel               string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL            string `envconfig:"DATABASE_URL" required:"true"`
	Version                string `envconfig:"VERSION" default:"dev"`
	BcryptCost             int    `envconfig:"BCRYPT_COST" default:"12"`
	MaxInvitationsPerDay   int    `envconfig:"MAX_INVITATIONS_PER_DAY" default:"5"`
	InvitationTTLHours     int    `envconfig:"INVITATION_TTL_HOURS" default:"72"`
	InactiveAfterDays      int    `envconfig:"INACTIVE_AFTER_DAYS" default:"14"`
	CleanupIntervalMinutes int    `envconfig:"CLEANUP_INTERVAL_MINUTES" default:"30"`
	MaxSearchResults       int    `envconfig:"MAX_SEARCH_RESULTS" default:"10"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
