package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/teamfinder-app/teamfinder/internal/invitation"
	"github.com/teamfinder-app/teamfinder/internal/user"
)

// Runner periodically expires stale invitations and flips idle users out of
// the search pool. It only consumes the data model's timestamp fields; the
// matching core never mutates invitation or user state itself.
type Runner struct {
	invitations invitation.Repository
	users       user.Repository
	interval    time.Duration
	idleAfter   time.Duration
	now         func() time.Time
}

// New creates a new Runner. idleAfter is how long a user may stay inactive
// before being dropped from search results.
func New(invitations invitation.Repository, users user.Repository, interval, idleAfter time.Duration) *Runner {
	return &Runner{
		invitations: invitations,
		users:       users,
		interval:    interval,
		idleAfter:   idleAfter,
		now:         time.Now,
	}
}

// Start begins the cleanup loop. It blocks until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	slog.Info("cleanup started", "interval", r.interval.String(), "idleAfter", r.idleAfter.String())
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs one cleanup pass. Errors are logged and the pass continues;
// whatever a failed sweep misses is picked up by the next one.
func (r *Runner) Sweep(ctx context.Context) {
	now := r.now().UTC()

	expired, err := r.invitations.ExpirePending(ctx, now)
	if err != nil {
		slog.Error("cleanup: failed to expire invitations", "error", err)
	} else if expired > 0 {
		slog.Info("cleanup: invitations expired", "count", expired)
	}

	idle, err := r.users.DeactivateIdle(ctx, now.Add(-r.idleAfter))
	if err != nil {
		slog.Error("cleanup: failed to deactivate idle users", "error", err)
	} else if idle > 0 {
		slog.Info("cleanup: idle users removed from search", "count", idle)
	}
}
