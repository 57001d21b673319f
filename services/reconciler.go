package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/quillhub/api-go/logging"
	"github.com/quillhub/api-go/models"
)

// Reconciler periodically re-derives engagement state for every user,
// repairing drift between post history and the persisted award and
// inactivity fields. It is the safety net behind the write-time
// triggers: a user who simply stops posting is only ever suspended by
// this job, since no write of theirs will run a recompute.
type Reconciler struct {
	db         *gorm.DB
	engagement *EngagementService
	interval   time.Duration
	quit       chan struct{}
	doneCh     chan struct{}
}

func NewReconciler(db *gorm.DB, engagement *EngagementService, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Reconciler{
		db:         db,
		engagement: engagement,
		interval:   interval,
		quit:       make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start launches the reconciler in a background goroutine.
func (r *Reconciler) Start(ctx context.Context) {
	go r.run(ctx)
}

// Stop signals the reconciler to stop and returns immediately.
// Call Done() to wait for it to exit.
func (r *Reconciler) Stop() {
	close(r.quit)
}

// Done returns a channel that is closed when the reconciler has fully stopped.
func (r *Reconciler) Done() <-chan struct{} {
	return r.doneCh
}

func (r *Reconciler) run(ctx context.Context) {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Reconcile(ctx)
		}
	}
}

// Reconcile runs one full engagement pass. Exported so a deploy hook or
// test can trigger it outside the ticker.
func (r *Reconciler) Reconcile(ctx context.Context) {
	l := logging.L()
	l.Info().Msg("reconciler: starting engagement pass")

	var userIDs []uint
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Order("id").Pluck("id", &userIDs).Error; err != nil {
		l.Error().Err(err).Msg("reconciler: failed to list users")
		return
	}

	var failed int
	for _, id := range userIDs {
		if err := r.engagement.Recompute(ctx, id); err != nil {
			failed++
			l.Error().Err(err).Uint("user_id", id).Msg("reconciler: recompute failed")
		}
	}

	l.Info().
		Int("users", len(userIDs)).
		Int("failed", failed).
		Msg("reconciler: engagement pass complete")
}
