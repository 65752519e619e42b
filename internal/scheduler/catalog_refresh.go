package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/abodsh/edufiles/internal/index"
	"github.com/abodsh/edufiles/internal/logger"
	"github.com/abodsh/edufiles/internal/store"
)

// Refresher periodically re-reads the stored catalog document into the
// snapshot. This is how writes from another process become visible here:
// consistency is eventual and best-effort, one polling interval at most,
// and a concurrent writer's save can still be lost (last write wins).
type Refresher struct {
	store         store.CatalogStore
	snapshot      *index.Snapshot
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewRefresher creates a catalog refresher.
func NewRefresher(
	st store.CatalogStore,
	snap *index.Snapshot,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Refresher {
	return &Refresher{
		store:         st,
		snapshot:      snap,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the document once (seeding the slot on first run) and then
// refreshes on every tick and on every manual trigger until Stop or ctx.
func (r *Refresher) Start(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		return fmt.Errorf("initial catalog load failed: %w", err)
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.Refresh(ctx); err != nil {
					r.logger.Error("failed to refresh catalog snapshot",
						logger.Error(err))
				}
			case <-r.manualTrigger:
				r.logger.Info("manual catalog refresh triggered")
				if err := r.Refresh(ctx); err != nil {
					r.logger.Error("failed to refresh catalog snapshot",
						logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresh loop.
func (r *Refresher) Stop() {
	close(r.stopCh)
}

// Refresh re-reads the stored document and replaces the snapshot. A
// document that fails the validating decode leaves the previous snapshot
// in place.
func (r *Refresher) Refresh(ctx context.Context) error {
	c, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	r.snapshot.Update(c)

	r.logger.Debug("catalog snapshot refreshed",
		logger.Int("faculties", len(c.Faculties)),
		logger.Int("majors", len(c.Majors)),
		logger.Int("subjects", len(c.Subjects)),
		logger.Int("files", len(c.Files)))

	return nil
}
