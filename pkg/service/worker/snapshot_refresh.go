package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/interfaces"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
	"github.com/shamay-ai/mekorot/pkg/utils/logging"
)

// SnapshotLoader reconciles a session and caches the result
type SnapshotLoader interface {
	LoadProvenance(ctx context.Context, sessionID types.SessionID) (*model.Snapshot, error)
}

// SnapshotRefreshWorker keeps provenance snapshots of sessions under review
// warm, so the review screen does not pay the reconciliation cost on first
// open.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type SnapshotRefreshWorker struct {
	repo     interfaces.Repository
	loader   SnapshotLoader
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSnapshotRefreshWorker creates a new worker for pre-warming snapshots
func NewSnapshotRefreshWorker(repo interfaces.Repository, loader SnapshotLoader, interval time.Duration) *SnapshotRefreshWorker {
	return &SnapshotRefreshWorker{
		repo:     repo,
		loader:   loader,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop. It does not block server startup.
func (w *SnapshotRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("Snapshot refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *SnapshotRefreshWorker) Stop() {
	logging.Default().Info("Snapshot refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Snapshot refresh worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *SnapshotRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.refresh(ctx); err != nil {
		logging.Default().Error("Initial snapshot refresh failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.refresh(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("Snapshot refresh failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Snapshot refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Snapshot refresh worker context cancelled")
			return
		}
	}
}

// refresh reconciles every session currently in review. A failing session is
// logged and skipped so the rest of the cycle still completes.
func (w *SnapshotRefreshWorker) refresh(ctx context.Context) error {
	startTime := time.Now()

	sessions, err := w.repo.Session().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list sessions")
	}

	var refreshed int
	for _, session := range sessions {
		if session.Status.Normalize() != types.SessionStatusReview {
			continue
		}

		if _, err := w.loader.LoadProvenance(ctx, session.ID); err != nil {
			logging.Default().Error("Failed to refresh session snapshot",
				"session_id", session.ID, "error", err.Error())
			continue
		}
		refreshed++
	}

	logging.Default().Info("Snapshot refresh completed",
		"sessions", len(sessions),
		"refreshed", refreshed,
		"duration", time.Since(startTime).String())

	return nil
}
