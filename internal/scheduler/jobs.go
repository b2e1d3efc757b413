package scheduler

import (
	"context"
	"time"

	"github.com/orgball2608/insta-dashboard/internal/metrics"
	"github.com/orgball2608/insta-dashboard/internal/repositories/publication"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
)

// orphanGrace keeps attempts that may still be running out of the report.
const orphanGrace = 10 * time.Minute

type SessionEvicter interface {
	EvictIdle(ttl time.Duration) int
}

type KeyPruner interface {
	Prune(idle time.Duration) int
}

// Jobs holds the work run on a schedule. Each method is one run.
type Jobs struct {
	sessions  SessionEvicter
	limiter   KeyPruner
	repo      publication.Repository
	log       logger.Logger
	metrics   *metrics.Metrics
	idleTTL   time.Duration
	retention time.Duration
}

// SweepSessions drops idle dashboard sessions together with rate limiter
// buckets nobody has used for as long.
func (j *Jobs) SweepSessions() {
	evicted := j.sessions.EvictIdle(j.idleTTL)
	pruned := 0
	if j.limiter != nil {
		pruned = j.limiter.Prune(j.idleTTL)
	}
	if evicted > 0 || pruned > 0 {
		j.log.Info("Idle state swept", "sessions_evicted", evicted, "limiter_keys_pruned", pruned)
	}
}

func (j *Jobs) CleanupPublications(ctx context.Context) error {
	j.log.Info("Starting publication cleanup")

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	rows, err := j.repo.CleanupOldRecords(ctx, j.retention)
	if err != nil {
		j.log.Error("Failed to clean up old publications", "error", err)
		return err
	}

	j.log.Info("Publication cleanup completed", "rows_deleted", rows)
	return nil
}

// ReportOrphans logs every container that was created but never published.
// Nothing is retried or deleted upstream.
func (j *Jobs) ReportOrphans(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	orphans, err := j.repo.ListOrphaned(ctx, orphanGrace)
	if err != nil {
		j.log.Error("Failed to list orphaned containers", "error", err)
		return 0, err
	}

	j.metrics.SetOrphaned(len(orphans))
	for _, p := range orphans {
		j.log.Warn("Orphaned media container",
			"publication_id", p.ID,
			"creation_id", p.CreationID,
			"state", p.State,
			"created_at", p.CreatedAt,
			"error", p.Error,
		)
	}
	return len(orphans), nil
}
