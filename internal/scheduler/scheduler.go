package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/insta-dashboard/internal/metrics"
	"github.com/orgball2608/insta-dashboard/internal/ratelimit"
	"github.com/orgball2608/insta-dashboard/internal/repositories/publication"
	"github.com/orgball2608/insta-dashboard/internal/session"
	"github.com/orgball2608/insta-dashboard/pkg/config"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"go.uber.org/fx"
)

const (
	JobSweepSessions       = "sweep-sessions"
	JobCleanupPublications = "cleanup-publications"
	JobReportOrphans       = "report-orphans"
)

type Opts struct {
	fx.In
	LC       fx.Lifecycle
	Config   *config.Config
	Logger   logger.Logger
	Sessions *session.Store
	Limiter  *ratelimit.InMemoryLimiter `optional:"true"`
	Repo     publication.Repository
	Metrics  *metrics.Metrics `optional:"true"`
}

type Scheduler struct {
	gocron.Scheduler
	jobs *Jobs
}

// New registers the background jobs. They start and stop with the app.
func New(opts Opts) (*Scheduler, error) {
	cfg := opts.Config
	log := opts.Logger.WithComponent("scheduler")

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		loc = time.Local
		log.Warn("Failed to load scheduler timezone, using local timezone", "timezone", cfg.Scheduler.Timezone, "error", err)
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	jobs := &Jobs{
		sessions:  opts.Sessions,
		repo:      opts.Repo,
		log:       log,
		metrics:   opts.Metrics,
		idleTTL:   cfg.Session.IdleTTL,
		retention: cfg.Scheduler.PublicationRetention,
	}
	if opts.Limiter != nil {
		jobs.limiter = opts.Limiter
	}

	ctx, cancel := context.WithCancel(context.Background())

	defs := []struct {
		name string
		def  gocron.JobDefinition
		task gocron.Task
	}{
		{
			name: JobSweepSessions,
			def:  gocron.DurationJob(cfg.Session.SweepInterval),
			task: gocron.NewTask(jobs.SweepSessions),
		},
		{
			name: JobCleanupPublications,
			def:  gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
			task: gocron.NewTask(func() { _ = jobs.CleanupPublications(ctx) }),
		},
		{
			name: JobReportOrphans,
			def:  gocron.DurationJob(cfg.Scheduler.OrphanReportInterval),
			task: gocron.NewTask(func() { _, _ = jobs.ReportOrphans(ctx) }),
		},
	}
	for _, d := range defs {
		_, err := s.NewJob(d.def, d.task,
			gocron.WithName(d.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to schedule %s: %w", d.name, err)
		}
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("Starting scheduler", "jobs", len(defs), "timezone", loc.String())
			s.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			log.Info("Stopping scheduler")
			cancel()
			if err := s.Shutdown(); err != nil {
				log.Error("Failed to shut down scheduler", "error", err)
				return err
			}
			return nil
		},
	})

	return &Scheduler{Scheduler: s, jobs: jobs}, nil
}
