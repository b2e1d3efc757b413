package publish

import (
	"context"
	"time"

	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/internal/instagram"
	"github.com/orgball2608/insta-dashboard/internal/metrics"
	"github.com/orgball2608/insta-dashboard/internal/repositories/publication"
	"github.com/orgball2608/insta-dashboard/internal/telegram"
	"github.com/orgball2608/insta-dashboard/pkg/errors"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"github.com/orgball2608/insta-dashboard/pkg/retry"
	"go.uber.org/fx"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateCreating   State = "creating"
	StatePublishing State = "publishing"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

const (
	MsgCreateFailed  = "failed to create media container"
	MsgPublishFailed = "failed to publish media"
)

// Gateway is the part of the Instagram client used for publishing.
type Gateway interface {
	CreateContainer(ctx context.Context, container domain.Container) (string, error)
	PublishContainer(ctx context.Context, creationID string) (string, error)
}

// FeedResetter is told to drop every loaded feed after a post goes live.
type FeedResetter interface {
	ResetFeeds()
}

// ProfileInvalidator drops cached profile data whose media count a new post
// makes stale.
type ProfileInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Result describes one run through the publish state machine.
type Result struct {
	State      State
	MediaID    string
	CreationID string
	Trace      []State
}

type Opts struct {
	fx.In
	Gateway  instagram.Client
	Feeds    FeedResetter
	Repo     publication.Repository
	Notifier telegram.Client
	Profile  ProfileInvalidator `optional:"true"`
	Logger   logger.Logger
	Metrics  *metrics.Metrics `optional:"true"`
}

// Orchestrator runs the create-then-publish sequence. It never retries a
// remote call; a failed attempt is retried by submitting the draft again.
type Orchestrator struct {
	gateway  Gateway
	feeds    FeedResetter
	repo     publication.Repository
	notifier telegram.Client
	profile  ProfileInvalidator
	log      logger.Logger
	metrics  *metrics.Metrics
	auditCfg retry.Config
}

func New(opts Opts) *Orchestrator {
	return &Orchestrator{
		gateway:  opts.Gateway,
		feeds:    opts.Feeds,
		repo:     opts.Repo,
		notifier: opts.Notifier,
		profile:  opts.Profile,
		log:      opts.Logger.WithComponent("publish"),
		metrics:  opts.Metrics,
		auditCfg: retry.Config{
			MaxRetries:      2,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     time.Second,
			Multiplier:      2,
		},
	}
}

type run struct {
	result Result
	record domain.Publication
}

func (r *run) enter(s State) {
	r.result.State = s
	r.result.Trace = append(r.result.Trace, s)
}

// Publish validates draft and, if it passes, creates and publishes the
// container. Validation failures return a validation error with the state
// back at Idle; remote failures return a gateway error with state Failed.
func (o *Orchestrator) Publish(ctx context.Context, draft domain.Draft) (Result, error) {
	r := &run{}
	r.enter(StateValidating)

	container, err := Validate(draft)
	if err != nil {
		r.enter(StateIdle)
		o.metrics.Publish(string(StateIdle))
		o.log.Debug("Draft rejected", "reason", errors.GetMessage(err))
		return r.result, err
	}

	r.record = domain.Publication{
		MediaURL:  container.MediaURL,
		Caption:   container.Caption,
		MediaKind: container.Kind,
		State:     domain.PublicationPending,
	}
	o.createRecord(ctx, r)

	r.enter(StateCreating)
	creationID, err := o.gateway.CreateContainer(ctx, container)
	if err != nil {
		return o.fail(ctx, r, MsgCreateFailed, err)
	}
	r.result.CreationID = creationID
	r.record.CreationID = creationID
	r.record.State = domain.PublicationCreated
	o.updateRecord(ctx, r)

	r.enter(StatePublishing)
	mediaID, err := o.gateway.PublishContainer(ctx, creationID)
	if err != nil {
		o.log.Warn("Container created but not published", "creation_id", creationID, "error", err)
		return o.fail(ctx, r, MsgPublishFailed, err)
	}

	r.enter(StateSucceeded)
	r.result.MediaID = mediaID
	r.record.MediaID = mediaID
	r.record.State = domain.PublicationPublished
	o.updateRecord(ctx, r)

	o.feeds.ResetFeeds()
	if o.profile != nil {
		if err := o.profile.Invalidate(context.WithoutCancel(ctx)); err != nil {
			o.log.Warn("Failed to invalidate cached profile", "error", err)
		}
	}
	o.metrics.Publish(string(StateSucceeded))
	o.log.Info("Media published", "media_id", mediaID, "creation_id", creationID, "kind", container.Kind)

	if o.notifier != nil {
		if err := o.notifier.NotifyPublished(context.WithoutCancel(ctx), r.record); err != nil {
			o.log.Warn("Failed to send publish notification", "media_id", mediaID, "error", err)
		}
	}

	return r.result, nil
}

func (o *Orchestrator) fail(ctx context.Context, r *run, fallback string, cause error) (Result, error) {
	msg, ok := instagram.UpstreamMessage(cause)
	if !ok {
		msg = fallback
	}

	r.enter(StateFailed)
	r.record.State = domain.PublicationFailed
	r.record.Error = msg
	o.updateRecord(ctx, r)

	o.metrics.Publish(string(StateFailed))
	o.log.Error("Publish failed", "stage", r.result.Trace[len(r.result.Trace)-2], "error", cause)

	return r.result, errors.Gateway(msg, cause)
}

// Audit errors are logged only. Writes outlive a cancelled request.

func (o *Orchestrator) createRecord(ctx context.Context, r *run) {
	id, err := o.repo.Create(context.WithoutCancel(ctx), r.record)
	if err != nil {
		o.log.Error("Failed to record publication", "error", err)
		return
	}
	r.record.ID = id
}

func (o *Orchestrator) updateRecord(ctx context.Context, r *run) {
	if r.record.ID == 0 {
		return
	}
	record := r.record
	err := retry.Do(context.WithoutCancel(ctx), o.log, "update publication", func() error {
		err := o.repo.Update(context.WithoutCancel(ctx), record)
		if errors.Is(err, publication.ErrNotFound) {
			return retry.Permanent(err)
		}
		return err
	}, o.auditCfg)
	if err != nil {
		o.log.Error("Failed to update publication", "id", record.ID, "state", record.State, "error", err)
	}
}
