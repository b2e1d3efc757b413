package profile

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/internal/instagram"
	"github.com/orgball2608/insta-dashboard/internal/metrics"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	Client  instagram.Client
	Cache   Cache
	Logger  logger.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// Service serves the account profile, reading through the cache.
type Service struct {
	client  instagram.Client
	cache   Cache
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewService(opts Opts) *Service {
	return &Service{
		client:  opts.Client,
		cache:   opts.Cache,
		log:     opts.Logger.WithComponent("profile"),
		metrics: opts.Metrics,
	}
}

// Get returns the cached profile or fetches it. Cache failures fall back to
// the Graph API and are only logged.
func (s *Service) Get(ctx context.Context) (*domain.Profile, error) {
	cached, err := s.cache.Get(ctx)
	if err == nil {
		s.metrics.ProfileCache(true)
		return cached, nil
	}
	s.metrics.ProfileCache(false)
	if !errors.Is(err, ErrMiss) {
		s.log.Warn("Profile cache read failed", "error", err)
	}

	p, err := s.client.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, p); err != nil {
		s.log.Warn("Profile cache write failed", "error", err)
	}
	return p, nil
}

// Invalidate drops the cached profile so the next Get sees a fresh media count.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}
