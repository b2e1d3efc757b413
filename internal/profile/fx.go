package profile

import (
	"context"

	"github.com/orgball2608/insta-dashboard/internal/publish"
	"github.com/orgball2608/insta-dashboard/pkg/config"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type CacheOpts struct {
	fx.In
	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

// NewCache connects to Redis when REDIS_ADDR is set and falls back to
// NoopCache otherwise.
func NewCache(opts CacheOpts) Cache {
	cfg := opts.Config.Redis
	log := opts.Logger.WithComponent("redis")

	if cfg.Addr == "" {
		log.Info("Redis not configured, profile cache disabled")
		return NoopCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn("Redis unreachable, profile requests will go to Instagram", "addr", cfg.Addr, "error", err)
				return nil
			}
			log.Info("Connected to redis", "addr", cfg.Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return NewRedisCache(client, cfg.ProfileTTL)
}

var Module = fx.Provide(
	NewCache,
	fx.Annotate(
		NewService,
		fx.As(fx.Self()),
		fx.As(new(publish.ProfileInvalidator)),
	),
)
