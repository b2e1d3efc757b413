package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-dashboard/internal/profile"
	"github.com/orgball2608/insta-dashboard/internal/publish"
	"github.com/orgball2608/insta-dashboard/internal/ratelimit"
	"github.com/orgball2608/insta-dashboard/pkg/config"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"go.uber.org/fx"
)

func newLimiter(cfg *config.Config) *ratelimit.InMemoryLimiter {
	return ratelimit.NewInMemoryLimiter(cfg.Publish.RequestsPerMinute, time.Minute, cfg.Publish.Burst)
}

func newServer(lc fx.Lifecycle, cfg *config.Config, log logger.Logger, h *Handler) *http.Server {
	if cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log = log.WithComponent("http")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}
			log.Info("Starting server", "addr", srv.Addr)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping server")
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			newLimiter,
			fx.As(fx.Self()),
			fx.As(new(ratelimit.Limiter)),
		),
		func(o *publish.Orchestrator) Publisher { return o },
		func(s *profile.Service) ProfileReader { return s },
		New,
		newServer,
	),
	fx.Invoke(func(*http.Server) {}),
)
