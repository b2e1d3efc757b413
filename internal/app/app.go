package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/orgball2608/insta-dashboard/internal/api"
	"github.com/orgball2608/insta-dashboard/internal/instagram/graphapi"
	"github.com/orgball2608/insta-dashboard/internal/metrics"
	_ "github.com/orgball2608/insta-dashboard/internal/migrations"
	"github.com/orgball2608/insta-dashboard/internal/profile"
	"github.com/orgball2608/insta-dashboard/internal/publish"
	repositories "github.com/orgball2608/insta-dashboard/internal/repositories/fx"
	"github.com/orgball2608/insta-dashboard/internal/scheduler"
	"github.com/orgball2608/insta-dashboard/internal/session"
	"github.com/orgball2608/insta-dashboard/internal/telegram/telegramimpl"
	"github.com/orgball2608/insta-dashboard/pkg/config"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"github.com/orgball2608/insta-dashboard/pkg/pgx"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
	),
	metrics.Module,
	graphapi.Module,
	telegramimpl.Module,
	repositories.Module,
	session.Module,
	profile.Module,
	publish.Module,
	scheduler.Module,
	fx.Invoke(migrate),
	api.Module,
)

// migrate applies pending migrations before any component starts serving.
func migrate(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) {
	log = log.WithComponent("migrations")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}

			db, err := sql.Open("postgres", cfg.Postgres.DSN())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if err := goose.UpContext(ctx, db, "."); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			version, err := goose.GetDBVersionContext(ctx, db)
			if err != nil {
				return err
			}
			log.Info("Database schema is up to date", "version", version)
			return nil
		},
	})
}
