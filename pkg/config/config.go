package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type PostgresConfig struct {
	Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
	Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
	User    string `env:"POSTGRES_USER"`
	Pass    string `env:"POSTGRES_PASS"`
	Name    string `env:"POSTGRES_NAME"`
	SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
}

// DSN returns a libpq keyword/value connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		p.Name, p.User, p.Pass, p.Host, p.Port, p.SslMode)
}

// URL returns the connection string in URL form, as expected by pgxpool.
func (p PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Pass, p.Host, p.Port, p.Name, p.SslMode)
}

type Config struct {
	App struct {
		Env         string   `env:"APP_ENV" env-default:"development"`
		Port        int      `env:"APP_PORT" env-default:"8080"`
		LogLevel    string   `env:"LOG_LEVEL" env-default:"info"`
		SentryUrl   string   `env:"SENTRY_URL"`
		CorsOrigins []string `env:"APP_CORS_ORIGINS" env-separator:"," env-default:"*"`
	}
	Instagram struct {
		AccessToken string        `env:"INSTAGRAM_ACCESS_TOKEN" env-required:"true"`
		GraphURL    string        `env:"INSTAGRAM_GRAPH_URL" env-default:"https://graph.instagram.com"`
		PageSize    int           `env:"INSTAGRAM_PAGE_SIZE" env-default:"12"`
		Timeout     time.Duration `env:"INSTAGRAM_TIMEOUT" env-default:"15s"`
	}
	Postgres PostgresConfig
	Redis    struct {
		Addr       string        `env:"REDIS_ADDR"`
		Password   string        `env:"REDIS_PASSWORD"`
		DB         int           `env:"REDIS_DB" env-default:"0"`
		ProfileTTL time.Duration `env:"REDIS_PROFILE_TTL" env-default:"5m"`
	}
	Telegram struct {
		Token   string `env:"TELEGRAM_TOKEN"`
		Channel string `env:"TELEGRAM_CHANNEL"`
	}
	Session struct {
		IdleTTL       time.Duration `env:"SESSION_IDLE_TTL" env-default:"30m"`
		SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" env-default:"5m"`
	}
	Publish struct {
		RequestsPerMinute int `env:"PUBLISH_REQUESTS_PER_MINUTE" env-default:"5"`
		Burst             int `env:"PUBLISH_BURST" env-default:"2"`
	}
	Scheduler struct {
		Timezone             string        `env:"SCHEDULER_TIMEZONE" env-default:"UTC"`
		PublicationRetention time.Duration `env:"PUBLICATION_RETENTION" env-default:"720h"`
		OrphanReportInterval time.Duration `env:"ORPHAN_REPORT_INTERVAL" env-default:"1h"`
	}
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// New reads the configuration from the environment once per process.
// A missing INSTAGRAM_ACCESS_TOKEN is reported as an error.
func New() (*Config, error) {
	once.Do(func() {
		c := &Config{}
		if err := cleanenv.ReadEnv(c); err != nil {
			help, _ := cleanenv.GetDescription(c, nil)
			cfgErr = fmt.Errorf("failed to read configuration: %w\n%s", err, help)
			return
		}
		cfg = c
	})
	return cfg, cfgErr
}

// NewPostgres reads only the Postgres section, for tools that do not talk to Instagram.
func NewPostgres() (*PostgresConfig, error) {
	p := &PostgresConfig{}
	if err := cleanenv.ReadEnv(p); err != nil {
		return nil, fmt.Errorf("failed to read postgres configuration: %w", err)
	}
	return p, nil
}
