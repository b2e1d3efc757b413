package api

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/internal/instagram"
	"github.com/orgball2608/insta-dashboard/internal/metrics"
	"github.com/orgball2608/insta-dashboard/internal/publish"
	"github.com/orgball2608/insta-dashboard/internal/ratelimit"
	"github.com/orgball2608/insta-dashboard/internal/session"
	"github.com/orgball2608/insta-dashboard/pkg/config"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"go.uber.org/fx"
)

const (
	MsgFetchPostsFailed    = "Failed to fetch Instagram posts"
	MsgFetchCommentsFailed = "Failed to fetch comments"
	MsgFetchProfileFailed  = "Failed to fetch profile"
	MsgPostNotFound        = "post not found"
	MsgTooManyRequests     = "Too many publish requests. Please wait and try again."
	MsgInvalidBody         = "Invalid request body."
)

type Publisher interface {
	Publish(ctx context.Context, draft domain.Draft) (publish.Result, error)
}

type ProfileReader interface {
	Get(ctx context.Context) (*domain.Profile, error)
}

type Opts struct {
	fx.In
	Config    *config.Config
	Logger    logger.Logger
	Client    instagram.Client
	Sessions  *session.Store
	Publisher Publisher
	Profiles  ProfileReader
	Limiter   ratelimit.Limiter
	Metrics   *metrics.Metrics `optional:"true"`
}

// Handler serves the dashboard API.
type Handler struct {
	client    instagram.Client
	sessions  *session.Store
	publisher Publisher
	profiles  ProfileReader
	limiter   ratelimit.Limiter
	metrics   *metrics.Metrics
	log       logger.Logger
	origins   []string
}

func New(opts Opts) *Handler {
	return &Handler{
		client:    opts.Client,
		sessions:  opts.Sessions,
		publisher: opts.Publisher,
		profiles:  opts.Profiles,
		limiter:   opts.Limiter,
		metrics:   opts.Metrics,
		log:       opts.Logger.WithComponent("api"),
		origins:   opts.Config.App.CorsOrigins,
	}
}

// Engine builds the gin router with every route registered.
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.requestLogger())
	r.Use(h.metricsMiddleware())
	r.Use(cors.New(h.corsConfig()))

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/posts", h.listPosts)
		api.GET("/posts/:mediaId", h.viewPost)
		api.GET("/comments/:mediaId", h.listComments)
		api.POST("/comments/:mediaId/toggle", h.toggleComments)
		api.POST("/publish", h.rateLimit("/api/publish"), h.publish)
		api.GET("/profile", h.profile)

		feed := api.Group("/feed")
		feed.GET("", h.feed)
		feed.POST("/load", h.loadFeed)
		feed.POST("/refresh", h.refreshFeed)
	}

	return r
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(h.origins) == 0 || (len(h.origins) == 1 && h.origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = h.origins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", session.Header}
	return cfg
}

func (h *Handler) session(c *gin.Context) *session.Session {
	return h.sessions.Get(c.GetHeader(session.Header))
}

func (h *Handler) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
