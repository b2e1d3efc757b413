package graphapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/orgball2608/insta-dashboard/internal/instagram"
	"github.com/orgball2608/insta-dashboard/internal/metrics"
	"github.com/orgball2608/insta-dashboard/pkg/config"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"go.uber.org/fx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	mediaFields    = "id,caption,media_type,media_url,permalink,timestamp,like_count"
	commentFields  = "id,text,username"
	profileFields  = "id,username,media_count"
	defaultPerPage = 12
)

type Opts struct {
	fx.In
	Config  *config.Config
	Logger  logger.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// Client talks to graph.instagram.com with a pre-authorized token.
type Client struct {
	http    *resty.Client
	perPage int
	log     logger.Logger
	metrics *metrics.Metrics
}

var _ instagram.Client = (*Client)(nil)

func New(opts Opts) *Client {
	cfg := opts.Config.Instagram
	log := opts.Logger.WithComponent("graphapi")

	httpClient := resty.New().
		SetBaseURL(cfg.GraphURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetQueryParam("access_token", cfg.AccessToken).
		SetLogger(restyLogger{log: log})

	perPage := cfg.PageSize
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	return &Client{
		http:    httpClient,
		perPage: perPage,
		log:     log,
		metrics: opts.Metrics,
	}
}

// do executes req and decodes a successful body into out. The request URL
// carries the access token, so it never reaches logs or returned errors.
func (c *Client) do(ctx context.Context, operation, method, path string, req *resty.Request, out any) error {
	start := time.Now()
	err := c.execute(ctx, method, path, req, out)
	c.metrics.ObserveGateway(operation, time.Since(start), err)
	if err != nil {
		c.log.Warn("Graph API call failed", "operation", operation, "path", path, "error", err)
		return fmt.Errorf("%s: %w", operation, err)
	}
	c.log.Debug("Graph API call succeeded", "operation", operation, "path", path, "elapsed", time.Since(start))
	return nil
}

func (c *Client) execute(ctx context.Context, method, path string, req *resty.Request, out any) error {
	resp, err := req.SetContext(ctx).Execute(method, path)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Errorf("%s %s: %w", method, path, urlErr.Err)
		}
		return err
	}

	var envelope errorEnvelope
	_ = json.Unmarshal(resp.Body(), &envelope)

	if !resp.IsSuccess() || envelope.Error != nil {
		apiErr := &instagram.APIError{StatusCode: resp.StatusCode()}
		if envelope.Error != nil {
			apiErr.Message = envelope.Error.Message
			apiErr.Type = envelope.Error.Type
			apiErr.Code = envelope.Error.Code
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, operation, path string, req *resty.Request, out any) error {
	return c.do(ctx, operation, resty.MethodGet, path, req, out)
}

func (c *Client) post(ctx context.Context, operation, path string, req *resty.Request, out any) error {
	return c.do(ctx, operation, resty.MethodPost, path, req, out)
}

func (c *Client) perPageParam() string {
	return strconv.Itoa(c.perPage)
}
