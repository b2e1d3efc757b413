package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-dashboard/pkg/errors"
)

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			h.log.Error("HTTP request", args...)
		case status >= 400:
			h.log.Warn("HTTP request", args...)
		default:
			h.log.Debug("HTTP request", args...)
		}
	}
}

func (h *Handler) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		h.metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// rateLimit refuses requests once the client IP has spent its budget.
func (h *Handler) rateLimit(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
			h.metrics.RateLimited(route)
			h.respondError(c, errors.RateLimited(MsgTooManyRequests))
			return
		}
		c.Next()
	}
}
