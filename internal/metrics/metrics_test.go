package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveGatewayStatusLabels(t *testing.T) {
	m := New()

	m.ObserveGateway("list_media", 10*time.Millisecond, nil)
	m.ObserveGateway("list_media", 10*time.Millisecond, errors.New("boom"))
	m.ObserveGateway("list_media", 10*time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("list_media", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("list_media", "error")))
}

func TestFeedLoadCountsMergedPosts(t *testing.T) {
	m := New()

	m.FeedLoad("merged", 3)
	m.FeedLoad("skipped", 0)
	m.FeedLoad("merged", 2)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.FeedPostsMerged))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FeedLoadsTotal.WithLabelValues("merged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedLoadsTotal.WithLabelValues("skipped")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/api/posts", "200", time.Millisecond)
		m.ObserveGateway("publish", time.Millisecond, nil)
		m.FeedLoad("merged", 1)
		m.CommentToggle("loaded")
		m.Publish("succeeded")
		m.ProfileCache(true)
		m.RateLimited("/api/publish")
		m.SetSessions(4)
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.Publish("failed")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `instadash_publish_total{state="failed"} 1`)
}
