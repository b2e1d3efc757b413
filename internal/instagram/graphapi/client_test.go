package graphapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/internal/instagram"
	"github.com/orgball2608/insta-dashboard/internal/metrics"
	"github.com/orgball2608/insta-dashboard/pkg/config"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "secret-token"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Instagram.AccessToken = testToken
	cfg.Instagram.GraphURL = srv.URL
	cfg.Instagram.PageSize = 12
	cfg.Instagram.Timeout = 5 * time.Second

	m := metrics.New()
	return New(Opts{Config: cfg, Logger: logger.Nop(), Metrics: m}), m
}

func TestListMediaFirstPage(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/media", r.URL.Path)
		assert.Equal(t, testToken, r.URL.Query().Get("access_token"))
		assert.Equal(t, mediaFields, r.URL.Query().Get("fields"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("after"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": "1", "caption": "Sunset", "media_type": "IMAGE", "media_url": "https://cdn/1.jpg",
				 "permalink": "https://instagram.com/p/1", "timestamp": "2024-05-01T10:00:00+0000", "like_count": 4},
				{"id": "2", "media_type": "VIDEO", "media_url": "https://cdn/2.mp4",
				 "permalink": "https://instagram.com/p/2", "timestamp": "2024-04-30T09:30:00+0000"}
			],
			"paging": {"cursors": {"before": "b1", "after": "c2"}, "next": "https://graph.instagram.com/me/media?after=c2&access_token=secret-token"}
		}`))
	})

	page, err := client.ListMedia(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, page.Posts, 2)
	assert.Equal(t, "c2", page.Next)
	assert.True(t, page.HasMore())

	first := page.Posts[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Sunset", first.Caption)
	assert.Equal(t, domain.MediaTypeImage, first.MediaType)
	assert.Equal(t, 4, first.LikeCount)
	assert.True(t, first.Timestamp.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))

	assert.Equal(t, domain.MediaTypeVideo, page.Posts[1].MediaType)
	assert.Empty(t, page.Posts[1].Caption)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("list_media", "success")))
}

func TestListMediaPassesCursorAndDetectsLastPage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c2", r.URL.Query().Get("after"))
		_, _ = w.Write([]byte(`{"data": [{"id": "3", "media_type": "IMAGE"}], "paging": {"cursors": {"before": "c2", "after": "c3"}}}`))
	})

	page, err := client.ListMedia(context.Background(), "c2")
	require.NoError(t, err)

	require.Len(t, page.Posts, 1)
	assert.Empty(t, page.Next)
	assert.False(t, page.HasMore())
}

func TestListMediaCursorFromNextURL(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [], "paging": {"next": "https://graph.instagram.com/me/media?after=xyz&limit=12"}}`))
	})

	page, err := client.ListMedia(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "xyz", page.Next)
}

func TestGatewayErrorCarriesUpstreamMessage(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "Invalid OAuth access token.", "type": "OAuthException", "code": 190}}`))
	})

	_, err := client.ListMedia(context.Background(), "")
	require.Error(t, err)

	var apiErr *instagram.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, 190, apiErr.Code)

	msg, ok := instagram.UpstreamMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid OAuth access token.", msg)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("list_media", "error")))
}

func TestErrorObjectOnSuccessStatusIsFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"message": "Media ID is not available", "code": 9007}}`))
	})

	_, err := client.PublishContainer(context.Background(), "c-1")
	msg, ok := instagram.UpstreamMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Media ID is not available", msg)
}

func TestServerErrorWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetProfile(context.Background())
	require.Error(t, err)
	var apiErr *instagram.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestTransportErrorDoesNotLeakToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	client.http.SetBaseURL("http://127.0.0.1:1")

	_, err := client.ListMedia(context.Background(), "")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testToken)
}

func TestGetComments(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/17890/comments", r.URL.Path)
		assert.Equal(t, commentFields, r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`{"data": [{"id": "c1", "text": "nice", "username": "ana"}, {"id": "c2", "text": "wow", "username": "bo"}]}`))
	})

	comments, err := client.GetComments(context.Background(), "17890")
	require.NoError(t, err)
	assert.Equal(t, []domain.Comment{
		{ID: "c1", Username: "ana", Text: "nice"},
		{ID: "c2", Username: "bo", Text: "wow"},
	}, comments)
}

func TestGetCommentsEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	comments, err := client.GetComments(context.Background(), "1")
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestCreateContainerUsesKindParameter(t *testing.T) {
	cases := []struct {
		kind  domain.MediaKind
		param string
	}{
		{domain.MediaKindImage, "image_url"},
		{domain.MediaKindVideo, "video_url"},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/me/media", r.URL.Path)
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "https://cdn.example.com/a", r.PostForm.Get(tc.param))
				assert.Equal(t, "hello", r.PostForm.Get("caption"))
				_, _ = w.Write([]byte(`{"id": "creation-1"}`))
			})

			id, err := client.CreateContainer(context.Background(), domain.Container{
				MediaURL: "https://cdn.example.com/a",
				Caption:  "hello",
				Kind:     tc.kind,
			})
			require.NoError(t, err)
			assert.Equal(t, "creation-1", id)
		})
	}
}

func TestPublishContainer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/media_publish", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "creation-1", r.PostForm.Get("creation_id"))
		_, _ = w.Write([]byte(`{"id": "media-9"}`))
	})

	id, err := client.PublishContainer(context.Background(), "creation-1")
	require.NoError(t, err)
	assert.Equal(t, "media-9", id)
}

func TestPublishContainerEmptyID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.PublishContainer(context.Background(), "creation-1")
	assert.ErrorIs(t, err, instagram.ErrEmptyID)
}

func TestGetProfile(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		assert.True(t, strings.Contains(r.URL.Query().Get("fields"), "media_count"))
		_, _ = w.Write([]byte(`{"id": "42", "username": "studio", "media_count": 120}`))
	})

	profile, err := client.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.Profile{ID: "42", Username: "studio", MediaCount: 120}, profile)
}

func TestParseTimestamp(t *testing.T) {
	assert.True(t, parseTimestamp("2024-05-01T10:00:00+0000").Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, parseTimestamp("2024-05-01T10:00:00Z").Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, parseTimestamp("garbage").IsZero())
}

func TestRedact(t *testing.T) {
	got := redact(`GET https://graph.instagram.com/me/media?access_token=abc123&limit=12`)
	assert.Equal(t, `GET https://graph.instagram.com/me/media?access_token=REDACTED&limit=12`, got)
}

func TestServerErrorWithoutBodyHasNoUpstreamMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.ListMedia(context.Background(), "")
	_, ok := instagram.UpstreamMessage(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "Service Unavailable")
}
