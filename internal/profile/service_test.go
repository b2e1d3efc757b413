package profile

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/orgball2608/insta-dashboard/internal/domain"
	mock_instagram "github.com/orgball2608/insta-dashboard/internal/instagram/mocks"
	"github.com/orgball2608/insta-dashboard/internal/metrics"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type memoryCache struct {
	profile *domain.Profile
	readErr error
}

func (c *memoryCache) Get(context.Context) (*domain.Profile, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	if c.profile == nil {
		return nil, ErrMiss
	}
	return c.profile, nil
}

func (c *memoryCache) Set(_ context.Context, p *domain.Profile) error {
	c.profile = p
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.profile = nil
	return nil
}

func TestGetReadsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_instagram.NewMockClient(ctrl)
	cache := &memoryCache{}
	m := metrics.New()
	svc := NewService(Opts{Client: client, Cache: cache, Logger: logger.Nop(), Metrics: m})

	want := &domain.Profile{ID: "1", Username: "studio", MediaCount: 12}
	client.EXPECT().GetProfile(gomock.Any()).Return(want, nil).Times(1)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProfileCacheTotal.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProfileCacheTotal.WithLabelValues("miss")))
}

func TestInvalidateForcesRefetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_instagram.NewMockClient(ctrl)
	svc := NewService(Opts{Client: client, Cache: &memoryCache{}, Logger: logger.Nop()})

	client.EXPECT().GetProfile(gomock.Any()).Return(&domain.Profile{MediaCount: 1}, nil)
	client.EXPECT().GetProfile(gomock.Any()).Return(&domain.Profile{MediaCount: 2}, nil)

	first, _ := svc.Get(context.Background())
	require.NoError(t, svc.Invalidate(context.Background()))
	second, _ := svc.Get(context.Background())

	assert.Equal(t, 1, first.MediaCount)
	assert.Equal(t, 2, second.MediaCount)
}

func TestCacheFailureFallsBackToGraphAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_instagram.NewMockClient(ctrl)
	svc := NewService(Opts{Client: client, Cache: &memoryCache{readErr: errors.New("redis down")}, Logger: logger.Nop()})

	client.EXPECT().GetProfile(gomock.Any()).Return(&domain.Profile{Username: "studio"}, nil)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "studio", got.Username)
}

func TestGatewayErrorIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_instagram.NewMockClient(ctrl)
	cache := &memoryCache{}
	svc := NewService(Opts{Client: client, Cache: cache, Logger: logger.Nop()})

	client.EXPECT().GetProfile(gomock.Any()).Return(nil, errors.New("upstream"))

	_, err := svc.Get(context.Background())
	require.Error(t, err)
	assert.Nil(t, cache.profile)
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	var c NoopCache
	require.NoError(t, c.Set(context.Background(), &domain.Profile{}))

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Invalidate(ctx))
	_, err := cache.Get(ctx)
	require.ErrorIs(t, err, ErrMiss)

	want := &domain.Profile{ID: "1", Username: "studio", MediaCount: 3}
	require.NoError(t, cache.Set(ctx, want))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
