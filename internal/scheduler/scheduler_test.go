package scheduler

import (
	"testing"
	"time"

	mock_instagram "github.com/orgball2608/insta-dashboard/internal/instagram/mocks"
	mock_publication "github.com/orgball2608/insta-dashboard/internal/repositories/publication/mocks"
	"github.com/orgball2608/insta-dashboard/internal/session"
	"github.com/orgball2608/insta-dashboard/pkg/config"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Scheduler.Timezone = "UTC"
	cfg.Scheduler.PublicationRetention = 720 * time.Hour
	cfg.Scheduler.OrphanReportInterval = time.Hour
	cfg.Session.IdleTTL = 30 * time.Minute
	cfg.Session.SweepInterval = 5 * time.Minute
	return cfg
}

func TestNewRegistersJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	lc := fxtest.NewLifecycle(t)

	s, err := New(Opts{
		LC:       lc,
		Config:   testConfig(),
		Logger:   logger.Nop(),
		Sessions: session.New(session.Opts{Client: mock_instagram.NewMockClient(ctrl)}),
		Repo:     mock_publication.NewMockRepository(ctrl),
	})
	require.NoError(t, err)

	var names []string
	for _, j := range s.Jobs() {
		names = append(names, j.Name())
	}
	assert.ElementsMatch(t, []string{JobSweepSessions, JobCleanupPublications, JobReportOrphans}, names)

	lc.RequireStart()
	lc.RequireStop()
}

func TestNewFallsBackOnUnknownTimezone(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig()
	cfg.Scheduler.Timezone = "Mars/Olympus_Mons"

	_, err := New(Opts{
		LC:       fxtest.NewLifecycle(t),
		Config:   cfg,
		Logger:   logger.Nop(),
		Sessions: session.New(session.Opts{Client: mock_instagram.NewMockClient(ctrl)}),
		Repo:     mock_publication.NewMockRepository(ctrl),
	})
	assert.NoError(t, err)
}

func TestNewRejectsZeroInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig()
	cfg.Session.SweepInterval = 0

	_, err := New(Opts{
		LC:       fxtest.NewLifecycle(t),
		Config:   cfg,
		Logger:   logger.Nop(),
		Sessions: session.New(session.Opts{Client: mock_instagram.NewMockClient(ctrl)}),
		Repo:     mock_publication.NewMockRepository(ctrl),
	})
	assert.ErrorContains(t, err, JobSweepSessions)
}
