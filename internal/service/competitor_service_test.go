package service

import (
	"context"
	"testing"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/internal/websocket"
	"robinrocks-be/pkg/events"
	"robinrocks-be/pkg/scraper"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stepDelay = 2 * time.Second

func newCompetitorService(f *fixture) ICompetitorService {
	return NewCompetitorService(
		memory.NewCompetitorSiteRepository(),
		memory.NewCommercialPropertyRepository(),
		f.clock,
		stepDelay,
		time.Hour,
		f.events,
		f.pusher,
		f.m,
		f.log,
	)
}

func TestCompetitorOverviewFiltersByCity(t *testing.T) {
	svc := newCompetitorService(newFixture())
	ctx := context.Background()

	all, err := svc.Overview(ctx, "agent-1", "")
	require.NoError(t, err)
	assert.Len(t, all.Sites, 5)
	assert.Len(t, all.Properties, 3)
	assert.Len(t, all.Cities, len(scraper.Cities))
	assert.Equal(t, "daily", all.Automation.Frequency)
	assert.Nil(t, all.Job)

	amsterdam, err := svc.Overview(ctx, "agent-1", "amsterdam")
	require.NoError(t, err)
	require.Len(t, amsterdam.Properties, 2)
	assert.Equal(t, "Zuidas, Amsterdam", amsterdam.Properties[0].Location)

	_, err = svc.Overview(ctx, "agent-1", "paris")
	assert.ErrorIs(t, err, scraper.ErrUnknownCity)
	assert.Equal(t, 400, serverutils.StatusFor(err))
}

func TestCompetitorScrapeCompletes(t *testing.T) {
	f := newFixture()
	svc := newCompetitorService(f)
	ctx := context.Background()

	started, err := svc.StartScrape(ctx, "agent-1", &dto.StartScrapeRequest{
		Sources:   []string{"funda-business", "era-makelaars"},
		CustomURL: "https://example-competitor.nl",
		City:      "rotterdam",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, started.EstimatedMinutes)
	assert.Equal(t, "Funda Business", started.Progress.Current)
	assert.Equal(t, 3, started.Progress.Steps)

	_, err = svc.StartScrape(ctx, "agent-1", &dto.StartScrapeRequest{Sources: []string{"vbo-makelaars"}})
	assert.ErrorIs(t, err, scraper.ErrInProgress)

	f.clock.Advance(3 * stepDelay)

	job, err := svc.Job(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, scraper.StatusCompleted, job.Status)
	require.NotNil(t, job.Result)
	assert.Equal(t, 3, job.Result.ScrapedSites)

	overview, err := svc.Overview(ctx, "agent-1", "")
	require.NoError(t, err)
	require.NotNil(t, overview.LastResult)
	scraped := map[string]bool{}
	for _, s := range overview.Sites {
		scraped[s.Id] = s.LastScraped != nil
	}
	assert.True(t, scraped["funda-business"])
	assert.True(t, scraped["era-makelaars"])
	assert.False(t, scraped["vbo-makelaars"])

	assert.Equal(t, []string{events.ScrapingCompleted}, f.events.Types())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.m.ScrapingJobs.WithLabelValues(string(scraper.StatusCompleted))))
	assert.Len(t, f.pusher.ofType(websocket.TypeScrape), 4)
}

func TestCompetitorScrapeRejectsBadInput(t *testing.T) {
	svc := newCompetitorService(newFixture())
	ctx := context.Background()

	_, err := svc.StartScrape(ctx, "agent-1", &dto.StartScrapeRequest{})
	assert.ErrorIs(t, err, scraper.ErrNoSources)

	_, err = svc.StartScrape(ctx, "agent-1", &dto.StartScrapeRequest{Sources: []string{"nope"}})
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	_, err = svc.Job(ctx, "agent-1")
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestCompetitorLeaveCancelsJob(t *testing.T) {
	f := newFixture()
	svc := newCompetitorService(f)
	ctx := context.Background()

	_, err := svc.StartScrape(ctx, "agent-1", &dto.StartScrapeRequest{Sources: []string{"funda-business", "era-makelaars"}})
	require.NoError(t, err)
	f.clock.Advance(stepDelay)

	svc.Leave(ctx, "agent-1")
	f.clock.Advance(10 * stepDelay)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.m.ScrapingJobs.WithLabelValues(string(scraper.StatusCanceled))))
	assert.Empty(t, f.events.Types())

	_, err = svc.CancelScrape(ctx, "agent-1")
	assert.ErrorIs(t, err, scraper.ErrJobNotActive)
}

func TestCompetitorCancel(t *testing.T) {
	f := newFixture()
	svc := newCompetitorService(f)
	ctx := context.Background()

	_, err := svc.StartScrape(ctx, "agent-1", &dto.StartScrapeRequest{Sources: []string{"funda-business"}})
	require.NoError(t, err)

	p, err := svc.CancelScrape(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, scraper.StatusCanceled, p.Status)

	_, err = svc.CancelScrape(ctx, "agent-1")
	assert.ErrorIs(t, err, scraper.ErrJobNotActive)
	assert.Equal(t, 409, serverutils.StatusFor(err))
}

func TestCompetitorSaveAutomation(t *testing.T) {
	svc := newCompetitorService(newFixture())
	ctx := context.Background()

	_, err := svc.SaveAutomation(ctx, "agent-1", &dto.AutomationSettings{Frequency: "weekly", Threshold: "price", Retention: "1year"})
	require.NoError(t, err)

	overview, err := svc.Overview(ctx, "agent-1", "")
	require.NoError(t, err)
	assert.Equal(t, "weekly", overview.Automation.Frequency)

	other, err := svc.Overview(ctx, "agent-2", "")
	require.NoError(t, err)
	assert.Equal(t, "daily", other.Automation.Frequency)
}
