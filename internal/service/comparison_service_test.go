package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/internal/websocket"
	"robinrocks-be/pkg/advisor"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const replyDelay = 1500 * time.Millisecond

func newComparisonService(t *testing.T, f *fixture) IComparisonService {
	t.Helper()
	catalog, err := advisor.LoadDefault()
	require.NoError(t, err)
	svc, err := NewComparisonService(memory.NewPropertyRepository(), catalog, f.clock, replyDelay, time.Hour, f.pusher, f.m, f.log)
	require.NoError(t, err)
	return svc
}

func TestComparisonDefaultFit(t *testing.T) {
	f := newFixture()
	svc := newComparisonService(t, f)

	view, err := svc.View(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, view.Properties, 3)
	assert.Equal(t, 700000, view.Preferences.MaxPrice)
	assert.Empty(t, view.Selected)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, advisor.RoleAdvisor, view.Messages[0].Role)

	matches := map[string]bool{}
	for _, p := range view.Properties {
		matches[p.Address] = p.Fit.MatchesCriteria
	}
	assert.True(t, matches["123 Ocean View Drive, Unit 12A"])
	assert.False(t, matches["456 Downtown Plaza, Apartment 8B"])
	assert.False(t, matches["789 Suburban Lane, Single Family Home"])

	assert.Equal(t, 7647, view.Properties[0].PricePerM2)
}

func TestComparisonPreferencesChangeFit(t *testing.T) {
	f := newFixture()
	svc := newComparisonService(t, f)

	view, err := svc.UpdatePreferences(context.Background(), "agent-1", &dto.PreferencesRequest{
		MaxPrice:     800000,
		MinM2:        70,
		PropertyType: "house",
	})
	require.NoError(t, err)
	for _, p := range view.Properties {
		assert.True(t, p.Fit.MatchesCriteria, p.Address)
	}
}

func TestComparisonToggleSelection(t *testing.T) {
	f := newFixture()
	svc := newComparisonService(t, f)
	ctx := context.Background()
	p1 := memory.SeedID("property-1")

	view, err := svc.ToggleSelection(ctx, "agent-1", p1)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p1}, view.Selected)

	view, err = svc.ToggleSelection(ctx, "agent-1", p1)
	require.NoError(t, err)
	assert.Empty(t, view.Selected)

	_, err = svc.ToggleSelection(ctx, "agent-1", uuid.New())
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestComparisonConcurrentFirstRequestsShareView(t *testing.T) {
	f := newFixture()
	svc := newComparisonService(t, f)
	ctx := context.Background()
	ids := []uuid.UUID{memory.SeedID("property-1"), memory.SeedID("property-2"), memory.SeedID("property-3")}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := svc.ToggleSelection(ctx, "agent-1", id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	view, err := svc.View(ctx, "agent-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, view.Selected)
}

func TestComparisonAdvisorUsesSelectionAtSubmit(t *testing.T) {
	f := newFixture()
	svc := newComparisonService(t, f)
	ctx := context.Background()

	_, err := svc.ToggleSelection(ctx, "agent-1", memory.SeedID("property-1"))
	require.NoError(t, err)
	_, err = svc.ToggleSelection(ctx, "agent-1", memory.SeedID("property-2"))
	require.NoError(t, err)

	sent, err := svc.SendMessage(ctx, "agent-1", &dto.ChatMessageRequest{Message: "What do you recommend?"})
	require.NoError(t, err)
	assert.Equal(t, advisor.RoleUser, sent.Message.Role)
	assert.Equal(t, 1, sent.Pending)

	// later selection changes do not affect the queued reply
	_, err = svc.ToggleSelection(ctx, "agent-1", memory.SeedID("property-2"))
	require.NoError(t, err)

	history, err := svc.History(ctx, "agent-1")
	require.NoError(t, err)
	assert.True(t, history.Typing)

	f.clock.Advance(replyDelay)

	history, err = svc.History(ctx, "agent-1")
	require.NoError(t, err)
	assert.False(t, history.Typing)
	require.Len(t, history.Messages, 3)
	reply := history.Messages[2]
	assert.Equal(t, "recommend", reply.Rule)
	assert.Contains(t, reply.Content, "456 Downtown Plaza")

	assert.Equal(t, 1.0, testutil.ToFloat64(f.m.AdvisorReplies.WithLabelValues(advisor.RulesetCommercial, "recommend")))
	assert.Len(t, f.pusher.ofType(websocket.TypeChat), 2)
}

func TestComparisonEmptyMessage(t *testing.T) {
	f := newFixture()
	svc := newComparisonService(t, f)

	_, err := svc.SendMessage(context.Background(), "agent-1", &dto.ChatMessageRequest{Message: "   "})
	assert.ErrorIs(t, err, advisor.ErrEmptyMessage)
}

func TestComparisonLeaveDropsPendingReply(t *testing.T) {
	f := newFixture()
	svc := newComparisonService(t, f)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "agent-1", &dto.ChatMessageRequest{Message: "roi"})
	require.NoError(t, err)
	svc.Leave(ctx, "agent-1")
	f.clock.Advance(replyDelay)

	assert.Len(t, f.pusher.ofType(websocket.TypeChat), 1)

	view, err := svc.View(ctx, "agent-1")
	require.NoError(t, err)
	assert.Len(t, view.Messages, 1)
}
