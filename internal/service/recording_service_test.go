package service

import (
	"context"
	"testing"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/internal/websocket"
	"robinrocks-be/pkg/events"
	"robinrocks-be/pkg/recorder"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStores struct {
	recordings contract.RecordingRepository
	reports    contract.ReportRepository
}

func newRecordingService(f *fixture, factory DeviceFactory) (IRecordingService, recordingStores) {
	stores := recordingStores{
		recordings: memory.NewRecordingRepository(f.clock.Now()),
		reports:    memory.NewReportRepository(f.clock.Now()),
	}
	svc := NewRecordingService(
		RecordingServiceConfig{Tick: time.Second},
		f.clock,
		factory,
		stores.recordings,
		stores.reports,
		f.events,
		f.pusher,
		f.m,
		f.log,
	)
	return svc, stores
}

func TestRecordingElapsedExcludesPause(t *testing.T) {
	f := newFixture()
	svc, stores := newRecordingService(f, nil)
	ctx := context.Background()

	reportsBefore, _ := stores.reports.FindAll(ctx)
	recordingsBefore := stores.recordings.Count(ctx)

	rec, err := svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{Title: "Keizersgracht 12"})
	require.NoError(t, err)
	assert.Equal(t, recorder.StateRecording, rec.State)
	assert.Equal(t, 1, svc.ActiveCount())

	f.clock.Advance(3 * time.Second)
	_, err = svc.Pause(ctx, "agent-1", rec.ID)
	require.NoError(t, err)
	f.clock.Advance(2 * time.Second)
	_, err = svc.Resume(ctx, "agent-1", rec.ID)
	require.NoError(t, err)
	f.clock.Advance(2 * time.Second)

	stopped, err := svc.Stop(ctx, "agent-1", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, recorder.StateStopped, stopped.State)
	assert.Equal(t, 5, stopped.ElapsedSeconds)
	assert.True(t, stopped.HasArtifact)
	assert.Equal(t, 0, svc.ActiveCount())

	assert.Equal(t, recordingsBefore+1, stores.recordings.Count(ctx))
	reports, _ := stores.reports.FindAll(ctx)
	require.Len(t, reports, len(reportsBefore)+1)

	var filed *entity.VisitReport
	for _, r := range reports {
		if r.PropertyAddress == "Keizersgracht 12" {
			filed = r
		}
	}
	require.NotNil(t, filed)
	assert.Equal(t, entity.ReportPending, filed.Status)
	assert.Equal(t, "0:05", filed.AudioLength)
	assert.Equal(t, "1 minutes", filed.Duration)

	assert.Equal(t, []string{events.RecordingStarted, events.RecordingStopped}, f.events.Types())
	assert.Equal(t, 0.0, testutil.ToFloat64(f.m.ActiveRecordings))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.m.RecordingTransitions.WithLabelValues(string(recorder.StateRecording))))
	assert.NotEmpty(t, f.pusher.ofType(websocket.TypeRecording))
}

func TestRecordingSecondSessionIsBusy(t *testing.T) {
	f := newFixture()
	svc, _ := newRecordingService(f, nil)
	ctx := context.Background()

	_, err := svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{})
	require.NoError(t, err)

	_, err = svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{})
	assert.ErrorIs(t, err, recorder.ErrDeviceBusy)
	assert.Equal(t, 409, serverutils.StatusFor(err))

	// another agent has its own input
	_, err = svc.Start(ctx, "agent-2", &dto.StartRecordingRequest{})
	assert.NoError(t, err)
	assert.Equal(t, 2, svc.ActiveCount())
}

func TestRecordingFailedStartLeavesNoSession(t *testing.T) {
	f := newFixture()
	device := &recorder.SimulatedDevice{Scheduler: f.clock, Interval: time.Second, Deny: true}
	svc, _ := newRecordingService(f, func(string) recorder.Device { return device })
	sessions := svc.(*recordingService).sessions
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{Title: "Denied"})
		require.ErrorIs(t, err, recorder.ErrDeviceUnavailable)
		assert.Nil(t, res)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(f.m.DeviceFailures))
	assert.Equal(t, 0, sessions.Count())
	assert.Equal(t, 0, svc.ActiveCount())
	assert.Empty(t, f.events.Types())

	overview, err := svc.Overview(ctx, "agent-1")
	require.NoError(t, err)
	assert.Nil(t, overview.Active)

	// permission granted, a fresh start goes through
	device.Deny = false
	rec, err := svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{Title: "Granted"})
	require.NoError(t, err)
	assert.Equal(t, recorder.StateRecording, rec.State)
	assert.Equal(t, 1, sessions.Count())

	// busy starts are rejected without storing anything either
	for i := 0; i < 3; i++ {
		_, err = svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{})
		require.ErrorIs(t, err, recorder.ErrDeviceBusy)
	}
	assert.Equal(t, 1, sessions.Count())
	assert.Equal(t, []string{events.RecordingStarted}, f.events.Types())
}

func TestRecordingTicksKeepSessionAlive(t *testing.T) {
	f := newFixture()
	svc := NewRecordingService(
		RecordingServiceConfig{Tick: time.Second, SessionTTL: 200 * time.Millisecond},
		f.clock,
		nil,
		memory.NewRecordingRepository(f.clock.Now()),
		memory.NewReportRepository(f.clock.Now()),
		f.events,
		f.pusher,
		f.m,
		f.log,
	)
	ctx := context.Background()

	rec, err := svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{})
	require.NoError(t, err)

	// no HTTP reads, only ticks for longer than the ttl
	for i := 0; i < 3; i++ {
		time.Sleep(120 * time.Millisecond)
		f.clock.Advance(time.Second)
	}
	assert.Equal(t, 1, svc.ActiveCount())

	// a paused session that nobody reads is still reclaimed
	_, err = svc.Pause(ctx, "agent-1", rec.ID)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return svc.ActiveCount() == 0 }, 2*time.Second, 20*time.Millisecond)
}

func TestRecordingInvalidTransitions(t *testing.T) {
	f := newFixture()
	svc, _ := newRecordingService(f, nil)
	ctx := context.Background()

	rec, err := svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{})
	require.NoError(t, err)

	_, err = svc.Resume(ctx, "agent-1", rec.ID)
	assert.ErrorIs(t, err, recorder.ErrInvalidTransition)

	_, err = svc.Show(ctx, "agent-2", rec.ID)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	_, err = svc.TogglePlayback(ctx, "agent-1", rec.ID)
	assert.ErrorIs(t, err, recorder.ErrNoArtifact)
}

func TestRecordingRemoteChunksBecomeAudio(t *testing.T) {
	f := newFixture()
	svc, _ := newRecordingService(f, nil)
	ctx := context.Background()

	rec, err := svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{Device: DeviceRemote})
	require.NoError(t, err)

	require.NoError(t, svc.PushChunk(ctx, "agent-1", rec.ID, []byte("ab")))
	require.NoError(t, svc.PushChunk(ctx, "agent-1", rec.ID, []byte("cd")))
	f.clock.Advance(4 * time.Second)
	_, err = svc.Stop(ctx, "agent-1", rec.ID)
	require.NoError(t, err)

	audio, err := svc.Audio(ctx, "agent-1", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), audio.Bytes())

	play, err := svc.TogglePlayback(ctx, "agent-1", rec.ID)
	require.NoError(t, err)
	assert.True(t, play.IsPlaying)
	assert.Equal(t, 4.0, play.DurationSeconds)

	play, err = svc.Seek(ctx, "agent-1", rec.ID, &dto.SeekRequest{Seconds: 10})
	require.NoError(t, err)
	assert.Equal(t, 4.0, play.PositionSeconds)

	play, err = svc.PlaybackEnded(ctx, "agent-1", rec.ID)
	require.NoError(t, err)
	assert.False(t, play.IsPlaying)
	assert.Len(t, f.pusher.ofType(websocket.TypePlayback), 3)
}

func TestRecordingSimulatedSessionRejectsUploads(t *testing.T) {
	f := newFixture()
	svc, _ := newRecordingService(f, nil)
	ctx := context.Background()

	rec, err := svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{})
	require.NoError(t, err)

	err = svc.PushChunk(ctx, "agent-1", rec.ID, []byte("x"))
	assert.ErrorIs(t, err, serverutils.ErrBadRequest)
}

func TestRecordingCloseReleasesDevice(t *testing.T) {
	f := newFixture()
	svc, stores := newRecordingService(f, nil)
	ctx := context.Background()
	before := stores.recordings.Count(ctx)

	rec, err := svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{})
	require.NoError(t, err)
	f.clock.Advance(2 * time.Second)

	require.NoError(t, svc.Close(ctx, "agent-1", rec.ID))
	assert.Equal(t, 0, svc.ActiveCount())
	assert.Equal(t, before+1, stores.recordings.Count(ctx))

	_, err = svc.Show(ctx, "agent-1", rec.ID)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	_, err = svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{})
	assert.NoError(t, err)
}

func TestRecordingOverview(t *testing.T) {
	f := newFixture()
	svc, stores := newRecordingService(f, nil)
	ctx := context.Background()

	rec, err := svc.Start(ctx, "agent-1", &dto.StartRecordingRequest{Title: "Live"})
	require.NoError(t, err)

	overview, err := svc.Overview(ctx, "agent-1")
	require.NoError(t, err)
	require.NotNil(t, overview.Active)
	assert.Equal(t, rec.ID, overview.Active.ID)
	assert.Equal(t, stores.recordings.Count(ctx), overview.Stats.TotalRecordings)

	reports, _ := stores.reports.FindAll(ctx)
	assert.Equal(t, historicReports+len(reports), overview.Stats.ReportsGenerated)
	assert.LessOrEqual(t, len(overview.Recent), recentRecordingsLimit)

	other, err := svc.Overview(ctx, "agent-2")
	require.NoError(t, err)
	assert.Nil(t, other.Active)
}
