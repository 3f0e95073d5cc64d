package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/internal/pkg/metrics"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/internal/websocket"
	"robinrocks-be/pkg/events"
	"robinrocks-be/pkg/recorder"
	"robinrocks-be/pkg/scheduler"

	"github.com/google/uuid"
)

const (
	DeviceSimulated = "simulated"
	DeviceRemote    = "remote"

	recentRecordingsLimit = 5
	// generated reports that predate the stored ones
	historicReports = 145
)

type IRecordingService interface {
	Start(ctx context.Context, userID string, req *dto.StartRecordingRequest) (*dto.RecordingResponse, error)
	Pause(ctx context.Context, userID, id string) (*dto.RecordingResponse, error)
	Resume(ctx context.Context, userID, id string) (*dto.RecordingResponse, error)
	Stop(ctx context.Context, userID, id string) (*dto.RecordingResponse, error)
	Show(ctx context.Context, userID, id string) (*dto.RecordingResponse, error)
	PushChunk(ctx context.Context, userID, id string, data []byte) error
	Audio(ctx context.Context, userID, id string) (*recorder.Artifact, error)
	TogglePlayback(ctx context.Context, userID, id string) (*dto.PlaybackResponse, error)
	PlaybackEnded(ctx context.Context, userID, id string) (*dto.PlaybackResponse, error)
	Seek(ctx context.Context, userID, id string, req *dto.SeekRequest) (*dto.PlaybackResponse, error)
	Overview(ctx context.Context, userID string) (*dto.RecordingOverviewResponse, error)
	Close(ctx context.Context, userID, id string) error
	ActiveCount() int
}

// DeviceFactory builds the audio input for a new session.
type DeviceFactory func(kind string) recorder.Device

type liveRecording struct {
	userID  string
	title   string
	session *recorder.Session
	remote  *recorder.RemoteDevice

	mu        sync.Mutex
	lastState recorder.State
	active    bool
}

type RecordingServiceConfig struct {
	DefaultDevice string
	Tick          time.Duration
	SessionTTL    time.Duration
}

type recordingService struct {
	cfg        RecordingServiceConfig
	clock      scheduler.Scheduler
	lock       *recorder.DeviceLock
	newDevice  DeviceFactory
	sessions   *memory.ViewStateRepository[*liveRecording]
	recordings contract.RecordingRepository
	reports    contract.ReportRepository
	publisher  events.Publisher
	pusher     Pusher
	metrics    *metrics.Metrics
	logger     logger.ILogger
}

func NewRecordingService(
	cfg RecordingServiceConfig,
	clock scheduler.Scheduler,
	newDevice DeviceFactory,
	recordings contract.RecordingRepository,
	reports contract.ReportRepository,
	publisher events.Publisher,
	pusher Pusher,
	m *metrics.Metrics,
	log logger.ILogger,
) IRecordingService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	if cfg.DefaultDevice == "" {
		cfg.DefaultDevice = DeviceSimulated
	}
	s := &recordingService{
		cfg:        cfg,
		clock:      clock,
		lock:       recorder.NewDeviceLock(),
		newDevice:  newDevice,
		recordings: recordings,
		reports:    reports,
		publisher:  publisher,
		pusher:     pusherOrNop(pusher),
		metrics:    m,
		logger:     log,
	}
	if s.newDevice == nil {
		s.newDevice = s.defaultDevice
	}
	// An abandoned session must give the microphone back.
	s.sessions = memory.NewViewStateRepository(cfg.SessionTTL, func(_ string, rec *liveRecording) {
		s.stop(context.Background(), rec)
	})
	return s
}

func (s *recordingService) defaultDevice(kind string) recorder.Device {
	if kind == DeviceRemote {
		return recorder.NewRemoteDevice()
	}
	return &recorder.SimulatedDevice{Scheduler: s.clock, Interval: s.cfg.Tick}
}

func (s *recordingService) Start(ctx context.Context, userID string, req *dto.StartRecordingRequest) (*dto.RecordingResponse, error) {
	kind := req.Device
	if kind == "" {
		kind = s.cfg.DefaultDevice
	}
	device := s.newDevice(kind)

	title := req.Title
	if title == "" {
		title = "Recording " + s.clock.Now().Format("2 Jan 15:04")
	}

	rec := &liveRecording{userID: userID, title: title, lastState: recorder.StateIdle}
	if remote, ok := device.(*recorder.RemoteDevice); ok {
		rec.remote = remote
	}
	rec.session = recorder.NewSession(recorder.SessionConfig{
		ID:           uuid.NewString(),
		DeviceKey:    userID,
		Device:       device,
		Lock:         s.lock,
		Scheduler:    s.clock,
		TickInterval: s.cfg.Tick,
	})
	rec.session.OnChange(func(snap recorder.Snapshot) { s.onChange(rec, snap) })

	// A failed start leaves nothing behind; the client retries with a new request.
	if err := rec.session.Start(ctx); err != nil {
		if errors.Is(err, recorder.ErrDeviceUnavailable) {
			s.metrics.DeviceFailures.Inc()
		}
		s.logger.Warn("Recorder", "Start failed", map[string]interface{}{"session_id": rec.session.ID(), "user_id": userID, "error": err.Error()})
		return nil, fmt.Errorf("start recording: %w", err)
	}

	rec.mu.Lock()
	rec.active = true
	rec.mu.Unlock()
	s.sessions.Save(rec.session.ID(), rec)
	s.metrics.ActiveRecordings.Inc()

	s.logger.Info("Recorder", "Recording started", map[string]interface{}{"session_id": rec.session.ID(), "user_id": userID})
	publishEvent(ctx, s.publisher, s.logger, "Recorder", events.NewAt(events.RecordingStarted, map[string]interface{}{
		"user_id":    userID,
		"session_id": rec.session.ID(),
		"title":      rec.title,
	}, s.clock.Now()))

	return s.response(rec), nil
}

func (s *recordingService) Pause(ctx context.Context, userID, id string) (*dto.RecordingResponse, error) {
	rec, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	if err := rec.session.Pause(); err != nil {
		return nil, fmt.Errorf("pause recording: %w", err)
	}
	return s.response(rec), nil
}

func (s *recordingService) Resume(ctx context.Context, userID, id string) (*dto.RecordingResponse, error) {
	rec, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	if err := rec.session.Resume(); err != nil {
		return nil, fmt.Errorf("resume recording: %w", err)
	}
	return s.response(rec), nil
}

// Stop is idempotent; stopping an idle or stopped session returns its state.
func (s *recordingService) Stop(ctx context.Context, userID, id string) (*dto.RecordingResponse, error) {
	rec, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.stop(ctx, rec); err != nil {
		return nil, err
	}
	return s.response(rec), nil
}

func (s *recordingService) stop(ctx context.Context, rec *liveRecording) error {
	err := rec.session.Stop()

	rec.mu.Lock()
	wasActive := rec.active
	rec.active = false
	rec.mu.Unlock()
	if !wasActive {
		return err
	}

	s.metrics.ActiveRecordings.Dec()
	snap := rec.session.Snapshot()

	summary := &entity.RecordingSummary{
		Id:         snap.ID,
		UserId:     rec.userID,
		Title:      rec.title,
		Seconds:    snap.ElapsedSeconds,
		Status:     "processing",
		ChunkCount: snap.ChunkCount,
		RecordedAt: s.clock.Now(),
	}
	if appendErr := s.recordings.Append(ctx, summary); appendErr != nil {
		s.logger.Error("Recorder", "Failed to store recording summary", map[string]interface{}{"session_id": snap.ID, "error": appendErr.Error()})
	}

	if snap.HasArtifact {
		report := &entity.VisitReport{
			Id:              uuid.New(),
			PropertyAddress: rec.title,
			VisitDate:       summary.RecordedAt,
			Duration:        fmt.Sprintf("%d minutes", (snap.ElapsedSeconds+59)/60),
			Status:          entity.ReportPending,
			Summary:         "Transcript is being processed.",
			AudioLength:     fmt.Sprintf("%d:%02d", snap.ElapsedSeconds/60, snap.ElapsedSeconds%60),
		}
		if createErr := s.reports.Create(ctx, report); createErr != nil {
			s.logger.Error("Recorder", "Failed to file visit report", map[string]interface{}{"session_id": snap.ID, "error": createErr.Error()})
		}
	}

	s.logger.Info("Recorder", "Recording stopped", map[string]interface{}{
		"session_id": snap.ID,
		"user_id":    rec.userID,
		"elapsed":    snap.ElapsedSeconds,
		"chunks":     snap.ChunkCount,
	})
	publishEvent(ctx, s.publisher, s.logger, "Recorder", events.NewAt(events.RecordingStopped, map[string]interface{}{
		"user_id":         rec.userID,
		"session_id":      snap.ID,
		"title":           rec.title,
		"elapsed_seconds": snap.ElapsedSeconds,
		"has_artifact":    snap.HasArtifact,
	}, s.clock.Now()))

	if err != nil {
		return fmt.Errorf("stop recording: %w", err)
	}
	return nil
}

func (s *recordingService) Show(ctx context.Context, userID, id string) (*dto.RecordingResponse, error) {
	rec, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	return s.response(rec), nil
}

func (s *recordingService) PushChunk(ctx context.Context, userID, id string, data []byte) error {
	rec, err := s.find(userID, id)
	if err != nil {
		return err
	}
	if rec.remote == nil {
		return serverutils.BadRequest("session does not accept uploaded audio")
	}
	if err := rec.remote.Push(data); err != nil {
		return fmt.Errorf("push chunk: %w", err)
	}
	return nil
}

func (s *recordingService) Audio(ctx context.Context, userID, id string) (*recorder.Artifact, error) {
	rec, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	artifact := rec.session.Artifact()
	if artifact == nil {
		return nil, recorder.ErrNoArtifact
	}
	return artifact, nil
}

func (s *recordingService) TogglePlayback(ctx context.Context, userID, id string) (*dto.PlaybackResponse, error) {
	return s.withPlayback(userID, id, func(p *recorder.Playback) { p.Toggle() })
}

func (s *recordingService) PlaybackEnded(ctx context.Context, userID, id string) (*dto.PlaybackResponse, error) {
	return s.withPlayback(userID, id, func(p *recorder.Playback) { p.Ended() })
}

func (s *recordingService) Seek(ctx context.Context, userID, id string, req *dto.SeekRequest) (*dto.PlaybackResponse, error) {
	offset := time.Duration(req.Seconds * float64(time.Second))
	return s.withPlayback(userID, id, func(p *recorder.Playback) { p.Seek(offset) })
}

func (s *recordingService) withPlayback(userID, id string, fn func(*recorder.Playback)) (*dto.PlaybackResponse, error) {
	rec, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	p, err := rec.session.Playback()
	if err != nil {
		return nil, err
	}
	fn(p)
	res := &dto.PlaybackResponse{
		IsPlaying:       p.IsPlaying(),
		PositionSeconds: p.Position().Seconds(),
		DurationSeconds: p.Duration().Seconds(),
	}
	s.pusher.Push(userID, websocket.TypePlayback, res)
	return res, nil
}

func (s *recordingService) Overview(ctx context.Context, userID string) (*dto.RecordingOverviewResponse, error) {
	recent, err := s.recordings.Recent(ctx, recentRecordingsLimit)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	count := s.recordings.Count(ctx)
	avg := 0
	if count > 0 {
		avg = s.recordings.TotalSeconds(ctx) / count
	}

	res := &dto.RecordingOverviewResponse{
		Stats: dto.RecordingStatsResponse{
			TotalRecordings:  count,
			AverageDuration:  fmt.Sprintf("%d:%02d", avg/60, avg%60),
			ReportsGenerated: historicReports + len(reports),
		},
		Recent: make([]dto.RecentRecordingResponse, 0, len(recent)),
	}
	for _, r := range recent {
		res.Recent = append(res.Recent, dto.RecentRecordingResponse{
			Id:         r.Id,
			Title:      r.Title,
			Duration:   fmt.Sprintf("%d:%02d", r.Seconds/60, r.Seconds%60),
			Status:     r.Status,
			RecordedAt: r.RecordedAt,
		})
	}

	if holder, ok := s.lock.Holder(userID); ok {
		if rec, found := s.sessions.Get(holder); found {
			res.Active = s.response(rec)
		}
	}
	return res, nil
}

// Close stops the session and forgets it, as when the view is left.
func (s *recordingService) Close(ctx context.Context, userID, id string) error {
	if _, err := s.find(userID, id); err != nil {
		return err
	}
	s.sessions.Delete(id)
	return nil
}

func (s *recordingService) ActiveCount() int {
	return s.lock.Count()
}

func (s *recordingService) find(userID, id string) (*liveRecording, error) {
	rec, ok := s.sessions.Get(id)
	if !ok || rec.userID != userID {
		return nil, serverutils.NotFound("recording session", id)
	}
	return rec, nil
}

func (s *recordingService) response(rec *liveRecording) *dto.RecordingResponse {
	return &dto.RecordingResponse{Snapshot: rec.session.Snapshot(), Title: rec.title}
}

// onChange runs on every transition and tick, outside the session lock.
func (s *recordingService) onChange(rec *liveRecording, snap recorder.Snapshot) {
	rec.mu.Lock()
	changed := snap.State != rec.lastState
	rec.lastState = snap.State
	rec.mu.Unlock()

	if changed {
		s.metrics.RecordingTransitions.WithLabelValues(string(snap.State)).Inc()
		s.logger.Debug("Recorder", "State changed", map[string]interface{}{"session_id": snap.ID, "state": snap.State})
	}
	// Ticks keep a running session alive when the client only listens on the socket.
	if snap.State == recorder.StateRecording || snap.State == recorder.StatePaused {
		s.sessions.Touch(snap.ID)
	}
	s.pusher.Push(rec.userID, websocket.TypeRecording, dto.RecordingResponse{Snapshot: snap, Title: rec.title})
}
