package dto

import (
	"time"

	"robinrocks-be/pkg/recorder"
)

type StartRecordingRequest struct {
	Title string `json:"title"`
	// Device overrides the configured input: "simulated" or "remote".
	Device string `json:"device" validate:"omitempty,oneof=simulated remote"`
}

type SeekRequest struct {
	Seconds float64 `json:"seconds" validate:"gte=0"`
}

type RecordingResponse struct {
	recorder.Snapshot
	Title string `json:"title"`
}

type PlaybackResponse struct {
	IsPlaying       bool    `json:"is_playing"`
	PositionSeconds float64 `json:"position_seconds"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type RecentRecordingResponse struct {
	Id         string    `json:"id"`
	Title      string    `json:"title"`
	Duration   string    `json:"duration"`
	Status     string    `json:"status"`
	RecordedAt time.Time `json:"recordedAt"`
}

type RecordingStatsResponse struct {
	TotalRecordings  int    `json:"totalRecordings"`
	AverageDuration  string `json:"averageDuration"`
	ReportsGenerated int    `json:"reportsGenerated"`
}

type RecordingOverviewResponse struct {
	Stats  RecordingStatsResponse    `json:"stats"`
	Recent []RecentRecordingResponse `json:"recent"`
	Active *RecordingResponse        `json:"active,omitempty"`
}
