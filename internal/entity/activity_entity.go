package entity

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	Id          uuid.UUID
	UserId      string
	Type        string
	Title       string
	Description string
	OccurredAt  time.Time
}

// RecordingSummary is a finished recording in the recent list.
type RecordingSummary struct {
	Id         string
	UserId     string
	Title      string
	Seconds    int
	Status     string
	ChunkCount int
	RecordedAt time.Time
}
