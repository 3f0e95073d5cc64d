package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportCompleted ReportStatus = "completed"
	ReportFollowUp  ReportStatus = "follow-up"
)

type VisitReport struct {
	Id              uuid.UUID
	PropertyAddress string
	ClientName      string
	VisitDate       time.Time
	Duration        string
	Status          ReportStatus
	Summary         string
	KeyPoints       []string
	AudioLength     string
}
