package dto

import "github.com/google/uuid"

type ListReportsRequest struct {
	Search string `query:"search"`
	Status string `query:"status" validate:"omitempty,oneof=all pending completed follow-up"`
}

type VisitReportResponse struct {
	Id              uuid.UUID `json:"id"`
	PropertyAddress string    `json:"propertyAddress"`
	ClientName      string    `json:"clientName"`
	VisitDate       string    `json:"visitDate"`
	Duration        string    `json:"duration"`
	Status          string    `json:"status"`
	Summary         string    `json:"summary"`
	KeyPoints       []string  `json:"keyPoints"`
	AudioLength     string    `json:"audioLength"`
	// Card view: the first three key points plus how many are hidden.
	PreviewKeyPoints []string `json:"previewKeyPoints"`
	MoreKeyPoints    int      `json:"moreKeyPoints"`
}
