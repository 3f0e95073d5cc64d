package dto

import "time"

type StatCard struct {
	Title  string `json:"title"`
	Value  int    `json:"value"`
	Change string `json:"change"`
}

type ActivityResponse struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        string    `json:"time"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type DashboardResponse struct {
	Stats            []StatCard         `json:"stats"`
	RecentActivities []ActivityResponse `json:"recentActivities"`
}
