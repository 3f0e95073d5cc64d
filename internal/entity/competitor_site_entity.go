package entity

import "time"

type CompetitorSite struct {
	Id          string
	Name        string
	URL         string
	Active      bool
	LastScraped *time.Time
}

// ScrapeAutomation holds the automation form. The values are shown back to
// the user only; nothing is scheduled from them.
type ScrapeAutomation struct {
	Frequency string
	Threshold string
	Retention string
}
