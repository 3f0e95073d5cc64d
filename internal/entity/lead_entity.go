package entity

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	Id                     uuid.UUID
	Name                   string
	Email                  string
	Phone                  string
	Company                string
	PropertyType           string
	Budget                 string
	Timeline               string
	Location               string
	Size                   string
	Amenities              []string
	AdditionalRequirements string
	EmployeeCount          string
	BusinessType           string
	SubmittedAt            time.Time
}
