package dto

import (
	"time"

	"robinrocks-be/internal/pkg/serverutils"

	"github.com/google/uuid"
)

var (
	LeadPropertyTypes = []string{
		"Office Space", "Retail Store", "Warehouse", "Industrial",
		"Mixed Use", "Restaurant", "Medical Office", "Co-working Space",
	}
	LeadBudgets = []string{
		"€500 - €1,500/month", "€1,500 - €3,000/month", "€3,000 - €5,000/month",
		"€5,000 - €10,000/month", "€10,000 - €20,000/month", "€20,000+/month",
	}
	LeadTimelines = []string{
		"Immediate (within 1 month)", "1-3 months", "3-6 months", "6-12 months", "12+ months",
	}
	LeadAmenities = []string{
		"Parking", "Public Transportation Access", "Conference Rooms", "Kitchen/Break Room",
		"Security System", "Elevator", "Air Conditioning", "High-Speed Internet",
		"Loading Dock", "24/7 Access", "Reception Area", "Storage Space",
	}
)

func init() {
	serverutils.RegisterChoice("lead_property_type", LeadPropertyTypes...)
	serverutils.RegisterChoice("lead_budget", LeadBudgets...)
	serverutils.RegisterChoice("lead_timeline", LeadTimelines...)
	serverutils.RegisterChoice("lead_amenity", LeadAmenities...)
}

type SubmitLeadRequest struct {
	Name                   string   `json:"name" validate:"required,min=2"`
	Email                  string   `json:"email" validate:"required,email"`
	Phone                  string   `json:"phone" validate:"required,min=10"`
	Company                string   `json:"company"`
	PropertyType           string   `json:"propertyType" validate:"required,lead_property_type"`
	Budget                 string   `json:"budget" validate:"required,lead_budget"`
	Location               string   `json:"location" validate:"required"`
	Size                   string   `json:"size" validate:"required"`
	Timeline               string   `json:"timeline" validate:"required,lead_timeline"`
	Amenities              []string `json:"amenities" validate:"omitempty,dive,lead_amenity"`
	AdditionalRequirements string   `json:"additionalRequirements"`
	EmployeeCount          string   `json:"employeeCount"`
	BusinessType           string   `json:"businessType"`
}

type SubmitLeadResponse struct {
	Id          uuid.UUID `json:"id"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type LeadOptionsResponse struct {
	PropertyTypes []string `json:"propertyTypes"`
	Budgets       []string `json:"budgets"`
	Timelines     []string `json:"timelines"`
	Amenities     []string `json:"amenities"`
}

// LeadQueuedMessage is the payload put on the lead topic.
type LeadQueuedMessage struct {
	LeadId       uuid.UUID `json:"lead_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PropertyType string    `json:"property_type"`
	Location     string    `json:"location"`
	Budget       string    `json:"budget"`
	Timeline     string    `json:"timeline"`
}
