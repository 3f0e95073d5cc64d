package dto

import (
	"time"

	"robinrocks-be/pkg/scraper"
)

type CompetitorSiteResponse struct {
	Id          string     `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Status      string     `json:"status"`
	LastScraped *time.Time `json:"lastScraped,omitempty"`
}

type CommercialPropertyResponse struct {
	Id                 string   `json:"id"`
	Address            string   `json:"address"`
	PropertyType       string   `json:"propertyType"`
	Price              int      `json:"price"`
	MonthlyRent        int      `json:"monthlyRent"`
	M2                 int      `json:"m2"`
	ROI                float64  `json:"roi"`
	FootTraffic        string   `json:"footTraffic"`
	BuildingClass      string   `json:"buildingClass"`
	YearBuilt          int      `json:"yearBuilt"`
	ParkingSpaces      int      `json:"parkingSpaces"`
	TechInfrastructure int      `json:"techInfrastructure"`
	OperatingCosts     int      `json:"operatingCosts"`
	Zoning             string   `json:"zoning"`
	LeaseTerm          string   `json:"leaseTerm"`
	Visibility         string   `json:"visibility"`
	MatchScore         int      `json:"matchScore"`
	CompetitorName     string   `json:"competitorName"`
	Location           string   `json:"location"`
	District           string   `json:"district"`
	BusinessFeatures   []string `json:"businessFeatures"`
	LocationBenefits   []string `json:"locationBenefits"`
}

type CityOption struct {
	Value      string `json:"value"`
	Label      string `json:"label"`
	Properties int    `json:"properties"`
}

type CompetitorOverviewResponse struct {
	Sites      []CompetitorSiteResponse     `json:"sites"`
	Properties []CommercialPropertyResponse `json:"properties"`
	Cities     []CityOption                 `json:"cities"`
	Automation AutomationSettings           `json:"automation"`
	Job        *scraper.Progress            `json:"job,omitempty"`
	LastResult *scraper.Result              `json:"lastResult,omitempty"`
}

type StartScrapeRequest struct {
	Sources   []string `json:"sources"`
	CustomURL string   `json:"customUrl" validate:"omitempty,url"`
	City      string   `json:"city" validate:"omitempty,oneof=amsterdam rotterdam den-haag utrecht"`
}

type StartScrapeResponse struct {
	Progress         scraper.Progress `json:"progress"`
	EstimatedMinutes int              `json:"estimatedMinutes"`
}

type AutomationSettings struct {
	Frequency string `json:"frequency" validate:"required,oneof=hourly daily weekly manual"`
	Threshold string `json:"threshold" validate:"required,oneof=any new price none"`
	Retention string `json:"retention" validate:"required,oneof=30days 90days 1year forever"`
}
