package entity

import "github.com/google/uuid"

// Property is a residential listing on the comparison page.
type Property struct {
	Id                  uuid.UUID
	Address             string
	PropertyType        string
	Price               int
	M2                  int
	Bedrooms            int
	Bathrooms           int
	EnvironmentalScore  int
	EnergyRating        string
	CarbonFootprint     string
	SustainableFeatures []string
	MatchScore          int
	SellingPoints       []string
	ROI                 float64
	FootTraffic         string
}

// CommercialProperty is a competitor listing found by scraping.
type CommercialProperty struct {
	Id                 string
	Address            string
	PropertyType       string
	Price              int
	MonthlyRent        int
	M2                 int
	ROI                float64
	FootTraffic        string
	BuildingClass      string
	YearBuilt          int
	ParkingSpaces      int
	TechInfrastructure int
	OperatingCosts     int
	Zoning             string
	LeaseTerm          string
	Visibility         string
	MatchScore         int
	Source             string
	City               string
	District           string
	BusinessFeatures   []string
	LocationBenefits   []string
}
