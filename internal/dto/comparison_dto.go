package dto

import (
	"robinrocks-be/pkg/advisor"

	"github.com/google/uuid"
)

type PreferencesRequest struct {
	MaxPrice                int    `json:"maxPrice" validate:"gt=0"`
	MinM2                   int    `json:"minM2" validate:"gte=0"`
	PrioritizeEnvironmental bool   `json:"prioritizeEnvironmental"`
	PropertyType            string `json:"propertyType" validate:"required,oneof=apartment house condo townhouse"`
}

type PreferencesResponse struct {
	MaxPrice                int    `json:"maxPrice"`
	MinM2                   int    `json:"minM2"`
	PrioritizeEnvironmental bool   `json:"prioritizeEnvironmental"`
	PropertyType            string `json:"propertyType"`
}

type PropertyFit struct {
	WithinBudget    bool `json:"withinBudget"`
	MeetsSize       bool `json:"meetsSize"`
	Environmental   bool `json:"environmental"`
	MatchesCriteria bool `json:"matchesCriteria"`
}

type PropertyResponse struct {
	Id                  uuid.UUID   `json:"id"`
	Address             string      `json:"address"`
	Price               int         `json:"price"`
	M2                  int         `json:"m2"`
	PricePerM2          int         `json:"pricePerM2"`
	Bedrooms            int         `json:"bedrooms"`
	Bathrooms           int         `json:"bathrooms"`
	EnvironmentalScore  int         `json:"environmentalScore"`
	EnergyRating        string      `json:"energyRating"`
	CarbonFootprint     string      `json:"carbonFootprint"`
	SustainableFeatures []string    `json:"sustainableFeatures"`
	MatchScore          int         `json:"matchScore"`
	SellingPoints       []string    `json:"sellingPoints"`
	Selected            bool        `json:"selected"`
	Fit                 PropertyFit `json:"fit"`
}

type ComparisonViewResponse struct {
	Properties  []PropertyResponse  `json:"properties"`
	Preferences PreferencesResponse `json:"preferences"`
	Selected    []uuid.UUID         `json:"selected"`
	Messages    []advisor.Message   `json:"messages"`
	Typing      bool                `json:"typing"`
}

type ChatMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatMessageResponse struct {
	Message advisor.Message `json:"message"`
	Pending int             `json:"pending"`
}

type ChatHistoryResponse struct {
	Messages []advisor.Message `json:"messages"`
	Typing   bool              `json:"typing"`
}
