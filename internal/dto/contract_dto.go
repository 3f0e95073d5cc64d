package dto

import "github.com/google/uuid"

type ListContractsRequest struct {
	Search string `query:"search"`
	Area   string `query:"area"`
	Status string `query:"status" validate:"omitempty,oneof=all active expiring expired"`
}

type ContractResponse struct {
	Id              uuid.UUID `json:"id"`
	PropertyAddress string    `json:"propertyAddress"`
	Tenant          string    `json:"tenant"`
	Landlord        string    `json:"landlord"`
	Area            string    `json:"area"`
	Type            string    `json:"type"`
	TypeLabel       string    `json:"typeLabel"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	MonthlyRent     float64   `json:"monthlyRent"`
	IndexationDate  string    `json:"indexationDate"`
	LastIndexation  string    `json:"lastIndexation"`
	Status          string    `json:"status"`
	StatusLabel     string    `json:"statusLabel"`
	DaysUntilExpiry int       `json:"daysUntilExpiry"`
	ExpiryNotice    string    `json:"expiryNotice,omitempty"`
}

type ContractStatsResponse struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

type ListContractsResponse struct {
	Contracts []ContractResponse    `json:"contracts"`
	Stats     ContractStatsResponse `json:"stats"`
	Areas     []string              `json:"areas"`
}
