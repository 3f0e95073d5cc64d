package entity

import (
	"time"

	"github.com/google/uuid"
)

type ContractType string

const (
	ContractOffice      ContractType = "office"
	ContractShop        ContractType = "shop"
	ContractResidential ContractType = "residential"
)

type ContractStatus string

const (
	ContractActive   ContractStatus = "active"
	ContractExpiring ContractStatus = "expiring"
	ContractExpired  ContractStatus = "expired"
)

type Contract struct {
	Id              uuid.UUID
	PropertyAddress string
	Tenant          string
	Landlord        string
	Area            string
	Type            ContractType
	StartDate       time.Time
	EndDate         time.Time
	IndexationDate  time.Time
	LastIndexation  time.Time
	MonthlyRent     float64
	Status          ContractStatus
}
