package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/specification"
	"robinrocks-be/pkg/scheduler"
)

const dateLayout = "2006-01-02"

var contractTypeLabels = map[entity.ContractType]string{
	entity.ContractOffice:      "Kantoor",
	entity.ContractShop:        "Winkel",
	entity.ContractResidential: "Woonruimte",
}

var contractStatusLabels = map[entity.ContractStatus]string{
	entity.ContractActive:   "Actief",
	entity.ContractExpiring: "Verloopt Binnenkort",
	entity.ContractExpired:  "Verlopen",
}

type IContractService interface {
	List(ctx context.Context, req *dto.ListContractsRequest) (*dto.ListContractsResponse, error)
}

type contractService struct {
	contracts contract.ContractRepository
	clock     scheduler.Scheduler
}

func NewContractService(contracts contract.ContractRepository, clock scheduler.Scheduler) IContractService {
	return &contractService{contracts: contracts, clock: clock}
}

// List filters the contracts while stats and areas always cover the whole
// portfolio.
func (s *contractService) List(ctx context.Context, req *dto.ListContractsRequest) (*dto.ListContractsResponse, error) {
	all, err := s.contracts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered, err := s.contracts.FindAll(ctx,
		specification.ContractSearch{Term: req.Search},
		specification.ContractByArea{Area: req.Area},
		specification.ContractByStatus{Status: req.Status},
	)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	res := &dto.ListContractsResponse{
		Contracts: make([]dto.ContractResponse, 0, len(filtered)),
		Stats:     contractStats(all),
		Areas:     contractAreas(all),
	}
	for _, c := range filtered {
		res.Contracts = append(res.Contracts, contractResponse(c, now))
	}
	return res, nil
}

// DaysUntilExpiry counts whole days from now to the end date, truncated
// toward zero. It is negative once the contract has ended.
func DaysUntilExpiry(end, now time.Time) int {
	return int(end.Sub(now).Hours() / 24)
}

// ExpiryNotice is shown on expiring contracts that still have days left and
// on every expired contract.
func ExpiryNotice(status entity.ContractStatus, days int) string {
	switch {
	case status == entity.ContractExpiring && days > 0:
		return fmt.Sprintf("Verloopt over %d dagen", days)
	case status == entity.ContractExpired:
		if days < 0 {
			days = -days
		}
		return fmt.Sprintf("Verlopen sinds %d dagen", days)
	}
	return ""
}

func contractResponse(c *entity.Contract, now time.Time) dto.ContractResponse {
	days := DaysUntilExpiry(c.EndDate, now)
	return dto.ContractResponse{
		Id:              c.Id,
		PropertyAddress: c.PropertyAddress,
		Tenant:          c.Tenant,
		Landlord:        c.Landlord,
		Area:            c.Area,
		Type:            string(c.Type),
		TypeLabel:       contractTypeLabels[c.Type],
		StartDate:       c.StartDate.Format(dateLayout),
		EndDate:         c.EndDate.Format(dateLayout),
		MonthlyRent:     c.MonthlyRent,
		IndexationDate:  c.IndexationDate.Format(dateLayout),
		LastIndexation:  c.LastIndexation.Format(dateLayout),
		Status:          string(c.Status),
		StatusLabel:     contractStatusLabels[c.Status],
		DaysUntilExpiry: days,
		ExpiryNotice:    ExpiryNotice(c.Status, days),
	}
}

func contractStats(all []*entity.Contract) dto.ContractStatsResponse {
	stats := dto.ContractStatsResponse{Total: len(all)}
	for _, c := range all {
		switch c.Status {
		case entity.ContractActive:
			stats.Active++
		case entity.ContractExpiring:
			stats.Expiring++
		case entity.ContractExpired:
			stats.Expired++
		}
	}
	return stats
}

func contractAreas(all []*entity.Contract) []string {
	seen := make(map[string]bool)
	areas := make([]string, 0, len(all))
	for _, c := range all {
		if !seen[c.Area] {
			seen[c.Area] = true
			areas = append(areas, c.Area)
		}
	}
	sort.Strings(areas)
	return areas
}
