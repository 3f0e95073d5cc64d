package specification

import (
	"robinrocks-be/internal/entity"

	"github.com/google/uuid"
)

type ContractByID struct {
	ID uuid.UUID
}

func (s ContractByID) IsSatisfiedBy(c *entity.Contract) bool { return c.Id == s.ID }

type ContractByArea struct {
	Area string
}

func (s ContractByArea) IsSatisfiedBy(c *entity.Contract) bool {
	return isAll(s.Area) || c.Area == s.Area
}

type ContractByStatus struct {
	Status string
}

func (s ContractByStatus) IsSatisfiedBy(c *entity.Contract) bool {
	return isAll(s.Status) || string(c.Status) == s.Status
}

// ContractSearch matches address and tenant.
type ContractSearch struct {
	Term string
}

func (s ContractSearch) IsSatisfiedBy(c *entity.Contract) bool {
	return containsFold(s.Term, c.PropertyAddress, c.Tenant)
}
