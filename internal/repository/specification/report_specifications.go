package specification

import (
	"robinrocks-be/internal/entity"

	"github.com/google/uuid"
)

type ReportByID struct {
	ID uuid.UUID
}

func (s ReportByID) IsSatisfiedBy(r *entity.VisitReport) bool { return r.Id == s.ID }

type ReportByStatus struct {
	Status string
}

func (s ReportByStatus) IsSatisfiedBy(r *entity.VisitReport) bool {
	return isAll(s.Status) || string(r.Status) == s.Status
}

// ReportSearch matches the property address and client name.
type ReportSearch struct {
	Term string
}

func (s ReportSearch) IsSatisfiedBy(r *entity.VisitReport) bool {
	return containsFold(s.Term, r.PropertyAddress, r.ClientName)
}
