package specification

import (
	"robinrocks-be/internal/entity"

	"github.com/google/uuid"
)

type PropertyByIDs struct {
	IDs []uuid.UUID
}

func (s PropertyByIDs) IsSatisfiedBy(p *entity.Property) bool {
	for _, id := range s.IDs {
		if p.Id == id {
			return true
		}
	}
	return false
}

type CommercialByCity struct {
	City string
}

func (s CommercialByCity) IsSatisfiedBy(p *entity.CommercialProperty) bool {
	return isAll(s.City) || containsFold(s.City, p.City)
}

type CommercialMinROI struct {
	ROI float64
}

func (s CommercialMinROI) IsSatisfiedBy(p *entity.CommercialProperty) bool {
	return p.ROI >= s.ROI
}
