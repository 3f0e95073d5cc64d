package specification

import (
	"robinrocks-be/internal/entity"

	"github.com/google/uuid"
)

type TaskByID struct {
	ID uuid.UUID
}

func (s TaskByID) IsSatisfiedBy(t *entity.Task) bool { return t.Id == s.ID }

type TaskByStatus struct {
	Status string
}

func (s TaskByStatus) IsSatisfiedBy(t *entity.Task) bool {
	return isAll(s.Status) || string(t.Status) == s.Status
}

type TaskByPriority struct {
	Priority string
}

func (s TaskByPriority) IsSatisfiedBy(t *entity.Task) bool {
	return isAll(s.Priority) || string(t.Priority) == s.Priority
}

// TaskSearch matches title, description and related property.
type TaskSearch struct {
	Term string
}

func (s TaskSearch) IsSatisfiedBy(t *entity.Task) bool {
	return containsFold(s.Term, t.Title, t.Description, t.RelatedProperty)
}
