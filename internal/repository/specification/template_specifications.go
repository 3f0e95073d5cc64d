package specification

import (
	"robinrocks-be/internal/entity"

	"github.com/google/uuid"
)

type TemplateByID struct {
	ID uuid.UUID
}

func (s TemplateByID) IsSatisfiedBy(t *entity.Template) bool { return t.Id == s.ID }

type TemplateByType struct {
	Type string
}

func (s TemplateByType) IsSatisfiedBy(t *entity.Template) bool {
	return isAll(s.Type) || t.Type == s.Type
}
