package memory

import (
	"context"
	"time"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/specification"

	"github.com/google/uuid"
)

type templateRepository struct {
	rows *store[uuid.UUID, entity.Template]
}

func NewTemplateRepository(now time.Time) contract.TemplateRepository {
	seed := []entity.Template{
		{
			Id:          SeedID("template-1"),
			Name:        "Standard Visit Report",
			Type:        "visit-report",
			Description: "Default template for property visit reports",
			Content:     "Property: {{property_address}}\nDate: {{visit_date}}\nClient: {{client_name}}\n\nObservations:\n{{observations}}\n\nRecommendations:\n{{recommendations}}",
			CreatedAt:   now,
		},
		{
			Id:          SeedID("template-2"),
			Name:        "Property Listing Template",
			Type:        "property-listing",
			Description: "Template for creating property listings",
			Content:     "{{property_type}} - {{bedrooms}} bedrooms\nLocation: {{location}}\nPrice: {{price}}\n\nDescription:\n{{description}}\n\nFeatures:\n{{features}}",
			CreatedAt:   now,
		},
	}
	return &templateRepository{rows: newStore(func(t *entity.Template) uuid.UUID { return t.Id }, seed...)}
}

func (r *templateRepository) Create(ctx context.Context, tpl *entity.Template) error {
	if tpl.Id == uuid.Nil {
		tpl.Id = uuid.New()
	}
	r.rows.upsert(tpl)
	return nil
}

func (r *templateRepository) Update(ctx context.Context, tpl *entity.Template) error {
	if !r.rows.update(tpl) {
		return serverutils.NotFound("template", tpl.Id.String())
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if !r.rows.delete(id) {
		return serverutils.NotFound("template", id.String())
	}
	return nil
}

func (r *templateRepository) FindOne(ctx context.Context, specs ...specification.Specification[*entity.Template]) (*entity.Template, error) {
	return r.rows.findOne(specs...), nil
}

func (r *templateRepository) FindAll(ctx context.Context, specs ...specification.Specification[*entity.Template]) ([]*entity.Template, error) {
	return r.rows.findAll(specs...), nil
}
