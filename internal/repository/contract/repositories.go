package contract

import (
	"context"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/specification"

	"github.com/google/uuid"
)

// FindOne on every repository returns (nil, nil) when nothing matches.

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	Update(ctx context.Context, task *entity.Task) error
	FindOne(ctx context.Context, specs ...specification.Specification[*entity.Task]) (*entity.Task, error)
	FindAll(ctx context.Context, specs ...specification.Specification[*entity.Task]) ([]*entity.Task, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.VisitReport) error
	FindOne(ctx context.Context, specs ...specification.Specification[*entity.VisitReport]) (*entity.VisitReport, error)
	FindAll(ctx context.Context, specs ...specification.Specification[*entity.VisitReport]) ([]*entity.VisitReport, error)
}

type ContractRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification[*entity.Contract]) (*entity.Contract, error)
	FindAll(ctx context.Context, specs ...specification.Specification[*entity.Contract]) ([]*entity.Contract, error)
}

type PropertyRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification[*entity.Property]) ([]*entity.Property, error)
}

type CommercialPropertyRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification[*entity.CommercialProperty]) ([]*entity.CommercialProperty, error)
	// CityListingCounts is the number of listings per city slug on the
	// listing portals, shown next to the city filter.
	CityListingCounts(ctx context.Context) map[string]int
}

type CompetitorSiteRepository interface {
	FindAll(ctx context.Context) ([]*entity.CompetitorSite, error)
	Update(ctx context.Context, site *entity.CompetitorSite) error
	GetAutomation(ctx context.Context, userID string) entity.ScrapeAutomation
	SaveAutomation(ctx context.Context, userID string, a entity.ScrapeAutomation) error
}

type TemplateRepository interface {
	Create(ctx context.Context, tpl *entity.Template) error
	Update(ctx context.Context, tpl *entity.Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification[*entity.Template]) (*entity.Template, error)
	FindAll(ctx context.Context, specs ...specification.Specification[*entity.Template]) ([]*entity.Template, error)
}

type ConnectorRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Connector, error)
	FindAll(ctx context.Context) ([]*entity.Connector, error)
	Update(ctx context.Context, c *entity.Connector) error
}

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindAll(ctx context.Context) ([]*entity.Lead, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, userID string) entity.Settings
	Save(ctx context.Context, userID string, s entity.Settings) error
	GetWritingStyle(ctx context.Context, userID string) entity.WritingStyle
	SaveWritingStyle(ctx context.Context, userID string, s entity.WritingStyle) error
}

type ActivityRepository interface {
	Append(ctx context.Context, a *entity.Activity) error
	Recent(ctx context.Context, limit int) ([]*entity.Activity, error)
}

type RecordingRepository interface {
	Append(ctx context.Context, r *entity.RecordingSummary) error
	Recent(ctx context.Context, limit int) ([]*entity.RecordingSummary, error)
	Count(ctx context.Context) int
	TotalSeconds(ctx context.Context) int
}
