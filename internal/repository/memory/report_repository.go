package memory

import (
	"context"
	"time"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/specification"

	"github.com/google/uuid"
)

type reportRepository struct {
	rows *store[uuid.UUID, entity.VisitReport]
}

func NewReportRepository(now time.Time) contract.ReportRepository {
	return &reportRepository{rows: newStore(func(r *entity.VisitReport) uuid.UUID { return r.Id }, seedReports(now)...)}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.VisitReport) error {
	if report.Id == uuid.Nil {
		report.Id = uuid.New()
	}
	r.rows.upsert(report)
	return nil
}

func (r *reportRepository) FindOne(ctx context.Context, specs ...specification.Specification[*entity.VisitReport]) (*entity.VisitReport, error) {
	return r.rows.findOne(specs...), nil
}

func (r *reportRepository) FindAll(ctx context.Context, specs ...specification.Specification[*entity.VisitReport]) ([]*entity.VisitReport, error) {
	return r.rows.findAll(specs...), nil
}

func seedReports(now time.Time) []entity.VisitReport {
	return []entity.VisitReport{
		{
			Id:              SeedID("report-1"),
			PropertyAddress: "123 Ocean View Drive, Unit 12A",
			ClientName:      "Sarah Johnson",
			VisitDate:       at(now, 0, 14, 30),
			Duration:        "45 minutes",
			Status:          entity.ReportCompleted,
			Summary:         "Spacious 2-bedroom condo with stunning ocean views. Client interested in the modern kitchen and balcony space. Concerns about HOA fees discussed.",
			KeyPoints: []string{
				"Client loves the ocean view and modern finishes",
				"Interested in negotiating HOA fees",
				"Wants to schedule second viewing with spouse",
				"Asked about parking availability",
				"Inquired about pet policy",
			},
			AudioLength: "12:45",
		},
		{
			Id:              SeedID("report-2"),
			PropertyAddress: "456 Downtown Plaza, Apartment 8B",
			ClientName:      "Mike Brown",
			VisitDate:       at(now, 0, 11, 15),
			Duration:        "30 minutes",
			Status:          entity.ReportFollowUp,
			Summary:         "Urban apartment with great city views. Client concerned about noise levels and commute to work. Interested but needs more information.",
			KeyPoints: []string{
				"Noise concerns from street traffic",
				"Wants information about soundproofing",
				"Interested in lease terms flexibility",
				"Asked about gym facilities in building",
			},
			AudioLength: "8:22",
		},
		{
			Id:              SeedID("report-3"),
			PropertyAddress: "789 Suburban Lane, Single Family Home",
			ClientName:      "Jennifer & Tom Wilson",
			VisitDate:       at(now, -1, 16, 45),
			Duration:        "60 minutes",
			Status:          entity.ReportPending,
			Summary:         "Beautiful 4-bedroom family home with large backyard. Clients impressed with space but have questions about school district and renovations needed.",
			KeyPoints: []string{
				"Love the spacious layout and backyard",
				"Concerns about kitchen renovation costs",
				"Asked about local schools ratings",
				"Interested in home inspection details",
				"Discussing timeline for purchase",
			},
			AudioLength: "15:33",
		},
	}
}
