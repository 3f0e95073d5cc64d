package service

import (
	"context"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/specification"
	"robinrocks-be/pkg/scheduler"

	"github.com/google/uuid"
)

const previewKeyPoints = 3

type IReportService interface {
	List(ctx context.Context, req *dto.ListReportsRequest) ([]dto.VisitReportResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.VisitReportResponse, error)
}

type reportService struct {
	reports contract.ReportRepository
	clock   scheduler.Scheduler
}

func NewReportService(reports contract.ReportRepository, clock scheduler.Scheduler) IReportService {
	return &reportService{reports: reports, clock: clock}
}

func (s *reportService) List(ctx context.Context, req *dto.ListReportsRequest) ([]dto.VisitReportResponse, error) {
	reports, err := s.reports.FindAll(ctx,
		specification.ReportSearch{Term: req.Search},
		specification.ReportByStatus{Status: req.Status},
	)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	out := make([]dto.VisitReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, reportResponse(r, now))
	}
	return out, nil
}

func (s *reportService) Show(ctx context.Context, id uuid.UUID) (*dto.VisitReportResponse, error) {
	r, err := s.reports.FindOne(ctx, specification.ReportByID{ID: id})
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, serverutils.NotFound("visit report", id.String())
	}
	res := reportResponse(r, s.clock.Now())
	return &res, nil
}

// VisitDateLabel renders "Today, 2:30 PM", "Yesterday, 4:45 PM" or the
// calendar date for older visits.
func VisitDateLabel(visit, now time.Time) string {
	clock := visit.Format("3:04 PM")
	vy, vm, vd := visit.Date()
	ny, nm, nd := now.Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())
	day := time.Date(vy, vm, vd, 0, 0, 0, 0, now.Location())

	switch today.Sub(day) {
	case 0:
		return "Today, " + clock
	case 24 * time.Hour:
		return "Yesterday, " + clock
	}
	return visit.Format("Jan 2, 3:04 PM")
}

func reportResponse(r *entity.VisitReport, now time.Time) dto.VisitReportResponse {
	preview := r.KeyPoints
	more := 0
	if len(preview) > previewKeyPoints {
		more = len(preview) - previewKeyPoints
		preview = preview[:previewKeyPoints]
	}
	return dto.VisitReportResponse{
		Id:               r.Id,
		PropertyAddress:  r.PropertyAddress,
		ClientName:       r.ClientName,
		VisitDate:        VisitDateLabel(r.VisitDate, now),
		Duration:         r.Duration,
		Status:           string(r.Status),
		Summary:          r.Summary,
		KeyPoints:        r.KeyPoints,
		AudioLength:      r.AudioLength,
		PreviewKeyPoints: preview,
		MoreKeyPoints:    more,
	}
}
