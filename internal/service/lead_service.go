package service

import (
	"context"
	"encoding/json"
	"fmt"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/internal/pkg/metrics"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/pkg/scheduler"

	"github.com/google/uuid"
)

type ILeadService interface {
	Options(ctx context.Context) *dto.LeadOptionsResponse
	Submit(ctx context.Context, req *dto.SubmitLeadRequest) (*dto.SubmitLeadResponse, error)
}

type leadService struct {
	leads     contract.LeadRepository
	publisher IPublisherService
	clock     scheduler.Scheduler
	metrics   *metrics.Metrics
	logger    logger.ILogger
}

func NewLeadService(leads contract.LeadRepository, publisher IPublisherService, clock scheduler.Scheduler, m *metrics.Metrics, log logger.ILogger) ILeadService {
	return &leadService{leads: leads, publisher: publisher, clock: clock, metrics: m, logger: log}
}

func (s *leadService) Options(ctx context.Context) *dto.LeadOptionsResponse {
	return &dto.LeadOptionsResponse{
		PropertyTypes: dto.LeadPropertyTypes,
		Budgets:       dto.LeadBudgets,
		Timelines:     dto.LeadTimelines,
		Amenities:     dto.LeadAmenities,
	}
}

// Submit stores the lead and queues its follow-up. The caller has already
// validated req.
func (s *leadService) Submit(ctx context.Context, req *dto.SubmitLeadRequest) (*dto.SubmitLeadResponse, error) {
	lead := &entity.Lead{
		Id:                     uuid.New(),
		Name:                   req.Name,
		Email:                  req.Email,
		Phone:                  req.Phone,
		Company:                req.Company,
		PropertyType:           req.PropertyType,
		Budget:                 req.Budget,
		Timeline:               req.Timeline,
		Location:               req.Location,
		Size:                   req.Size,
		Amenities:              req.Amenities,
		AdditionalRequirements: req.AdditionalRequirements,
		EmployeeCount:          req.EmployeeCount,
		BusinessType:           req.BusinessType,
		SubmittedAt:            s.clock.Now(),
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	s.metrics.LeadsSubmitted.Inc()

	payload, err := json.Marshal(dto.LeadQueuedMessage{
		LeadId:       lead.Id,
		Name:         lead.Name,
		Email:        lead.Email,
		PropertyType: lead.PropertyType,
		Location:     lead.Location,
		Budget:       lead.Budget,
		Timeline:     lead.Timeline,
	})
	if err != nil {
		return nil, fmt.Errorf("encode lead message: %w", err)
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		// the lead is stored; only the follow-up is lost
		s.logger.Error("Leads", "Failed to queue lead follow-up", map[string]interface{}{"lead_id": lead.Id.String(), "error": err.Error()})
	}

	s.logger.Info("Leads", "Lead submitted", map[string]interface{}{"lead_id": lead.Id.String(), "property_type": lead.PropertyType})
	return &dto.SubmitLeadResponse{
		Id:          lead.Id,
		Message:     "Thank you! We'll contact you within 24 hours with matching properties.",
		SubmittedAt: lead.SubmittedAt,
	}, nil
}
