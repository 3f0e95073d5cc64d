package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/internal/pkg/metrics"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/internal/repository/specification"
	"robinrocks-be/internal/websocket"
	"robinrocks-be/pkg/advisor"
	"robinrocks-be/pkg/scheduler"

	"github.com/google/uuid"
)

const environmentalThreshold = 80

var defaultPreferences = advisor.Preferences{
	MaxPrice:                700000,
	MinM2:                   80,
	PrioritizeEnvironmental: true,
	PropertyType:            "apartment",
}

type IComparisonService interface {
	View(ctx context.Context, userID string) (*dto.ComparisonViewResponse, error)
	ToggleSelection(ctx context.Context, userID string, propertyID uuid.UUID) (*dto.ComparisonViewResponse, error)
	UpdatePreferences(ctx context.Context, userID string, req *dto.PreferencesRequest) (*dto.ComparisonViewResponse, error)
	SendMessage(ctx context.Context, userID string, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error)
	History(ctx context.Context, userID string) (*dto.ChatHistoryResponse, error)
	Leave(ctx context.Context, userID string)
}

type comparisonView struct {
	mu          sync.Mutex
	selected    []uuid.UUID
	preferences advisor.Preferences
	chat        *advisor.Conversation
}

type comparisonService struct {
	properties contract.PropertyRepository
	advisor    *advisor.Ruleset
	clock      scheduler.Scheduler
	delay      time.Duration
	views      *memory.ViewStateRepository[*comparisonView]
	pusher     Pusher
	metrics    *metrics.Metrics
	logger     logger.ILogger
}

func NewComparisonService(
	properties contract.PropertyRepository,
	catalog *advisor.Catalog,
	clock scheduler.Scheduler,
	delay time.Duration,
	ttl time.Duration,
	pusher Pusher,
	m *metrics.Metrics,
	log logger.ILogger,
) (IComparisonService, error) {
	rs, ok := catalog.Get(advisor.RulesetCommercial)
	if !ok {
		return nil, fmt.Errorf("advisor ruleset %q is not loaded", advisor.RulesetCommercial)
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &comparisonService{
		properties: properties,
		advisor:    rs,
		clock:      clock,
		delay:      delay,
		views: memory.NewViewStateRepository(ttl, func(_ string, v *comparisonView) {
			v.chat.Close()
		}),
		pusher:  pusherOrNop(pusher),
		metrics: m,
		logger:  log,
	}, nil
}

func (s *comparisonService) View(ctx context.Context, userID string) (*dto.ComparisonViewResponse, error) {
	return s.render(ctx, s.view(userID))
}

func (s *comparisonService) ToggleSelection(ctx context.Context, userID string, propertyID uuid.UUID) (*dto.ComparisonViewResponse, error) {
	found, err := s.properties.FindAll(ctx, specification.PropertyByIDs{IDs: []uuid.UUID{propertyID}})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, serverutils.NotFound("property", propertyID.String())
	}

	v := s.view(userID)
	v.mu.Lock()
	idx := -1
	for i, id := range v.selected {
		if id == propertyID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		v.selected = append(v.selected[:idx], v.selected[idx+1:]...)
	} else {
		v.selected = append(v.selected, propertyID)
	}
	v.mu.Unlock()

	return s.render(ctx, v)
}

func (s *comparisonService) UpdatePreferences(ctx context.Context, userID string, req *dto.PreferencesRequest) (*dto.ComparisonViewResponse, error) {
	v := s.view(userID)
	v.mu.Lock()
	v.preferences = advisor.Preferences{
		MaxPrice:                req.MaxPrice,
		MinM2:                   req.MinM2,
		PrioritizeEnvironmental: req.PrioritizeEnvironmental,
		PropertyType:            req.PropertyType,
	}
	v.mu.Unlock()
	return s.render(ctx, v)
}

// SendMessage captures the current selection and preferences; the reply
// arrives later over the socket and in History.
func (s *comparisonService) SendMessage(ctx context.Context, userID string, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	v := s.view(userID)
	advCtx, err := s.advisorContext(ctx, v)
	if err != nil {
		return nil, err
	}

	msg, err := v.chat.Submit(req.Message, advCtx)
	if err != nil {
		return nil, err
	}
	return &dto.ChatMessageResponse{Message: msg, Pending: v.chat.Pending()}, nil
}

func (s *comparisonService) History(ctx context.Context, userID string) (*dto.ChatHistoryResponse, error) {
	v := s.view(userID)
	return &dto.ChatHistoryResponse{Messages: v.chat.Messages(), Typing: v.chat.Pending() > 0}, nil
}

// Leave drops the view state and any reply still being typed.
func (s *comparisonService) Leave(ctx context.Context, userID string) {
	s.views.Delete(userID)
}

func (s *comparisonService) view(userID string) *comparisonView {
	return s.views.GetOrCreate(userID, func() *comparisonView {
		v := &comparisonView{
			preferences: defaultPreferences,
			chat:        advisor.NewConversation(uuid.NewString(), s.advisor, s.clock, s.delay, advisor.Context{Preferences: defaultPreferences}),
		}
		v.chat.OnMessage(func(msg advisor.Message) {
			if msg.Role == advisor.RoleAdvisor {
				s.metrics.AdvisorReplies.WithLabelValues(advisor.RulesetCommercial, msg.Rule).Inc()
			}
			s.pusher.Push(userID, websocket.TypeChat, msg)
		})
		return v
	})
}

func (s *comparisonService) advisorContext(ctx context.Context, v *comparisonView) (advisor.Context, error) {
	v.mu.Lock()
	selected := append([]uuid.UUID(nil), v.selected...)
	prefs := v.preferences
	v.mu.Unlock()

	out := advisor.Context{Preferences: prefs}
	if len(selected) == 0 {
		return out, nil
	}
	props, err := s.properties.FindAll(ctx, specification.PropertyByIDs{IDs: selected})
	if err != nil {
		return out, err
	}
	byID := make(map[uuid.UUID]*entity.Property, len(props))
	for _, p := range props {
		byID[p.Id] = p
	}
	// selection order decides ROI ties
	for _, id := range selected {
		p, ok := byID[id]
		if !ok {
			continue
		}
		out.Selected = append(out.Selected, advisor.Property{
			ID:           p.Id.String(),
			Address:      p.Address,
			PropertyType: p.PropertyType,
			FootTraffic:  p.FootTraffic,
			M2:           p.M2,
			ROI:          p.ROI,
		})
	}
	return out, nil
}

func (s *comparisonService) render(ctx context.Context, v *comparisonView) (*dto.ComparisonViewResponse, error) {
	props, err := s.properties.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	prefs := v.preferences
	selected := append([]uuid.UUID{}, v.selected...)
	v.mu.Unlock()

	isSelected := make(map[uuid.UUID]bool, len(selected))
	for _, id := range selected {
		isSelected[id] = true
	}

	res := &dto.ComparisonViewResponse{
		Properties: make([]dto.PropertyResponse, 0, len(props)),
		Preferences: dto.PreferencesResponse{
			MaxPrice:                prefs.MaxPrice,
			MinM2:                   prefs.MinM2,
			PrioritizeEnvironmental: prefs.PrioritizeEnvironmental,
			PropertyType:            prefs.PropertyType,
		},
		Selected: selected,
		Messages: v.chat.Messages(),
		Typing:   v.chat.Pending() > 0,
	}
	for _, p := range props {
		res.Properties = append(res.Properties, dto.PropertyResponse{
			Id:                  p.Id,
			Address:             p.Address,
			Price:               p.Price,
			M2:                  p.M2,
			PricePerM2:          pricePerM2(p.Price, p.M2),
			Bedrooms:            p.Bedrooms,
			Bathrooms:           p.Bathrooms,
			EnvironmentalScore:  p.EnvironmentalScore,
			EnergyRating:        p.EnergyRating,
			CarbonFootprint:     p.CarbonFootprint,
			SustainableFeatures: p.SustainableFeatures,
			MatchScore:          p.MatchScore,
			SellingPoints:       p.SellingPoints,
			Selected:            isSelected[p.Id],
			Fit:                 fitFor(p, prefs),
		})
	}
	return res, nil
}

func fitFor(p *entity.Property, prefs advisor.Preferences) dto.PropertyFit {
	fit := dto.PropertyFit{
		WithinBudget:  p.Price <= prefs.MaxPrice,
		MeetsSize:     p.M2 >= prefs.MinM2,
		Environmental: !prefs.PrioritizeEnvironmental || p.EnvironmentalScore > environmentalThreshold,
	}
	fit.MatchesCriteria = fit.WithinBudget && fit.MeetsSize && fit.Environmental
	return fit
}

func pricePerM2(price, m2 int) int {
	if m2 <= 0 {
		return 0
	}
	return (price + m2/2) / m2
}
