package memory

import (
	"context"
	"sync"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
)

var defaultAutomation = entity.ScrapeAutomation{
	Frequency: "daily",
	Threshold: "new",
	Retention: "90days",
}

type competitorSiteRepository struct {
	rows *store[string, entity.CompetitorSite]

	mu         sync.RWMutex
	automation map[string]entity.ScrapeAutomation
}

func NewCompetitorSiteRepository() contract.CompetitorSiteRepository {
	seed := []entity.CompetitorSite{
		{Id: "funda-business", Name: "Funda Business", URL: "funda.nl/zakelijk", Active: true},
		{Id: "era-makelaars", Name: "ERA Makelaars", URL: "era.nl", Active: true},
		{Id: "vbo-makelaars", Name: "VBO Makelaars", URL: "vbo.nl", Active: true},
		{Id: "cushman-wakefield", Name: "Cushman & Wakefield", URL: "cushmanwakefield.nl", Active: true},
		{Id: "jll-netherlands", Name: "JLL Netherlands", URL: "jll.nl", Active: true},
	}
	return &competitorSiteRepository{
		rows:       newStore(func(s *entity.CompetitorSite) string { return s.Id }, seed...),
		automation: make(map[string]entity.ScrapeAutomation),
	}
}

func (r *competitorSiteRepository) FindAll(ctx context.Context) ([]*entity.CompetitorSite, error) {
	return r.rows.findAll(), nil
}

func (r *competitorSiteRepository) Update(ctx context.Context, site *entity.CompetitorSite) error {
	if !r.rows.update(site) {
		return serverutils.NotFound("competitor site", site.Id)
	}
	return nil
}

func (r *competitorSiteRepository) GetAutomation(ctx context.Context, userID string) entity.ScrapeAutomation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.automation[userID]; ok {
		return a
	}
	return defaultAutomation
}

func (r *competitorSiteRepository) SaveAutomation(ctx context.Context, userID string, a entity.ScrapeAutomation) error {
	r.mu.Lock()
	r.automation[userID] = a
	r.mu.Unlock()
	return nil
}
