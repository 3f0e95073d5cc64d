package service

import (
	"context"
	"sort"
	"strings"
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
	"robinrocks-be/pkg/events"
	"robinrocks-be/pkg/scheduler"
	"robinrocks-be/pkg/scraper"
)

type ICompetitorService interface {
	Overview(ctx context.Context, userID, city string) (*dto.CompetitorOverviewResponse, error)
	StartScrape(ctx context.Context, userID string, req *dto.StartScrapeRequest) (*dto.StartScrapeResponse, error)
	CancelScrape(ctx context.Context, userID string) (*scraper.Progress, error)
	Job(ctx context.Context, userID string) (*scraper.Progress, error)
	SaveAutomation(ctx context.Context, userID string, req *dto.AutomationSettings) (*dto.AutomationSettings, error)
	Leave(ctx context.Context, userID string)
}

// scrapeView is one user's simulator and the site IDs of its current job.
type scrapeView struct {
	sim *scraper.Simulator

	mu      sync.Mutex
	siteIDs []string
}

func (v *scrapeView) setSelection(ids []string) {
	v.mu.Lock()
	v.siteIDs = append([]string(nil), ids...)
	v.mu.Unlock()
}

func (v *scrapeView) selection() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.siteIDs
}

type competitorService struct {
	sites      contract.CompetitorSiteRepository
	properties contract.CommercialPropertyRepository
	clock      scheduler.Scheduler
	stepDelay  time.Duration
	jobs       *memory.ViewStateRepository[*scrapeView]
	publisher  events.Publisher
	pusher     Pusher
	metrics    *metrics.Metrics
	logger     logger.ILogger
}

func NewCompetitorService(
	sites contract.CompetitorSiteRepository,
	properties contract.CommercialPropertyRepository,
	clock scheduler.Scheduler,
	stepDelay time.Duration,
	ttl time.Duration,
	publisher events.Publisher,
	pusher Pusher,
	m *metrics.Metrics,
	log logger.ILogger,
) ICompetitorService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &competitorService{
		sites:      sites,
		properties: properties,
		clock:      clock,
		stepDelay:  stepDelay,
		jobs: memory.NewViewStateRepository(ttl, func(_ string, v *scrapeView) {
			_ = v.sim.Cancel()
		}),
		publisher: publisher,
		pusher:    pusherOrNop(pusher),
		metrics:   m,
		logger:    log,
	}
}

func (s *competitorService) Overview(ctx context.Context, userID, city string) (*dto.CompetitorOverviewResponse, error) {
	sites, err := s.sites.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var specs []specification.Specification[*entity.CommercialProperty]
	if city != "" && city != "all" {
		label, ok := scraper.Cities[city]
		if !ok {
			return nil, scraper.ErrUnknownCity
		}
		specs = append(specs, specification.CommercialByCity{City: label})
	}
	props, err := s.properties.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	automation := s.sites.GetAutomation(ctx, userID)
	res := &dto.CompetitorOverviewResponse{
		Sites:      make([]dto.CompetitorSiteResponse, 0, len(sites)),
		Properties: make([]dto.CommercialPropertyResponse, 0, len(props)),
		Cities:     s.cities(ctx),
		Automation: dto.AutomationSettings{
			Frequency: automation.Frequency,
			Threshold: automation.Threshold,
			Retention: automation.Retention,
		},
	}
	for _, site := range sites {
		res.Sites = append(res.Sites, siteResponse(site))
	}
	for _, p := range props {
		res.Properties = append(res.Properties, commercialResponse(p))
	}

	if v, ok := s.jobs.Get(userID); ok {
		if p, ok := v.sim.Current(); ok {
			res.Job = &p
		}
		if r, ok := v.sim.LastResult(); ok {
			res.LastResult = &r
		}
	}
	return res, nil
}

// StartScrape resolves site IDs to their names and runs one simulated job
// per user. An empty selection is rejected before anything changes.
func (s *competitorService) StartScrape(ctx context.Context, userID string, req *dto.StartScrapeRequest) (*dto.StartScrapeResponse, error) {
	sites, err := s.sites.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.CompetitorSite, len(sites))
	for _, site := range sites {
		byID[site.Id] = site
	}

	names := make([]string, 0, len(req.Sources))
	for _, id := range req.Sources {
		site, ok := byID[id]
		if !ok {
			return nil, serverutils.NotFound("competitor site", id)
		}
		names = append(names, site.Name)
	}

	scrapeReq := scraper.Request{Sources: names, CustomURL: req.CustomURL, City: req.City}
	v := s.view(userID)
	if v.sim.InProgress() {
		return nil, scraper.ErrInProgress
	}
	v.setSelection(req.Sources)
	progress, err := v.sim.Start(scrapeReq)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Scraper", "Scraping job started", map[string]interface{}{
		"user_id": userID,
		"job_id":  progress.JobID,
		"steps":   progress.Steps,
		"city":    progress.City,
	})
	return &dto.StartScrapeResponse{
		Progress:         progress,
		EstimatedMinutes: int(scraper.Estimate(scrapeReq).Minutes()),
	}, nil
}

func (s *competitorService) CancelScrape(ctx context.Context, userID string) (*scraper.Progress, error) {
	v, ok := s.jobs.Get(userID)
	if !ok {
		return nil, scraper.ErrJobNotActive
	}
	if err := v.sim.Cancel(); err != nil {
		return nil, err
	}
	p, _ := v.sim.Current()
	return &p, nil
}

func (s *competitorService) Job(ctx context.Context, userID string) (*scraper.Progress, error) {
	if v, ok := s.jobs.Get(userID); ok {
		if p, ok := v.sim.Current(); ok {
			return &p, nil
		}
	}
	return nil, serverutils.NotFound("scraping job", userID)
}

func (s *competitorService) SaveAutomation(ctx context.Context, userID string, req *dto.AutomationSettings) (*dto.AutomationSettings, error) {
	a := entity.ScrapeAutomation{Frequency: req.Frequency, Threshold: req.Threshold, Retention: req.Retention}
	if err := s.sites.SaveAutomation(ctx, userID, a); err != nil {
		return nil, err
	}
	out := *req
	return &out, nil
}

func (s *competitorService) Leave(ctx context.Context, userID string) {
	s.jobs.Delete(userID)
}

func (s *competitorService) view(userID string) *scrapeView {
	return s.jobs.GetOrCreate(userID, func() *scrapeView {
		v := &scrapeView{sim: scraper.NewSimulator(s.clock, scraper.WithStepDelay(s.stepDelay))}
		v.sim.OnProgress(func(p scraper.Progress) { s.onProgress(userID, v.selection(), p) })
		return v
	})
}

func (s *competitorService) onProgress(userID string, siteIDs []string, p scraper.Progress) {
	s.pusher.Push(userID, websocket.TypeScrape, p)

	switch p.Status {
	case scraper.StatusCanceled:
		s.metrics.ScrapingJobs.WithLabelValues(string(p.Status)).Inc()
		s.logger.Info("Scraper", "Scraping job canceled", map[string]interface{}{"user_id": userID, "job_id": p.JobID, "step": p.Step})
	case scraper.StatusCompleted:
		s.metrics.ScrapingJobs.WithLabelValues(string(p.Status)).Inc()
		s.markScraped(siteIDs)

		data := map[string]interface{}{"user_id": userID, "job_id": p.JobID, "city": p.City}
		if p.Result != nil {
			data["total_properties"] = p.Result.TotalProperties
			data["new_properties"] = p.Result.NewProperties
			data["updated_properties"] = p.Result.UpdatedProperties
			data["scraped_sites"] = p.Result.ScrapedSites
		}
		s.logger.Info("Scraper", "Scraping job completed", data)
		publishEvent(context.Background(), s.publisher, s.logger, "Scraper", events.NewAt(events.ScrapingCompleted, data, s.clock.Now()))
	}
}

func (s *competitorService) markScraped(siteIDs []string) {
	if len(siteIDs) == 0 {
		return
	}
	ctx := context.Background()
	sites, err := s.sites.FindAll(ctx)
	if err != nil {
		return
	}
	now := s.clock.Now()
	want := make(map[string]bool, len(siteIDs))
	for _, id := range siteIDs {
		want[id] = true
	}
	for _, site := range sites {
		if !want[site.Id] {
			continue
		}
		site.LastScraped = &now
		if err := s.sites.Update(ctx, site); err != nil {
			s.logger.Warn("Scraper", "Failed to mark site as scraped", map[string]interface{}{"site_id": site.Id, "error": err.Error()})
		}
	}
}

func (s *competitorService) cities(ctx context.Context) []dto.CityOption {
	counts := s.properties.CityListingCounts(ctx)
	out := make([]dto.CityOption, 0, len(scraper.Cities))
	for slug, label := range scraper.Cities {
		out = append(out, dto.CityOption{Value: slug, Label: label, Properties: counts[slug]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Properties > out[j].Properties })
	return out
}

func siteResponse(site *entity.CompetitorSite) dto.CompetitorSiteResponse {
	status := "inactive"
	if site.Active {
		status = "active"
	}
	return dto.CompetitorSiteResponse{
		Id:          site.Id,
		Name:        site.Name,
		URL:         site.URL,
		Status:      status,
		LastScraped: site.LastScraped,
	}
}

func commercialResponse(p *entity.CommercialProperty) dto.CommercialPropertyResponse {
	return dto.CommercialPropertyResponse{
		Id:                 p.Id,
		Address:            p.Address,
		PropertyType:       p.PropertyType,
		Price:              p.Price,
		MonthlyRent:        p.MonthlyRent,
		M2:                 p.M2,
		ROI:                p.ROI,
		FootTraffic:        p.FootTraffic,
		BuildingClass:      p.BuildingClass,
		YearBuilt:          p.YearBuilt,
		ParkingSpaces:      p.ParkingSpaces,
		TechInfrastructure: p.TechInfrastructure,
		OperatingCosts:     p.OperatingCosts,
		Zoning:             p.Zoning,
		LeaseTerm:          p.LeaseTerm,
		Visibility:         p.Visibility,
		MatchScore:         p.MatchScore,
		CompetitorName:     p.Source,
		Location:           strings.Join([]string{p.District, p.City}, ", "),
		District:           p.District,
		BusinessFeatures:   p.BusinessFeatures,
		LocationBenefits:   p.LocationBenefits,
	}
}
