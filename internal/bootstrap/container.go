package bootstrap

import (
	"context"
	"log"
	"time"

	"robinrocks-be/internal/config"
	"robinrocks-be/internal/controller"
	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/internal/pkg/mailer"
	"robinrocks-be/internal/pkg/metrics"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/internal/service"
	"robinrocks-be/internal/websocket"
	"robinrocks-be/pkg/advisor"
	"robinrocks-be/pkg/events"
	pktNats "robinrocks-be/pkg/nats"
	"robinrocks-be/pkg/scheduler"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	DashboardController       controller.IDashboardController
	RecordingController       controller.IRecordingController
	ReportController          controller.IReportController
	TaskController            controller.ITaskController
	ContractController        controller.IContractController
	ComparisonController      controller.IComparisonController
	CompetitorController      controller.ICompetitorController
	DocumentController        controller.IDocumentController
	PersonalizationController controller.IPersonalizationController
	SettingsController        controller.ISettingsController
	LeadController            controller.ILeadController

	// Background services, started by main.go
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	WebSocketHub *websocket.Hub
	Metrics      *metrics.Metrics
	Logger       logger.ILogger

	closers []func()
}

// Options replaces infrastructure in tests. Zero values use the real thing.
type Options struct {
	Clock       scheduler.Scheduler
	Logger      logger.ILogger
	Mailer      mailer.IEmailService
	SkipBrokers bool
}

func NewContainer(cfg *config.Config) *Container {
	return NewContainerWith(cfg, Options{})
}

func NewContainerWith(cfg *config.Config, opts Options) *Container {
	// 1. Core facades
	clock := opts.Clock
	if clock == nil {
		clock = scheduler.NewReal()
	}
	sysLogger := opts.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	emailService := opts.Mailer
	if emailService == nil {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	}
	m := metrics.New()

	catalog, err := advisor.LoadDefault()
	if err != nil {
		log.Fatalf("[FATAL] Failed to load advisor rules: %v", err)
	}

	c := &Container{Metrics: m, Logger: sysLogger}

	// 2. Infrastructure
	var (
		natsPub *pktNats.Publisher
		natsSub service.EventSubscriber
		rdb     *redis.Client
	)
	if !opts.SkipBrokers {
		if p, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = p
			c.closers = append(c.closers, p.Close)
		}
		if s, err := pktNats.NewSubscriber(cfg.App.NatsURL); err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			natsSub = s
			c.closers = append(c.closers, s.Close)
		}
		rdb = connectRedis(cfg.App.RedisURL)
		if rdb != nil {
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
	}

	// Lead queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// WebSocket hub logs to its own file
	var wsLogger logger.ILogger = sysLogger
	if opts.Logger == nil {
		wsLogger = logger.NewIsolatedLogger("logs/notification.log")
	}
	wsHub := websocket.NewHub(rdb, wsLogger)

	// 3. Repositories
	now := clock.Now()
	recordingRepo := memory.NewRecordingRepository(now)
	reportRepo := memory.NewReportRepository(now)
	taskRepo := memory.NewTaskRepository(now)
	activityRepo := memory.NewActivityRepository(now)
	contractRepo := memory.NewContractRepository()
	propertyRepo := memory.NewPropertyRepository()
	commercialRepo := memory.NewCommercialPropertyRepository()
	siteRepo := memory.NewCompetitorSiteRepository()
	templateRepo := memory.NewTemplateRepository(now)
	settingsRepo := memory.NewSettingsRepository()
	connectorRepo := memory.NewConnectorRepository(now)
	leadRepo := memory.NewLeadRepository()

	// Domain events reach the broker and the activity feed.
	var publisher events.Publisher = events.Fanout{service.NewActivityPublisher(activityRepo)}
	if natsPub != nil {
		publisher = events.Fanout{natsPub, service.NewActivityPublisher(activityRepo)}
	}

	// 4. Services
	recordingService := service.NewRecordingService(
		service.RecordingServiceConfig{
			DefaultDevice: cfg.Recorder.Device,
			Tick:          cfg.Recorder.Tick,
			SessionTTL:    cfg.Recorder.SessionTTL,
		},
		clock,
		nil,
		recordingRepo,
		reportRepo,
		publisher,
		wsHub,
		m,
		sysLogger,
	)

	comparisonService, err := service.NewComparisonService(
		propertyRepo, catalog, clock,
		cfg.Advisor.CommercialDelay, cfg.Recorder.SessionTTL,
		wsHub, m, sysLogger,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize comparison advisor: %v", err)
	}

	documentService, err := service.NewDocumentService(
		catalog, clock,
		cfg.Advisor.RobinDelay, cfg.Recorder.SessionTTL,
		wsHub, m, sysLogger,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize document advisor: %v", err)
	}

	competitorService := service.NewCompetitorService(
		siteRepo, commercialRepo, clock,
		cfg.Scraper.StepDelay, cfg.Recorder.SessionTTL,
		publisher, wsHub, m, sysLogger,
	)

	reportService := service.NewReportService(reportRepo, clock)
	taskService := service.NewTaskService(taskRepo, clock, publisher, sysLogger)
	contractService := service.NewContractService(contractRepo, clock)
	dashboardService := service.NewDashboardService(recordingService, recordingRepo, reportRepo, taskRepo, activityRepo, clock)

	templateService := service.NewTemplateService(templateRepo, clock)
	writingStyleService := service.NewWritingStyleService(settingsRepo)
	connectorService := service.NewConnectorService(connectorRepo, cfg.OAuth, clock, publisher, sysLogger)
	settingsService := service.NewSettingsService(settingsRepo)

	publisherService := service.NewPublisherService(pubSub, cfg.Lead.Topic)
	leadService := service.NewLeadService(leadRepo, publisherService, clock, m, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Lead.Topic,
		taskRepo,
		emailService,
		cfg.SMTP.Email,
		publisher,
		clock,
		sysLogger,
	)

	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)

	// 5. Controllers
	auth := serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)

	c.DashboardController = controller.NewDashboardController(dashboardService, auth)
	c.RecordingController = controller.NewRecordingController(recordingService, auth)
	c.ReportController = controller.NewReportController(reportService, auth)
	c.TaskController = controller.NewTaskController(taskService, auth)
	c.ContractController = controller.NewContractController(contractService, auth)
	c.ComparisonController = controller.NewComparisonController(comparisonService, auth)
	c.CompetitorController = controller.NewCompetitorController(competitorService, auth)
	c.DocumentController = controller.NewDocumentController(documentService, auth)
	c.PersonalizationController = controller.NewPersonalizationController(templateService, writingStyleService, connectorService, auth)
	c.SettingsController = controller.NewSettingsController(settingsService, auth)
	c.LeadController = controller.NewLeadController(leadService)

	c.ConsumerService = consumerService
	c.NotificationService = notifService
	c.WebSocketHub = wsHub

	return c
}

// Close releases broker connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

// connectRedis returns nil when Redis is unreachable so the hub runs
// single-node.
func connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
