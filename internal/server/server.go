package server

import (
	"log"

	"robinrocks-be/internal/bootstrap"
	"robinrocks-be/internal/config"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, audio chunks included
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	app.Get("/metrics", container.Metrics.Handler())

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	api := app.Group("/api")

	// Public first: groups below attach auth per prefix.
	c.LeadController.RegisterRoutes(api)
	websocket.Route(api, c.WebSocketHub, cfg.Auth.JwtSecret)

	c.DashboardController.RegisterRoutes(api)
	c.RecordingController.RegisterRoutes(api)
	c.ReportController.RegisterRoutes(api)
	c.TaskController.RegisterRoutes(api)
	c.ContractController.RegisterRoutes(api)
	c.ComparisonController.RegisterRoutes(api)
	c.CompetitorController.RegisterRoutes(api)
	c.DocumentController.RegisterRoutes(api)
	c.PersonalizationController.RegisterRoutes(api)
	c.SettingsController.RegisterRoutes(api)

	app.Use(func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "Route not found"))
	})
}
