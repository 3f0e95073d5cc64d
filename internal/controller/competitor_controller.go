package controller

import (
	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICompetitorController interface {
	RegisterRoutes(r fiber.Router)
	Overview(ctx *fiber.Ctx) error
	StartScrape(ctx *fiber.Ctx) error
	Job(ctx *fiber.Ctx) error
	CancelScrape(ctx *fiber.Ctx) error
	SaveAutomation(ctx *fiber.Ctx) error
	Leave(ctx *fiber.Ctx) error
}

type competitorController struct {
	service service.ICompetitorService
	auth    fiber.Handler
}

func NewCompetitorController(service service.ICompetitorService, auth fiber.Handler) ICompetitorController {
	return &competitorController{service: service, auth: auth}
}

func (c *competitorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/competitor-analysis", c.auth)
	h.Get("", c.Overview)
	h.Delete("", c.Leave)
	h.Post("/scrape", c.StartScrape)
	h.Get("/scrape", c.Job)
	h.Delete("/scrape", c.CancelScrape)
	h.Put("/automation", c.SaveAutomation)
}

func (c *competitorController) Overview(ctx *fiber.Ctx) error {
	res, err := c.service.Overview(ctx.Context(), serverutils.UserID(ctx), ctx.Query("city"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get competitor analysis", res))
}

func (c *competitorController) StartScrape(ctx *fiber.Ctx) error {
	var req dto.StartScrapeRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.StartScrape(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Scraping started", res))
}

func (c *competitorController) Job(ctx *fiber.Ctx) error {
	res, err := c.service.Job(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get scraping job", res))
}

func (c *competitorController) CancelScrape(ctx *fiber.Ctx) error {
	res, err := c.service.CancelScrape(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Scraping canceled", res))
}

func (c *competitorController) SaveAutomation(ctx *fiber.Ctx) error {
	var req dto.AutomationSettings
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.SaveAutomation(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Automation saved", res))
}

func (c *competitorController) Leave(ctx *fiber.Ctx) error {
	c.service.Leave(ctx.Context(), serverutils.UserID(ctx))
	return ctx.JSON(serverutils.SuccessResponse[any]("Competitor analysis closed", nil))
}
