package controller

import (
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	Overview(ctx *fiber.Ctx) error
}

type dashboardController struct {
	service service.IDashboardService
	auth    fiber.Handler
}

func NewDashboardController(service service.IDashboardService, auth fiber.Handler) IDashboardController {
	return &dashboardController{service: service, auth: auth}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.auth, c.Overview)
	r.Get("/dashboard", c.auth, c.Overview)
}

func (c *dashboardController) Overview(ctx *fiber.Ctx) error {
	res, err := c.service.Overview(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard", res))
}
