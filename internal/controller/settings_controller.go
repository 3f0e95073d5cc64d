package controller

import (
	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
}

type settingsController struct {
	service service.ISettingsService
	auth    fiber.Handler
}

func NewSettingsController(service service.ISettingsService, auth fiber.Handler) ISettingsController {
	return &settingsController{service: service, auth: auth}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings", c.auth)
	h.Get("", c.Get)
	h.Put("", c.Save)
}

func (c *settingsController) Get(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get settings", c.service.Get(ctx.Context(), serverutils.UserID(ctx))))
}

func (c *settingsController) Save(ctx *fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.Save(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Settings saved", res))
}
