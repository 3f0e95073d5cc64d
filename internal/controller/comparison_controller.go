package controller

import (
	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IComparisonController interface {
	RegisterRoutes(r fiber.Router)
	View(ctx *fiber.Ctx) error
	ToggleSelection(ctx *fiber.Ctx) error
	UpdatePreferences(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Leave(ctx *fiber.Ctx) error
}

type comparisonController struct {
	service service.IComparisonService
	auth    fiber.Handler
}

func NewComparisonController(service service.IComparisonService, auth fiber.Handler) IComparisonController {
	return &comparisonController{service: service, auth: auth}
}

func (c *comparisonController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/comparisons", c.auth)
	h.Get("", c.View)
	h.Delete("", c.Leave)
	h.Post("/selection/:id", c.ToggleSelection)
	h.Put("/preferences", c.UpdatePreferences)
	h.Get("/chat", c.History)
	h.Post("/chat", c.SendMessage)
}

func (c *comparisonController) View(ctx *fiber.Ctx) error {
	res, err := c.service.View(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get comparison", res))
}

func (c *comparisonController) ToggleSelection(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.service.ToggleSelection(ctx.Context(), serverutils.UserID(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection updated", res))
}

func (c *comparisonController) UpdatePreferences(ctx *fiber.Ctx) error {
	var req dto.PreferencesRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.UpdatePreferences(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Preferences updated", res))
}

func (c *comparisonController) History(ctx *fiber.Ctx) error {
	res, err := c.service.History(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat", res))
}

func (c *comparisonController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.SendMessage(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *comparisonController) Leave(ctx *fiber.Ctx) error {
	c.service.Leave(ctx.Context(), serverutils.UserID(ctx))
	return ctx.JSON(serverutils.SuccessResponse[any]("Comparison closed", nil))
}
