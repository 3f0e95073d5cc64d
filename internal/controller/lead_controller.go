package controller

import (
	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ILeadController serves the public lead form. No auth.
type ILeadController interface {
	RegisterRoutes(r fiber.Router)
	Options(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
}

type leadController struct {
	service service.ILeadService
}

func NewLeadController(service service.ILeadService) ILeadController {
	return &leadController{service: service}
}

func (c *leadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lead-generation")
	h.Get("/options", c.Options)
	h.Post("", c.Submit)
}

func (c *leadController) Options(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get lead options", c.service.Options(ctx.Context())))
}

func (c *leadController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitLeadRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.Submit(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Lead submitted", res))
}
