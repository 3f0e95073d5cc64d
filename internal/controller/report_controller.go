package controller

import (
	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IReportService
	auth    fiber.Handler
}

func NewReportController(service service.IReportService, auth fiber.Handler) IReportController {
	return &reportController{service: service, auth: auth}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reports", c.auth)
	h.Get("", c.List)
	h.Get("/:id", c.Show)
}

func (c *reportController) List(ctx *fiber.Ctx) error {
	var req dto.ListReportsRequest
	if err := bindQuery(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.List(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list reports", res))
}

func (c *reportController) Show(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show report", res))
}
