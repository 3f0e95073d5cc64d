package controller

import (
	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContractController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type contractController struct {
	service service.IContractService
	auth    fiber.Handler
}

func NewContractController(service service.IContractService, auth fiber.Handler) IContractController {
	return &contractController{service: service, auth: auth}
}

func (c *contractController) RegisterRoutes(r fiber.Router) {
	r.Get("/contracts", c.auth, c.List)
}

func (c *contractController) List(ctx *fiber.Ctx) error {
	var req dto.ListContractsRequest
	if err := bindQuery(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.List(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list contracts", res))
}
