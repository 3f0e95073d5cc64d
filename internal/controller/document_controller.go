package controller

import (
	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Types(ctx *fiber.Ctx) error
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateForm(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Draft(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
	auth    fiber.Handler
}

func NewDocumentController(service service.IDocumentService, auth fiber.Handler) IDocumentController {
	return &documentController{service: service, auth: auth}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/documents", c.auth)
	h.Get("/types", c.Types)
	h.Post("/sessions", c.Open)
	h.Get("/sessions/:id", c.Show)
	h.Delete("/sessions/:id", c.Close)
	h.Put("/sessions/:id/form", c.UpdateForm)
	h.Post("/sessions/:id/chat", c.SendMessage)
	h.Post("/sessions/:id/draft", c.Draft)
}

func (c *documentController) Types(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list document types", c.service.Types(ctx.Context())))
}

func (c *documentController) Open(ctx *fiber.Ctx) error {
	var req dto.OpenDocumentRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.Open(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Document session opened", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show document session", res))
}

// UpdateForm stores partial input; required fields are checked on draft.
func (c *documentController) UpdateForm(ctx *fiber.Ctx) error {
	var form dto.RentalAgreement
	if err := ctx.BodyParser(&form); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	res, err := c.service.UpdateForm(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"), &form)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Form updated", res))
}

func (c *documentController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.SendMessage(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *documentController) Draft(ctx *fiber.Ctx) error {
	res, err := c.service.Draft(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft generated", res))
}

func (c *documentController) Close(ctx *fiber.Ctx) error {
	if err := c.service.Close(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Document session closed", nil))
}
