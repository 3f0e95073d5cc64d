package controller

import (
	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPersonalizationController interface {
	RegisterRoutes(r fiber.Router)

	ListTemplates(ctx *fiber.Ctx) error
	ShowTemplate(ctx *fiber.Ctx) error
	CreateTemplate(ctx *fiber.Ctx) error
	UpdateTemplate(ctx *fiber.Ctx) error
	DeleteTemplate(ctx *fiber.Ctx) error
	DuplicateTemplate(ctx *fiber.Ctx) error
	RenderTemplate(ctx *fiber.Ctx) error

	GetWritingStyle(ctx *fiber.Ctx) error
	SaveWritingStyle(ctx *fiber.Ctx) error

	ListConnectors(ctx *fiber.Ctx) error
	Connect(ctx *fiber.Ctx) error
	Disconnect(ctx *fiber.Ctx) error
	OAuthCallback(ctx *fiber.Ctx) error
}

type personalizationController struct {
	templates  service.ITemplateService
	style      service.IWritingStyleService
	connectors service.IConnectorService
	auth       fiber.Handler
}

func NewPersonalizationController(
	templates service.ITemplateService,
	style service.IWritingStyleService,
	connectors service.IConnectorService,
	auth fiber.Handler,
) IPersonalizationController {
	return &personalizationController{
		templates:  templates,
		style:      style,
		connectors: connectors,
		auth:       auth,
	}
}

func (c *personalizationController) RegisterRoutes(r fiber.Router) {
	// The provider redirects here without a bearer token.
	r.Get("/personalization/connectors/oauth/callback", c.OAuthCallback)

	h := r.Group("/personalization", c.auth)

	h.Get("/templates", c.ListTemplates)
	h.Post("/templates", c.CreateTemplate)
	h.Get("/templates/:id", c.ShowTemplate)
	h.Put("/templates/:id", c.UpdateTemplate)
	h.Delete("/templates/:id", c.DeleteTemplate)
	h.Post("/templates/:id/duplicate", c.DuplicateTemplate)
	h.Post("/templates/:id/render", c.RenderTemplate)

	h.Get("/writing-style", c.GetWritingStyle)
	h.Put("/writing-style", c.SaveWritingStyle)

	h.Get("/connectors", c.ListConnectors)
	h.Post("/connectors/:id/connect", c.Connect)
	h.Delete("/connectors/:id/connect", c.Disconnect)
}

func (c *personalizationController) ListTemplates(ctx *fiber.Ctx) error {
	res, err := c.templates.List(ctx.Context(), ctx.Query("type"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list templates", res))
}

func (c *personalizationController) ShowTemplate(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.templates.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show template", res))
}

func (c *personalizationController) CreateTemplate(ctx *fiber.Ctx) error {
	var req dto.TemplateRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.templates.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create template", res))
}

func (c *personalizationController) UpdateTemplate(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.TemplateRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.templates.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update template", res))
}

func (c *personalizationController) DeleteTemplate(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.templates.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete template", nil))
}

func (c *personalizationController) DuplicateTemplate(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.templates.Duplicate(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success duplicate template", res))
}

func (c *personalizationController) RenderTemplate(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.RenderTemplateRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.templates.Render(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success render template", res))
}

func (c *personalizationController) GetWritingStyle(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get writing style", c.style.Get(ctx.Context(), serverutils.UserID(ctx))))
}

func (c *personalizationController) SaveWritingStyle(ctx *fiber.Ctx) error {
	var req dto.WritingStyleRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.style.Save(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Writing style saved", res))
}

func (c *personalizationController) ListConnectors(ctx *fiber.Ctx) error {
	res, err := c.connectors.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list connectors", res))
}

func (c *personalizationController) Connect(ctx *fiber.Ctx) error {
	var req dto.ConnectRequest
	if len(ctx.Body()) > 0 {
		if err := bind(ctx, &req); err != nil {
			return err
		}
	}
	req.Id = ctx.Params("id")

	res, err := c.connectors.Connect(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Connector connected", res))
}

func (c *personalizationController) Disconnect(ctx *fiber.Ctx) error {
	res, err := c.connectors.Disconnect(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Connector disconnected", res))
}

func (c *personalizationController) OAuthCallback(ctx *fiber.Ctx) error {
	state, code := ctx.Query("state"), ctx.Query("code")
	if state == "" || code == "" {
		return serverutils.BadRequest("missing state or code")
	}
	res, err := c.connectors.CompleteOAuth(ctx.Context(), state, code)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Connector authorized", res))
}
