package controller

import (
	"robinrocks-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func uuidParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, serverutils.BadRequest("invalid " + name)
	}
	return id, nil
}

// bind parses the body and runs the validate tags.
func bind(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

func bindQuery(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.QueryParser(req); err != nil {
		return serverutils.BadRequest("invalid query")
	}
	return serverutils.ValidateRequest(req)
}
