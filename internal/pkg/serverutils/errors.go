package serverutils

import (
	"errors"
	"fmt"

	"robinrocks-be/pkg/advisor"
	"robinrocks-be/pkg/recorder"
	"robinrocks-be/pkg/scraper"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// NotFound wraps ErrNotFound with the missing resource.
func NotFound(resource, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, resource, id)
}

// BadRequest wraps ErrBadRequest with a user-facing reason.
func BadRequest(reason string) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, reason)
}

var statusByError = []struct {
	err    error
	status int
}{
	{ErrNotFound, fiber.StatusNotFound},
	{ErrBadRequest, fiber.StatusBadRequest},
	{ErrUnauthorized, fiber.StatusUnauthorized},
	{ErrConflict, fiber.StatusConflict},

	{recorder.ErrDeviceBusy, fiber.StatusConflict},
	{recorder.ErrDeviceUnavailable, fiber.StatusServiceUnavailable},
	{recorder.ErrInvalidTransition, fiber.StatusConflict},
	{recorder.ErrNoArtifact, fiber.StatusConflict},
	{recorder.ErrNotCapturing, fiber.StatusConflict},

	{advisor.ErrEmptyMessage, fiber.StatusBadRequest},
	{advisor.ErrConversationClosed, fiber.StatusGone},

	{scraper.ErrNoSources, fiber.StatusBadRequest},
	{scraper.ErrUnknownCity, fiber.StatusBadRequest},
	{scraper.ErrInProgress, fiber.StatusConflict},
	{scraper.ErrJobNotActive, fiber.StatusConflict},
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusUnprocessableEntity
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware renders errors returned by downstream handlers as
// the standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := StatusFor(err)
		body := ErrorResponse(status, err.Error())

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			body.Message = "Validation failed"
			body.Errors = validationErr.Fields
		}
		if status == fiber.StatusInternalServerError {
			body.Message = "Internal server error"
		}

		return ctx.Status(status).JSON(body)
	}
}
