package controller

import (
	"strconv"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecordingController interface {
	RegisterRoutes(r fiber.Router)
	Overview(ctx *fiber.Ctx) error
	Start(ctx *fiber.Ctx) error
	Pause(ctx *fiber.Ctx) error
	Resume(ctx *fiber.Ctx) error
	Stop(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
	PushChunk(ctx *fiber.Ctx) error
	Audio(ctx *fiber.Ctx) error
	TogglePlayback(ctx *fiber.Ctx) error
	PlaybackEnded(ctx *fiber.Ctx) error
	Seek(ctx *fiber.Ctx) error
}

type recordingController struct {
	service service.IRecordingService
	auth    fiber.Handler
}

func NewRecordingController(service service.IRecordingService, auth fiber.Handler) IRecordingController {
	return &recordingController{service: service, auth: auth}
}

func (c *recordingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recording", c.auth)
	h.Get("", c.Overview)
	h.Post("/sessions", c.Start)
	h.Get("/sessions/:id", c.Show)
	h.Delete("/sessions/:id", c.Close)
	h.Post("/sessions/:id/pause", c.Pause)
	h.Post("/sessions/:id/resume", c.Resume)
	h.Post("/sessions/:id/stop", c.Stop)
	h.Post("/sessions/:id/chunks", c.PushChunk)
	h.Get("/sessions/:id/audio", c.Audio)
	h.Post("/sessions/:id/playback/toggle", c.TogglePlayback)
	h.Post("/sessions/:id/playback/ended", c.PlaybackEnded)
	h.Post("/sessions/:id/playback/seek", c.Seek)
}

func (c *recordingController) Overview(ctx *fiber.Ctx) error {
	res, err := c.service.Overview(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get recordings", res))
}

func (c *recordingController) Start(ctx *fiber.Ctx) error {
	var req dto.StartRecordingRequest
	if len(ctx.Body()) > 0 {
		if err := bind(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.service.Start(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Recording started", res))
}

func (c *recordingController) Pause(ctx *fiber.Ctx) error {
	res, err := c.service.Pause(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recording paused", res))
}

func (c *recordingController) Resume(ctx *fiber.Ctx) error {
	res, err := c.service.Resume(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recording resumed", res))
}

func (c *recordingController) Stop(ctx *fiber.Ctx) error {
	res, err := c.service.Stop(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recording stopped", res))
}

func (c *recordingController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show recording", res))
}

func (c *recordingController) Close(ctx *fiber.Ctx) error {
	if err := c.service.Close(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Recording closed", nil))
}

// PushChunk takes the raw audio bytes of one chunk as the request body.
func (c *recordingController) PushChunk(ctx *fiber.Ctx) error {
	body := ctx.Body()
	if len(body) == 0 {
		return serverutils.BadRequest("empty audio chunk")
	}
	chunk := make([]byte, len(body))
	copy(chunk, body)

	if err := c.service.PushChunk(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"), chunk); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse[any]("Chunk accepted", nil))
}

func (c *recordingController) Audio(ctx *fiber.Ctx) error {
	artifact, err := c.service.Audio(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, artifact.MimeType())
	ctx.Set(fiber.HeaderContentLength, strconv.Itoa(artifact.Size()))
	return ctx.Send(artifact.Bytes())
}

func (c *recordingController) TogglePlayback(ctx *fiber.Ctx) error {
	res, err := c.service.TogglePlayback(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Playback toggled", res))
}

func (c *recordingController) PlaybackEnded(ctx *fiber.Ctx) error {
	res, err := c.service.PlaybackEnded(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Playback ended", res))
}

func (c *recordingController) Seek(ctx *fiber.Ctx) error {
	var req dto.SeekRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.Seek(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Playback position updated", res))
}
