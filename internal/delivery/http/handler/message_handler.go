package handler

import (
	"job-connect/internal/access"
	"job-connect/internal/delivery/http/dto"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/pkg/response"
	"job-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MessageHandler struct {
	uc usecase.MessageUsecase
}

func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/messages", middleware.Require(access.Requirement{}))
	grp.Get("/inbox", h.Inbox)
	grp.Get("/sent", h.Sent)
	grp.Post("/", h.Compose)
	grp.Get("/:id", h.View)
}

func (h *MessageHandler) Inbox(c fiber.Ctx) error {
	items, err := h.uc.Inbox(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMessageResponses(items))
}

func (h *MessageHandler) Sent(c fiber.Ctx) error {
	items, err := h.uc.Sent(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMessageResponses(items))
}

func (h *MessageHandler) Compose(c fiber.Ctx) error {
	var req usecase.ComposeInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.uc.Compose(c.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return respond(c, err, req)
	}
	return response.Redirect(c, access.APIPrefix+"/messages/sent", "Message sent successfully", dto.NewMessageResponse(m))
}

func (h *MessageHandler) View(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := h.uc.View(c.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMessageResponse(m))
}
