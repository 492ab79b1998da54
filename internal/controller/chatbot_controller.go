package controller

import (
	"medisos-be/internal/dto"
	"medisos-be/internal/pkg/serverutils"
	"medisos-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
}

func NewChatbotController(service service.IChatbotService) IChatbotController {
	return &chatbotController{service: service}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	// Deliberately not session-gated: anonymous callers chat as "anonymous".
	r.Post("/chatbot", c.Chat)
}

func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	reply, err := c.service.Relay(ctx.Context(), serverutils.SessionFromCtx(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(reply)
}
