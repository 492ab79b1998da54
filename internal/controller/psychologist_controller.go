package controller

import (
	"medisos-be/internal/dto"
	"medisos-be/internal/pkg/serverutils"
	"medisos-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPsychologistController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Assign(ctx *fiber.Ctx) error
}

type psychologistController struct {
	service service.IPsychologistService
}

func NewPsychologistController(service service.IPsychologistService) IPsychologistController {
	return &psychologistController{service: service}
}

func (c *psychologistController) RegisterRoutes(r fiber.Router) {
	r.Post("/psychologists", serverutils.RequireSession, c.Create)
	r.Get("/psychologists", serverutils.RequireSession, c.List)
	r.Put("/users/:id/psychologist/:psychId", serverutils.RequireSession, c.Assign)
}

func (c *psychologistController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePsychologistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Error(ctx, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.Error(ctx, fiber.StatusBadRequest, err.Error())
	}

	psych, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.Success(ctx, fiber.StatusCreated, "Psychologist created", psych)
}

func (c *psychologistController) List(ctx *fiber.Ctx) error {
	psychs, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}
	return serverutils.Success(ctx, fiber.StatusOK, "", psychs)
}

func (c *psychologistController) Assign(ctx *fiber.Ctx) error {
	userId, err := ctx.ParamsInt("id")
	if err != nil || userId < 1 {
		return serverutils.Error(ctx, fiber.StatusBadRequest, "invalid user id")
	}
	psychId, err := ctx.ParamsInt("psychId")
	if err != nil || psychId < 1 {
		return serverutils.Error(ctx, fiber.StatusBadRequest, "invalid psychologist id")
	}

	if err := c.service.AssignToUser(ctx.Context(), uint(userId), uint(psychId)); err != nil {
		return serverutils.Error(ctx, fiber.StatusNotFound, err.Error())
	}
	return serverutils.Success[any](ctx, fiber.StatusOK, "Psychologist assigned", nil)
}
