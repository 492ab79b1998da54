package controller

import (
	"errors"

	"medisos-be/internal/dto"
	"medisos-be/internal/pkg/serverutils"
	"medisos-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssessmentController interface {
	RegisterRoutes(r fiber.Router)
	SaveResponse(ctx *fiber.Ctx) error
	GetQuestions(ctx *fiber.Ctx) error
	EndSession(ctx *fiber.Ctx) error
	SessionMessages(ctx *fiber.Ctx) error
	ListReports(ctx *fiber.Ctx) error
}

type assessmentController struct {
	responseService service.IResponseService
	questionService service.IQuestionService
	reportService   service.IReportService
	chatbotService  service.IChatbotService
}

func NewAssessmentController(
	responseService service.IResponseService,
	questionService service.IQuestionService,
	reportService service.IReportService,
	chatbotService service.IChatbotService,
) IAssessmentController {
	return &assessmentController{
		responseService: responseService,
		questionService: questionService,
		reportService:   reportService,
		chatbotService:  chatbotService,
	}
}

func (c *assessmentController) RegisterRoutes(r fiber.Router) {
	r.Post("/save_response", serverutils.RequireSession, c.SaveResponse)
	r.Get("/get_questions", c.GetQuestions)
	r.Post("/end_session", serverutils.RequireSession, c.EndSession)
	r.Get("/sessions/:id/messages", serverutils.RequireSession, c.SessionMessages)
	r.Get("/reports", serverutils.RequireSession, c.ListReports)
}

func (c *assessmentController) SaveResponse(ctx *fiber.Ctx) error {
	var req dto.SaveResponseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Error(ctx, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.Error(ctx, fiber.StatusBadRequest, err.Error())
	}

	session := serverutils.SessionFromCtx(ctx)
	if err := c.responseService.SaveResponse(ctx.Context(), session.UserEmail, &req); err != nil {
		// Storage failures stay opaque to the client; the error handler logs them.
		return err
	}
	return serverutils.Success[any](ctx, fiber.StatusOK, "Response saved", nil)
}

func (c *assessmentController) GetQuestions(ctx *fiber.Ctx) error {
	questions, err := c.questionService.GetQuestions(ctx.Context(), ctx.Query("category"))
	if err != nil {
		return err
	}
	// Bare array, not the envelope: the dashboard script consumes it directly.
	return ctx.JSON(questions)
}

func (c *assessmentController) EndSession(ctx *fiber.Ctx) error {
	var req dto.EndSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Error(ctx, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.Error(ctx, fiber.StatusBadRequest, err.Error())
	}

	session := serverutils.SessionFromCtx(ctx)
	report, err := c.reportService.EndSession(ctx.Context(), session.UserEmail, req.ChatSessionId)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrNoActiveSession) {
			return serverutils.Error(ctx, fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return serverutils.Success(ctx, fiber.StatusOK, "Session ended", report)
}

func (c *assessmentController) SessionMessages(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return serverutils.Error(ctx, fiber.StatusBadRequest, "invalid session id")
	}

	session := serverutils.SessionFromCtx(ctx)
	messages, err := c.chatbotService.SessionMessages(ctx.Context(), session.UserEmail, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return serverutils.Error(ctx, fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return serverutils.Success(ctx, fiber.StatusOK, "", messages)
}

func (c *assessmentController) ListReports(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)
	reports, err := c.reportService.ListReports(ctx.Context(), session.UserEmail)
	if err != nil {
		return err
	}
	return serverutils.Success(ctx, fiber.StatusOK, "", reports)
}
