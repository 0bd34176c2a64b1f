package controller

import (
	"doc-qna-be/internal/dto"
	"doc-qna-be/internal/pkg/serverutils"
	"doc-qna-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	AskSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	// Legacy stateless endpoint: the client supplies the document text.
	r.Post("/ask", c.Ask)

	r.Post("/session/:id/ask", c.AskSession)
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("No question or PDF text provided")
	}

	if req.Question == "" || req.PdfText == "" {
		return serverutils.NewBadRequest("No question or PDF text provided")
	}

	res, err := c.chatService.Ask(ctx.Context(), &req)
	if err != nil {
		return respondError(ctx, err, "Failed to get answer")
	}

	return ctx.JSON(res)
}

func (c *chatController) AskSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	var req dto.SessionAskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("No question provided")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.AskSession(ctx.Context(), sessionId, req.Question)
	if err != nil {
		return respondError(ctx, err, "Failed to get answer")
	}

	return ctx.JSON(serverutils.SuccessResponse("Answer ready", res))
}
