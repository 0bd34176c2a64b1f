package controller

import (
	"io"

	"doc-qna-be/internal/pkg/serverutils"
	"doc-qna-be/internal/service"
	"doc-qna-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	SessionUpload(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	// Legacy stateless endpoint: the client holds the extracted text.
	r.Post("/upload", c.Upload)

	h := r.Group("/session")
	h.Post("", c.CreateSession)
	h.Get(":id", c.State)
	h.Post(":id/upload", c.SessionUpload)
	h.Get(":id/history", c.History)
	h.Delete(":id", c.Clear)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	file, err := readUploadedFile(ctx)
	if err != nil {
		return err
	}

	res, err := c.documentService.ExtractDocument(ctx.Context(), *file)
	if err != nil {
		return respondError(ctx, err, "Failed to process file")
	}

	return ctx.JSON(res)
}

func (c *documentController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.documentService.CreateSession(ctx.Context())
	if err != nil {
		return respondError(ctx, err, "Failed to create session")
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *documentController) SessionUpload(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	file, err := readUploadedFile(ctx)
	if err != nil {
		return err
	}

	res, err := c.documentService.Upload(ctx.Context(), sessionId, *file)
	if err != nil {
		return respondError(ctx, err, "Failed to process file")
	}

	return ctx.JSON(serverutils.SuccessResponse("Document ready", res))
}

func (c *documentController) State(ctx *fiber.Ctx) error {
	res, err := c.documentService.State(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err, "Failed to load session")
	}
	return ctx.JSON(serverutils.SuccessResponse("Session state", res))
}

func (c *documentController) History(ctx *fiber.Ctx) error {
	res, err := c.documentService.History(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err, "Failed to load history")
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation history", res))
}

func (c *documentController) Clear(ctx *fiber.Ctx) error {
	if err := c.documentService.Clear(ctx.Context(), ctx.Params("id")); err != nil {
		return respondError(ctx, err, "Failed to clear session")
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session cleared", nil))
}

// readUploadedFile pulls the single multipart file field into memory. The
// returned errors are AppErrors so the error middleware renders them on the
// {error} contract.
func readUploadedFile(ctx *fiber.Ctx) (*extract.File, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, serverutils.NewBadRequest("No file uploaded")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, serverutils.NewInternal("Failed to open file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, serverutils.NewInternal("Failed to read file", err)
	}

	return &extract.File{
		Name:        fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
