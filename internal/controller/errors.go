package controller

import (
	"errors"

	"doc-qna-be/internal/pkg/serverutils"
	"doc-qna-be/internal/repository/memory"
	"doc-qna-be/internal/service"
	"doc-qna-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
)

const unsupportedTypeMessage = "Please upload a supported file (PDF, CSV, PNG, JPG, BMP, TIFF)."

// respondError maps domain errors to the {error} wire contract. fallback is
// the user-facing message for anything unclassified (collaborator failures
// included), so internal detail never reaches the client.
func respondError(ctx *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, extract.ErrUnsupportedType):
		return ctx.Status(fiber.StatusUnsupportedMediaType).JSON(serverutils.ErrorResponse(unsupportedTypeMessage))
	case errors.Is(err, memory.ErrSessionNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse("Session not found"))
	case errors.Is(err, service.ErrUploadInProgress),
		errors.Is(err, service.ErrQuestionPending),
		errors.Is(err, service.ErrDocumentNotReady),
		errors.Is(err, service.ErrUploadSuperseded):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrEmptyQuestion):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}

	var processErr *extract.ProcessError
	var transportErr *extract.TransportError
	if errors.As(err, &processErr) || errors.As(err, &transportErr) {
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(fallback))
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fallback))
}
