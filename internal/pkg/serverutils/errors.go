package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AppError is a user-facing error carrying the HTTP status to respond with.
type AppError struct {
	Code    int
	Message string
	Err     error // underlying cause, logged but never sent to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequest(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}

func NewUnsupportedMedia(message string) *AppError {
	return &AppError{Code: fiber.StatusUnsupportedMediaType, Message: message}
}

func NewBadGateway(message string, cause error) *AppError {
	return &AppError{Code: fiber.StatusBadGateway, Message: message, Err: cause}
}

func NewInternal(message string, cause error) *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: message, Err: cause}
}

// ErrorHandlerMiddleware converts errors returned by handlers into the
// {error} wire contract. Unknown errors are masked as a generic 500 so
// internal detail never leaks.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Message))
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErrs.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
