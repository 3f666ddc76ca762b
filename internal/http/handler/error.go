package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"groupapi/internal/apperror"
	"groupapi/internal/http/middleware"
	"groupapi/internal/repository"
)

// errorPayload is the body of every failed response.
type errorPayload struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

func writeError(c *fiber.Ctx, e *apperror.Error) error {
	return c.Status(e.Status).JSON(errorPayload{
		StatusCode: e.Status,
		Message:    e.Message,
		Error:      e.Label(),
	})
}

// ErrorHandler returns a Fiber global error handler that renders application,
// Fiber and storage errors uniformly. Anything unrecognized is logged and
// reported as a 500 without leaking its cause.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		if e, ok := apperror.As(err); ok {
			if e.Status >= fiber.StatusInternalServerError {
				log.Error("request failed", requestFields(c, err)...)
			}
			return writeError(c, e)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return writeError(c, &apperror.Error{Status: fe.Code, Message: fe.Message})
		}

		if e, ok := repository.Translate(err); ok {
			return writeError(c, e)
		}

		log.Error("unhandled error", requestFields(c, err)...)
		return writeError(c, &apperror.Error{Status: fiber.StatusInternalServerError, Message: "Internal server error"})
	}
}

func requestFields(c *fiber.Ctx, err error) []zap.Field {
	return []zap.Field{
		zap.String("request_id", middleware.RequestIDFrom(c)),
		zap.String("method", utils.CopyString(c.Method())),
		zap.String("path", utils.CopyString(c.Path())),
		zap.Error(err),
	}
}
