package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/recipedb/internal/types"
	"github.com/localnerve/recipedb/internal/utils"
	"go.uber.org/zap"
)

const internalMessage = "Internal Server Error"

// ErrorHandler renders every error as the standard envelope.
// Uncategorized errors are logged and hidden unless expose is set.
func ErrorHandler(log *zap.SugaredLogger, expose bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if ce, ok := types.AsCustomError(err); ok {
			return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type, ce.Details)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Message, fe.Code, statusType(fe.Code), nil)
		}

		log.Errorw("Unhandled error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		message := internalMessage
		if expose {
			message = err.Error()
		}
		return utils.ErrorResponse(c, message, fiber.StatusInternalServerError, types.TypeInternal, nil)
	}
}

// statusType names framework errors with the taxonomy where one applies
func statusType(code int) string {
	switch code {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
		return types.TypeValidation
	case fiber.StatusUnauthorized:
		return types.TypeAuth
	case fiber.StatusForbidden:
		return types.TypeForbidden
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return types.TypeNotFound
	case fiber.StatusConflict:
		return types.TypeConflict
	}
	return types.TypeInternal
}

// NotFound is the fallback for unknown routes
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}
