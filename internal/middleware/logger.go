package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/recipedb/internal/types"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request with its outcome and latency
func RequestLogger(logger *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not written the response yet
			status = errorStatus(err)
		}

		fields := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"ip", c.IP(),
			"status", status,
			"latency", latency,
		}
		switch {
		case err != nil && status >= fiber.StatusInternalServerError:
			logger.Errorw("HTTP Request Error", append(fields, "error", err)...)
		case err != nil:
			logger.Infow("HTTP Request", append(fields, "error", err.Error())...)
		default:
			logger.Infow("HTTP Request", fields...)
		}
		return err
	}
}

func errorStatus(err error) int {
	if ce, ok := types.AsCustomError(err); ok {
		return ce.Code
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
