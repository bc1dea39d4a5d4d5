package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// OKResponse sends {ok: true}
func OKResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// ErrorResponse sends the standard error envelope.
// "error" mirrors "message" for clients that read either key.
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string, details interface{}) error {
	body := fiber.Map{
		"status":    status,
		"message":   message,
		"error":     message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	}
	if details != nil {
		body["details"] = details
	}
	return c.Status(status).JSON(body)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "notFound", nil)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Error     string      `json:"error"`
	Ok        bool        `json:"ok"`
	Timestamp string      `json:"timestamp"`
	URL       string      `json:"url"`
	Type      string      `json:"type,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

// OKResponseStruct defines the schema for {ok: true} responses
type OKResponseStruct struct {
	Ok bool `json:"ok"`
}
