package handler

import (
	"github.com/gofiber/fiber/v2"
)

// errorPayload is the error response body: a single human-readable message.
// Clients match on the status code, not the text; 400 means the caller's
// note payload failed validation (or the file part was missing), everything
// else is a 500.
type errorPayload struct {
	Error string `json:"error"`
}

// writeError writes the JSON error body with the given status.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// ErrorHandler returns a Fiber global error handler so that unrouted paths
// and framework-level failures produce the same error shape as the handlers.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
			message = e.Message
		}
		return writeError(c, status, message)
	}
}
