package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"clubapi/internal/http/middleware"
)

// errorPayload is the JSON error body every API endpoint returns.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusEnvelopes maps HTTP statuses the router produces on its own to safe
// client-facing envelopes. Anything else is reported as an internal error.
var statusEnvelopes = map[int]errorEnvelope{
	fiber.StatusBadRequest:       {Code: "BAD_REQUEST", Message: "bad request"},
	fiber.StatusNotFound:         {Code: "NOT_FOUND", Message: "resource not found"},
	fiber.StatusMethodNotAllowed: {Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"},
}

var internalEnvelope = errorEnvelope{Code: "INTERNAL_ERROR", Message: "internal server error"}

// requestIDFromCtx reads the id middleware.RequestID stored for this request.
func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError sends the standard error body. Message must be safe to show a
// client; internal error details never go on the wire.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// ErrorHandler converts errors that escape handlers into client responses.
// API clients get the JSON envelope; browsers hitting the HTML pages get a
// small error page instead, picked by Accept header.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		env, ok := statusEnvelopes[status]
		if !ok {
			env = internalEnvelope
		}

		if c.Accepts("json", "html") == "html" {
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Status(status).SendString(fmt.Sprintf(
				"<!doctype html><html><head><title>%d</title></head><body><h1>%d</h1><p>%s</p></body></html>",
				status, status, env.Message,
			))
		}
		return writeError(c, status, env.Code, env.Message)
	}
}
