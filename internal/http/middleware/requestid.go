package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id on requests and responses.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the id lives in fiber's per-request locals.
	RequestIDLocalKey = "request_id"

	// maxInboundIDLen caps ids accepted from clients. Longer values are
	// replaced rather than truncated so logs stay correlatable.
	maxInboundIDLen = 64
)

// RequestID tags every request with an id that the logger and error bodies
// report. A usable inbound X-Request-ID is kept so ids correlate across
// services; otherwise a fresh UUID is issued. The response always echoes
// the id back.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" || len(id) > maxInboundIDLen {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
