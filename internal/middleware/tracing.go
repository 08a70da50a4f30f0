package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const traceIDHeader = "X-Trace-Id"
const traceIDLocal = "trace_id"

// Tracing assigns each request a fresh trace ID, stored in Locals for the
// route logger and echoed back in the X-Trace-Id response header.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals(traceIDLocal, id)
		c.Set(traceIDHeader, id)
		return c.Next()
	}
}

// GetTraceID returns the request's trace ID, or "" before Tracing has run.
func GetTraceID(c *fiber.Ctx) string {
	if id, ok := c.Locals(traceIDLocal).(string); ok {
		return id
	}
	return ""
}
