package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader is the header the request identifier travels in.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the fiber locals key RequestID stores the identifier under.
const requestIDKey = "request_id"

// RequestID ensures each request carries a stable identifier: an incoming
// value is reused, otherwise one is generated. The id is echoed in the
// response header and stored in locals for handler logging.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set(RequestIDHeader, reqID)
		c.Locals(requestIDKey, reqID)

		return c.Next()
	}
}

// RequestIDFrom returns the request id stored by RequestID, or an empty
// string when the middleware did not run.
func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}
