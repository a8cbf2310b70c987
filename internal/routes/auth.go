package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spendwise/spendwise/internal/auth"
)

// RegisterAuthRoutes wires authentication endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	group := r.Group("/auth")
	group.Post("/signup", h.Signup)
	group.Post("/login", h.Login)
	group.Post("/forgot-password", h.ForgotPassword)
}
