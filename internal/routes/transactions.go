package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spendwise/spendwise/internal/transaction"
)

// RegisterTransactionRoutes wires transaction endpoints. The summary route
// is registered before the parameterized list route so /summary/:userId is
// not swallowed by /:userId.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler) {
	group := r.Group("/transactions")
	group.Post("/", h.Create)
	group.Get("/summary/:userId", h.Summary)
	group.Get("/:userId", h.List)
	group.Delete("/:id", h.Delete)
}
