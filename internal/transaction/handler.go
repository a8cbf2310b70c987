package transaction

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise/spendwise/internal/middleware"
)

// Handler exposes transaction HTTP endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a transaction HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type createRequest struct {
	UserID   string     `json:"userId"`
	Category string     `json:"category"`
	Title    string     `json:"title"`
	Amount   *float64   `json:"amount"`
	Type     string     `json:"type"`
	Note     string     `json:"note"`
	Date     *time.Time `json:"date"`
}

type transactionPayload struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Note      string    `json:"note"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type summaryKey struct {
	Category string `json:"category"`
	Type     string `json:"type"`
}

type summaryEntry struct {
	ID    summaryKey `json:"_id"`
	Total float64    `json:"total"`
	Count int64      `json:"count"`
}

// Create handles POST /api/transactions. Validation failures surface their
// message verbatim; anything else is a generic server error.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	input := CreateInput{
		UserID:   req.UserID,
		Category: req.Category,
		Title:    req.Title,
		Amount:   req.Amount,
		Type:     req.Type,
		Note:     req.Note,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	tx, err := h.service.Add(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidID) {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		h.logger.Error("add transaction failed", "error", err, "request_id", middleware.RequestIDFrom(c))
		return fiber.NewError(http.StatusInternalServerError, "Server error")
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Transaction added successfully",
		"transaction": toPayload(tx),
	})
}

// List handles GET /api/transactions/:userId.
func (h *Handler) List(c *fiber.Ctx) error {
	result, err := h.service.List(c.UserContext(), c.Params("userId"))
	if err != nil {
		h.logger.Error("list transactions failed", "error", err, "request_id", middleware.RequestIDFrom(c))
		return fiber.NewError(http.StatusInternalServerError, "Server error")
	}

	payloads := make([]transactionPayload, 0, len(result.Transactions))
	for _, tx := range result.Transactions {
		payloads = append(payloads, toPayload(tx))
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":      true,
		"transactions": payloads,
		"totalIncome":  result.TotalIncome,
		"totalExpense": result.TotalExpense,
		"balance":      result.Balance,
	})
}

// Summary handles GET /api/transactions/summary/:userId.
func (h *Handler) Summary(c *fiber.Ctx) error {
	rows, err := h.service.Summary(c.UserContext(), c.Params("userId"))
	if err != nil {
		h.logger.Error("transaction summary failed", "error", err, "request_id", middleware.RequestIDFrom(c))
		return fiber.NewError(http.StatusInternalServerError, "Server error")
	}

	entries := make([]summaryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, summaryEntry{
			ID:    summaryKey{Category: row.Category, Type: row.Type},
			Total: row.Total,
			Count: row.Count,
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"summary": entries,
	})
}

// Delete handles DELETE /api/transactions/:id. A missing record still
// reports success.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		h.logger.Error("delete transaction failed", "error", err, "request_id", middleware.RequestIDFrom(c))
		return fiber.NewError(http.StatusInternalServerError, "Server error")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Transaction deleted",
	})
}

func toPayload(tx Transaction) transactionPayload {
	return transactionPayload{
		ID:        tx.ID,
		UserID:    tx.UserID,
		Category:  tx.Category,
		Title:     tx.Title,
		Amount:    tx.Amount,
		Type:      tx.Type,
		Note:      tx.Note,
		Date:      tx.Date,
		CreatedAt: tx.CreatedAt,
		UpdatedAt: tx.UpdatedAt,
	}
}
