package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise/spendwise/internal/identity"
	"github.com/spendwise/spendwise/internal/middleware"
)

// Handler exposes signup, login and forgot-password endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	DOB      string `json:"dob"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type userPayload struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Signup handles POST /api/auth/signup.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Signup(c.UserContext(), SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Mobile:   req.Mobile,
		DOB:      req.DOB,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, identity.ErrDuplicateEmail) {
			return fiber.NewError(http.StatusBadRequest, "Email already registered")
		}
		h.logger.Error("signup failed", "error", err, "request_id", middleware.RequestIDFrom(c))
		return fiber.NewError(http.StatusInternalServerError, "Server error")
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully",
		"user":    userPayload{ID: user.ID, FullName: user.FullName, Email: user.Email},
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(http.StatusBadRequest, "Invalid email or password")
		}
		h.logger.Error("login failed", "error", err, "request_id", middleware.RequestIDFrom(c))
		return fiber.NewError(http.StatusInternalServerError, "Server error")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    userPayload{ID: user.ID, FullName: user.FullName, Email: user.Email},
	})
}

// ForgotPassword handles POST /api/auth/forgot-password. It only confirms
// the email exists; no reset link is delivered.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		if errors.Is(err, ErrEmailNotFound) {
			return fiber.NewError(http.StatusBadRequest, "Email not found")
		}
		h.logger.Error("forgot password failed", "error", err, "request_id", middleware.RequestIDFrom(c))
		return fiber.NewError(http.StatusInternalServerError, "Server error")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Password reset link sent to your email",
	})
}
