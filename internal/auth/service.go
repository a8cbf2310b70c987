package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/identity"
)

var (
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so a caller cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailNotFound signals a password reset request for an unknown email.
	ErrEmailNotFound = errors.New("email not found")
	// ErrValidation wraps signup input violations.
	ErrValidation = errors.New("validation failed")
)

var validate = validator.New()

// Service manages signup, login and the password reset stub.
type Service struct {
	cfg  config.Config
	repo identity.Repository
}

// NewService creates an auth service bound to a credential repository.
func NewService(cfg config.Config, repo identity.Repository) *Service {
	return &Service{cfg: cfg, repo: repo}
}

// SignupInput captures the fields required to create an account.
type SignupInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Mobile   string `validate:"required"`
	DOB      string `validate:"required"`
	Password string `validate:"required,min=6"`
}

// UserSummary is the caller-facing view of a user. It never carries the
// password hash.
type UserSummary struct {
	ID       string
	FullName string
	Email    string
}

// Signup registers a new user with a bcrypt-hashed password.
func (s *Service) Signup(ctx context.Context, input SignupInput) (UserSummary, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = normalizeEmail(input.Email)
	input.Mobile = strings.TrimSpace(input.Mobile)

	if err := validate.Struct(input); err != nil {
		return UserSummary{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	_, err := s.repo.FindByEmail(ctx, input.Email)
	if err == nil {
		return UserSummary{}, identity.ErrDuplicateEmail
	}
	if !errors.Is(err, identity.ErrNotFound) {
		return UserSummary{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return UserSummary{}, err
	}

	user, err := s.repo.Create(ctx, identity.User{
		FullName:     input.FullName,
		Email:        input.Email,
		Mobile:       input.Mobile,
		DOB:          input.DOB,
		PasswordHash: hash,
	})
	if err != nil {
		// The store's unique index settles the race between two concurrent
		// signups with the same email: the loser lands here.
		return UserSummary{}, err
	}

	return summarize(user), nil
}

// Login verifies credentials and issues a signed token carrying the user id.
func (s *Service) Login(ctx context.Context, email, password string) (string, UserSummary, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return "", UserSummary{}, ErrInvalidCredentials
		}
		return "", UserSummary{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", UserSummary{}, ErrInvalidCredentials
	}

	token, err := SignToken(user.ID, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return "", UserSummary{}, err
	}

	return token, summarize(user), nil
}

// RequestPasswordReset confirms the email exists. Delivery of the reset
// link is out of scope; this is a stub boundary.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return ErrEmailNotFound
		}
		return err
	}
	return nil
}

func summarize(user identity.User) UserSummary {
	return UserSummary{ID: user.ID, FullName: user.FullName, Email: user.Email}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
