package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/identity"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func validSignup() SignupInput {
	return SignupInput{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Mobile:   "+15550001111",
		DOB:      "1815-12-10",
		Password: "secret123",
	}
}

func TestSignupAndLogin(t *testing.T) {
	svc := NewService(testConfig(), identity.NewMemoryRepository())
	ctx := context.Background()

	user, err := svc.Signup(ctx, validSignup())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected assigned user id")
	}
	if user.FullName != "Ada Lovelace" || user.Email != "ada@example.com" {
		t.Fatalf("unexpected summary: %+v", user)
	}

	token, logged, err := svc.Login(ctx, "ada@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, logged.ID)
	}

	subject, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("expected token subject %s, got %s", user.ID, subject)
	}
}

func TestSignupNormalizesEmail(t *testing.T) {
	svc := NewService(testConfig(), identity.NewMemoryRepository())
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{
		FullName: "Ada Lovelace",
		Email:    "  Ada@Example.COM ",
		Mobile:   "+15550001111",
		DOB:      "1815-12-10",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected lowercased trimmed email, got %q", user.Email)
	}

	if _, _, err := svc.Login(ctx, "ADA@example.com", "secret123"); err != nil {
		t.Fatalf("login with differently cased email: %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := NewService(testConfig(), identity.NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, err := svc.Signup(ctx, validSignup())
	if !errors.Is(err, identity.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := NewService(testConfig(), identity.NewMemoryRepository())
	ctx := context.Background()

	cases := map[string]SignupInput{
		"missing full name": func() SignupInput { in := validSignup(); in.FullName = ""; return in }(),
		"bad email":         func() SignupInput { in := validSignup(); in.Email = "not-an-email"; return in }(),
		"short password":    func() SignupInput { in := validSignup(); in.Password = "12345"; return in }(),
		"missing dob":       func() SignupInput { in := validSignup(); in.DOB = ""; return in }(),
	}

	for name, input := range cases {
		if _, err := svc.Signup(ctx, input); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestLoginInvalidCredentialsIndistinguishable(t *testing.T) {
	svc := NewService(testConfig(), identity.NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, _, wrongPass := svc.Login(ctx, "ada@example.com", "wrong-password")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "secret123")

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatalf("expected identical errors, got %q vs %q", wrongPass, unknownEmail)
	}
}

func TestRequestPasswordReset(t *testing.T) {
	svc := NewService(testConfig(), identity.NewMemoryRepository())
	ctx := context.Background()

	if err := svc.RequestPasswordReset(ctx, "nobody@example.com"); !errors.Is(err, ErrEmailNotFound) {
		t.Fatalf("expected ErrEmailNotFound, got %v", err)
	}

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := svc.RequestPasswordReset(ctx, "ada@example.com"); err != nil {
		t.Fatalf("reset for known email: %v", err)
	}
}
