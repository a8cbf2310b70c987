package transaction

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrValidation wraps create-input violations. Its message is surfaced
// verbatim on the create endpoint.
var ErrValidation = errors.New("validation failed")

var validate = newValidator()

// newValidator registers the category rule so Categories stays the single
// source of truth for the enum.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return slices.Contains(Categories, fl.Field().String())
	})
	return v
}

// Service exposes transaction operations and derived aggregations.
type Service struct {
	repo  Repository
	cache *SummaryCache
}

// NewService builds a transaction service. cache may be nil, in which case
// every summary call goes straight to the store.
func NewService(repo Repository, cache *SummaryCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// CreateInput captures data required to record a transaction. Amount is a
// pointer so an explicit zero is accepted while a missing amount is rejected.
type CreateInput struct {
	UserID   string   `validate:"required"`
	Category string   `validate:"required,category"`
	Title    string   `validate:"required"`
	Amount   *float64 `validate:"required"`
	Type     string   `validate:"omitempty,oneof=income expense"`
	Note     string
	Date     time.Time
}

// Add validates and persists a transaction. Type defaults to expense, note
// to empty and date to the current time.
func (s *Service) Add(ctx context.Context, input CreateInput) (Transaction, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Note = strings.TrimSpace(input.Note)

	if err := validate.Struct(input); err != nil {
		return Transaction{}, fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}

	txType := input.Type
	if txType == "" {
		txType = TypeExpense
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	tx, err := s.repo.Create(ctx, Transaction{
		UserID:   input.UserID,
		Category: input.Category,
		Title:    input.Title,
		Amount:   *input.Amount,
		Type:     txType,
		Note:     input.Note,
		Date:     date,
	})
	if err != nil {
		return Transaction{}, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, tx.UserID)
	}
	return tx, nil
}

// List returns the user's transactions newest first together with income,
// expense and balance totals. No transactions is not an error: the totals
// are zero and the slice is empty.
func (s *Service) List(ctx context.Context, userID string) (ListResult, error) {
	txs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return ListResult{}, err
	}

	result := ListResult{Transactions: txs}
	for _, tx := range txs {
		if tx.Type == TypeIncome {
			result.TotalIncome += tx.Amount
		} else {
			result.TotalExpense += tx.Amount
		}
	}
	result.Balance = result.TotalIncome - result.TotalExpense
	return result, nil
}

// Summary returns per-(category, type) totals and counts for the user,
// ordered by category ascending.
func (s *Service) Summary(ctx context.Context, userID string) ([]SummaryRow, error) {
	if s.cache != nil {
		if rows, ok := s.cache.Get(ctx, userID); ok {
			return rows, nil
		}
	}

	rows, err := s.repo.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, rows)
	}
	return rows, nil
}

// Delete removes the transaction if present. Deleting an id that does not
// exist reports success: the operation is idempotent and a caller cannot
// tell "deleted" from "was already absent".
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, removed.UserID)
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "category", "oneof":
			messages = append(messages, fmt.Sprintf("%v is not a valid %s", fe.Value(), strings.ToLower(fe.Field())))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(messages, ", ")
}
