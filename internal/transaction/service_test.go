package transaction

import (
	"context"
	"errors"
	"testing"
	"time"
)

func amount(v float64) *float64 { return &v }

func mustAdd(t *testing.T, svc *Service, input CreateInput) Transaction {
	t.Helper()
	tx, err := svc.Add(context.Background(), input)
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return tx
}

func TestAddDefaults(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	before := time.Now().UTC()
	tx := mustAdd(t, svc, CreateInput{
		UserID:   "user-1",
		Category: "Food",
		Title:    "Lunch",
		Amount:   amount(12),
	})

	if tx.ID == "" {
		t.Fatal("expected assigned id")
	}
	if tx.Type != TypeExpense {
		t.Fatalf("expected default type expense, got %s", tx.Type)
	}
	if tx.Note != "" {
		t.Fatalf("expected empty note, got %q", tx.Note)
	}
	if tx.Date.Before(before) || tx.Date.After(time.Now().UTC().Add(time.Second)) {
		t.Fatalf("expected date defaulted to now, got %s", tx.Date)
	}
	if tx.CreatedAt.IsZero() || tx.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestAddZeroAmountAllowed(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	tx := mustAdd(t, svc, CreateInput{
		UserID:   "user-1",
		Category: "More",
		Title:    "Adjustment",
		Amount:   amount(0),
	})
	if tx.Amount != 0 {
		t.Fatalf("expected amount 0, got %v", tx.Amount)
	}
}

func TestAddValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	cases := map[string]CreateInput{
		"unknown category": {UserID: "user-1", Category: "Stocks", Title: "Shares", Amount: amount(5)},
		"missing title":    {UserID: "user-1", Category: "Food", Amount: amount(5)},
		"missing amount":   {UserID: "user-1", Category: "Food", Title: "Lunch"},
		"missing user":     {Category: "Food", Title: "Lunch", Amount: amount(5)},
		"bad type":         {UserID: "user-1", Category: "Food", Title: "Lunch", Amount: amount(5), Type: "transfer"},
	}

	for name, input := range cases {
		if _, err := svc.Add(ctx, input); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestAddAcceptsAllCategories(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	for _, category := range Categories {
		tx := mustAdd(t, svc, CreateInput{
			UserID:   "user-1",
			Category: category,
			Title:    "entry",
			Amount:   amount(1),
		})
		if tx.Category != category {
			t.Errorf("expected category %s, got %s", category, tx.Category)
		}
	}
}

func TestListTotals(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	mustAdd(t, svc, CreateInput{UserID: "user-1", Category: "Food", Title: "Lunch", Amount: amount(12), Type: TypeExpense})
	mustAdd(t, svc, CreateInput{UserID: "user-1", Category: "Savings", Title: "Deposit", Amount: amount(100), Type: TypeIncome})
	// Another user's record must not leak into the totals.
	mustAdd(t, svc, CreateInput{UserID: "user-2", Category: "Rent", Title: "May rent", Amount: amount(900)})

	result, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(result.Transactions))
	}
	if result.TotalIncome != 100 {
		t.Errorf("expected total income 100, got %v", result.TotalIncome)
	}
	if result.TotalExpense != 12 {
		t.Errorf("expected total expense 12, got %v", result.TotalExpense)
	}
	if result.Balance != 88 {
		t.Errorf("expected balance 88, got %v", result.Balance)
	}
}

func TestListEmpty(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	result, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Transactions == nil || len(result.Transactions) != 0 {
		t.Fatalf("expected empty slice, got %#v", result.Transactions)
	}
	if result.TotalIncome != 0 || result.TotalExpense != 0 || result.Balance != 0 {
		t.Fatalf("expected zero totals, got %+v", result)
	}
}

func TestListOrderedByDateDescending(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	mustAdd(t, svc, CreateInput{UserID: "user-1", Category: "Food", Title: "oldest", Amount: amount(1), Date: base})
	mustAdd(t, svc, CreateInput{UserID: "user-1", Category: "Food", Title: "newest", Amount: amount(1), Date: base.Add(48 * time.Hour)})
	mustAdd(t, svc, CreateInput{UserID: "user-1", Category: "Food", Title: "middle", Amount: amount(1), Date: base.Add(24 * time.Hour)})

	result, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"newest", "middle", "oldest"}
	for i, title := range want {
		if result.Transactions[i].Title != title {
			t.Fatalf("position %d: expected %s, got %s", i, title, result.Transactions[i].Title)
		}
	}
}

func TestSummaryGroups(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	mustAdd(t, svc, CreateInput{UserID: "user-1", Category: "Food", Title: "Lunch", Amount: amount(12)})
	mustAdd(t, svc, CreateInput{UserID: "user-1", Category: "Food", Title: "Dinner", Amount: amount(20)})
	mustAdd(t, svc, CreateInput{UserID: "user-1", Category: "Savings", Title: "Deposit", Amount: amount(100), Type: TypeIncome})
	mustAdd(t, svc, CreateInput{UserID: "user-1", Category: "Entertainment", Title: "Cinema", Amount: amount(15)})

	rows, err := svc.Summary(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(rows))
	}

	// Category ascending.
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Category > rows[i].Category {
			t.Fatalf("groups not sorted by category: %+v", rows)
		}
	}

	var totalCount int64
	seen := map[[2]string]bool{}
	for _, row := range rows {
		key := [2]string{row.Category, row.Type}
		if seen[key] {
			t.Fatalf("duplicate group %v", key)
		}
		seen[key] = true
		totalCount += row.Count
	}
	if totalCount != 4 {
		t.Fatalf("expected group counts to sum to 4, got %d", totalCount)
	}

	for _, row := range rows {
		if row.Category == "Food" {
			if row.Total != 32 || row.Count != 2 {
				t.Fatalf("Food group: expected total 32 count 2, got %+v", row)
			}
		}
	}
}

func TestDeleteIdempotent(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	tx := mustAdd(t, svc, CreateInput{UserID: "user-1", Category: "Food", Title: "Lunch", Amount: amount(12)})

	if err := svc.Delete(ctx, tx.ID); err != nil {
		t.Fatalf("delete existing: %v", err)
	}
	if err := svc.Delete(ctx, tx.ID); err != nil {
		t.Fatalf("delete already removed: %v", err)
	}
	if err := svc.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("delete nonexistent: %v", err)
	}

	result, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Transactions) != 0 {
		t.Fatalf("expected no transactions after delete, got %d", len(result.Transactions))
	}
}
