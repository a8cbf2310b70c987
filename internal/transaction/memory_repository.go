package transaction

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu  sync.RWMutex
	txs []Transaction
}

// NewMemoryRepository builds an in-memory transaction store for development
// and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, tx Transaction) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	tx.ID = uuid.NewString()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	r.txs = append(r.txs, tx)
	return tx, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	txs := []Transaction{}
	for _, tx := range r.txs {
		if tx.UserID == userID {
			txs = append(txs, tx)
		}
	}
	// Date descending, insertion order preserved for equal dates.
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
	return txs, nil
}

func (r *memoryRepository) Summary(_ context.Context, userID string) ([]SummaryRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type key struct{ category, t string }
	groups := map[key]*SummaryRow{}
	order := []key{}
	for _, tx := range r.txs {
		if tx.UserID != userID {
			continue
		}
		k := key{tx.Category, tx.Type}
		row, ok := groups[k]
		if !ok {
			row = &SummaryRow{Category: tx.Category, Type: tx.Type}
			groups[k] = row
			order = append(order, k)
		}
		row.Total += tx.Amount
		row.Count++
	}

	rows := []SummaryRow{}
	for _, k := range order {
		rows = append(rows, *groups[k])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Category < rows[j].Category
	})
	return rows, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, tx := range r.txs {
		if tx.ID == id {
			r.txs = append(r.txs[:i], r.txs[i+1:]...)
			return tx, nil
		}
	}
	return Transaction{}, ErrNotFound
}
